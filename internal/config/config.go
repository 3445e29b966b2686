// Package config loads golfdrills settings from defaults, an optional YAML
// file and GOLFDRILLS_* environment variables.
package config

import (
	"slices"
	"strings"

	"github.com/abhisek/golfdrills/internal/recommend"
	"github.com/abhisek/golfdrills/internal/session"
)

// Config contains process configuration.
type Config struct {
	// DBPath overrides the default database location. Empty means the XDG
	// data directory.
	DBPath string `koanf:"db_path"`

	// CatalogPath points at a drill catalog YAML file replacing the
	// built-in library.
	CatalogPath string `koanf:"catalog_path"`

	// LogLevel controls verbosity: trace, debug, info, error.
	LogLevel string `koanf:"log_level"`

	// DefaultLocation is recorded for sessions logged without a location.
	DefaultLocation string `koanf:"default_location"`

	// BudgetFallbackCount is how many leading drills are returned when no
	// time budget applies.
	BudgetFallbackCount int `koanf:"budget_fallback_count"`

	// BudgetToleranceMinutes is how far a plan may run past the target.
	BudgetToleranceMinutes int `koanf:"budget_tolerance_minutes"`

	// MetricsFile, when set, receives a prometheus textfile on exit.
	MetricsFile string `koanf:"metrics_file"`
}

// New returns a Config holding the defaults.
func New() *Config {
	return &Config{
		LogLevel:               "info",
		DefaultLocation:        session.DefaultLocation,
		BudgetFallbackCount:    recommend.DefaultFallbackCount,
		BudgetToleranceMinutes: recommend.DefaultToleranceMinutes,
	}
}

// Budget returns the recommendation budget described by c.
func (c *Config) Budget() recommend.Budget {
	return recommend.Budget{
		FallbackCount:    c.BudgetFallbackCount,
		ToleranceMinutes: c.BudgetToleranceMinutes,
	}
}

var logLevels = []string{"trace", "debug", "info", "error"}

func (c *Config) validate() error {
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if !slices.Contains(logLevels, c.LogLevel) {
		return invalidf("log_level %q (want one of %s)", c.LogLevel, strings.Join(logLevels, ", "))
	}
	if c.BudgetFallbackCount <= 0 {
		return invalidf("budget_fallback_count must be positive, got %d", c.BudgetFallbackCount)
	}
	if c.BudgetToleranceMinutes < 0 {
		return invalidf("budget_tolerance_minutes must not be negative, got %d", c.BudgetToleranceMinutes)
	}
	if strings.TrimSpace(c.DefaultLocation) == "" {
		c.DefaultLocation = session.DefaultLocation
	}
	return nil
}
