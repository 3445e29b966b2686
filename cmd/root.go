package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"pkt.systems/pslog"

	"github.com/abhisek/golfdrills/internal/catalog"
	"github.com/abhisek/golfdrills/internal/config"
	"github.com/abhisek/golfdrills/internal/metrics"
	"github.com/abhisek/golfdrills/internal/skills"
	"github.com/abhisek/golfdrills/internal/store"
)

// environment is resolved once per invocation before any command runs.
type environment struct {
	cfg     *config.Config
	catalog *catalog.Catalog
	skills  *skills.Registry
	metrics *metrics.Metrics
}

type envKey struct{}

// Execute runs the golfdrills command tree.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "golfdrills",
		Short: "Plan golf practice sessions and log drill results",
		Long: "golfdrills picks drills for the skills you want to work on, fits them to the time you have, " +
			"and keeps a local history of every practice session.",
		SilenceErrors:      true,
		SilenceUsage:       true,
		PersistentPreRunE:  setup,
		PersistentPostRunE: teardown,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApp(cmd)
		},
	}

	root.PersistentFlags().String("db", "", "Path to SQLite database file (overrides GOLFDRILLS_DB_PATH)")
	root.PersistentFlags().String("config", "", "Path to YAML config file (overrides GOLFDRILLS_CONFIG)")

	root.AddCommand(newSkillCmd())
	root.AddCommand(newDrillCmd())
	root.AddCommand(newRecommendCmd())
	root.AddCommand(newLogCmd())
	root.AddCommand(newHistoryCmd())
	root.AddCommand(newStatsCmd())
	root.AddCommand(newVersionCmd())

	return root
}

// setup loads config, swaps in a logger at the configured level and loads
// the drill catalog.
func setup(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(ctx, cfgPath)
	if err != nil {
		return err
	}

	ctx = pslog.ContextWithLogger(ctx, newLogger(cmd.ErrOrStderr(), cfg.LogLevel))
	log := pslog.Ctx(ctx)

	cat := catalog.Default()
	if cfg.CatalogPath != "" {
		cat, err = catalog.LoadFile(cfg.CatalogPath, skills.Default())
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}
		log.Debug("catalog loaded", "path", cfg.CatalogPath, "drills", cat.Len())
	}
	for _, w := range cat.Warnings() {
		log.Warn("catalog warning", "detail", w)
	}

	env := &environment{
		cfg:     cfg,
		catalog: cat,
		skills:  skills.Default(),
		metrics: metrics.New(),
	}
	cmd.SetContext(context.WithValue(ctx, envKey{}, env))
	return nil
}

// teardown writes the metrics textfile when one is configured.
func teardown(cmd *cobra.Command, _ []string) error {
	env := envFrom(cmd)
	if env == nil {
		return nil
	}
	return env.metrics.WriteTextfile(env.cfg.MetricsFile)
}

func envFrom(cmd *cobra.Command) *environment {
	if ctx := cmd.Context(); ctx != nil {
		if env, ok := ctx.Value(envKey{}).(*environment); ok {
			return env
		}
	}
	return nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then db_path from config or GOLFDRILLS_DB_PATH, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg *config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, ensureDir(p)
	}
	if cfg != nil && cfg.DBPath != "" {
		return cfg.DBPath, ensureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

func ensureDir(p string) error {
	if p == memoryDSN {
		return nil
	}
	return store.EnsureDir(p)
}

// memoryDSN selects a throwaway in-process store.
const memoryDSN = ":memory:"

// openSessions opens the session store for this invocation. The returned
// close func releases the database.
func openSessions(cmd *cobra.Command, env *environment) (*store.SessionStore, func() error, error) {
	dbPath, err := resolveDBPath(cmd, env.cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve DB path: %w", err)
	}
	if dbPath == memoryDSN {
		return store.NewSessionStore(store.NewMemoryKV(), store.WithMetrics(env.metrics)), func() error { return nil }, nil
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}
	pslog.Ctx(cmd.Context()).Debug("store opened", "path", dbPath)
	return store.NewSessionStore(st, store.WithMetrics(env.metrics)), st.Close, nil
}
