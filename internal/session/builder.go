package session

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/golfdrills/internal/catalog"
)

// DefaultLocation is recorded when no location is given.
const DefaultLocation = "unspecified"

// ResultInput is the raw score and notes typed for one drill.
type ResultInput struct {
	Score string
	Notes string
}

// Input is everything needed to build a session record.
type Input struct {
	// Date is YYYY-MM-DD; empty means today.
	Date     string
	Location string
	SkillIDs []string
	// DrillIDs are in selection order.
	DrillIDs []string
	Results  map[string]ResultInput
	Notes    string
}

// Builder assembles session records from user input.
type Builder struct {
	Catalog catalog.Provider

	// Now returns the construction instant. Defaults to time.Now.
	Now func() time.Time

	// NewID returns a fresh record id. Defaults to a random UUID.
	NewID func() string

	// DefaultLocation replaces a blank location. Defaults to "unspecified".
	DefaultLocation string

	// OnUnresolved is called for each selected drill id missing from the
	// catalog. Such drills are left out of the record.
	OnUnresolved func(drillID string)
}

// NewBuilder creates a Builder with default clock and id source.
func NewBuilder(p catalog.Provider) *Builder {
	return &Builder{
		Catalog:         p,
		Now:             time.Now,
		NewID:           func() string { return uuid.New().String() },
		DefaultLocation: DefaultLocation,
	}
}

// BuildSession builds a record with a default Builder.
func BuildSession(p catalog.Provider, in Input) (*Record, error) {
	return NewBuilder(p).Build(in)
}

// Build validates in and returns a new record. It has no side effects.
func (b *Builder) Build(in Input) (*Record, error) {
	drillIDs := uniqueIDs(in.DrillIDs)
	if len(drillIDs) == 0 {
		return nil, &ValidationError{Kind: NoDrillsSelected}
	}

	now := b.now()
	date := strings.TrimSpace(in.Date)
	if date == "" {
		date = now.Format(DateLayout)
	} else if _, err := time.Parse(DateLayout, date); err != nil {
		return nil, &ValidationError{Kind: InvalidDate, Detail: date}
	}

	location := strings.TrimSpace(in.Location)
	if location == "" {
		location = b.DefaultLocation
		if location == "" {
			location = DefaultLocation
		}
	}

	results := make([]DrillResult, 0, len(drillIDs))
	for _, id := range drillIDs {
		d, ok := b.Catalog.DrillByID(id)
		if !ok {
			if b.OnUnresolved != nil {
				b.OnUnresolved(id)
			}
			continue
		}
		results = append(results, newDrillResult(d, in.Results[id]))
	}

	return &Record{
		ID:        b.newID(),
		Date:      date,
		Location:  location,
		Skills:    uniqueIDs(in.SkillIDs),
		Drills:    results,
		Notes:     strings.TrimSpace(in.Notes),
		CreatedAt: now,
	}, nil
}

func newDrillResult(d *catalog.Drill, in ResultInput) DrillResult {
	score := strings.TrimSpace(in.Score)
	r := DrillResult{
		DrillID:  d.ID,
		Name:     d.Name,
		Category: d.Category,
		Score:    TextScore(score),
		Metric:   d.Metric(),
		Notes:    strings.TrimSpace(in.Notes),
	}
	if rs, ok := d.Scoring.(catalog.RateScoring); ok {
		if rate, ok := rs.Rate(score); ok {
			r.Rate = &rate
		}
	}
	return r
}

func (b *Builder) now() time.Time {
	if b.Now != nil {
		return b.Now()
	}
	return time.Now()
}

func (b *Builder) newID() string {
	if b.NewID != nil {
		return b.NewID()
	}
	return uuid.New().String()
}

// uniqueIDs drops blanks and repeats, keeping first-occurrence order. The
// result is never nil so records serialise empty lists as [].
func uniqueIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
