package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/golfdrills/internal/skills"
)

//go:embed drills.yaml
var seedYAML []byte

// Provider is the read-only view of the catalog used by the recommendation
// engine and the session builder.
type Provider interface {
	AllDrills() []*Drill
	DrillByID(id string) (*Drill, bool)
}

// SkillChecker reports whether a skill id is known.
type SkillChecker interface {
	Exists(id string) bool
}

// CategoryInfo names a drill category.
type CategoryInfo struct {
	ID    string
	Label string
}

// Catalog holds the flattened drill list with precomputed indices.
// It is built once and never mutated.
type Catalog struct {
	drills     []Drill
	byID       map[string]*Drill
	byCategory map[string][]*Drill
	categories []CategoryInfo
	warnings   []string
}

var _ Provider = (*Catalog)(nil)

var def *Catalog

func init() {
	c, err := Parse(seedYAML, skills.Default())
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded drills are invalid: %v", err))
	}
	def = c
}

// Default returns the catalog built from the embedded drill library.
func Default() *Catalog { return def }

type catalogDoc struct {
	Categories []struct {
		ID     string     `yaml:"id"`
		Label  string     `yaml:"label"`
		Drills []drillDoc `yaml:"drills"`
	} `yaml:"categories"`
}

type drillDoc struct {
	ID          string    `yaml:"id"`
	Name        string    `yaml:"name"`
	Description string    `yaml:"description"`
	Skills      []string  `yaml:"skills"`
	Duration    int       `yaml:"duration"`
	Environment []string  `yaml:"environment"`
	Scoring     yaml.Node `yaml:"scoring"`
}

// LoadFile reads a catalog document from path.
func LoadFile(path string, known SkillChecker) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data, known)
}

// Parse decodes a category -> drills YAML document and flattens it into an
// id index and a category view. Drill order is document order.
func Parse(data []byte, known SkillChecker) (*Catalog, error) {
	var doc catalogDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	var drills []Drill
	var cats []CategoryInfo
	for _, c := range doc.Categories {
		label := c.Label
		if label == "" {
			label = c.ID
		}
		cats = append(cats, CategoryInfo{ID: c.ID, Label: label})
		for _, dd := range c.Drills {
			sc, err := decodeScoring(&dd.Scoring)
			if err != nil {
				return nil, fmt.Errorf("drill %q: %w", dd.ID, err)
			}
			drills = append(drills, Drill{
				ID:          dd.ID,
				Name:        dd.Name,
				Description: dd.Description,
				Skills:      dedupe(dd.Skills),
				Duration:    dd.Duration,
				Category:    c.ID,
				Environment: dedupe(dd.Environment),
				Scoring:     sc,
			})
		}
	}
	return New(cats, drills, known)
}

// New validates drills and builds the catalog indices. known may be nil,
// in which case skill references are not checked.
func New(categories []CategoryInfo, drills []Drill, known SkillChecker) (*Catalog, error) {
	warnings, err := validateDrills(drills, known)
	if err != nil {
		return nil, err
	}

	c := &Catalog{
		drills:     slices.Clone(drills),
		byID:       make(map[string]*Drill, len(drills)),
		byCategory: make(map[string][]*Drill),
		categories: slices.Clone(categories),
		warnings:   warnings,
	}
	declared := make(map[string]bool, len(categories))
	for _, ci := range categories {
		declared[ci.ID] = true
	}
	for i := range c.drills {
		d := &c.drills[i]
		c.byID[d.ID] = d
		c.byCategory[d.Category] = append(c.byCategory[d.Category], d)
		if !declared[d.Category] {
			declared[d.Category] = true
			c.categories = append(c.categories, CategoryInfo{ID: d.Category, Label: d.Category})
		}
	}
	return c, nil
}

// AllDrills returns every drill in catalog order. The pointers refer to the
// catalog's own entries.
func (c *Catalog) AllDrills() []*Drill {
	out := make([]*Drill, len(c.drills))
	for i := range c.drills {
		out[i] = &c.drills[i]
	}
	return out
}

// DrillByID resolves a drill id.
func (c *Catalog) DrillByID(id string) (*Drill, bool) {
	d, ok := c.byID[id]
	return d, ok
}

// ByCategory returns the drills of one category in catalog order.
func (c *Catalog) ByCategory(category string) []*Drill {
	return slices.Clone(c.byCategory[category])
}

// Categories returns the declared categories in document order.
func (c *Catalog) Categories() []CategoryInfo {
	return slices.Clone(c.categories)
}

// CategoryLabel returns the display label of a category id.
func (c *Catalog) CategoryLabel(id string) string {
	for _, ci := range c.categories {
		if ci.ID == id {
			return ci.Label
		}
	}
	return id
}

// Len returns the number of drills.
func (c *Catalog) Len() int { return len(c.drills) }

// Warnings lists soft problems found at load, such as unknown skill ids.
func (c *Catalog) Warnings() []string {
	return slices.Clone(c.warnings)
}
