package skills

import (
	_ "embed"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

//go:embed skills.yaml
var seedYAML []byte

// Registry holds the skill list with precomputed indices. It is read-only
// after construction and safe to share between goroutines.
type Registry struct {
	skills     []Skill
	byID       map[string]*Skill
	byCategory map[Category][]Skill
	categories []Category
}

var _ Provider = (*Registry)(nil)

// reg is the package-level registry built from the embedded seed.
var reg *Registry

func init() {
	r, err := Parse(seedYAML)
	if err != nil {
		panic(fmt.Sprintf("skills: embedded registry is invalid: %v", err))
	}
	reg = r
}

type registryDoc struct {
	Categories []struct {
		ID     Category `yaml:"id"`
		Skills []struct {
			ID    string `yaml:"id"`
			Label string `yaml:"label"`
		} `yaml:"skills"`
	} `yaml:"categories"`
}

// Parse decodes a category -> skills YAML document into a Registry.
func Parse(data []byte) (*Registry, error) {
	var doc registryDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode skill registry: %w", err)
	}
	var list []Skill
	for _, c := range doc.Categories {
		for _, s := range c.Skills {
			list = append(list, Skill{ID: s.ID, Label: s.Label, Category: c.ID})
		}
	}
	return NewRegistry(list)
}

// NewRegistry validates skills and builds the lookup indices.
func NewRegistry(list []Skill) (*Registry, error) {
	if err := validateSkills(list); err != nil {
		return nil, err
	}
	r := &Registry{
		skills:     slices.Clone(list),
		byID:       make(map[string]*Skill, len(list)),
		byCategory: make(map[Category][]Skill),
	}
	for i := range r.skills {
		s := &r.skills[i]
		r.byID[s.ID] = s
		if _, seen := r.byCategory[s.Category]; !seen {
			r.categories = append(r.categories, s.Category)
		}
		r.byCategory[s.Category] = append(r.byCategory[s.Category], *s)
	}
	return r, nil
}

// AllSkills returns every skill in registry order.
func (r *Registry) AllSkills() []Skill {
	return slices.Clone(r.skills)
}

// GetSkill returns the skill with the given ID.
func (r *Registry) GetSkill(id string) (Skill, error) {
	s, ok := r.byID[id]
	if !ok {
		return Skill{}, fmt.Errorf("skill not found: %q", id)
	}
	return *s, nil
}

// Exists reports whether id names a registered skill.
func (r *Registry) Exists(id string) bool {
	_, ok := r.byID[id]
	return ok
}

// Label returns the display label for id, or id itself when the skill is
// unknown so stale references stay visible.
func (r *Registry) Label(id string) string {
	if s, ok := r.byID[id]; ok {
		return s.Label
	}
	return id
}

// ByCategory returns the skills in a category, in registry order.
func (r *Registry) ByCategory(c Category) []Skill {
	return slices.Clone(r.byCategory[c])
}

// Categories returns the categories in first-seen order.
func (r *Registry) Categories() []Category {
	return slices.Clone(r.categories)
}

// Default returns the registry built from the embedded seed.
func Default() *Registry { return reg }

// AllSkills returns every skill in the default registry.
func AllSkills() []Skill { return reg.AllSkills() }

// GetSkill looks up a skill in the default registry.
func GetSkill(id string) (Skill, error) { return reg.GetSkill(id) }

// Exists reports whether id is in the default registry.
func Exists(id string) bool { return reg.Exists(id) }

// Label returns the default registry's label for id.
func Label(id string) string { return reg.Label(id) }

// ByCategory returns the default registry's skills in a category.
func ByCategory(c Category) []Skill { return reg.ByCategory(c) }

// Categories returns the default registry's categories.
func Categories() []Category { return reg.Categories() }
