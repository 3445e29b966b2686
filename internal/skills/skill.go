package skills

// Category groups skills for display.
type Category string

const (
	CategoryPutting   Category = "putting"
	CategoryShortGame Category = "short_game"
	CategoryFullSwing Category = "full_swing"
	CategoryMental    Category = "mental"
)

// CategoryDisplayName returns a human-readable name for a category.
func CategoryDisplayName(c Category) string {
	switch c {
	case CategoryPutting:
		return "Putting"
	case CategoryShortGame:
		return "Short Game"
	case CategoryFullSwing:
		return "Full Swing"
	case CategoryMental:
		return "Mental Game"
	default:
		return string(c)
	}
}

// Skill is a trainable competency used to filter and rank drills.
type Skill struct {
	ID       string
	Label    string
	Category Category
}

// Provider exposes the full skill list to the recommendation core.
type Provider interface {
	AllSkills() []Skill
}
