package library

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/golfdrills/internal/catalog"
	"github.com/abhisek/golfdrills/internal/screen"
	"github.com/abhisek/golfdrills/internal/skills"
	"github.com/abhisek/golfdrills/internal/ui/layout"
	"github.com/abhisek/golfdrills/internal/ui/theme"
)

// DrillDetailScreen shows everything the catalog knows about one drill.
type DrillDetailScreen struct {
	deps     screen.Deps
	drill    *catalog.Drill
	category catalog.CategoryInfo
	logged   int
}

var _ screen.Screen = (*DrillDetailScreen)(nil)
var _ screen.KeyHintProvider = (*DrillDetailScreen)(nil)

func newDrillDetail(deps screen.Deps, d *catalog.Drill, c catalog.CategoryInfo, logged int) *DrillDetailScreen {
	return &DrillDetailScreen{deps: deps, drill: d, category: c, logged: logged}
}

func (d *DrillDetailScreen) Init() tea.Cmd { return nil }
func (d *DrillDetailScreen) Title() string { return d.drill.Name }

func (d *DrillDetailScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	return d, nil
}

func (d *DrillDetailScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
}

func (d *DrillDetailScreen) View(width, height int) string {
	dr := d.drill
	contentWidth := min(width-8, 70)

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render("  " + dr.Name))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("  %s  ·  %d min", d.category.Label, dr.Duration)))
	b.WriteString("\n\n")

	if dr.Description != "" {
		b.WriteString(lipgloss.NewStyle().
			Width(contentWidth).
			Foreground(theme.Text).
			PaddingLeft(2).
			Render(dr.Description))
		b.WriteString("\n\n")
	}

	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	valStyle := lipgloss.NewStyle().Foreground(theme.Text)

	if m := dr.Metric(); m != "" {
		b.WriteString(dimStyle.Render("  Scoring:   ") + valStyle.Render(m) + "\n")
	}
	if len(dr.Environment) > 0 {
		b.WriteString(dimStyle.Render("  Where:     ") + valStyle.Render(strings.Join(dr.Environment, ", ")) + "\n")
	}
	logged := "never"
	if d.logged > 0 {
		logged = fmt.Sprintf("%d times", d.logged)
	}
	b.WriteString(dimStyle.Render("  Logged:    ") + valStyle.Render(logged) + "\n\n")

	if len(dr.Skills) > 0 {
		b.WriteString(lipgloss.NewStyle().
			Foreground(theme.Secondary).
			Bold(true).
			Render("  Trains"))
		b.WriteString("\n")
		for _, id := range dr.Skills {
			b.WriteString(dimStyle.Render("  • " + d.skillLabel(id)))
			b.WriteString("\n")
		}
	}

	return lipgloss.Place(width, height, lipgloss.Left, lipgloss.Top,
		"\n"+b.String())
}

func (d *DrillDetailScreen) skillLabel(id string) string {
	if d.deps.Skills == nil {
		return skills.Label(id)
	}
	return d.deps.Skills.Label(id)
}
