package components

import (
	"fmt"
	"strings"

	"github.com/abhisek/golfdrills/internal/ui/theme"
)

// MinutesBar shows planned minutes against a target. The part beyond the
// target is drawn in the accent color.
type MinutesBar struct {
	Planned int
	Target  int
	Width   int
}

// View renders the bar followed by "planned / target min".
func (p MinutesBar) View() string {
	label := fmt.Sprintf("  %d / %d min", p.Planned, p.Target)
	barWidth := max(p.Width-len(label), 4)
	if p.Target <= 0 {
		return theme.Muted.Render(fmt.Sprintf("%d min planned", p.Planned))
	}

	// The bar spans 1.5x the target so overrun stays visible.
	scale := float64(barWidth) / (float64(p.Target) * 1.5)
	filled := min(int(float64(min(p.Planned, p.Target))*scale), barWidth)
	over := 0
	if p.Planned > p.Target {
		over = min(int(float64(p.Planned-p.Target)*scale), barWidth-filled)
	}
	empty := barWidth - filled - over

	return theme.ProgressFilled.Render(strings.Repeat(" ", filled)) +
		theme.ProgressOver.Render(strings.Repeat(" ", over)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", empty)) +
		theme.Muted.Render(label)
}
