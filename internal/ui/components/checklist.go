package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/golfdrills/internal/ui/layout"
	"github.com/abhisek/golfdrills/internal/ui/theme"
)

// ChecklistItem is one toggleable row. Items with Header set are section
// titles and cannot be selected.
type ChecklistItem struct {
	ID     string
	Label  string
	Detail string
	Header bool
}

// Checklist is a scrolling multi-select list. Selection state lives with the
// caller; Checklist only tracks the cursor.
type Checklist struct {
	Items  []ChecklistItem
	Cursor int
}

// ToggleMsg reports that the item under the cursor was toggled.
type ToggleMsg struct {
	ID string
}

// NewChecklist creates a checklist with the cursor on the first selectable item.
func NewChecklist(items []ChecklistItem) Checklist {
	c := Checklist{Items: items}
	c.Cursor = c.next(-1, 1)
	return c
}

// Current returns the item under the cursor.
func (c Checklist) Current() (ChecklistItem, bool) {
	if c.Cursor < 0 || c.Cursor >= len(c.Items) || c.Items[c.Cursor].Header {
		return ChecklistItem{}, false
	}
	return c.Items[c.Cursor], true
}

// Update moves the cursor and emits ToggleMsg on space.
func (c Checklist) Update(msg tea.Msg) (Checklist, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return c, nil
	}

	switch kmsg.String() {
	case "up", "k":
		c.Cursor = c.next(c.Cursor, -1)
	case "down", "j":
		c.Cursor = c.next(c.Cursor, 1)
	case "space", " ", "x":
		if item, ok := c.Current(); ok {
			return c, func() tea.Msg { return ToggleMsg{ID: item.ID} }
		}
	}
	return c, nil
}

// next returns the next selectable index from i in direction dir, or i when
// there is none.
func (c Checklist) next(i, dir int) int {
	for j := i + dir; j >= 0 && j < len(c.Items); j += dir {
		if !c.Items[j].Header {
			return j
		}
	}
	if i < 0 {
		return 0
	}
	return i
}

// View renders up to height rows around the cursor. checked reports which
// ids are selected.
func (c Checklist) View(width, height int, checked func(id string) bool) string {
	start, end := layout.Window(len(c.Items), c.Cursor, height)

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		item := c.Items[i]
		if item.Header {
			lines = append(lines, theme.SectionHeader.Render(item.Label))
			continue
		}

		box := "[ ]"
		style := theme.Unselected
		if checked(item.ID) {
			box = "[x]"
			style = theme.Checked
		}
		prefix := "  "
		if i == c.Cursor {
			prefix = "▸ "
			style = theme.Selected
		}

		line := style.Render(prefix + box + " " + item.Label)
		if item.Detail != "" {
			detail := item.Detail
			room := width - len(prefix+box+" "+item.Label) - 4
			if room > 3 && len(detail) > room {
				detail = detail[:room-3] + "..."
			}
			if room > 3 {
				line += "  " + theme.Muted.Render(detail)
			}
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
