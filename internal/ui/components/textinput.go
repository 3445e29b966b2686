package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/golfdrills/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with a label and app styling.
type TextInput struct {
	Model textinput.Model
	Label string

	// DecimalOnly drops every printable key except digits and one '.'.
	DecimalOnly bool
}

// NewTextInput creates a new styled text input. It starts blurred.
func NewTextInput(label, placeholder string, charLimit int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	if charLimit > 0 {
		ti.CharLimit = charLimit
	}
	return TextInput{Model: ti, Label: label}
}

// Focus focuses the input and returns the cursor blink command.
func (t *TextInput) Focus() tea.Cmd {
	return t.Model.Focus()
}

// Blur removes focus.
func (t *TextInput) Blur() {
	t.Model.Blur()
}

// Focused reports whether the input has focus.
func (t TextInput) Focused() bool {
	return t.Model.Focused()
}

// Update handles messages.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if t.DecimalOnly {
		if kmsg, ok := msg.(tea.KeyPressMsg); ok && !t.acceptsDecimal(kmsg.Text) {
			return t, nil
		}
	}

	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

func (t TextInput) acceptsDecimal(text string) bool {
	if len(text) != 1 {
		return true // not a printable key
	}
	c := text[0]
	if c >= '0' && c <= '9' {
		return true
	}
	if c == '.' {
		for _, r := range t.Model.Value() {
			if r == '.' {
				return false
			}
		}
		return true
	}
	return false
}

// View renders the label and the input.
func (t TextInput) View() string {
	label := theme.Muted.Render(t.Label)
	if t.Focused() {
		label = theme.Selected.Render(t.Label)
	}
	if t.Label == "" {
		return t.Model.View()
	}
	return label + "\n" + t.Model.View()
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// SetValue replaces the input value.
func (t *TextInput) SetValue(s string) {
	t.Model.SetValue(s)
}
