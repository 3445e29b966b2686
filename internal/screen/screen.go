package screen

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/golfdrills/internal/catalog"
	"github.com/abhisek/golfdrills/internal/metrics"
	"github.com/abhisek/golfdrills/internal/recommend"
	"github.com/abhisek/golfdrills/internal/skills"
	"github.com/abhisek/golfdrills/internal/store"
	"github.com/abhisek/golfdrills/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// EscHandler is implemented by screens that handle Esc themselves, such as
// multi-step forms that step back before leaving.
type EscHandler interface {
	HandlesEsc() bool
}

// StatusProvider is an optional interface for screens that show a short
// status on the right of the header.
type StatusProvider interface {
	Status() string
}

// Deps are the collaborators screens call into.
type Deps struct {
	Ctx             context.Context
	Catalog         *catalog.Catalog
	Skills          *skills.Registry
	Sessions        *store.SessionStore
	Budget          recommend.Budget
	DefaultLocation string
	Metrics         *metrics.Metrics
}

// Context returns d.Ctx, or a background context when unset.
func (d Deps) Context() context.Context {
	if d.Ctx == nil {
		return context.Background()
	}
	return d.Ctx
}
