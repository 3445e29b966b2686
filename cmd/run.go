package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/golfdrills/internal/app"
)

// runApp opens the store and launches the TUI.
func runApp(cmd *cobra.Command) error {
	env := envFrom(cmd)
	sessions, closeStore, err := openSessions(cmd, env)
	if err != nil {
		return err
	}
	defer closeStore()

	return app.Run(cmd.Context(), app.Options{
		Catalog:         env.catalog,
		Skills:          env.skills,
		Sessions:        sessions,
		Budget:          env.cfg.Budget(),
		DefaultLocation: env.cfg.DefaultLocation,
		Metrics:         env.metrics,
	})
}
