package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"pkt.systems/pslog"

	"github.com/abhisek/golfdrills/internal/session"
)

func newLogCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "log",
		Short: "Record a completed practice session",
		Example: "  golfdrills log --skills start_line --drill gate_drill=7/10 --drill coin_roll='8/10;pulled a few'\n" +
			"  golfdrills log --drill clock_drill --date 2026-05-01 --location \"Home Course\"",
		RunE: func(cmd *cobra.Command, args []string) error {
			env := envFrom(cmd)
			ctx := cmd.Context()
			log := pslog.Ctx(ctx)

			draft, err := draftFromFlags(cmd)
			if err != nil {
				return err
			}

			b := session.NewBuilder(env.catalog)
			b.DefaultLocation = env.cfg.DefaultLocation
			b.OnUnresolved = func(id string) {
				env.metrics.UnresolvedDrill()
				log.Debug("drill not in catalog, skipped", "drill", id)
			}
			rec, err := b.Build(draft.Input())
			if err != nil {
				return err
			}

			sessions, closeStore, err := openSessions(cmd, env)
			if err != nil {
				return err
			}
			defer closeStore()

			if err := sessions.Save(ctx, rec); err != nil {
				return err
			}
			draft.Reset()

			fmt.Fprintf(cmd.OutOrStdout(), "Logged session %s: %d drills on %s at %s\n",
				rec.ID, len(rec.Drills), rec.Date, rec.Location)
			return nil
		},
	}
	c.Flags().StringSlice("skills", nil, "Comma-separated skill ids trained")
	c.Flags().StringArray("drill", nil, "Drill result as id[=score[;notes]] (repeatable)")
	c.Flags().String("date", "", "Session date YYYY-MM-DD (default today)")
	c.Flags().String("location", "", "Where you practiced")
	c.Flags().String("notes", "", "Notes for the whole session")
	return c
}

func draftFromFlags(cmd *cobra.Command) (*session.Draft, error) {
	d := session.NewDraft()

	skillIDs, _ := cmd.Flags().GetStringSlice("skills")
	for _, id := range skillIDs {
		d.SelectSkill(strings.TrimSpace(id))
	}

	values, _ := cmd.Flags().GetStringArray("drill")
	for _, value := range values {
		id, score, notes, err := parseDrillFlag(value)
		if err != nil {
			return nil, err
		}
		d.SelectDrill(id)
		if score != "" || notes != "" {
			d.SetResult(id, score, notes)
		}
	}

	d.Date, _ = cmd.Flags().GetString("date")
	d.Location, _ = cmd.Flags().GetString("location")
	d.Notes, _ = cmd.Flags().GetString("notes")
	return d, nil
}

// parseDrillFlag splits "id=score;notes". Score and notes are optional and
// kept verbatim.
func parseDrillFlag(value string) (id, score, notes string, err error) {
	id, rest, _ := strings.Cut(value, "=")
	id = strings.TrimSpace(id)
	if id == "" {
		return "", "", "", errors.New("--drill needs a drill id, as id[=score[;notes]]")
	}
	score, notes, _ = strings.Cut(rest, ";")
	return id, score, notes, nil
}
