package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/golfdrills/internal/session"
)

func newHistoryCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "history",
		Short: "Show logged sessions, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			env := envFrom(cmd)
			asJSON, _ := cmd.Flags().GetBool("json")
			limit, _ := cmd.Flags().GetInt("limit")

			records, err := loadHistory(cmd, env)
			if err != nil {
				return err
			}
			if limit > 0 && len(records) > limit {
				records = records[:limit]
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(records)
			}

			if len(records) == 0 {
				fmt.Fprintln(out, "No sessions logged yet.")
				return nil
			}
			for _, r := range records {
				printRecord(cmd, env, r)
			}
			return nil
		},
	}
	c.Flags().Bool("json", false, "Print records as JSON")
	c.Flags().Int("limit", 0, "Show at most N sessions (0 = all)")
	return c
}

// loadHistory reads every stored session, newest first.
func loadHistory(cmd *cobra.Command, env *environment) ([]session.Record, error) {
	sessions, closeStore, err := openSessions(cmd, env)
	if err != nil {
		return nil, err
	}
	defer closeStore()

	records, err := sessions.Load(cmd.Context())
	if err != nil {
		return nil, err
	}
	session.SortNewestFirst(records)
	return records, nil
}

func printRecord(cmd *cobra.Command, env *environment, r session.Record) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s  %s  (%d drills)\n", r.Date, r.Location, len(r.Drills))
	if len(r.Skills) > 0 {
		fmt.Fprintf(out, "  Skills: %s\n", skillLabels(env.skills, r.Skills))
	}
	for _, d := range r.Drills {
		line := "  - " + d.Name
		if s := d.Score.String(); s != "" {
			line += ": " + s
		}
		if d.Metric != "" {
			line += " (" + d.Metric + ")"
		}
		if d.Rate != nil {
			line += fmt.Sprintf(" %.0f%%", *d.Rate*100)
		}
		if d.Notes != "" {
			line += "  " + d.Notes
		}
		fmt.Fprintln(out, line)
	}
	if r.Notes != "" {
		fmt.Fprintf(out, "  Notes: %s\n", r.Notes)
	}
	fmt.Fprintln(out)
}
