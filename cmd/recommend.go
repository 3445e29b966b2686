package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"pkt.systems/pslog"

	"github.com/abhisek/golfdrills/internal/recommend"
)

func newRecommendCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "recommend",
		Short: "Recommend drills for a set of skills, optionally fitted to a time budget",
		Example: "  golfdrills recommend --skills pace,green_reading --hours 1.5\n" +
			"  golfdrills recommend --skills bunker",
		RunE: func(cmd *cobra.Command, args []string) error {
			env := envFrom(cmd)
			log := pslog.Ctx(cmd.Context())

			selected, _ := cmd.Flags().GetStringSlice("skills")
			hoursText, _ := cmd.Flags().GetString("hours")
			if len(selected) == 0 {
				return errors.New("select at least one skill with --skills")
			}
			for _, id := range selected {
				if !env.skills.Exists(id) {
					log.Warn("unknown skill", "skill", id)
				}
			}

			plan := env.cfg.Budget().Plan(env.catalog, selected, recommend.ParseHours(hoursText))
			out := cmd.OutOrStdout()
			if len(plan.Candidates) == 0 {
				fmt.Fprintln(out, "No drills match the selected skills.")
				return nil
			}
			env.metrics.Recommended(plan.TotalMinutes, plan.Fallback)

			fmt.Fprintf(out, "%d matching drills for %s\n\n", len(plan.Candidates), skillLabels(env.skills, selected))
			for i, d := range plan.Selected {
				fmt.Fprintf(out, "%2d. %-30s  %3d min  %s\n", i+1, d.Name, d.Duration, d.ID)
			}

			fmt.Fprintln(out)
			switch {
			case !plan.Budgeted:
				fmt.Fprintf(out, "Total %d min (top %d, no time budget)\n", plan.TotalMinutes, len(plan.Selected))
			case plan.Fallback:
				fmt.Fprintf(out, "Nothing fits %d min; showing the top %d (%d min)\n",
					plan.TargetMinutes, len(plan.Selected), plan.TotalMinutes)
			default:
				fmt.Fprintf(out, "Total %d of %d min\n", plan.TotalMinutes, plan.TargetMinutes)
			}
			return nil
		},
	}
	c.Flags().StringSlice("skills", nil, "Comma-separated skill ids to train")
	c.Flags().String("hours", "", "Time available in hours (e.g. 1.5)")
	return c
}
