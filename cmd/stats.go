package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/golfdrills/internal/session"
)

const statsTop = 5

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show practice statistics across all sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			env := envFrom(cmd)
			records, err := loadHistory(cmd, env)
			if err != nil {
				return err
			}

			st := session.Summarize(records)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Sessions:   %d\n", st.Sessions)
			fmt.Fprintf(out, "Drills run: %d\n", st.DrillsRun)
			if st.Sessions == 0 {
				return nil
			}

			fmt.Fprintln(out, "\nMost practiced drills")
			for _, id := range top(session.Ranked(st.DrillCount)) {
				fmt.Fprintf(out, "  %3d  %s\n", st.DrillCount[id], st.DrillNames[id])
			}
			if len(st.SkillCount) > 0 {
				fmt.Fprintln(out, "\nMost trained skills")
				for _, id := range top(session.Ranked(st.SkillCount)) {
					fmt.Fprintf(out, "  %3d  %s\n", st.SkillCount[id], env.skills.Label(id))
				}
			}
			fmt.Fprintln(out, "\nLocations")
			for _, loc := range top(session.Ranked(st.Locations)) {
				fmt.Fprintf(out, "  %3d  %s\n", st.Locations[loc], loc)
			}
			return nil
		},
	}
}

func top(ids []string) []string {
	return ids[:min(len(ids), statsTop)]
}
