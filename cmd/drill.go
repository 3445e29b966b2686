package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/golfdrills/internal/catalog"
	"github.com/abhisek/golfdrills/internal/skills"
)

func newDrillCmd() *cobra.Command {
	drillCmd := &cobra.Command{
		Use:   "drill",
		Short: "Browse the drill library",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List drills (optionally filtered by category or skill)",
		RunE: func(cmd *cobra.Command, args []string) error {
			env := envFrom(cmd)
			category, _ := cmd.Flags().GetString("category")
			skill, _ := cmd.Flags().GetString("skill")

			drills := env.catalog.AllDrills()
			if category != "" {
				drills = env.catalog.ByCategory(category)
				if len(drills) == 0 {
					return fmt.Errorf("no drills found for category %q", category)
				}
			}
			if skill != "" {
				var filtered []*catalog.Drill
				for _, d := range drills {
					if d.TrainsSkill(skill) {
						filtered = append(filtered, d)
					}
				}
				drills = filtered
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-24s  %-30s  %4s  %-12s  %s\n", "ID", "Name", "Min", "Category", "Skills")
			fmt.Fprintln(out, strings.Repeat("─", 110))
			for _, d := range drills {
				fmt.Fprintf(out, "%-24s  %-30s  %4d  %-12s  %s\n",
					d.ID, truncate(d.Name, 30), d.Duration, d.Category, skillLabels(env.skills, d.Skills))
			}
			fmt.Fprintf(out, "\n%d drills\n", len(drills))
			return nil
		},
	}
	listCmd.Flags().String("category", "", "Filter by drill category (e.g. putting, bunker)")
	listCmd.Flags().String("skill", "", "Only drills that train this skill id")

	showCmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one drill in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env := envFrom(cmd)
			d, ok := env.catalog.DrillByID(args[0])
			if !ok {
				return fmt.Errorf("unknown drill %q", args[0])
			}
			printDrill(cmd, env, d)
			return nil
		},
	}

	drillCmd.AddCommand(listCmd, showCmd)
	return drillCmd
}

func printDrill(cmd *cobra.Command, env *environment, d *catalog.Drill) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (%s)\n", d.Name, d.ID)
	fmt.Fprintf(out, "  Category:    %s\n", env.catalog.CategoryLabel(d.Category))
	fmt.Fprintf(out, "  Duration:    %d min\n", d.Duration)
	fmt.Fprintf(out, "  Skills:      %s\n", skillLabels(env.skills, d.Skills))
	if len(d.Environment) > 0 {
		fmt.Fprintf(out, "  Environment: %s\n", strings.Join(d.Environment, ", "))
	}
	if m := d.Metric(); m != "" {
		fmt.Fprintf(out, "  Scoring:     %s\n", m)
	}
	if d.Description != "" {
		fmt.Fprintf(out, "\n  %s\n", d.Description)
	}
}

// skillLabels renders skill ids with their labels. Unknown ids are shown as-is.
func skillLabels(reg *skills.Registry, ids []string) string {
	labels := make([]string, len(ids))
	for i, id := range ids {
		labels[i] = reg.Label(id)
	}
	return strings.Join(labels, ", ")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
