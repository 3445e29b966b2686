package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/golfdrills/internal/skills"
)

func newSkillCmd() *cobra.Command {
	skillCmd := &cobra.Command{
		Use:   "skill",
		Short: "Browse trainable skills",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all skills (optionally filtered by category)",
		RunE: func(cmd *cobra.Command, args []string) error {
			env := envFrom(cmd)
			category, _ := cmd.Flags().GetString("category")

			list := env.skills.AllSkills()
			if category != "" {
				list = env.skills.ByCategory(skills.Category(category))
				if len(list) == 0 {
					return fmt.Errorf("no skills found for category %q", category)
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-22s  %-28s  %s\n", "ID", "Label", "Category")
			fmt.Fprintln(out, strings.Repeat("─", 66))
			for _, s := range list {
				fmt.Fprintf(out, "%-22s  %-28s  %s\n",
					s.ID, s.Label, skills.CategoryDisplayName(s.Category))
			}
			fmt.Fprintf(out, "\n%d skills\n", len(list))
			return nil
		},
	}
	listCmd.Flags().String("category", "", "Filter by category (putting, short_game, full_swing, mental)")

	skillCmd.AddCommand(listCmd)
	return skillCmd
}
