package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/okrylov/praktik/internal/curriculum"
)

var skillCmd = &cobra.Command{
	Use:   "skill",
	Short: "Browse the skill catalog",
}

var skillListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all skills with their exercise counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("curriculum")

		ix, err := curriculum.Load(dir)
		if err != nil {
			return fmt.Errorf("load curriculum: %w", err)
		}

		// Header.
		fmt.Printf("%-24s  %-36s  %s\n", "Category", "Skill", "Exercises")
		fmt.Println(strings.Repeat("─", 75))

		total := 0
		for _, cat := range ix.Categories() {
			for _, s := range cat.Skills {
				name := s.Name
				if len(name) > 36 {
					name = name[:33] + "..."
				}
				count := ix.ExerciseCount(s.Name)
				total++
				fmt.Printf("%-24s  %-36s  %d\n", cat.Name, name, count)
			}
		}

		fmt.Printf("\n%d skills\n", total)
		return nil
	},
}

func init() {
	skillListCmd.Flags().String("curriculum", ".", "Curriculum directory")

	skillCmd.AddCommand(skillListCmd)
}
