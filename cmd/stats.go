package cmd

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/okrylov/praktik/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show a learner's per-skill progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		identity, _ := cmd.Flags().GetString("identity")
		if identity == "" {
			return fmt.Errorf("--identity is required")
		}

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}

		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		ctx := context.Background()
		rec, err := s.ProgressRepo().Get(ctx, identity, "")
		if err != nil {
			return fmt.Errorf("load progress: %w", err)
		}

		fmt.Printf("Identity:       %s\n", identity)
		fmt.Printf("Current skill:  %s\n", rec.CurrentSkill)
		if len(rec.CompletedSkills) > 0 {
			fmt.Printf("Completed:      %s\n", strings.Join(rec.CompletedSkills, ", "))
		}
		fmt.Println()

		if len(rec.SuccessRate) == 0 {
			fmt.Println("No submissions recorded yet.")
			return nil
		}

		// Header.
		fmt.Printf("%-36s  %9s  %9s  %s\n", "Skill", "Successes", "Rate", "Completed IDs")
		fmt.Println(strings.Repeat("─", 80))

		for _, skill := range slices.Sorted(maps.Keys(rec.SuccessRate)) {
			name := skill
			if len(name) > 36 {
				name = name[:33] + "..."
			}
			fmt.Printf("%-36s  %9d  %8.1f%%  %s\n",
				name,
				rec.CompletedExercises[skill],
				rec.SuccessRate[skill],
				strings.Join(rec.CompletedExerciseIDs[skill], ", "),
			)
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().String("identity", "", "Learner identity (cookie value)")
}
