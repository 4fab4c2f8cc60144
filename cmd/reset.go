package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/okrylov/praktik/internal/store"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear a learner's progress record",
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

		if err := s.ProgressRepo().Reset(context.Background(), identity); err != nil {
			return fmt.Errorf("reset progress: %w", err)
		}

		fmt.Printf("Progress cleared for %s\n", identity)
		return nil
	},
}

func init() {
	resetCmd.Flags().String("identity", "", "Learner identity (cookie value)")
}
