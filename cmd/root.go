package cmd

import (
	"github.com/spf13/cobra"

	"github.com/okrylov/praktik/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "praktik",
	Short: "Code-reading practice with AI evaluation",
	Long:  "Praktik serves a code-reading curriculum: learners study a skill, explain exercises in their own words, and an LLM judges the explanations while the engine tracks mastery.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides PRAKTIK_DB env var)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(skillCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then PRAKTIK_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
