package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizup/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "quizup",
	Short: "Adaptive quiz platform",
	Long: "QuizUp serves an adaptive quiz API for teachers and students and " +
		"lets students take assigned quizzes from the terminal.",
	SilenceUsage: true,
}

// ExecuteContext runs the root command with ctx available to every
// subcommand through cmd.Context().
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides QUIZUP_DB env var)")
	rootCmd.PersistentFlags().String("env-file", "", "Load environment variables from this file instead of .env")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then QUIZUP_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
