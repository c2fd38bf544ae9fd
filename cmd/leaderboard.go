package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show students ranked by average score",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		return withService(cmd, func(d *deps) error {
			entries, err := d.svc.Leaderboard(cmd.Context())
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Println("No results yet.")
				return nil
			}
			if limit > 0 && len(entries) > limit {
				entries = entries[:limit]
			}

			fmt.Printf("%4s  %-24s  %7s  %7s  %7s\n", "Rank", "Name", "Quizzes", "Total", "Average")
			fmt.Println(strings.Repeat("─", 58))
			for _, e := range entries {
				fmt.Printf("%4d  %-24s  %7d  %7d  %7.1f\n",
					e.Rank, truncate(e.Name, 24), e.TotalQuizzes, e.TotalScore, e.AverageScore)
			}
			return nil
		})
	},
}

func init() {
	leaderboardCmd.Flags().IntP("limit", "n", 20, "Number of entries to show (0 for all)")
}
