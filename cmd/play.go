package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizup/internal/app"
	"github.com/abhisek/quizup/internal/store"
)

var playCmd = &cobra.Command{
	Use:   "play <quiz-id>",
	Short: "Take an assigned quiz in the terminal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		userID, _ := cmd.Flags().GetString("user")
		adaptive, _ := cmd.Flags().GetBool("adaptive")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		d, err := newDeps(cmd, cfg)
		if err != nil {
			return err
		}
		defer d.Close()

		player, err := d.svc.Me(ctx, userID)
		if err != nil {
			return fmt.Errorf("load player: %w", err)
		}
		if player.Role != store.RoleStudent {
			return fmt.Errorf("%s is a %s; only students can take quizzes", player.Name, player.Role)
		}

		// QuizFor enforces the assignment; the full copy drives the live
		// difficulty badge and is never shown before grading.
		if _, err := d.svc.QuizFor(ctx, userID, args[0]); err != nil {
			return err
		}
		if prev, err := d.store.Results().ResultFor(ctx, userID, args[0]); err != nil {
			return err
		} else if prev != nil {
			return errors.New("quiz already submitted; see `quizup quiz show` for the result")
		}
		q, err := d.store.Quizzes().GetQuiz(ctx, args[0])
		if err != nil {
			return err
		}

		return app.Run(ctx, app.Options{
			Service:  d.svc,
			Player:   player,
			Quiz:     q,
			Adaptive: adaptive,
		})
	},
}

func init() {
	playCmd.Flags().StringP("user", "u", "", "Student user ID")
	playCmd.Flags().Bool("adaptive", false, "Order questions by the live difficulty level")
	_ = playCmd.MarkFlagRequired("user")
}
