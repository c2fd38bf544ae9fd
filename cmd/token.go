package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizup/internal/auth"
)

var tokenCmd = &cobra.Command{
	Use:   "token <user-id>",
	Short: "Issue an API bearer token for a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if err := cfg.RequireSecret(); err != nil {
			return err
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		u, err := st.Users().GetUser(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		token, err := auth.NewIssuer(cfg.JWTSecret, cfg.TokenTTL).Issue(u.ID, u.Role)
		if err != nil {
			return err
		}
		fmt.Println(token)
		return nil
	},
}
