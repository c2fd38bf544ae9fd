package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizup/internal/quiz"
	"github.com/abhisek/quizup/internal/store"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage users and teacher/student links",
}

var userAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Register a user",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		email, _ := cmd.Flags().GetString("email")
		role, _ := cmd.Flags().GetString("role")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		svc := quiz.NewService(quiz.Deps{Users: st.Users(), Quizzes: st.Quizzes(), Results: st.Results()})
		u, err := svc.RegisterUser(cmd.Context(), name, email, store.Role(strings.ToUpper(role)))
		if err != nil {
			return err
		}
		fmt.Printf("Created %s %s <%s>\nID: %s\n", u.Role, u.Name, u.Email, u.ID)
		return nil
	},
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List users",
	RunE: func(cmd *cobra.Command, args []string) error {
		role, _ := cmd.Flags().GetString("role")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		users, err := st.Users().ListUsers(cmd.Context(), store.Role(strings.ToUpper(role)))
		if err != nil {
			return err
		}
		if len(users) == 0 {
			fmt.Println("No users found.")
			return nil
		}

		fmt.Printf("%-36s  %-8s  %-20s  %s\n", "ID", "Role", "Name", "Email")
		fmt.Println(strings.Repeat("─", 90))
		for _, u := range users {
			fmt.Printf("%-36s  %-8s  %-20s  %s\n", u.ID, u.Role, truncate(u.Name, 20), u.Email)
		}
		return nil
	},
}

var userRoleCmd = &cobra.Command{
	Use:   "role <user-id> <STUDENT|TEACHER|ADMIN>",
	Short: "Change a user's role",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		role := store.Role(strings.ToUpper(args[1]))
		if !role.Valid() {
			return fmt.Errorf("unknown role %q", args[1])
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Users().UpdateRole(cmd.Context(), args[0], role); err != nil {
			return err
		}
		fmt.Printf("%s is now %s\n", args[0], role)
		return nil
	},
}

var userLinkCmd = &cobra.Command{
	Use:   "link <teacher-id> <student-id>",
	Short: "Link a student to a teacher",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		svc := quiz.NewService(quiz.Deps{Users: st.Users(), Quizzes: st.Quizzes(), Results: st.Results()})
		if err := svc.LinkStudent(cmd.Context(), args[0], args[1]); err != nil {
			return err
		}
		fmt.Println("Linked.")
		return nil
	},
}

func init() {
	userAddCmd.Flags().String("name", "", "Display name")
	userAddCmd.Flags().String("email", "", "Email address")
	userAddCmd.Flags().String("role", "student", "student, teacher or admin")
	_ = userAddCmd.MarkFlagRequired("name")
	_ = userAddCmd.MarkFlagRequired("email")

	userListCmd.Flags().String("role", "", "Only list users with this role")

	userCmd.AddCommand(userAddCmd)
	userCmd.AddCommand(userListCmd)
	userCmd.AddCommand(userRoleCmd)
	userCmd.AddCommand(userLinkCmd)
}
