package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizup/internal/quiz"
	"github.com/abhisek/quizup/internal/quizgen"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Author, assign and inspect quizzes",
}

var quizCreateCmd = &cobra.Command{
	Use:   "create <file.json>",
	Short: "Create a quiz from a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		var in quiz.CreateQuizInput
		if err := json.Unmarshal(raw, &in); err != nil {
			return fmt.Errorf("parse %s: %w", args[0], err)
		}
		return withService(cmd, func(d *deps) error {
			created, err := d.svc.CreateQuiz(cmd.Context(), flagString(cmd, "teacher"), in)
			if err != nil {
				return err
			}
			printCreated(created)
			return nil
		})
	},
}

var quizCreateSampleCmd = &cobra.Command{
	Use:   "create-sample",
	Short: "Create a quiz from the built-in question bank",
	RunE: func(cmd *cobra.Command, args []string) error {
		subject := flagString(cmd, "subject")
		n, _ := cmd.Flags().GetInt("questions")

		in := quiz.CreateQuizInput{
			Title:    fmt.Sprintf("Sample %s Quiz", subject),
			Subject:  subject,
			Level:    "Beginner",
			Duration: 10,
		}
		for _, q := range quizgen.FallbackQuestions(subject, n) {
			in.Questions = append(in.Questions, quiz.QuestionInput{
				Content:       q.Content,
				Options:       q.Options,
				CorrectAnswer: q.CorrectAnswer,
				Explanation:   q.Explanation,
			})
		}
		return withService(cmd, func(d *deps) error {
			created, err := d.svc.CreateQuiz(cmd.Context(), flagString(cmd, "teacher"), in)
			if err != nil {
				return err
			}
			printCreated(created)
			return nil
		})
	},
}

var quizGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a quiz with the configured LLM provider",
	RunE: func(cmd *cobra.Command, args []string) error {
		n, _ := cmd.Flags().GetInt("questions")
		duration, _ := cmd.Flags().GetInt("duration")
		in := quiz.GenerateQuizInput{
			Title:        flagString(cmd, "title"),
			Subject:      flagString(cmd, "subject"),
			Topic:        flagString(cmd, "topic"),
			Level:        flagString(cmd, "level"),
			Duration:     duration,
			NumQuestions: n,
		}
		return withService(cmd, func(d *deps) error {
			created, err := d.svc.GenerateQuiz(cmd.Context(), flagString(cmd, "teacher"), in)
			if err != nil {
				return err
			}
			printCreated(created)
			return nil
		})
	},
}

var quizListCmd = &cobra.Command{
	Use:   "list",
	Short: "List a teacher's quizzes or a student's assignments",
	RunE: func(cmd *cobra.Command, args []string) error {
		teacher, student := flagString(cmd, "teacher"), flagString(cmd, "student")
		if (teacher == "") == (student == "") {
			return fmt.Errorf("pass exactly one of --teacher or --student")
		}
		return withService(cmd, func(d *deps) error {
			if teacher != "" {
				dash, err := d.svc.TeacherDashboard(cmd.Context(), teacher)
				if err != nil {
					return err
				}
				fmt.Printf("%-36s  %-28s  %4s  %9s  %6s\n", "ID", "Title", "Qs", "Completed", "Avg")
				fmt.Println(strings.Repeat("─", 92))
				for _, q := range dash.Quizzes {
					fmt.Printf("%-36s  %-28s  %4d  %4d/%-4d  %6.1f\n", q.ID, truncate(q.Title, 28),
						q.QuestionCount, q.Completed, len(q.AssignedTo), q.AverageScore)
				}
				return nil
			}

			assigned, err := d.svc.AssignedQuizzes(cmd.Context(), student)
			if err != nil {
				return err
			}
			fmt.Printf("%-36s  %-28s  %-10s  %s\n", "ID", "Title", "Status", "Score")
			fmt.Println(strings.Repeat("─", 86))
			for _, q := range assigned {
				score := "-"
				if q.Score != nil {
					score = fmt.Sprintf("%d%%", *q.Score)
				}
				fmt.Printf("%-36s  %-28s  %-10s  %s\n", q.ID, truncate(q.Title, 28), q.Status, score)
			}
			return nil
		})
	},
}

var quizShowCmd = &cobra.Command{
	Use:   "show <quiz-id>",
	Short: "Print a quiz as the given user sees it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(cmd, func(d *deps) error {
			q, err := d.svc.QuizFor(cmd.Context(), flagString(cmd, "as"), args[0])
			if err != nil {
				return err
			}
			return printJSON(q)
		})
	},
}

var quizAssignCmd = &cobra.Command{
	Use:   "assign <quiz-id> <student-id>...",
	Short: "Assign a quiz to students",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(cmd, func(d *deps) error {
			if err := d.svc.AssignQuiz(cmd.Context(), flagString(cmd, "teacher"), args[0], args[1:]); err != nil {
				return err
			}
			fmt.Printf("Assigned to %d student(s).\n", len(args)-1)
			return nil
		})
	},
}

var quizResultsCmd = &cobra.Command{
	Use:   "results <quiz-id>",
	Short: "Show submissions for a quiz",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(cmd, func(d *deps) error {
			report, err := d.svc.QuizResults(cmd.Context(), flagString(cmd, "teacher"), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("%s  (%d assigned, %d submitted, average %.1f)\n\n",
				report.Quiz.Title, len(report.Assignees), len(report.Results), report.AverageScore)
			for _, r := range report.Results {
				fmt.Printf("  %-24s  %3d%%  %d/%d  %s\n", truncate(r.StudentName, 24),
					r.Score, r.Correct, r.Total, r.CreatedAt.Local().Format("2006-01-02 15:04"))
			}
			return nil
		})
	},
}

// withService runs fn with fully wired dependencies.
func withService(cmd *cobra.Command, fn func(*deps) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	d, err := newDeps(cmd, cfg)
	if err != nil {
		return err
	}
	defer d.Close()
	return fn(d)
}

func flagString(cmd *cobra.Command, name string) string {
	v, _ := cmd.Flags().GetString(name)
	return v
}

func printCreated(c *quiz.Created) {
	source := "question bank"
	if c.UsedAI {
		source = "AI"
	}
	fmt.Printf("Created %q with %d questions (%s)\nID: %s\n",
		c.Quiz.Title, len(c.Quiz.Questions), source, c.Quiz.ID)
	if len(c.AssignedTo) > 0 {
		fmt.Printf("Assigned to %d linked student(s).\n", len(c.AssignedTo))
	}
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	for _, c := range []*cobra.Command{quizCreateCmd, quizCreateSampleCmd, quizGenerateCmd, quizAssignCmd, quizResultsCmd} {
		c.Flags().String("teacher", "", "Teacher user ID")
		_ = c.MarkFlagRequired("teacher")
	}

	quizCreateSampleCmd.Flags().String("subject", "Science", "Subject of the question bank")
	quizCreateSampleCmd.Flags().IntP("questions", "n", 5, "Number of questions")

	quizGenerateCmd.Flags().String("title", "", "Quiz title (derived from subject and level when empty)")
	quizGenerateCmd.Flags().String("subject", "", "Subject")
	quizGenerateCmd.Flags().String("topic", "", "Topic within the subject")
	quizGenerateCmd.Flags().String("level", "Beginner", "Level label")
	quizGenerateCmd.Flags().Int("duration", 15, "Time limit in minutes")
	quizGenerateCmd.Flags().IntP("questions", "n", 10, "Number of questions")
	_ = quizGenerateCmd.MarkFlagRequired("subject")

	quizListCmd.Flags().String("teacher", "", "List quizzes authored by this teacher")
	quizListCmd.Flags().String("student", "", "List quizzes assigned to this student")

	quizShowCmd.Flags().String("as", "", "User ID to view the quiz as")
	_ = quizShowCmd.MarkFlagRequired("as")

	quizCmd.AddCommand(quizCreateCmd)
	quizCmd.AddCommand(quizCreateSampleCmd)
	quizCmd.AddCommand(quizGenerateCmd)
	quizCmd.AddCommand(quizListCmd)
	quizCmd.AddCommand(quizShowCmd)
	quizCmd.AddCommand(quizAssignCmd)
	quizCmd.AddCommand(quizResultsCmd)
}
