package cmd

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/edusprint/quizengine/internal/question"
)

var dueCmd = &cobra.Command{
	Use:   "due <user-id>",
	Short: "List the questions due for review",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("user-id: %w", err)
		}
		limit, _ := cmd.Flags().GetInt("limit")

		app, err := buildApp(cmd)
		if err != nil {
			return err
		}
		defer app.close()

		due, err := app.engine.DueQuestions(cmd.Context(), userID, time.Now().UTC(), limit)
		if err != nil {
			return err
		}
		if len(due) == 0 {
			fmt.Println("nothing due")
			return nil
		}
		for _, q := range due {
			fmt.Printf("%s  [%s, bloom %d]  %s\n", q.ID, q.Type, q.BloomLevel, q.Prompt.In(question.LangEN))
		}
		return nil
	},
}

func init() {
	dueCmd.Flags().Int("limit", 20, "Maximum questions to list (0 for all)")
}
