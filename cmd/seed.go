package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/edusprint/quizengine/internal/bank"
	"github.com/edusprint/quizengine/internal/strategy"
)

var seedCmd = &cobra.Command{
	Use:   "seed <bank.json>",
	Short: "Validate a question bank and load it into the store",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := bank.Load(args[0])
		if err != nil {
			return err
		}
		problems, err := b.Validate(strategy.NewDefaultRegistry())
		if err != nil {
			return fmt.Errorf("topic tree: %w", err)
		}
		if len(problems) > 0 {
			for _, p := range problems {
				fmt.Println(p)
			}
			return fmt.Errorf("refusing to seed: %d problem(s) found", len(problems))
		}

		app, err := buildApp(cmd)
		if err != nil {
			return err
		}
		defer app.close()

		ctx := cmd.Context()
		err = app.store.Transaction(ctx, func(tx *gorm.DB) error {
			if err := app.store.Topics.Upsert(ctx, tx, b.Topics); err != nil {
				return err
			}
			return app.store.Questions.Upsert(ctx, tx, b.Questions)
		})
		if err != nil {
			return err
		}

		app.log.Info("bank seeded",
			"topics", len(b.Topics), "questions", len(b.Questions))
		fmt.Printf("seeded %d topics, %d questions\n", len(b.Topics), len(b.Questions))
		return nil
	},
}
