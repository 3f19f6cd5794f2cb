package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/edusprint/quizengine/internal/bank"
	"github.com/edusprint/quizengine/internal/strategy"
)

var validateCmd = &cobra.Command{
	Use:   "validate <bank.json>",
	Short: "Run authoring checks on a question bank file",
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
		if len(problems) == 0 {
			fmt.Printf("ok: %d topics, %d questions\n", len(b.Topics), len(b.Questions))
			return nil
		}

		for _, p := range problems {
			fmt.Println(p)
		}
		return fmt.Errorf("%d problem(s) found", len(problems))
	},
}
