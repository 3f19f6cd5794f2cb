package cmd

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var readinessCmd = &cobra.Command{
	Use:   "readiness <user-id>",
	Short: "Print a user's exam-readiness snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("user-id: %w", err)
		}

		var scope *uuid.UUID
		if s, _ := cmd.Flags().GetString("topic"); s != "" {
			id, err := uuid.Parse(s)
			if err != nil {
				return fmt.Errorf("topic: %w", err)
			}
			scope = &id
		}

		app, err := buildApp(cmd)
		if err != nil {
			return err
		}
		defer app.close()

		snap, err := app.engine.ComputeReadiness(cmd.Context(), userID, scope)
		if err != nil {
			return err
		}

		fmt.Printf("readiness:   %.1f / 100\n", snap.AvgReadiness)
		fmt.Printf("correctness: %.0f%%\n", snap.CorrectnessRate*100)
		fmt.Printf("topics:      %d\n", snap.TopicCount)
		if len(snap.WeakTopics) == 0 {
			fmt.Println("weak topics: none")
			return nil
		}
		fmt.Println("weak topics:")
		for _, w := range snap.WeakTopics {
			fmt.Printf("  %s  score %.1f  bloom %d\n", w.TopicID, w.MasteryScore, w.BloomLevel)
		}
		return nil
	},
}

func init() {
	readinessCmd.Flags().String("topic", "", "Restrict the snapshot to one topic subtree")
}
