package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/prepquiz/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show quiz statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}

		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		ctx := context.Background()
		repo := s.EventRepo()

		topics, err := repo.SessionStats(ctx)
		if err != nil {
			return fmt.Errorf("query session stats: %w", err)
		}

		if len(topics) == 0 {
			fmt.Println("No completed sessions yet.")
			return nil
		}

		fmt.Println("Sessions by Topic")
		fmt.Println(strings.Repeat("─", 56))
		fmt.Printf("%-12s  %8s  %10s  %10s  %8s\n",
			"Topic", "Sessions", "Answered", "Correct", "Accuracy")
		fmt.Println(strings.Repeat("─", 56))

		for _, st := range topics {
			accuracy := 0.0
			if st.Answered > 0 {
				accuracy = float64(st.Correct) / float64(st.Answered) * 100
			}
			fmt.Printf("%-12s  %8d  %10d  %10d  %7.1f%%\n",
				st.Topic, st.Sessions, st.Answered, st.Correct, accuracy)
		}

		missed, err := repo.MissedConcepts(ctx, 5)
		if err != nil {
			return fmt.Errorf("query missed concepts: %w", err)
		}

		if len(missed) > 0 {
			fmt.Println()
			fmt.Println("Most Missed Concepts")
			fmt.Println(strings.Repeat("─", 40))
			for i, m := range missed {
				fmt.Printf("%d. %-28s  %d\n", i+1, m.Concept, m.Misses)
			}
		}

		return nil
	},
}
