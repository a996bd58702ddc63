package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregate quiz performance",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		ctx := cmd.Context()
		stats, err := st.Attempts().Stats(ctx)
		if err != nil {
			return fmt.Errorf("query stats: %w", err)
		}

		if stats.Attempts == 0 {
			fmt.Println("No quizzes taken yet.")
			return nil
		}

		fmt.Println("Overall")
		fmt.Println(strings.Repeat("─", 48))
		fmt.Printf("Quizzes taken:   %d\n", stats.Attempts)
		fmt.Printf("Questions:       %d\n", stats.Questions)
		fmt.Printf("Correct:         %d\n", stats.Correct)
		fmt.Printf("Average score:   %.1f%%\n", stats.AvgScorePct)
		fmt.Printf("Best score:      %.1f%%\n", stats.BestScorePct)

		groups, err := st.Attempts().GroupBreakdown(ctx)
		if err != nil {
			return fmt.Errorf("query type/difficulty stats: %w", err)
		}

		if len(groups) > 0 {
			fmt.Println()
			fmt.Println("By Type and Difficulty")
			fmt.Println(strings.Repeat("─", 48))
			fmt.Printf("%-18s  %-8s  %8s  %8s\n", "Type", "Diff", "Correct", "Avg")
			for _, g := range groups {
				fmt.Printf("%-18s  %-8s  %4d/%-4d %7.1f%%\n",
					g.QuestionType, g.Difficulty, g.Correct, g.Questions, g.AvgScorePct)
			}
		}

		topics, err := st.Attempts().TopicBreakdown(ctx, 10)
		if err != nil {
			return fmt.Errorf("query topics: %w", err)
		}

		if len(topics) > 0 {
			fmt.Println()
			fmt.Println("By Topic")
			fmt.Println(strings.Repeat("─", 48))
			fmt.Printf("%-28s  %8s  %8s\n", "Topic", "Quizzes", "Avg")
			for _, ts := range topics {
				topic := ts.Topic
				if len(topic) > 28 {
					topic = topic[:28]
				}
				fmt.Printf("%-28s  %8d  %7.1f%%\n", topic, ts.Attempts, ts.AvgScorePct)
			}
		}

		return nil
	},
}
