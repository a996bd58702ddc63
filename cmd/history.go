package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizzer/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past quiz attempts",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		recs, err := st.Attempts().ListAttempts(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("list attempts: %w", err)
		}

		if len(recs) == 0 {
			fmt.Println("No quizzes taken yet.")
			return nil
		}

		fmt.Printf("%-17s  %-20s  %-17s  %-6s  %-5s  %s\n",
			"Date", "Topic", "Type", "Diff", "Score", "Pct")
		fmt.Println(strings.Repeat("─", 80))

		for _, rec := range recs {
			topic := rec.Topic
			if len(topic) > 20 {
				topic = topic[:20]
			}
			fmt.Printf("%-17s  %-20s  %-17s  %-6s  %2d/%-2d  %.1f%%\n",
				rec.CreatedAt.Local().Format("2006-01-02 15:04"),
				topic,
				rec.QuestionType,
				rec.Difficulty,
				rec.Correct, rec.Total,
				rec.ScorePct,
			)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of attempts to show")
}
