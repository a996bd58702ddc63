package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizzer/internal/llm"
	"github.com/abhisek/quizzer/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect the LLM request log",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		recs, err := st.LLMRequests().ListLLMRequests(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query requests: %w", err)
		}

		if len(recs) == 0 {
			fmt.Println("No LLM requests recorded.")
			return nil
		}

		fmt.Printf("%-5s  %-19s  %-14s  %-28s  %-6s  %-6s  %-7s  %s\n",
			"ID", "Timestamp", "Purpose", "Model", "In", "Out", "Ms", "OK")
		fmt.Println(strings.Repeat("─", 100))

		for _, rec := range recs {
			if purpose != "" && rec.Purpose != purpose {
				continue
			}
			ok := "✓"
			if rec.Status != "ok" {
				ok = "✗"
			}
			model := rec.Model
			if len(model) > 28 {
				model = model[:28]
			}
			fmt.Printf("%-5d  %-19s  %-14s  %-28s  %-6d  %-6d  %-7d  %s\n",
				rec.ID,
				rec.CreatedAt.Local().Format("2006-01-02 15:04:05"),
				rec.Purpose,
				model,
				rec.InputTokens,
				rec.OutputTokens,
				rec.LatencyMs,
				ok,
			)
		}
		return nil
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "View full request/response for one LLM request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var id int64
		if _, err := fmt.Sscanf(args[0], "%d", &id); err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}

		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		rec, err := st.LLMRequests().GetLLMRequest(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get request: %w", err)
		}
		if rec == nil {
			return fmt.Errorf("request %d not found", id)
		}

		sep := strings.Repeat("─", 60)

		fmt.Printf("ID:        %d\n", rec.ID)
		fmt.Printf("Time:      %s\n", rec.CreatedAt.Local().Format("2006-01-02 15:04:05"))
		fmt.Printf("Provider:  %s\n", rec.Provider)
		fmt.Printf("Model:     %s\n", rec.Model)
		fmt.Printf("Purpose:   %s\n", rec.Purpose)
		fmt.Printf("Tokens:    %d in / %d out\n", rec.InputTokens, rec.OutputTokens)
		fmt.Printf("Latency:   %dms\n", rec.LatencyMs)
		fmt.Printf("Status:    %s\n", rec.Status)
		if rec.ErrorMessage != "" {
			fmt.Printf("Error:     %s\n", rec.ErrorMessage)
		}

		fmt.Println()
		fmt.Println(sep)
		fmt.Println("REQUEST")
		fmt.Println(sep)
		if rec.RequestBody != "" {
			fmt.Println(rec.RequestBody)
		} else {
			fmt.Println("(not captured)")
		}

		fmt.Println(sep)
		fmt.Println("RESPONSE")
		fmt.Println(sep)
		if rec.ResponseBody != "" {
			fmt.Println(rec.ResponseBody)
		} else {
			fmt.Println("(not captured)")
		}

		return nil
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregated LLM token usage and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		usage, err := st.LLMRequests().Usage(cmd.Context())
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}

		if len(usage) == 0 {
			fmt.Println("No LLM usage recorded yet.")
			return nil
		}

		fmt.Println("Usage and Estimated Cost (USD)")
		fmt.Println(strings.Repeat("─", 90))
		fmt.Printf("%-10s  %-32s  %6s  %10s  %10s  %6s  %9s\n",
			"Provider", "Model", "Calls", "Input", "Output", "Errors", "Cost")
		fmt.Println(strings.Repeat("─", 90))

		var totalCost float64
		var unknownModels []string
		for _, mu := range usage {
			cost := llm.LookupCost(mu.Model)
			if cost == nil {
				unknownModels = append(unknownModels, mu.Model)
				fmt.Printf("%-10s  %-32s  %6d  %10d  %10d  %6d  %9s\n",
					mu.Provider, truncate(mu.Model, 32), mu.Requests,
					mu.InputTokens, mu.OutputTokens, mu.Errors, "?")
				continue
			}
			c := cost.Cost(mu.InputTokens, mu.OutputTokens)
			totalCost += c
			fmt.Printf("%-10s  %-32s  %6d  %10d  %10d  %6d  %9s\n",
				mu.Provider, truncate(mu.Model, 32), mu.Requests,
				mu.InputTokens, mu.OutputTokens, mu.Errors, formatCost(c))
		}

		fmt.Println(strings.Repeat("─", 90))
		label := "TOTAL"
		if len(unknownModels) > 0 {
			label = "TOTAL (partial)"
		}
		fmt.Printf("%-10s  %-32s  %6s  %10s  %10s  %6s  %9s\n",
			"", label, "", "", "", "", formatCost(totalCost))

		if len(unknownModels) > 0 {
			fmt.Printf("\nPricing unavailable for: %s\n", strings.Join(unknownModels, ", "))
		}

		return nil
	},
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of requests to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Filter by purpose (e.g. mcq, fill_blank)")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmViewCmd)
	llmCmd.AddCommand(llmStatsCmd)
}
