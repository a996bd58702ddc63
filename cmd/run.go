package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizzer/internal/app"
	"github.com/abhisek/quizzer/internal/llm"
	"github.com/abhisek/quizzer/internal/quizgen"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	st, err := openStore(cmd)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	opts := app.Options{
		Attempts: st.Attempts(),
	}

	provider, err := llm.NewProviderFromEnv(ctx, st.LLMRequests())
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Quiz generation will be unavailable.")
	} else {
		opts.Generator = quizgen.New(provider, quizgen.ConfigFromEnv())
	}

	return app.Run(opts)
}
