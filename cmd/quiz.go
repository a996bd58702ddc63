package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/quizzer/internal/llm"
	"github.com/abhisek/quizzer/internal/logging"
	"github.com/abhisek/quizzer/internal/quiz"
	"github.com/abhisek/quizzer/internal/quizgen"
	"github.com/abhisek/quizzer/internal/store"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Take a quiz in the plain terminal (no TUI)",
	Long: `Generate a quiz and answer it on stdin.

The same session flow as the interactive interface: generate, answer
each question, see verdicts and the score, optionally save a CSV.`,
	RunE: runQuiz,
}

func init() {
	quizCmd.Flags().String("topic", "", "Quiz topic (required)")
	quizCmd.Flags().String("type", "mcq", "Question type: mcq or fill-blank")
	quizCmd.Flags().String("difficulty", "medium", "Difficulty: easy, medium, or hard")
	quizCmd.Flags().Int("count", 5, "Number of questions (1-10)")
	quizCmd.Flags().Bool("save", false, "Save results to a CSV under ./results")
	quizCmd.Flags().String("prefix", quiz.DefaultCSVPrefix, "CSV filename prefix")
	_ = quizCmd.MarkFlagRequired("topic")
}

func runQuiz(cmd *cobra.Command, args []string) error {
	topic, _ := cmd.Flags().GetString("topic")
	typeVal, _ := cmd.Flags().GetString("type")
	diffVal, _ := cmd.Flags().GetString("difficulty")
	count, _ := cmd.Flags().GetInt("count")
	save, _ := cmd.Flags().GetBool("save")
	prefix, _ := cmd.Flags().GetString("prefix")

	qt, err := quizgen.ParseQuestionType(typeVal)
	if err != nil {
		return err
	}
	difficulty, err := quizgen.ParseDifficulty(diffVal)
	if err != nil {
		return err
	}
	if count < 1 || count > 10 {
		return fmt.Errorf("count must be between 1 and 10, got %d", count)
	}

	st, err := openStore(cmd)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	ctx := cmd.Context()
	provider, err := llm.NewProviderFromEnv(ctx, st.LLMRequests())
	if err != nil {
		return fmt.Errorf("LLM provider: %w", err)
	}

	gen := quizgen.New(provider, quizgen.ConfigFromEnv())
	mgr := quiz.NewManager()

	fmt.Printf("Generating %d %s question(s) about %s (%s)...\n\n",
		count, qt.Label(), topic, difficulty)

	if err := mgr.Generate(ctx, gen, topic, qt, difficulty, count); err != nil {
		return fmt.Errorf("generate quiz: %w", err)
	}
	logging.L().Debug("quiz generated",
		zap.String("session", mgr.SessionID()),
		zap.String("topic", topic),
		zap.Int("count", count))

	scanner := bufio.NewScanner(os.Stdin)
	questions := mgr.Questions()

	for i, q := range questions {
		fmt.Printf("── Question %d/%d ──\n", i+1, len(questions))
		fmt.Println(q.Text)
		if q.Type == quizgen.TypeMCQ {
			for j, opt := range q.Options {
				fmt.Printf("  %d) %s\n", j+1, opt)
			}
		}

		answer, err := readAnswer(scanner, q)
		if err != nil {
			return err
		}
		if err := mgr.SetAnswer(i, answer); err != nil {
			return err
		}
		fmt.Println()
	}

	if err := mgr.Evaluate(); err != nil {
		return fmt.Errorf("evaluate quiz: %w", err)
	}

	for _, r := range mgr.Results() {
		if r.Correct {
			fmt.Printf("\033[32m✓\033[0m Q%d. %s\n", r.Number, r.Question)
		} else {
			fmt.Printf("\033[31m✗\033[0m Q%d. %s\n", r.Number, r.Question)
			fmt.Printf("    you: %s — correct: %s\n", r.UserAnswer, r.CorrectAnswer)
		}
	}

	correct, total, pct := mgr.Score()
	fmt.Printf("\nScore: %d/%d (%.1f%%)\n", correct, total, pct)

	var csvPath string
	if save {
		csvPath, err = mgr.SaveCSV(prefix)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not save CSV: %v\n", err)
		} else {
			fmt.Printf("Results saved to %s\n", csvPath)
		}
	}

	rec := &store.AttemptRecord{
		SessionID:    mgr.SessionID(),
		Topic:        topic,
		QuestionType: qt.Label(),
		Difficulty:   string(difficulty),
		Total:        total,
		Correct:      correct,
		ScorePct:     pct,
		DurationMs:   mgr.Duration().Milliseconds(),
		CSVPath:      csvPath,
	}
	if err := st.Attempts().RecordAttempt(ctx, rec); err != nil {
		logging.L().Warn("record attempt", zap.Error(err))
	}

	return nil
}

// readAnswer prompts until a usable answer comes in. Multiple-choice
// accepts an option number or the option text verbatim; answers are
// constrained to the offered options. Fill-blank takes free text.
func readAnswer(scanner *bufio.Scanner, q *quizgen.Question) (string, error) {
	for {
		fmt.Print("Your answer: ")
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return "", err
			}
			return "", fmt.Errorf("input closed before the quiz finished")
		}
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		if q.Type != quizgen.TypeMCQ {
			return text, nil
		}

		// Option number.
		if len(text) == 1 && text[0] >= '1' && text[0] <= '0'+byte(len(q.Options)) {
			return q.Options[text[0]-'1'], nil
		}
		// Option text, matched case-insensitively but recorded verbatim.
		for _, opt := range q.Options {
			if strings.EqualFold(opt, text) {
				return opt, nil
			}
		}
		fmt.Printf("Pick one of the %d options (number or text).\n", len(q.Options))
	}
}
