package quizgen

import (
	"os"
	"strconv"
)

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// Validators is the ordered list of domain validators run on every
	// structurally parsed question. They execute in order; the first
	// failure stops the pipeline.
	Validators []Validator

	// MaxRetries is the attempt budget for one generation call.
	// Invoke and parse failures are retried immediately up to this
	// many total attempts.
	MaxRetries int

	// MaxTokens is the token budget for the LLM response.
	MaxTokens int

	// Temperature controls LLM output randomness.
	Temperature float64

	// MaxAvoid is the maximum number of prior questions to include in
	// the prompt for deduplication.
	MaxAvoid int
}

// DefaultConfig returns a Config with the standard validator chain and
// recommended defaults.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&MCQValidator{},
			&FillBlankValidator{},
		},
		MaxRetries:  3,
		MaxTokens:   512,
		Temperature: 0.9,
		MaxAvoid:    10,
	}
}

// ConfigFromEnv returns DefaultConfig with QUIZZER_* overrides applied.
// Unparseable values are ignored.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("QUIZZER_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxRetries = n
		}
	}
	if v := os.Getenv("QUIZZER_MAX_TOKENS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxTokens = n
		}
	}
	if v := os.Getenv("QUIZZER_TEMPERATURE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 {
			cfg.Temperature = f
		}
	}

	return cfg
}
