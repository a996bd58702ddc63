package quizgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/quizzer/internal/llm"
	"github.com/abhisek/quizzer/internal/logging"
)

// LLMGenerator implements Generator using the LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

// GenerateMCQ produces a single multiple-choice question.
func (g *LLMGenerator) GenerateMCQ(ctx context.Context, input GenerateInput) (*Question, error) {
	ctx = llm.WithPurpose(ctx, "mcq-gen")
	q, err := g.retryAndParse(ctx, buildPrompt(TypeMCQ, input, g.config), MCQSchema, parseMCQ)
	if err != nil {
		return nil, err
	}
	return g.validate(q)
}

// GenerateFillBlank produces a single fill-in-the-blank question.
func (g *LLMGenerator) GenerateFillBlank(ctx context.Context, input GenerateInput) (*Question, error) {
	ctx = llm.WithPurpose(ctx, "fill-blank-gen")
	q, err := g.retryAndParse(ctx, buildPrompt(TypeFillBlank, input, g.config), FillBlankSchema, parseFillBlank)
	if err != nil {
		return nil, err
	}
	return g.validate(q)
}

// retryAndParse drives the attempt loop: invoke the provider and parse
// the response, retrying immediately on any failure up to the
// configured budget. The terminal failure wraps the last cause and the
// number of attempts actually made.
func (g *LLMGenerator) retryAndParse(ctx context.Context, prompt string, schema *llm.Schema, parse func(json.RawMessage) (*Question, error)) (*Question, error) {
	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: prompt},
		},
		Schema:      schema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	maxRetries := g.config.MaxRetries
	if maxRetries < 1 {
		maxRetries = 1
	}

	var lastErr error
	attempts := 0
	for attempts < maxRetries {
		attempts++

		q, err := g.attempt(ctx, req, parse)
		if err == nil {
			return q, nil
		}
		lastErr = err

		logging.L().Warn("question generation attempt failed",
			zap.String("schema", schema.Name),
			zap.Int("attempt", attempts),
			zap.Int("max_retries", maxRetries),
			zap.Error(err),
		)

		// A dead context won't recover on the next attempt.
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			break
		}
	}

	return nil, &GenerationError{Attempts: attempts, Err: lastErr}
}

func (g *LLMGenerator) attempt(ctx context.Context, req llm.Request, parse func(json.RawMessage) (*Question, error)) (*Question, error) {
	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("llm generation failed: %w", err)
	}
	return parse(resp.Content)
}

// validate runs the domain validator chain. Validation failures are
// hard failures: the question parsed, so another attempt would not
// change the outcome of this call.
func (g *LLMGenerator) validate(q *Question) (*Question, error) {
	for _, v := range g.config.Validators {
		if verr := v.Validate(q); verr != nil {
			return nil, verr
		}
	}
	return q, nil
}
