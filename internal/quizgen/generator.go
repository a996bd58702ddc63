package quizgen

import "context"

// Generator produces quiz questions using an LLM provider.
// Each call either returns a valid, schema-conformant question or
// fails: with a *GenerationError when the attempt budget is exhausted,
// or a *ValidationError when a structurally valid response violates the
// question type's domain invariants.
type Generator interface {
	// GenerateMCQ produces a single multiple-choice question.
	GenerateMCQ(ctx context.Context, input GenerateInput) (*Question, error)

	// GenerateFillBlank produces a single fill-in-the-blank question.
	GenerateFillBlank(ctx context.Context, input GenerateInput) (*Question, error)
}
