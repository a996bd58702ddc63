package quizgen

import "fmt"

// Validator checks a structurally parsed question for domain
// correctness. Implementations should be stateless and safe for
// concurrent use. A validator that does not apply to the question's
// type returns nil.
type Validator interface {
	// Name returns a short identifier for this validator, used in
	// error messages, e.g. "mcq", "fill-blank".
	Name() string

	// Validate checks the question and returns nil if it passes.
	Validate(q *Question) *ValidationError
}

// ValidationError describes why a question failed domain validation.
// Unlike transport or parse failures, validation failures are not
// retried: a structurally valid response that fails these checks fails
// the whole generation call.
type ValidationError struct {
	Validator string // Name of the validator that failed
	Message   string // Human-readable description of the failure
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}
