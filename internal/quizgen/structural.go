package quizgen

import (
	"fmt"
	"strings"
)

// mcqOptionCount is the number of options every multiple-choice
// question must carry.
const mcqOptionCount = 4

// MCQValidator checks the multiple-choice invariants: exactly 4
// distinct options, with the correct answer among them.
type MCQValidator struct{}

func (v *MCQValidator) Name() string { return "mcq" }

func (v *MCQValidator) Validate(q *Question) *ValidationError {
	if q.Type != TypeMCQ {
		return nil
	}
	if q.Text == "" {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "question text is empty",
		}
	}
	if len(q.Options) != mcqOptionCount {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("expected %d options, got %d", mcqOptionCount, len(q.Options)),
		}
	}

	seen := make(map[string]bool, mcqOptionCount)
	for _, opt := range q.Options {
		if seen[opt] {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("duplicate option %q", opt),
			}
		}
		seen[opt] = true
	}

	if !seen[q.Answer] {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("correct answer %q is not one of the options", q.Answer),
		}
	}
	return nil
}

// FillBlankValidator checks that a fill-in-the-blank question carries
// the blank marker exactly once.
type FillBlankValidator struct{}

func (v *FillBlankValidator) Name() string { return "fill-blank" }

func (v *FillBlankValidator) Validate(q *Question) *ValidationError {
	if q.Type != TypeFillBlank {
		return nil
	}
	switch n := strings.Count(q.Text, BlankMarker); {
	case n == 0:
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("question text is missing the %q placeholder", BlankMarker),
		}
	case n > 1:
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("question text contains the %q placeholder %d times", BlankMarker, n),
		}
	}
	if strings.TrimSpace(q.Answer) == "" {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "answer is empty",
		}
	}
	return nil
}
