package quizgen

import "fmt"

// GenerationError is returned when every attempt of a generation call
// failed. It carries the attempt count and the last underlying cause.
type GenerationError struct {
	Attempts int
	Err      error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("question generation failed after %d attempts: %v", e.Attempts, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }
