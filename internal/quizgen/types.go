package quizgen

import (
	"fmt"
	"strings"
)

// BlankMarker is the placeholder a fill-in-the-blank question must
// contain exactly once.
const BlankMarker = "_____"

// Question represents a generated quiz question ready for display.
type Question struct {
	// Type indicates how the question is answered.
	Type QuestionType

	// Text is the question prompt displayed to the user. For fill-blank
	// questions it contains the blank marker.
	Text string

	// Options is populated only for multiple-choice questions.
	// Contains exactly 4 distinct options, one of which matches Answer.
	Options []string

	// Answer is the correct answer. For multiple choice: the text of
	// the correct option, verbatim. For fill-blank: the expected text.
	Answer string
}

// QuestionType describes how the user provides their answer.
type QuestionType string

const (
	// TypeMCQ means the user picks from 4 options.
	TypeMCQ QuestionType = "mcq"

	// TypeFillBlank means the user types free text for the blank.
	TypeFillBlank QuestionType = "fill_blank"
)

// Label returns the display name used in results and the UI.
func (t QuestionType) Label() string {
	switch t {
	case TypeMCQ:
		return "MCQ"
	case TypeFillBlank:
		return "Fill in the Blank"
	default:
		return string(t)
	}
}

// ParseQuestionType resolves user-facing spellings of a question type.
func ParseQuestionType(s string) (QuestionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mcq", "multiple choice", "multiple-choice":
		return TypeMCQ, nil
	case "fill_blank", "fill-blank", "fill in the blank", "fill-in-the-blank":
		return TypeFillBlank, nil
	default:
		return "", fmt.Errorf("unknown question type: %q", s)
	}
}

// Difficulty is the requested difficulty of a question.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// ParseDifficulty resolves a difficulty name case-insensitively.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return DifficultyEasy, nil
	case "medium":
		return DifficultyMedium, nil
	case "hard":
		return DifficultyHard, nil
	default:
		return "", fmt.Errorf("unknown difficulty: %q", s)
	}
}

// GenerateInput holds the context needed to generate a question.
type GenerateInput struct {
	// Topic is the subject the question should cover.
	Topic string

	// Difficulty is the requested difficulty level.
	Difficulty Difficulty

	// Avoid contains the Text of questions already generated in this
	// quiz. Used for deduplication in the prompt.
	Avoid []string
}
