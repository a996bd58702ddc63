package quizgen

import "github.com/abhisek/quizzer/internal/llm"

// questionTextSchema accepts either plain text or an object carrying
// the text in a "description" field. Models occasionally return the
// latter; normalization resolves both to one string.
var questionTextSchema = map[string]any{
	"anyOf": []any{
		map[string]any{"type": "string"},
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"description": map[string]any{"type": "string"},
			},
			"required":             []any{"description"},
			"additionalProperties": false,
		},
	},
	"description": "The question text shown to the user",
}

// MCQSchema defines the JSON schema for multiple-choice generation
// responses.
var MCQSchema = &llm.Schema{
	Name:        "mcq-question",
	Description: "A multiple-choice quiz question with 4 options",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": questionTextSchema,
			"options": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"minItems":    4,
				"maxItems":    4,
				"uniqueItems": true,
				"description": "Exactly 4 distinct answer options",
			},
			"correct_answer": map[string]any{
				"type":        "string",
				"description": "The correct option, repeated verbatim from options",
			},
		},
		"required":             []any{"question", "options", "correct_answer"},
		"additionalProperties": false,
	},
}

// FillBlankSchema defines the JSON schema for fill-in-the-blank
// generation responses.
var FillBlankSchema = &llm.Schema{
	Name:        "fill-blank-question",
	Description: "A fill-in-the-blank quiz question",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": questionTextSchema,
			"answer": map[string]any{
				"type":        "string",
				"description": "The text that fills the blank",
			},
		},
		"required":             []any{"question", "answer"},
		"additionalProperties": false,
	},
}
