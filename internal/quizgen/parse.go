package quizgen

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// questionText is the question field of a raw response. Models usually
// return plain text, but sometimes a nested object with the text in a
// "description" field. Both shapes resolve to one canonical string at
// the parse boundary; an object without a usable description falls back
// to its compact JSON form.
type questionText string

func (t *questionText) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = questionText(s)
		return nil
	}

	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("question is neither text nor an object")
	}

	if desc, ok := obj["description"].(string); ok && desc != "" {
		*t = questionText(desc)
		return nil
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil {
		return fmt.Errorf("compact question object: %w", err)
	}
	*t = questionText(buf.String())
	return nil
}

// rawMCQ is the multiple-choice response shape before validation.
type rawMCQ struct {
	Question      questionText `json:"question"`
	Options       []string     `json:"options"`
	CorrectAnswer string       `json:"correct_answer"`
}

// rawFillBlank is the fill-in-the-blank response shape before validation.
type rawFillBlank struct {
	Question questionText `json:"question"`
	Answer   string       `json:"answer"`
}

// parseMCQ converts raw response content into a Question.
func parseMCQ(content json.RawMessage) (*Question, error) {
	var raw rawMCQ
	if err := json.Unmarshal(content, &raw); err != nil {
		return nil, fmt.Errorf("parse mcq response: %w", err)
	}
	return &Question{
		Type:    TypeMCQ,
		Text:    string(raw.Question),
		Options: raw.Options,
		Answer:  raw.CorrectAnswer,
	}, nil
}

// parseFillBlank converts raw response content into a Question.
func parseFillBlank(content json.RawMessage) (*Question, error) {
	var raw rawFillBlank
	if err := json.Unmarshal(content, &raw); err != nil {
		return nil, fmt.Errorf("parse fill-blank response: %w", err)
	}
	return &Question{
		Type:   TypeFillBlank,
		Text:   string(raw.Question),
		Answer: raw.Answer,
	}, nil
}
