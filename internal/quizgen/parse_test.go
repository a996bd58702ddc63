package quizgen

import (
	"encoding/json"
	"testing"
)

func TestParseMCQ(t *testing.T) {
	q, err := parseMCQ(validMCQJSON())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Type != TypeMCQ {
		t.Errorf("expected mcq type, got %q", q.Type)
	}
	if q.Text != "What is the capital of France?" {
		t.Errorf("unexpected text: %q", q.Text)
	}
	if len(q.Options) != 4 || q.Options[0] != "Paris" {
		t.Errorf("unexpected options: %v", q.Options)
	}
	if q.Answer != "Paris" {
		t.Errorf("unexpected answer: %q", q.Answer)
	}
}

func TestParseFillBlank(t *testing.T) {
	q, err := parseFillBlank(validFillBlankJSON())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Type != TypeFillBlank {
		t.Errorf("expected fill_blank type, got %q", q.Type)
	}
	if q.Text != "The capital of France is _____." {
		t.Errorf("unexpected text: %q", q.Text)
	}
	if q.Answer != "Paris" {
		t.Errorf("unexpected answer: %q", q.Answer)
	}
}

func TestParseMCQ_QuestionAsObject(t *testing.T) {
	raw := json.RawMessage(`{
		"question": {"description": "Which planet is closest to the sun?"},
		"options": ["Mercury", "Venus", "Earth", "Mars"],
		"correct_answer": "Mercury"
	}`)
	q, err := parseMCQ(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Text != "Which planet is closest to the sun?" {
		t.Errorf("expected description to become the text, got %q", q.Text)
	}
}

func TestParseFillBlank_QuestionAsObject(t *testing.T) {
	raw := json.RawMessage(`{
		"question": {"description": "Water boils at _____ degrees Celsius."},
		"answer": "100"
	}`)
	q, err := parseFillBlank(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Text != "Water boils at _____ degrees Celsius." {
		t.Errorf("expected description to become the text, got %q", q.Text)
	}
}

func TestParseMCQ_QuestionObjectWithoutDescription(t *testing.T) {
	raw := json.RawMessage(`{
		"question": {"text": "Which planet is closest to the sun?"},
		"options": ["Mercury", "Venus", "Earth", "Mars"],
		"correct_answer": "Mercury"
	}`)
	q, err := parseMCQ(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Text != `{"text":"Which planet is closest to the sun?"}` {
		t.Errorf("expected compact JSON fallback, got %q", q.Text)
	}
}

func TestParseMCQ_QuestionAsArray(t *testing.T) {
	raw := json.RawMessage(`{
		"question": ["not", "a", "question"],
		"options": ["Mercury", "Venus", "Earth", "Mars"],
		"correct_answer": "Mercury"
	}`)
	if _, err := parseMCQ(raw); err == nil {
		t.Fatal("expected error for array-valued question")
	}
}

func TestParseMCQ_InvalidJSON(t *testing.T) {
	if _, err := parseMCQ(json.RawMessage(`{"question": `)); err == nil {
		t.Fatal("expected error for truncated JSON")
	}
}
