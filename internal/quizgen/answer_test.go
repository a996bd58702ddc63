package quizgen

import "testing"

func TestCheckAnswer_MCQ(t *testing.T) {
	q := &Question{
		Type:    TypeMCQ,
		Text:    "What is the capital of France?",
		Options: []string{"Paris", "London", "Berlin", "Madrid"},
		Answer:  "Paris",
	}

	tests := []struct {
		input string
		want  bool
	}{
		{"Paris", true},
		{"paris", false},
		{" Paris", false},
		{"Paris ", false},
		{"London", false},
		{"", false},
	}

	for _, tc := range tests {
		got := CheckAnswer(tc.input, q)
		if got != tc.want {
			t.Errorf("CheckAnswer(%q, mcq/Paris) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestCheckAnswer_FillBlank(t *testing.T) {
	q := &Question{
		Type:   TypeFillBlank,
		Text:   "The capital of France is _____.",
		Answer: "Paris",
	}

	tests := []struct {
		input string
		want  bool
	}{
		{"Paris", true},
		{" paris ", true},
		{"PARIS", true},
		{"\tparis\n", true},
		{"Pariss", false},
		{"Par is", false},
		{"", false},
	}

	for _, tc := range tests {
		got := CheckAnswer(tc.input, q)
		if got != tc.want {
			t.Errorf("CheckAnswer(%q, fill_blank/Paris) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestCheckAnswer_FillBlank_StoredAnswerTrimmed(t *testing.T) {
	q := &Question{
		Type:   TypeFillBlank,
		Answer: " Paris ",
	}
	if !CheckAnswer("paris", q) {
		t.Error("expected match: both sides are trimmed before comparing")
	}
}

func TestCheckAnswer_UnknownType(t *testing.T) {
	q := &Question{
		Type:   QuestionType("essay"),
		Answer: "Paris",
	}
	if CheckAnswer("Paris", q) {
		t.Error("expected false for unknown question type")
	}
}
