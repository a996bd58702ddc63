package quiz

import (
	"context"
	"errors"
	"fmt"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizzer/internal/quizgen"
	"github.com/abhisek/quizzer/internal/router"
	"github.com/abhisek/quizzer/internal/screen"
)

// mockGenerator serves canned questions in order.
type mockGenerator struct {
	questions []*quizgen.Question
	calls     int
	err       error
}

func (m *mockGenerator) next() (*quizgen.Question, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.calls >= len(m.questions) {
		return nil, fmt.Errorf("mock exhausted after %d questions", len(m.questions))
	}
	q := m.questions[m.calls]
	m.calls++
	return q, nil
}

func (m *mockGenerator) GenerateMCQ(_ context.Context, _ quizgen.GenerateInput) (*quizgen.Question, error) {
	return m.next()
}

func (m *mockGenerator) GenerateFillBlank(_ context.Context, _ quizgen.GenerateInput) (*quizgen.Question, error) {
	return m.next()
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func mcqQuestions() []*quizgen.Question {
	return []*quizgen.Question{
		{
			Type:    quizgen.TypeMCQ,
			Text:    "Capital of France?",
			Options: []string{"Paris", "Rome", "Berlin", "Madrid"},
			Answer:  "Paris",
		},
		{
			Type:    quizgen.TypeMCQ,
			Text:    "Capital of Italy?",
			Options: []string{"Madrid", "Rome", "Lisbon", "Athens"},
			Answer:  "Rome",
		},
	}
}

func fillBlankQuestions() []*quizgen.Question {
	return []*quizgen.Question{
		{Type: quizgen.TypeFillBlank, Text: "The capital city of _____ is Paris.", Answer: "France"},
		{Type: quizgen.TypeFillBlank, Text: "The capital city of _____ is Rome.", Answer: "Italy"},
	}
}

// startQuiz runs generation and delivers the ready message, leaving the
// screen on the first question.
func startQuiz(t *testing.T, gen *mockGenerator, qt quizgen.QuestionType, count int) *QuizScreen {
	t.Helper()

	s := New(gen, nil, Params{
		Topic:      "Geography",
		Type:       qt,
		Difficulty: quizgen.DifficultyMedium,
		Count:      count,
	})

	cmd := s.Init()
	if cmd == nil {
		t.Fatal("expected a generation command from Init")
	}
	msg := cmd()
	ready, ok := msg.(quizReadyMsg)
	if !ok {
		t.Fatalf("expected quizReadyMsg, got %T", msg)
	}
	if ready.Err != nil {
		t.Fatalf("generation failed: %v", ready.Err)
	}

	s.Update(ready)
	if s.phase != phaseAnswering {
		t.Fatalf("expected answering phase, got %d", s.phase)
	}
	return s
}

func TestQuizScreen_GenerateError(t *testing.T) {
	gen := &mockGenerator{err: errors.New("model unavailable")}
	s := New(gen, nil, Params{
		Topic:      "Geography",
		Type:       quizgen.TypeMCQ,
		Difficulty: quizgen.DifficultyMedium,
		Count:      1,
	})

	msg := s.Init()()
	s.Update(msg)
	if s.phase != phaseError {
		t.Fatalf("expected error phase, got %d", s.phase)
	}
	if view := s.View(80, 24); view == "" {
		t.Error("expected non-empty view for error state")
	}

	// Any key goes back to setup.
	_, cmd := s.Update(keyPress(' '))
	if cmd == nil {
		t.Fatal("expected a command after key in error state")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Errorf("expected PopScreenMsg, got %T", cmd())
	}
}

func TestQuizScreen_BrowsingRecordsNoAnswer(t *testing.T) {
	s := startQuiz(t, &mockGenerator{questions: mcqQuestions()}, quizgen.TypeMCQ, 2)

	// Move the cursor on Q1, then browse to Q2 and back without
	// submitting anything.
	var scr screen.Screen = s
	scr, _ = scr.Update(keyPress('2'))
	scr, _ = scr.Update(specialKey(tea.KeyRight))
	scr, _ = scr.Update(specialKey(tea.KeyLeft))
	ss := scr.(*QuizScreen)

	for i := 0; i < 2; i++ {
		if _, ok := ss.manager.Answer(i); ok {
			t.Errorf("browsing recorded an answer for question %d", i+1)
		}
	}
	if ss.current != 0 {
		t.Errorf("expected to be back on question 1, got %d", ss.current+1)
	}
}

func TestQuizScreen_AnswerRestoredAfterNavigation(t *testing.T) {
	s := startQuiz(t, &mockGenerator{questions: mcqQuestions()}, quizgen.TypeMCQ, 2)

	// Answer Q1 with the default selection (Paris); submit jumps to the
	// next unanswered question.
	var scr screen.Screen = s
	scr, _ = scr.Update(specialKey(tea.KeyEnter))
	ss := scr.(*QuizScreen)
	if ss.current != 1 {
		t.Fatalf("expected to advance to question 2, got %d", ss.current+1)
	}

	// Navigate back: the recorded answer is restored into the widget.
	scr, _ = ss.Update(specialKey(tea.KeyLeft))
	ss = scr.(*QuizScreen)
	if got := ss.mc.Value(); got != "Paris" {
		t.Errorf("restored selection = %q, want %q", got, "Paris")
	}

	answer, ok := ss.manager.Answer(0)
	if !ok || answer != "Paris" {
		t.Errorf("recorded answer = %q (recorded=%v), want Paris", answer, ok)
	}
	if _, ok := ss.manager.Answer(1); ok {
		t.Error("question 2 must not have an answer yet")
	}
}

func TestQuizScreen_NavigationOverwritesAnsweredSlot(t *testing.T) {
	s := startQuiz(t, &mockGenerator{questions: mcqQuestions()}, quizgen.TypeMCQ, 2)

	// Answer Q1 (Paris), come back, change the selection, browse away.
	var scr screen.Screen = s
	scr, _ = scr.Update(specialKey(tea.KeyEnter))
	scr, _ = scr.Update(specialKey(tea.KeyLeft))
	scr, _ = scr.Update(keyPress('2'))
	scr, _ = scr.Update(specialKey(tea.KeyRight))
	ss := scr.(*QuizScreen)

	// The single slot holds the new value; nothing was duplicated.
	answer, ok := ss.manager.Answer(0)
	if !ok || answer != "Rome" {
		t.Errorf("overwritten answer = %q (recorded=%v), want Rome", answer, ok)
	}
	if _, ok := ss.manager.Answer(1); ok {
		t.Error("question 2 must not have an answer yet")
	}
}

func TestQuizScreen_FillBlankDraftSurvivesNavigation(t *testing.T) {
	s := startQuiz(t, &mockGenerator{questions: fillBlankQuestions()}, quizgen.TypeFillBlank, 2)

	// Type a draft on Q1, browse to Q2 and back.
	s.input.SetValue("France")
	var scr screen.Screen = s
	scr, _ = scr.Update(specialKey(tea.KeyRight))
	scr, _ = scr.Update(specialKey(tea.KeyLeft))
	ss := scr.(*QuizScreen)

	if got := ss.input.Value(); got != "France" {
		t.Errorf("restored draft = %q, want %q", got, "France")
	}
	answer, ok := ss.manager.Answer(0)
	if !ok || answer != "France" {
		t.Errorf("stashed draft = %q (recorded=%v), want France", answer, ok)
	}
}

func TestQuizScreen_FillBlankEmptySubmitIgnored(t *testing.T) {
	s := startQuiz(t, &mockGenerator{questions: fillBlankQuestions()}, quizgen.TypeFillBlank, 2)

	var scr screen.Screen = s
	scr, _ = scr.Update(specialKey(tea.KeyEnter))
	ss := scr.(*QuizScreen)

	if _, ok := ss.manager.Answer(0); ok {
		t.Error("empty submit must not record an answer")
	}
	if ss.current != 0 {
		t.Errorf("expected to stay on question 1, got %d", ss.current+1)
	}
}

func TestQuizScreen_AllAnsweredEvaluatesAndReplaces(t *testing.T) {
	s := startQuiz(t, &mockGenerator{questions: mcqQuestions()}, quizgen.TypeMCQ, 2)

	// Answer Q1, then select Rome on Q2 and submit.
	var scr screen.Screen = s
	scr, _ = scr.Update(specialKey(tea.KeyEnter))
	scr, _ = scr.Update(keyPress('2'))
	scr, cmd := scr.Update(specialKey(tea.KeyEnter))
	ss := scr.(*QuizScreen)

	if cmd == nil {
		t.Fatal("expected a transition command after the last answer")
	}
	if _, ok := cmd().(router.ReplaceScreenMsg); !ok {
		t.Errorf("expected ReplaceScreenMsg, got %T", cmd())
	}

	correct, total, _ := ss.manager.Score()
	if correct != 2 || total != 2 {
		t.Errorf("score = %d/%d, want 2/2", correct, total)
	}
}

func TestQuizScreen_StatusShowsPosition(t *testing.T) {
	s := startQuiz(t, &mockGenerator{questions: mcqQuestions()}, quizgen.TypeMCQ, 2)

	if got := s.Status(); got != "Geography · Q1/2" {
		t.Errorf("Status = %q", got)
	}

	var scr screen.Screen = s
	scr, _ = scr.Update(specialKey(tea.KeyRight))
	ss := scr.(*QuizScreen)
	if got := ss.Status(); got != "Geography · Q2/2" {
		t.Errorf("Status after navigation = %q", got)
	}
}
