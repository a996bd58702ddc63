package quiz

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	quizsession "github.com/abhisek/quizzer/internal/quiz"
	"github.com/abhisek/quizzer/internal/quizgen"
	"github.com/abhisek/quizzer/internal/router"
	"github.com/abhisek/quizzer/internal/screen"
	"github.com/abhisek/quizzer/internal/screens/results"
	"github.com/abhisek/quizzer/internal/store"
	"github.com/abhisek/quizzer/internal/ui/components"
	"github.com/abhisek/quizzer/internal/ui/layout"
)

// Params carries the quiz configuration chosen on the setup screen.
type Params struct {
	Topic      string
	Type       quizgen.QuestionType
	Difficulty quizgen.Difficulty
	Count      int
}

// phase is the screen's display state.
type phase int

const (
	phaseGenerating phase = iota
	phaseAnswering
	phaseError
)

// QuizScreen drives one quiz: batch generation, then one question at a
// time with answers keyed per question index. Moving between questions
// never loses a recorded answer.
type QuizScreen struct {
	generator quizgen.Generator
	attempts  store.AttemptRepo
	params    Params

	manager *quizsession.Manager
	phase   phase
	current int
	errMsg  string

	mc    components.MultiChoice
	input components.TextInput
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.StatusProvider = (*QuizScreen)(nil)

// New creates a QuizScreen for the given parameters.
func New(generator quizgen.Generator, attempts store.AttemptRepo, params Params) *QuizScreen {
	return &QuizScreen{
		generator: generator,
		attempts:  attempts,
		params:    params,
		manager:   quizsession.NewManager(),
	}
}

func (s *QuizScreen) Init() tea.Cmd {
	return s.generateCmd()
}

func (s *QuizScreen) Title() string {
	return "Quiz"
}

func (s *QuizScreen) Status() string {
	if s.phase != phaseAnswering {
		return s.params.Topic
	}
	return fmt.Sprintf("%s · Q%d/%d", s.params.Topic, s.current+1, len(s.manager.Questions()))
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case phaseAnswering:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Answer"},
			{Key: "←→", Description: "Question"},
			{Key: "Esc", Description: "Abandon"},
		}
	default:
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
		}
	}
}

// generateCmd runs the blocking batch generation in a command.
func (s *QuizScreen) generateCmd() tea.Cmd {
	mgr := s.manager
	gen := s.generator
	p := s.params
	return func() tea.Msg {
		err := mgr.Generate(context.Background(), gen, p.Topic, p.Type, p.Difficulty, p.Count)
		return quizReadyMsg{Err: err}
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case quizReadyMsg:
		if msg.Err != nil {
			s.phase = phaseError
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.phase = phaseAnswering
		s.current = 0
		return s, s.loadQuestion()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.phase == phaseAnswering && s.currentQuestion() != nil && s.currentQuestion().Type == quizgen.TypeFillBlank {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}

	return s, nil
}

func (s *QuizScreen) currentQuestion() *quizgen.Question {
	qs := s.manager.Questions()
	if s.current < 0 || s.current >= len(qs) {
		return nil
	}
	return qs[s.current]
}

// loadQuestion initializes the answer widget for the current question,
// restoring any previously recorded answer for that slot.
func (s *QuizScreen) loadQuestion() tea.Cmd {
	q := s.currentQuestion()
	if q == nil {
		return nil
	}

	prev, answered := s.manager.Answer(s.current)

	switch q.Type {
	case quizgen.TypeMCQ:
		s.mc = components.NewMultiChoice(q.Text, q.Options)
		if answered {
			s.mc.Select(prev)
		}
		return nil
	default:
		s.input = components.NewTextInput("Type your answer...", 80)
		if answered {
			s.input.SetValue(prev)
		}
		return s.input.Init()
	}
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	switch s.phase {
	case phaseGenerating:
		return s, nil

	case phaseError:
		// Any key goes back to setup.
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	q := s.currentQuestion()
	if q == nil {
		return s, nil
	}

	switch key {
	case "enter":
		return s.submit()

	case "left":
		if s.current > 0 {
			s.stash()
			s.current--
			return s, s.loadQuestion()
		}
		return s, nil

	case "right":
		if s.current < len(s.manager.Questions())-1 {
			s.stash()
			s.current++
			return s, s.loadQuestion()
		}
		return s, nil
	}

	// Forward remaining keys to the active widget.
	if q.Type == quizgen.TypeMCQ {
		var cmd tea.Cmd
		s.mc, cmd = s.mc.Update(msg)
		return s, cmd
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// stash records the in-progress widget value for the current slot so
// navigating away and back restores it. Fill-blank drafts are only
// kept when non-empty; re-stashing the same value is a no-op.
func (s *QuizScreen) stash() {
	q := s.currentQuestion()
	if q == nil {
		return
	}
	switch q.Type {
	case quizgen.TypeMCQ:
		if _, answered := s.manager.Answer(s.current); answered {
			_ = s.manager.SetAnswer(s.current, s.mc.Value())
		}
	default:
		if v := strings.TrimSpace(s.input.Value()); v != "" {
			_ = s.manager.SetAnswer(s.current, v)
		}
	}
}

// submit records the current answer and advances. When every question
// is answered, the quiz is evaluated and the screen is replaced with
// the results screen.
func (s *QuizScreen) submit() (screen.Screen, tea.Cmd) {
	q := s.currentQuestion()
	if q == nil {
		return s, nil
	}

	var answer string
	switch q.Type {
	case quizgen.TypeMCQ:
		answer = s.mc.Value()
	default:
		answer = strings.TrimSpace(s.input.Value())
		if answer == "" {
			return s, nil
		}
	}

	if err := s.manager.SetAnswer(s.current, answer); err != nil {
		s.phase = phaseError
		s.errMsg = err.Error()
		return s, nil
	}

	// Move to the next unanswered question, wrapping around.
	if next, ok := s.nextUnanswered(); ok {
		s.current = next
		return s, s.loadQuestion()
	}

	// All answered: evaluate and hand over to the results screen.
	if err := s.manager.Evaluate(); err != nil {
		s.phase = phaseError
		s.errMsg = err.Error()
		return s, nil
	}

	mgr := s.manager
	attempts := s.attempts
	p := s.params
	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{
			Screen: results.New(mgr, attempts, p.Topic, p.Type, p.Difficulty),
		}
	}
}

// nextUnanswered finds the next question without an answer, scanning
// forward from the current one and wrapping.
func (s *QuizScreen) nextUnanswered() (int, bool) {
	n := len(s.manager.Questions())
	for i := 1; i <= n; i++ {
		idx := (s.current + i) % n
		if _, ok := s.manager.Answer(idx); !ok {
			return idx, true
		}
	}
	return 0, false
}
