package quiz

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/quizzer/internal/quizgen"
)

// Stage represents the lifecycle position of a quiz session.
type Stage int

const (
	StageEmpty     Stage = iota // No questions generated yet
	StageGenerated              // Questions ready, awaiting answers
	StageAnswered               // Every question has an answer
	StageEvaluated              // Results computed
	StageSaved                  // Results exported to CSV
)

func (s Stage) String() string {
	switch s {
	case StageEmpty:
		return "empty"
	case StageGenerated:
		return "generated"
	case StageAnswered:
		return "answered"
	case StageEvaluated:
		return "evaluated"
	case StageSaved:
		return "saved"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// Manager owns one quiz session: a batch of generated questions, the
// recorded answers, and the evaluated results. The stages advance
// linearly; Generate starts the session over from any stage.
type Manager struct {
	stage      Stage
	sessionID  string
	topic      string
	qtype      quizgen.QuestionType
	difficulty quizgen.Difficulty

	questions []*quizgen.Question
	answers   []string
	answered  []bool
	results   []Result

	startedAt   time.Time
	evaluatedAt time.Time

	// ResultsDir is where SaveCSV writes exports.
	ResultsDir string
}

// NewManager creates an empty quiz session.
func NewManager() *Manager {
	return &Manager{ResultsDir: "results"}
}

// Stage returns the current lifecycle stage.
func (m *Manager) Stage() Stage { return m.stage }

// SessionID identifies the current quiz session. Assigned on Generate,
// empty before the first generation.
func (m *Manager) SessionID() string { return m.sessionID }

// Topic returns the topic of the current session.
func (m *Manager) Topic() string { return m.topic }

// QuestionType returns the question type of the current session.
func (m *Manager) QuestionType() quizgen.QuestionType { return m.qtype }

// Difficulty returns the difficulty of the current session.
func (m *Manager) Difficulty() quizgen.Difficulty { return m.difficulty }

// Questions returns the generated questions in order.
func (m *Manager) Questions() []*quizgen.Question { return m.questions }

// Duration returns the time between generation and evaluation, or zero
// if the session has not been evaluated.
func (m *Manager) Duration() time.Duration {
	if m.evaluatedAt.IsZero() {
		return 0
	}
	return m.evaluatedAt.Sub(m.startedAt)
}

func (m *Manager) reset() {
	m.stage = StageEmpty
	m.sessionID = ""
	m.topic = ""
	m.qtype = ""
	m.difficulty = ""
	m.questions = nil
	m.answers = nil
	m.answered = nil
	m.results = nil
	m.startedAt = time.Time{}
	m.evaluatedAt = time.Time{}
}

// Generate discards any prior session state and generates count
// questions of the requested type in order. An invalid count is
// rejected before the prior session is touched. Each question's prompt
// carries the text of the questions generated before it, so the model
// avoids repeats within the batch.
//
// The batch aborts on the first failed question: the error is
// returned, the questions generated so far remain inspectable, and the
// stage stays at StageEmpty. Callers gate on the error, not on the
// question list.
func (m *Manager) Generate(ctx context.Context, gen quizgen.Generator, topic string, qt quizgen.QuestionType, difficulty quizgen.Difficulty, count int) error {
	if count < 1 {
		return fmt.Errorf("question count must be at least 1, got %d", count)
	}

	m.reset()
	m.sessionID = uuid.NewString()
	m.topic = topic
	m.qtype = qt
	m.difficulty = difficulty

	avoid := make([]string, 0, count)
	for i := 0; i < count; i++ {
		input := quizgen.GenerateInput{
			Topic:      topic,
			Difficulty: difficulty,
			Avoid:      avoid,
		}

		var (
			q   *quizgen.Question
			err error
		)
		switch qt {
		case quizgen.TypeMCQ:
			q, err = gen.GenerateMCQ(ctx, input)
		case quizgen.TypeFillBlank:
			q, err = gen.GenerateFillBlank(ctx, input)
		default:
			return fmt.Errorf("unknown question type: %q", qt)
		}
		if err != nil {
			return fmt.Errorf("generate question %d of %d: %w", i+1, count, err)
		}

		m.questions = append(m.questions, q)
		avoid = append(avoid, q.Text)
	}

	m.answers = make([]string, len(m.questions))
	m.answered = make([]bool, len(m.questions))
	m.startedAt = time.Now()
	m.stage = StageGenerated
	return nil
}

// SetAnswer records the answer for the question at index. Each
// question has exactly one answer slot; recording again overwrites, so
// the call is idempotent across presentation refreshes.
func (m *Manager) SetAnswer(index int, answer string) error {
	if m.stage != StageGenerated && m.stage != StageAnswered {
		return fmt.Errorf("no active quiz to answer (stage %s)", m.stage)
	}
	if index < 0 || index >= len(m.questions) {
		return fmt.Errorf("question index %d out of range (have %d questions)", index, len(m.questions))
	}

	m.answers[index] = answer
	m.answered[index] = true

	if m.allAnswered() {
		m.stage = StageAnswered
	}
	return nil
}

// Answer returns the recorded answer for the question at index and
// whether one has been recorded.
func (m *Manager) Answer(index int) (string, bool) {
	if index < 0 || index >= len(m.answers) {
		return "", false
	}
	return m.answers[index], m.answered[index]
}

// AllAnswered reports whether every question has a recorded answer.
func (m *Manager) AllAnswered() bool {
	return m.stage != StageEmpty && m.allAnswered()
}

func (m *Manager) allAnswered() bool {
	for _, ok := range m.answered {
		if !ok {
			return false
		}
	}
	return len(m.answered) > 0
}

// Evaluate pairs each question with its recorded answer and computes
// the results in question order. Multiple-choice answers must equal
// the stored correct option exactly; fill-blank answers are trimmed
// and compared case-insensitively.
func (m *Manager) Evaluate() error {
	if m.stage != StageGenerated && m.stage != StageAnswered {
		return fmt.Errorf("nothing to evaluate (stage %s)", m.stage)
	}
	if len(m.answers) != len(m.questions) {
		return fmt.Errorf("have %d answers for %d questions", len(m.answers), len(m.questions))
	}
	for i, ok := range m.answered {
		if !ok {
			return fmt.Errorf("question %d is unanswered", i+1)
		}
	}

	m.results = make([]Result, 0, len(m.questions))
	for i, q := range m.questions {
		m.results = append(m.results, Result{
			Number:        i + 1,
			Question:      q.Text,
			Type:          q.Type,
			UserAnswer:    m.answers[i],
			CorrectAnswer: q.Answer,
			Correct:       quizgen.CheckAnswer(m.answers[i], q),
			Options:       q.Options,
		})
	}

	m.evaluatedAt = time.Now()
	m.stage = StageEvaluated
	return nil
}

// Results returns the evaluated results in question order, or nil if
// the session has not been evaluated.
func (m *Manager) Results() []Result { return m.results }

// Score returns the number of correct answers, the total number of
// results, and the score percentage (0 when there are no results).
func (m *Manager) Score() (correct, total int, pct float64) {
	for _, r := range m.results {
		if r.Correct {
			correct++
		}
	}
	total = len(m.results)
	if total > 0 {
		pct = float64(correct) / float64(total) * 100
	}
	return correct, total, pct
}
