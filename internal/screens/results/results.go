package results

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	quizsession "github.com/abhisek/quizzer/internal/quiz"
	"github.com/abhisek/quizzer/internal/quizgen"
	"github.com/abhisek/quizzer/internal/router"
	"github.com/abhisek/quizzer/internal/screen"
	"github.com/abhisek/quizzer/internal/store"
	"github.com/abhisek/quizzer/internal/ui/layout"
	"github.com/abhisek/quizzer/internal/ui/theme"
)

type savedMsg struct {
	Path string
	Err  error
}

type recordedMsg struct {
	Err error
}

// ResultsScreen displays the evaluated quiz: score, per-question
// verdicts, and CSV export. The completed attempt is recorded to the
// store when the screen opens.
type ResultsScreen struct {
	manager  *quizsession.Manager
	attempts store.AttemptRepo

	topic      string
	qtype      quizgen.QuestionType
	difficulty quizgen.Difficulty

	savedPath string
	saveErr   error
	recorded  bool
	scroll    int
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)

// New creates a ResultsScreen over an evaluated quiz session.
func New(manager *quizsession.Manager, attempts store.AttemptRepo, topic string, qtype quizgen.QuestionType, difficulty quizgen.Difficulty) *ResultsScreen {
	return &ResultsScreen{
		manager:    manager,
		attempts:   attempts,
		topic:      topic,
		qtype:      qtype,
		difficulty: difficulty,
	}
}

func (s *ResultsScreen) Init() tea.Cmd {
	return s.recordCmd()
}

// recordCmd persists the attempt summary. Best-effort: a store failure
// is logged to the footer area, never fatal.
func (s *ResultsScreen) recordCmd() tea.Cmd {
	if s.attempts == nil || s.recorded {
		return nil
	}
	s.recorded = true

	mgr := s.manager
	repo := s.attempts
	topic, qtype, difficulty := s.topic, s.qtype, s.difficulty
	return func() tea.Msg {
		correct, total, pct := mgr.Score()
		rec := &store.AttemptRecord{
			SessionID:    mgr.SessionID(),
			Topic:        topic,
			QuestionType: qtype.Label(),
			Difficulty:   string(difficulty),
			Total:        total,
			Correct:      correct,
			ScorePct:     pct,
			DurationMs:   mgr.Duration().Milliseconds(),
		}
		return recordedMsg{Err: repo.RecordAttempt(context.Background(), rec)}
	}
}

func (s *ResultsScreen) Title() string {
	return "Results"
}

func (s *ResultsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "S", Description: "Save CSV"},
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "New quiz"},
	}
}

func (s *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case savedMsg:
		s.savedPath = msg.Path
		s.saveErr = msg.Err
		return s, nil

	case recordedMsg:
		// Attempt recording is fire-and-forget; surface nothing on
		// success and keep the session on failure.
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "s", "S":
			return s, s.saveCmd()
		case "up", "k":
			if s.scroll > 0 {
				s.scroll--
			}
			return s, nil
		case "down", "j":
			if s.scroll < len(s.manager.Results())-1 {
				s.scroll++
			}
			return s, nil
		case "enter":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *ResultsScreen) saveCmd() tea.Cmd {
	mgr := s.manager
	return func() tea.Msg {
		path, err := mgr.SaveCSV(quizsession.DefaultCSVPrefix)
		return savedMsg{Path: path, Err: err}
	}
}

func (s *ResultsScreen) View(width, height int) string {
	var b strings.Builder

	correct, total, pct := s.manager.Score()

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("Quiz complete!"))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%s · %s · %s", s.topic, s.qtype.Label(), s.difficulty)))
	b.WriteString("\n\n")

	scoreStyle := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Bold(true)
	if pct >= 50 {
		scoreStyle = scoreStyle.Foreground(theme.Success)
	} else {
		scoreStyle = scoreStyle.Foreground(theme.Error)
	}
	b.WriteString(scoreStyle.Render(fmt.Sprintf("Score: %d/%d (%.1f%%)", correct, total, pct)))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 60)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	// Per-question verdicts, scrolled to keep the cursor visible.
	results := s.manager.Results()
	visible := height - 12
	if visible < 1 {
		visible = 1
	}
	start := 0
	if s.scroll >= visible {
		start = s.scroll - visible + 1
	}
	end := start + visible
	if end > len(results) {
		end = len(results)
	}

	for _, r := range results[start:end] {
		mark := lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
		if !r.Correct {
			mark = lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
		}

		line := fmt.Sprintf("%s Q%d. %s", mark, r.Number, truncate(r.Question, min(width-20, 70)))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Text).Render(line)))
		b.WriteString("\n")

		if !r.Correct {
			detail := fmt.Sprintf("   you: %s · correct: %s", r.UserAnswer, r.CorrectAnswer)
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.TextDim).Render(detail)))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")

	switch {
	case s.saveErr != nil:
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Error).
				Render(fmt.Sprintf("Save failed: %v", s.saveErr))))
	case s.savedPath != "":
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Success).
				Render(fmt.Sprintf("Saved to %s", s.savedPath))))
	default:
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
				Render("Press S to save results as CSV")))
	}

	return b.String()
}

func truncate(s string, max int) string {
	if max < 4 || len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
