package setup

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizzer/internal/quizgen"
	"github.com/abhisek/quizzer/internal/router"
	"github.com/abhisek/quizzer/internal/screen"
	quizscreen "github.com/abhisek/quizzer/internal/screens/quiz"
	"github.com/abhisek/quizzer/internal/store"
	"github.com/abhisek/quizzer/internal/ui/components"
	"github.com/abhisek/quizzer/internal/ui/layout"
	"github.com/abhisek/quizzer/internal/ui/theme"
)

// field indices, top to bottom.
const (
	fieldTopic = iota
	fieldType
	fieldDifficulty
	fieldCount
	fieldStart
	fieldMax
)

const (
	minCount = 1
	maxCount = 10
)

var typeChoices = []quizgen.QuestionType{quizgen.TypeMCQ, quizgen.TypeFillBlank}

var difficultyChoices = []quizgen.Difficulty{
	quizgen.DifficultyEasy,
	quizgen.DifficultyMedium,
	quizgen.DifficultyHard,
}

// SetupScreen collects the quiz parameters: topic, question type,
// difficulty, and question count.
type SetupScreen struct {
	generator quizgen.Generator
	attempts  store.AttemptRepo

	topic      components.TextInput
	typeIdx    int
	diffIdx    int
	count      int
	focus      int
	errMsg     string
}

var _ screen.Screen = (*SetupScreen)(nil)
var _ screen.KeyHintProvider = (*SetupScreen)(nil)

// New creates a new SetupScreen.
func New(generator quizgen.Generator, attempts store.AttemptRepo) *SetupScreen {
	return &SetupScreen{
		generator: generator,
		attempts:  attempts,
		topic:     components.NewTextInput("e.g. Geography", 60),
		diffIdx:   1, // Medium
		count:     5,
	}
}

func (s *SetupScreen) Init() tea.Cmd {
	return s.topic.Init()
}

func (s *SetupScreen) Title() string {
	return "New Quiz"
}

func (s *SetupScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Field"},
		{Key: "←→", Description: "Change"},
		{Key: "Enter", Description: "Start"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SetupScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if s.focus == fieldTopic {
			var cmd tea.Cmd
			s.topic, cmd = s.topic.Update(msg)
			return s, cmd
		}
		return s, nil
	}

	switch kmsg.String() {
	case "up", "shift+tab":
		if s.focus > 0 {
			s.setFocus(s.focus - 1)
		}
		return s, nil

	case "down", "tab":
		if s.focus < fieldMax-1 {
			s.setFocus(s.focus + 1)
		}
		return s, nil

	case "left":
		s.adjust(-1)
		return s, nil

	case "right":
		s.adjust(1)
		return s, nil

	case "enter":
		if s.focus == fieldStart || s.focus == fieldTopic {
			return s.start()
		}
		s.setFocus(s.focus + 1)
		return s, nil
	}

	// Everything else goes to the topic input when focused.
	if s.focus == fieldTopic {
		var cmd tea.Cmd
		s.topic, cmd = s.topic.Update(msg)
		s.errMsg = ""
		return s, cmd
	}

	return s, nil
}

func (s *SetupScreen) setFocus(f int) {
	s.focus = f
	if f == fieldTopic {
		s.topic.Focus()
	} else {
		s.topic.Blur()
	}
}

// adjust cycles the value of the focused choice field.
func (s *SetupScreen) adjust(delta int) {
	switch s.focus {
	case fieldType:
		s.typeIdx = wrap(s.typeIdx+delta, len(typeChoices))
	case fieldDifficulty:
		s.diffIdx = wrap(s.diffIdx+delta, len(difficultyChoices))
	case fieldCount:
		s.count += delta
		if s.count < minCount {
			s.count = minCount
		}
		if s.count > maxCount {
			s.count = maxCount
		}
	}
}

func wrap(i, n int) int {
	if n == 0 {
		return 0
	}
	return ((i % n) + n) % n
}

func (s *SetupScreen) start() (screen.Screen, tea.Cmd) {
	topic := strings.TrimSpace(s.topic.Value())
	if topic == "" {
		s.errMsg = "Enter a topic first."
		s.setFocus(fieldTopic)
		return s, nil
	}

	params := quizscreen.Params{
		Topic:      topic,
		Type:       typeChoices[s.typeIdx],
		Difficulty: difficultyChoices[s.diffIdx],
		Count:      s.count,
	}
	return s, func() tea.Msg {
		return router.PushScreenMsg{
			Screen: quizscreen.New(s.generator, s.attempts, params),
		}
	}
}

func (s *SetupScreen) View(width, height int) string {
	label := func(f int, text string) string {
		style := lipgloss.NewStyle().Foreground(theme.TextDim)
		if s.focus == f {
			style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		}
		return style.Render(text)
	}

	choice := func(f int, value string) string {
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if s.focus == f {
			style = style.Bold(true)
			return style.Render("◂ " + value + " ▸")
		}
		return style.Render("  " + value)
	}

	var b strings.Builder

	b.WriteString(label(fieldTopic, "Topic"))
	b.WriteString("\n")
	b.WriteString(s.topic.View())
	b.WriteString("\n\n")

	b.WriteString(label(fieldType, "Question type"))
	b.WriteString("\n")
	b.WriteString(choice(fieldType, typeChoices[s.typeIdx].Label()))
	b.WriteString("\n\n")

	b.WriteString(label(fieldDifficulty, "Difficulty"))
	b.WriteString("\n")
	b.WriteString(choice(fieldDifficulty, string(difficultyChoices[s.diffIdx])))
	b.WriteString("\n\n")

	b.WriteString(label(fieldCount, fmt.Sprintf("Questions (%d-%d)", minCount, maxCount)))
	b.WriteString("\n")
	b.WriteString(choice(fieldCount, fmt.Sprintf("%d", s.count)))
	b.WriteString("\n\n")

	startBtn := components.NewButton("Start Quiz", s.focus == fieldStart, nil)
	b.WriteString(startBtn.View())

	if s.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg))
	}

	card := theme.Card.Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
