package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizzer/internal/quizgen"
	"github.com/abhisek/quizzer/internal/ui/components"
	"github.com/abhisek/quizzer/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	switch s.phase {
	case phaseGenerating:
		return s.renderGenerating(width, height)
	case phaseError:
		return renderError(width, height, s.errMsg)
	}
	return s.renderQuestion(width, height)
}

func (s *QuizScreen) renderGenerating(width, height int) string {
	msg := fmt.Sprintf("Generating %d %s question(s) about %s...",
		s.params.Count, s.params.Difficulty, s.params.Topic)
	content := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(msg)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (s *QuizScreen) renderQuestion(width, height int) string {
	q := s.currentQuestion()
	if q == nil {
		return ""
	}

	total := len(s.manager.Questions())
	answeredCount := 0
	for i := 0; i < total; i++ {
		if _, ok := s.manager.Answer(i); ok {
			answeredCount++
		}
	}

	var b strings.Builder

	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  Question %d of %d", s.current+1, total))
	b.WriteString(infoLeft)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	var widget string
	if q.Type == quizgen.TypeMCQ {
		widget = s.mc.View()
	} else {
		questionStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
		widget = questionStyle.Render(q.Text) + "\n\n" + "Answer: " + s.input.View()
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, widget))
	b.WriteString("\n\n")

	bar := components.NewProgressBar("Answered", float64(answeredCount)/float64(total), true, min(width-8, 50))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))

	return b.String()
}

func renderError(width, height int, errMsg string) string {
	content := lipgloss.NewStyle().
		Foreground(theme.Error).
		Render(fmt.Sprintf("Quiz generation failed:\n\n%s\n\nPress any key to go back.", errMsg))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
