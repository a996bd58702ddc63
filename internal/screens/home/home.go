package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizzer/internal/quizgen"
	"github.com/abhisek/quizzer/internal/router"
	"github.com/abhisek/quizzer/internal/screen"
	"github.com/abhisek/quizzer/internal/screens/history"
	"github.com/abhisek/quizzer/internal/screens/setup"
	"github.com/abhisek/quizzer/internal/store"
	"github.com/abhisek/quizzer/internal/ui/components"
	"github.com/abhisek/quizzer/internal/ui/theme"
)

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	menu         components.Menu
	generator    quizgen.Generator
	attempts     store.AttemptRepo
	stats        *store.AttemptStats
	providerHint string
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(generator quizgen.Generator, attempts store.AttemptRepo) *HomeScreen {
	var stats *store.AttemptStats
	if attempts != nil {
		stats, _ = attempts.Stats(context.Background())
	}

	h := &HomeScreen{
		generator: generator,
		attempts:  attempts,
		stats:     stats,
	}
	if generator == nil {
		h.providerHint = "No LLM provider configured — set GROQ_API_KEY to enable quizzes."
	}

	items := []components.MenuItem{
		{Label: "START QUIZ", Disabled: generator == nil, Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: setup.New(generator, attempts)}
			}
		}},
		{Label: "HISTORY", Disabled: attempts == nil, Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(attempts)}
			}
		}},
		{Label: "QUIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
	h.menu = components.NewMenu(items)
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var sections []string

	title := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render("QUIZZER")
	subtitle := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render("LLM-generated quizzes on any topic")
	sections = append(sections, title+"\n"+subtitle)

	if h.stats != nil && h.stats.Attempts > 0 {
		statsLine := fmt.Sprintf("%d quizzes taken   %d/%d correct   best %.1f%%",
			h.stats.Attempts, h.stats.Correct, h.stats.Questions, h.stats.BestScorePct)
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.Secondary).
			Render(statsLine))
	}

	sections = append(sections, h.menu.View())

	if h.providerHint != "" {
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Italic(true).
			Render(h.providerHint))
	}

	content := strings.Join(sections, "\n\n")
	card := theme.Card.Render(content)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
