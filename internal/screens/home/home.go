// Package home is the main menu screen.
package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/dsilva/studium/internal/exercise"
	"github.com/dsilva/studium/internal/flashcards"
	"github.com/dsilva/studium/internal/library"
	"github.com/dsilva/studium/internal/router"
	"github.com/dsilva/studium/internal/screen"
	exercisesscreen "github.com/dsilva/studium/internal/screens/exercises"
	flashcardsscreen "github.com/dsilva/studium/internal/screens/flashcards"
	historyscreen "github.com/dsilva/studium/internal/screens/history"
	"github.com/dsilva/studium/internal/screens/setup"
	solvescreen "github.com/dsilva/studium/internal/screens/solve"
	"github.com/dsilva/studium/internal/session"
	"github.com/dsilva/studium/internal/solutions"
	"github.com/dsilva/studium/internal/ui/components"
	"github.com/dsilva/studium/internal/ui/theme"
)

// Deps carries everything the home screen and its children need.
type Deps struct {
	Library *library.Library
	Quiz    *session.Controller
	Mixed   *session.Controller
	Match   *session.MatchController
	Solver  *solutions.Service
	Cards   *flashcards.Service

	// SwitchProfile returns the command that brings back the profile
	// picker. Wired by the app so home does not import the login screen.
	SwitchProfile func() tea.Cmd
}

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	deps Deps
	menu components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps Deps) *HomeScreen {
	items := []components.MenuItem{
		{Label: "QUIZ", Action: func() tea.Cmd {
			return pushSetup(deps, exercise.ModeQuiz)
		}},
		{Label: "MIXED QUIZ", Action: func() tea.Cmd {
			return pushSetup(deps, exercise.ModeMixed)
		}},
		{Label: "MATCHING", Action: func() tea.Cmd {
			return pushSetup(deps, exercise.ModeMatch)
		}},
		{Label: "FLASHCARDS", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: flashcardsscreen.New(deps.Cards)}
			}
		}},
		{Label: "SOLVE A PROBLEM", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: solvescreen.New(deps.Solver)}
			}
		}},
		{Label: "SAVED EXERCISES", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: exercisesscreen.New(exercisesscreen.Deps{
					Library: deps.Library,
					Quiz:    deps.Quiz,
					Mixed:   deps.Mixed,
					Match:   deps.Match,
				})}
			}
		}},
		{Label: "HISTORY", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: historyscreen.New(deps.Library)}
			}
		}},
		{Label: "SWITCH PROFILE", Action: deps.SwitchProfile},
		{Label: "QUIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		deps: deps,
		menu: components.NewMenu(items),
	}
}

func pushSetup(deps Deps, mode exercise.Mode) tea.Cmd {
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: setup.New(setup.Deps{
			Quiz:  deps.Quiz,
			Mixed: deps.Mixed,
			Match: deps.Match,
		}, mode)}
	}
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

	sections = append(sections, lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render("S T U D I U M"))
	sections = append(sections, lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render("Pick a study mode"))
	sections = append(sections, "")
	sections = append(sections, h.menu.View())
	sections = append(sections, h.statsLine())

	content := strings.Join(sections, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

// statsLine summarizes the active profile's library.
func (h *HomeScreen) statsLine() string {
	lib := h.deps.Library
	if lib == nil || lib.UserID() == "" {
		return lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Italic(true).
			Render("Guest session — progress will not be saved")
	}

	line := fmt.Sprintf("%d sessions   %d flashcard sets   %d saved solutions",
		len(lib.History()), len(lib.FlashcardSets()), len(lib.Solutions()))
	return lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(line)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
