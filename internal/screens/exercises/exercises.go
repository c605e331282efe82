// Package exercises lists the saved exercise sets and replays them.
package exercises

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/dsilva/studium/internal/exercise"
	"github.com/dsilva/studium/internal/library"
	"github.com/dsilva/studium/internal/router"
	"github.com/dsilva/studium/internal/screen"
	matchscreen "github.com/dsilva/studium/internal/screens/match"
	"github.com/dsilva/studium/internal/screens/quiz"
	"github.com/dsilva/studium/internal/session"
	"github.com/dsilva/studium/internal/ui/components"
	"github.com/dsilva/studium/internal/ui/layout"
	"github.com/dsilva/studium/internal/ui/theme"
)

// replaySecondsPerItem sizes the countdown for a replayed set.
const replaySecondsPerItem = 30

// Deps are the controllers a replay can run on.
type Deps struct {
	Library *library.Library
	Quiz    *session.Controller
	Mixed   *session.Controller
	Match   *session.MatchController
}

// ExercisesScreen lists saved exercise sets for replay.
type ExercisesScreen struct {
	deps     Deps
	items    []library.SavedExercise
	selected int
	errMsg   string

	renaming bool
	rename   components.TextInput
}

var _ screen.Screen = (*ExercisesScreen)(nil)
var _ screen.KeyHintProvider = (*ExercisesScreen)(nil)

// New creates an ExercisesScreen.
func New(deps Deps) *ExercisesScreen {
	return &ExercisesScreen{
		deps:  deps,
		items: deps.Library.Exercises(),
	}
}

func (e *ExercisesScreen) Init() tea.Cmd {
	return nil
}

func (e *ExercisesScreen) Title() string {
	return "Saved Exercises"
}

func (e *ExercisesScreen) KeyHints() []layout.KeyHint {
	if e.renaming {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Rename"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Replay"},
		{Key: "R", Description: "Rename"},
		{Key: "D", Description: "Delete"},
		{Key: "Esc", Description: "Back"},
	}
}

func (e *ExercisesScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if e.renaming {
			var cmd tea.Cmd
			e.rename, cmd = e.rename.Update(msg)
			return e, cmd
		}
		return e, nil
	}

	if e.renaming {
		return e.handleRenameKey(kmsg)
	}

	switch kmsg.String() {
	case "esc":
		return e, func() tea.Msg { return router.PopScreenMsg{} }
	case "up", "k":
		if e.selected > 0 {
			e.selected--
		}
	case "down", "j":
		if e.selected < len(e.items)-1 {
			e.selected++
		}
	case "enter":
		return e.replay()
	case "r", "R":
		if e.selected < len(e.items) {
			e.renaming = true
			e.rename = components.NewTextInput("Name", false, 48)
			e.rename.SetValue(e.items[e.selected].Name)
			return e, e.rename.Init()
		}
	case "d", "D":
		if e.selected < len(e.items) {
			if err := e.deps.Library.RemoveExercise(context.Background(), e.items[e.selected].ID); err != nil {
				e.errMsg = "Could not save the change: " + err.Error()
			}
			e.items = e.deps.Library.Exercises()
			if e.selected >= len(e.items) && e.selected > 0 {
				e.selected--
			}
		}
	}
	return e, nil
}

func (e *ExercisesScreen) handleRenameKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		e.renaming = false
		return e, nil
	case "enter":
		name := strings.TrimSpace(e.rename.Value())
		if name == "" {
			return e, nil
		}
		item := e.items[e.selected]
		item.Name = name
		if err := e.deps.Library.ReplaceExercise(context.Background(), item.ID, item); err != nil {
			e.errMsg = "Could not save the change: " + err.Error()
		}
		e.items = e.deps.Library.Exercises()
		e.renaming = false
		return e, nil
	}
	var cmd tea.Cmd
	e.rename, cmd = e.rename.Update(msg)
	return e, cmd
}

// replay starts the selected set on the controller for its mode.
func (e *ExercisesScreen) replay() (screen.Screen, tea.Cmd) {
	if e.selected >= len(e.items) {
		return e, nil
	}
	item := e.items[e.selected]

	var target screen.Screen
	switch item.Mode {
	case exercise.ModeQuiz:
		target = quiz.NewReplay(e.deps.Quiz, item.Topic, item.Questions, replayDuration(len(item.Questions)))
	case exercise.ModeMixed:
		target = quiz.NewReplay(e.deps.Mixed, item.Topic, item.Questions, replayDuration(len(item.Questions)))
	case exercise.ModeMatch:
		target = matchscreen.NewReplay(e.deps.Match, item.Topic, item.Pairs, replayDuration(len(item.Pairs)))
	default:
		e.errMsg = fmt.Sprintf("Unknown exercise mode %q.", item.Mode)
		return e, nil
	}

	return e, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: target}
	}
}

func replayDuration(items int) int {
	secs := items * replaySecondsPerItem
	if secs < 60 {
		secs = 60
	}
	return secs
}

func (e *ExercisesScreen) View(width, height int) string {
	if len(e.items) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No saved exercises. Finish a session and press S on the summary.")
	}

	var b strings.Builder
	b.WriteString("\n")

	if e.errMsg != "" {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Error).Render(e.errMsg)))
		b.WriteString("\n\n")
	}

	for i, item := range e.items {
		prefix := "  "
		if i == e.selected {
			prefix = "> "
		}
		size := len(item.Questions)
		if item.Mode == exercise.ModeMatch {
			size = len(item.Pairs)
		}
		line := fmt.Sprintf("%s%-28s %-12s %-20s %d items",
			prefix, truncate(item.Name, 28), item.Mode.DisplayName(), truncate(item.Topic, 20), size)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == e.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}

	if e.renaming {
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Render("New name: ")+e.rename.View()))
		b.WriteString("\n")
	}

	return b.String()
}

func truncate(s string, max int) string {
	if max < 8 {
		max = 8
	}
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
