// Package solve asks the model for a worked, step-by-step solution and
// lets the learner save it to their library.
package solve

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/dsilva/studium/internal/router"
	"github.com/dsilva/studium/internal/screen"
	"github.com/dsilva/studium/internal/solutions"
	"github.com/dsilva/studium/internal/ui/components"
	"github.com/dsilva/studium/internal/ui/layout"
	"github.com/dsilva/studium/internal/ui/theme"
)

type phase int

const (
	phaseInput phase = iota
	phaseSolving
	phaseShowing
)

// solvedMsg is sent when the model has produced (or failed to produce)
// a solution.
type solvedMsg struct {
	Content string
	Err     error
}

// savedMsg is sent when the solution has been written to the library.
type savedMsg struct {
	Err error
}

// SolveScreen is the guided-solution view.
type SolveScreen struct {
	svc   *solutions.Service
	input components.TextInput

	phase   phase
	problem string
	content string
	notice  string
	errMsg  string
	saved   bool
}

var _ screen.Screen = (*SolveScreen)(nil)
var _ screen.KeyHintProvider = (*SolveScreen)(nil)

// New creates a new SolveScreen.
func New(svc *solutions.Service) *SolveScreen {
	return &SolveScreen{
		svc:   svc,
		input: components.NewTextInput("State the problem...", false, 200),
	}
}

func (s *SolveScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *SolveScreen) Title() string {
	return "Solve a Problem"
}

func (s *SolveScreen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case phaseShowing:
		return []layout.KeyHint{
			{Key: "S", Description: "Save to library"},
			{Key: "N", Description: "New problem"},
			{Key: "Esc", Description: "Back"},
		}
	default:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Solve"},
			{Key: "Esc", Description: "Back"},
		}
	}
}

func (s *SolveScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case solvedMsg:
		if msg.Err != nil {
			s.phase = phaseInput
			s.errMsg = msg.Err.Error()
			return s, s.input.Init()
		}
		s.phase = phaseShowing
		s.content = msg.Content
		s.errMsg = ""
		return s, nil

	case savedMsg:
		if msg.Err != nil {
			s.notice = "Could not save: " + msg.Err.Error()
		} else {
			s.saved = true
			s.notice = "Saved to your library."
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *SolveScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	switch s.phase {
	case phaseInput:
		switch key {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "enter":
			problem := strings.TrimSpace(s.input.Value())
			if problem == "" {
				s.errMsg = "Type a problem first."
				return s, nil
			}
			s.phase = phaseSolving
			s.problem = problem
			s.errMsg = ""
			return s, s.solveCmd(problem)
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd

	case phaseShowing:
		switch key {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "s", "S":
			if s.saved {
				return s, nil
			}
			return s, s.saveCmd()
		case "n", "N":
			s.phase = phaseInput
			s.content = ""
			s.notice = ""
			s.saved = false
			s.input.Reset()
			return s, s.input.Init()
		}
	}

	return s, nil
}

func (s *SolveScreen) solveCmd(problem string) tea.Cmd {
	svc := s.svc
	return func() tea.Msg {
		content, err := svc.Solve(context.Background(), problem)
		return solvedMsg{Content: content, Err: err}
	}
}

func (s *SolveScreen) saveCmd() tea.Cmd {
	svc, problem, content := s.svc, s.problem, s.content
	return func() tea.Msg {
		_, err := svc.Save(context.Background(), problem, content)
		return savedMsg{Err: err}
	}
}

func (s *SolveScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")

	switch s.phase {
	case phaseInput:
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Text).
			Bold(true).
			Render("What are you stuck on?"))
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Render(s.input.View()))

	case phaseSolving:
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Italic(true).
			Render("\n\nWorking through it..."))

	case phaseShowing:
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().
				Foreground(theme.Secondary).
				Bold(true).
				Render(truncate(s.problem, width-8))))
		b.WriteString("\n\n")
		body := lipgloss.NewStyle().
			Width(min(width-8, 76)).
			Foreground(theme.Text).
			Render(s.content)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, body))
	}

	if s.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render(s.errMsg))
	}
	if s.notice != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Success).
			Render(s.notice))
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
