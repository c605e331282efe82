// Package app owns the root Bubble Tea model: window sizing, the
// screen router and the header/footer frame.
package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/dsilva/studium/internal/flashcards"
	"github.com/dsilva/studium/internal/library"
	"github.com/dsilva/studium/internal/router"
	"github.com/dsilva/studium/internal/screen"
	"github.com/dsilva/studium/internal/screens/home"
	"github.com/dsilva/studium/internal/screens/login"
	"github.com/dsilva/studium/internal/session"
	"github.com/dsilva/studium/internal/solutions"
	"github.com/dsilva/studium/internal/ui/layout"
)

// Deps are the services the TUI runs on.
type Deps struct {
	Library *library.Library
	Quiz    *session.Controller
	Mixed   *session.Controller
	Match   *session.MatchController
	Solver  *solutions.Service
	Cards   *flashcards.Service
}

// escCapturer lets a screen keep Esc for itself (e.g. a live session
// pausing instead of popping).
type escCapturer interface {
	CapturesEsc() bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	deps   Deps
	router *router.Router
	width  int
	height int
}

// newAppModel starts on the profile picker.
func newAppModel(deps Deps) AppModel {
	m := AppModel{deps: deps}
	m.router = router.New(m.loginScreen())
	return m
}

// homeScreen builds the main menu with navigation wiring.
func (m AppModel) homeScreen() screen.Screen {
	return home.New(home.Deps{
		Library: m.deps.Library,
		Quiz:    m.deps.Quiz,
		Mixed:   m.deps.Mixed,
		Match:   m.deps.Match,
		Solver:  m.deps.Solver,
		Cards:   m.deps.Cards,
		SwitchProfile: func() tea.Cmd {
			return func() tea.Msg {
				return router.ReplaceScreenMsg{Screen: m.loginScreen()}
			}
		},
	})
}

func (m AppModel) loginScreen() screen.Screen {
	return login.New(m.deps.Library, m.homeScreen)
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if ec, ok := m.router.Active().(escCapturer); ok && ec.CapturesEsc() {
				break // screen handles esc itself
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	user := ""
	if m.deps.Library != nil {
		user = m.deps.Library.UserID()
	}
	header := layout.RenderHeader(title, user, m.width)

	var footerHints []layout.KeyHint
	if provider, ok := active.(screen.KeyHintProvider); ok {
		footerHints = provider.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(deps Deps) error {
	p := tea.NewProgram(newAppModel(deps))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
