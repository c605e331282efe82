// Package login is the profile picker shown at startup. A profile name
// keys the library; continuing without one runs a guest session that
// persists nothing.
package login

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/dsilva/studium/internal/library"
	"github.com/dsilva/studium/internal/router"
	"github.com/dsilva/studium/internal/screen"
	"github.com/dsilva/studium/internal/ui/components"
	"github.com/dsilva/studium/internal/ui/layout"
	"github.com/dsilva/studium/internal/ui/theme"
)

// LoginScreen asks for a profile name and transitions to the screen
// produced by homeFactory.
type LoginScreen struct {
	lib         *library.Library
	homeFactory func() screen.Screen
	input       components.TextInput
	errMsg      string
}

var _ screen.Screen = (*LoginScreen)(nil)
var _ screen.KeyHintProvider = (*LoginScreen)(nil)

// New creates a LoginScreen.
func New(lib *library.Library, homeFactory func() screen.Screen) *LoginScreen {
	return &LoginScreen{
		lib:         lib,
		homeFactory: homeFactory,
		input:       components.NewTextInput("Profile name", false, 32),
	}
}

func (l *LoginScreen) Title() string {
	return "Welcome"
}

func (l *LoginScreen) Init() tea.Cmd {
	return l.input.Init()
}

func (l *LoginScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Sign in"},
		{Key: "Ctrl+G", Description: "Continue as guest"},
	}
}

func (l *LoginScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter":
			name := strings.TrimSpace(l.input.Value())
			if name == "" {
				l.errMsg = "Enter a name, or Ctrl+G for a guest session."
				return l, nil
			}
			if err := l.lib.SwitchUser(context.Background(), name); err != nil {
				l.errMsg = err.Error()
				return l, nil
			}
			return l, l.transition()
		case "ctrl+g":
			l.lib.Logout()
			return l, l.transition()
		}
	}

	var cmd tea.Cmd
	l.input, cmd = l.input.Update(msg)
	return l, cmd
}

func (l *LoginScreen) transition() tea.Cmd {
	home := l.homeFactory()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: home}
	}
}

func (l *LoginScreen) View(width, height int) string {
	var sections []string

	sections = append(sections, lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render("S T U D I U M"))
	sections = append(sections, lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render("AI-assisted study sessions in your terminal"))
	sections = append(sections, "")
	sections = append(sections, lipgloss.NewStyle().
		Foreground(theme.Text).
		Render("Who is studying today?"))
	sections = append(sections, "")
	sections = append(sections, l.input.View())

	if l.errMsg != "" {
		sections = append(sections, "")
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.Error).
			Render(l.errMsg))
	}

	content := strings.Join(sections, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
