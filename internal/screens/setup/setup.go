// Package setup collects topic, item count and time limit before a
// session starts.
package setup

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/dsilva/studium/internal/exercise"
	"github.com/dsilva/studium/internal/router"
	"github.com/dsilva/studium/internal/screen"
	matchscreen "github.com/dsilva/studium/internal/screens/match"
	"github.com/dsilva/studium/internal/screens/quiz"
	"github.com/dsilva/studium/internal/session"
	"github.com/dsilva/studium/internal/ui/components"
	"github.com/dsilva/studium/internal/ui/layout"
	"github.com/dsilva/studium/internal/ui/theme"
)

const (
	defaultCount   = 5
	defaultMinutes = 5

	maxCount   = 20
	maxMinutes = 60
)

// Deps are the long-lived controllers the setup screen hands a session to.
type Deps struct {
	Quiz  *session.Controller
	Mixed *session.Controller
	Match *session.MatchController
}

// SetupScreen is the pre-session form.
type SetupScreen struct {
	deps Deps
	mode exercise.Mode

	topic   components.TextInput
	count   components.TextInput
	minutes components.TextInput
	focus   int // 0 topic, 1 count, 2 minutes

	errMsg string
}

var _ screen.Screen = (*SetupScreen)(nil)
var _ screen.KeyHintProvider = (*SetupScreen)(nil)

// New creates a setup form for the given mode.
func New(deps Deps, mode exercise.Mode) *SetupScreen {
	s := &SetupScreen{
		deps:    deps,
		mode:    mode,
		topic:   components.NewTextInput("e.g. Photosynthesis", false, 64),
		count:   components.NewTextInput("", true, 2),
		minutes: components.NewTextInput("", true, 2),
	}
	s.count.SetValue(fmt.Sprintf("%d", defaultCount))
	s.minutes.SetValue(fmt.Sprintf("%d", defaultMinutes))

	// A paused session of this mode can be resumed by re-entering its
	// topic, so prefill it.
	if topic := s.pausedTopic(); topic != "" {
		s.topic.SetValue(topic)
	}
	return s
}

func (s *SetupScreen) pausedTopic() string {
	switch s.mode {
	case exercise.ModeQuiz:
		if s.deps.Quiz.State() == session.StatePaused {
			return s.deps.Quiz.Topic()
		}
	case exercise.ModeMixed:
		if s.deps.Mixed.State() == session.StatePaused {
			return s.deps.Mixed.Topic()
		}
	case exercise.ModeMatch:
		if s.deps.Match.State() == session.StatePaused {
			return s.deps.Match.Topic()
		}
	}
	return ""
}

func (s *SetupScreen) Title() string {
	return s.mode.DisplayName() + " Setup"
}

func (s *SetupScreen) Init() tea.Cmd {
	return s.topic.Init()
}

func (s *SetupScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Start"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SetupScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "tab", "down":
			s.focus = (s.focus + 1) % 3
			return s, s.focusedInput().Init()
		case "shift+tab", "up":
			s.focus = (s.focus + 2) % 3
			return s, s.focusedInput().Init()
		case "enter":
			return s.start()
		}
	}

	var cmd tea.Cmd
	switch s.focus {
	case 0:
		s.topic, cmd = s.topic.Update(msg)
	case 1:
		s.count, cmd = s.count.Update(msg)
	case 2:
		s.minutes, cmd = s.minutes.Update(msg)
	}
	return s, cmd
}

func (s *SetupScreen) focusedInput() *components.TextInput {
	switch s.focus {
	case 1:
		return &s.count
	case 2:
		return &s.minutes
	default:
		return &s.topic
	}
}

func (s *SetupScreen) start() (screen.Screen, tea.Cmd) {
	topic := strings.TrimSpace(s.topic.Value())
	if topic == "" {
		s.errMsg = "Topic is required."
		return s, nil
	}

	count, err := s.count.NumericValue()
	if err != nil || count < 1 || count > maxCount {
		s.errMsg = fmt.Sprintf("Item count must be 1-%d.", maxCount)
		return s, nil
	}

	minutes, err := s.minutes.NumericValue()
	if err != nil || minutes < 1 || minutes > maxMinutes {
		s.errMsg = fmt.Sprintf("Minutes must be 1-%d.", maxMinutes)
		return s, nil
	}
	seconds := minutes * 60

	var next screen.Screen
	switch s.mode {
	case exercise.ModeQuiz:
		next = quiz.New(s.deps.Quiz, topic, count, seconds)
	case exercise.ModeMixed:
		next = quiz.New(s.deps.Mixed, topic, count, seconds)
	case exercise.ModeMatch:
		next = matchscreen.New(s.deps.Match, topic, count, seconds)
	default:
		s.errMsg = fmt.Sprintf("unknown mode %q", s.mode)
		return s, nil
	}

	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (s *SetupScreen) View(width, height int) string {
	label := func(text string, focused bool) string {
		st := lipgloss.NewStyle().Foreground(theme.TextDim)
		if focused {
			st = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		}
		return st.Render(text)
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render(s.mode.DisplayName()))
	b.WriteString("\n\n")

	b.WriteString(label("Topic", s.focus == 0))
	b.WriteString("\n")
	b.WriteString(s.topic.View())
	b.WriteString("\n\n")

	itemLabel := "Questions"
	if s.mode == exercise.ModeMatch {
		itemLabel = "Pairs"
	}
	b.WriteString(label(itemLabel, s.focus == 1))
	b.WriteString("\n")
	b.WriteString(s.count.View())
	b.WriteString("\n\n")

	b.WriteString(label("Minutes", s.focus == 2))
	b.WriteString("\n")
	b.WriteString(s.minutes.View())
	b.WriteString("\n\n")

	if s.pausedTopic() != "" {
		b.WriteString(lipgloss.NewStyle().
			Foreground(theme.Accent).
			Italic(true).
			Render(fmt.Sprintf("Paused session on %q — start it again to resume.", s.pausedTopic())))
		b.WriteString("\n\n")
	}

	if s.errMsg != "" {
		b.WriteString(lipgloss.NewStyle().
			Foreground(theme.Error).
			Render(s.errMsg))
		b.WriteString("\n")
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}
