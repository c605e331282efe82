// Package flashcards lists, creates and reviews saved card sets.
package flashcards

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	svc "github.com/dsilva/studium/internal/flashcards"
	"github.com/dsilva/studium/internal/library"
	"github.com/dsilva/studium/internal/router"
	"github.com/dsilva/studium/internal/screen"
	"github.com/dsilva/studium/internal/ui/components"
	"github.com/dsilva/studium/internal/ui/layout"
	"github.com/dsilva/studium/internal/ui/theme"
)

type phase int

const (
	phaseList phase = iota
	phaseCreate
	phaseCreating
	phaseBrowse
)

// createdMsg is sent when a new set has been generated and saved.
type createdMsg struct {
	Set library.FlashcardSet
	Err error
}

// FlashcardsScreen manages the learner's card sets.
type FlashcardsScreen struct {
	svc  *svc.Service
	sets []library.FlashcardSet

	phase    phase
	selected int
	errMsg   string

	// create form
	name  components.TextInput
	topic components.TextInput
	count components.TextInput
	focus int

	// browsing
	browsing library.FlashcardSet
	cardIdx  int
	flipped  bool
}

var _ screen.Screen = (*FlashcardsScreen)(nil)
var _ screen.KeyHintProvider = (*FlashcardsScreen)(nil)

// New creates a new FlashcardsScreen.
func New(service *svc.Service) *FlashcardsScreen {
	return &FlashcardsScreen{
		svc:  service,
		sets: service.List(),
	}
}

func (s *FlashcardsScreen) Init() tea.Cmd {
	return nil
}

func (s *FlashcardsScreen) Title() string {
	return "Flashcards"
}

func (s *FlashcardsScreen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case phaseCreate:
		return []layout.KeyHint{
			{Key: "Tab", Description: "Next field"},
			{Key: "Enter", Description: "Create"},
			{Key: "Esc", Description: "Cancel"},
		}
	case phaseBrowse:
		return []layout.KeyHint{
			{Key: "Space", Description: "Flip"},
			{Key: "←→", Description: "Card"},
			{Key: "Esc", Description: "Back"},
		}
	default:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Review"},
			{Key: "N", Description: "New set"},
			{Key: "D", Description: "Delete"},
			{Key: "Esc", Description: "Back"},
		}
	}
}

func (s *FlashcardsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case createdMsg:
		if msg.Err != nil {
			s.phase = phaseCreate
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.sets = s.svc.List()
		s.phase = phaseList
		s.errMsg = ""
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *FlashcardsScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	switch s.phase {
	case phaseList:
		switch key {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.sets)-1 {
				s.selected++
			}
		case "enter":
			if s.selected < len(s.sets) {
				s.browsing = s.sets[s.selected]
				s.cardIdx = 0
				s.flipped = false
				s.phase = phaseBrowse
			}
		case "n", "N":
			s.startCreateForm()
			return s, s.name.Init()
		case "d", "D":
			if s.selected < len(s.sets) {
				if err := s.svc.Remove(context.Background(), s.sets[s.selected].ID); err != nil {
					s.errMsg = err.Error()
				}
				s.sets = s.svc.List()
				if s.selected >= len(s.sets) && s.selected > 0 {
					s.selected--
				}
			}
		}
		return s, nil

	case phaseCreate:
		switch key {
		case "esc":
			s.phase = phaseList
			s.errMsg = ""
			return s, nil
		case "tab", "down":
			s.focus = (s.focus + 1) % 3
			return s, nil
		case "shift+tab", "up":
			s.focus = (s.focus + 2) % 3
			return s, nil
		case "enter":
			return s.submitCreate()
		}
		var cmd tea.Cmd
		switch s.focus {
		case 0:
			s.name, cmd = s.name.Update(msg)
		case 1:
			s.topic, cmd = s.topic.Update(msg)
		case 2:
			s.count, cmd = s.count.Update(msg)
		}
		return s, cmd

	case phaseBrowse:
		switch key {
		case "esc":
			s.phase = phaseList
		case " ", "enter":
			s.flipped = !s.flipped
		case "right", "l":
			if s.cardIdx < len(s.browsing.Cards)-1 {
				s.cardIdx++
				s.flipped = false
			}
		case "left", "h":
			if s.cardIdx > 0 {
				s.cardIdx--
				s.flipped = false
			}
		}
		return s, nil
	}

	return s, nil
}

func (s *FlashcardsScreen) startCreateForm() {
	s.phase = phaseCreate
	s.focus = 0
	s.errMsg = ""
	s.name = components.NewTextInput("Set name (optional)", false, 48)
	s.topic = components.NewTextInput("Topic", false, 64)
	s.count = components.NewTextInput("", true, 2)
	s.count.SetValue("10")
}

func (s *FlashcardsScreen) submitCreate() (screen.Screen, tea.Cmd) {
	topic := strings.TrimSpace(s.topic.Value())
	if topic == "" {
		s.errMsg = "Topic is required."
		return s, nil
	}
	count, err := s.count.NumericValue()
	if err != nil || count < 1 || count > 50 {
		s.errMsg = "Card count must be 1-50."
		return s, nil
	}

	name := strings.TrimSpace(s.name.Value())
	s.phase = phaseCreating
	s.errMsg = ""

	service := s.svc
	return s, func() tea.Msg {
		set, err := service.Create(context.Background(), name, topic, count)
		return createdMsg{Set: set, Err: err}
	}
}

func (s *FlashcardsScreen) View(width, height int) string {
	switch s.phase {
	case phaseCreate:
		return s.viewCreate(width)
	case phaseCreating:
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Italic(true).
			Render("\n\n\n  Writing your cards...")
	case phaseBrowse:
		return s.viewBrowse(width)
	default:
		return s.viewList(width)
	}
}

func (s *FlashcardsScreen) viewList(width int) string {
	if len(s.sets) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No flashcard sets yet. Press N to create one.")
	}

	var b strings.Builder
	b.WriteString("\n")

	if s.errMsg != "" {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg)))
		b.WriteString("\n\n")
	}

	for i, set := range s.sets {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		line := fmt.Sprintf("%s%-28s %-20s %d cards  %s",
			prefix, truncate(set.Name, 28), truncate(set.Topic, 20), len(set.Cards), set.Date)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}
	return b.String()
}

func (s *FlashcardsScreen) viewCreate(width int) string {
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
		Render("New flashcard set"))
	b.WriteString("\n\n")
	b.WriteString(label("Name", s.focus == 0) + "\n" + s.name.View() + "\n\n")
	b.WriteString(label("Topic", s.focus == 1) + "\n" + s.topic.View() + "\n\n")
	b.WriteString(label("Cards", s.focus == 2) + "\n" + s.count.View() + "\n")

	if s.errMsg != "" {
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg))
	}

	return lipgloss.Place(width, 0, lipgloss.Center, lipgloss.Top, "\n"+b.String())
}

func (s *FlashcardsScreen) viewBrowse(width int) string {
	if len(s.browsing.Cards) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  This set is empty.")
	}

	card := s.browsing.Cards[s.cardIdx]
	face := card.Term
	faceLabel := "term"
	if s.flipped {
		face = card.Definition
		faceLabel = "definition"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%s — card %d of %d (%s)",
			s.browsing.Name, s.cardIdx+1, len(s.browsing.Cards), faceLabel)))
	b.WriteString("\n\n")

	cardBox := theme.Card.Width(min(width-12, 60)).Align(lipgloss.Center).Render(face)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, cardBox))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Italic(true).
		Render("Space flips the card."))

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
