// Package history lists past sessions from the active profile's library.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/dsilva/studium/internal/library"
	"github.com/dsilva/studium/internal/router"
	"github.com/dsilva/studium/internal/screen"
	"github.com/dsilva/studium/internal/ui/layout"
	"github.com/dsilva/studium/internal/ui/theme"
)

// HistoryScreen displays past session entries, most recent first.
type HistoryScreen struct {
	lib      *library.Library
	items    []library.HistoryItem
	selected int
	expanded map[int]bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(lib *library.Library) *HistoryScreen {
	return &HistoryScreen{
		lib:      lib,
		items:    lib.History(),
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return nil
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "D", Description: "Delete"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(s.items)-1 {
			s.selected++
		}
	case "enter":
		s.expanded[s.selected] = !s.expanded[s.selected]
	case "d", "D":
		if s.selected < len(s.items) {
			if err := s.lib.RemoveHistory(context.Background(), s.items[s.selected].ID); err != nil {
				s.errMsg = err.Error()
			}
			s.items = s.lib.History()
			s.expanded = make(map[int]bool)
			if s.selected >= len(s.items) && s.selected > 0 {
				s.selected--
			}
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if len(s.items) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No sessions yet. Start studying!")
	}

	var b strings.Builder
	b.WriteString("\n")

	if s.errMsg != "" {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Error).
				Render("Could not save the change: "+s.errMsg)))
		b.WriteString("\n\n")
	}

	for i, item := range s.items {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %-11s %-24s %s",
			prefix, item.Date, item.Mode, truncate(item.Topic, 24), item.Score)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.TextDim).
					Render(fmt.Sprintf("    total time %s", formatSeconds(item.Details.TotalTime)))))
			b.WriteString("\n")
			if len(item.Details.TimePerQuestion) > 0 {
				parts := make([]string, 0, len(item.Details.TimePerQuestion))
				for qi, secs := range item.Details.TimePerQuestion {
					parts = append(parts, fmt.Sprintf("Q%d %ds", qi+1, secs))
				}
				b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
					lipgloss.NewStyle().Foreground(theme.TextDim).
						Render("    "+strings.Join(parts, "  "))))
				b.WriteString("\n")
			}
		}
	}

	return b.String()
}

func formatSeconds(secs int) string {
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
