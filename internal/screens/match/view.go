package match

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/dsilva/studium/internal/ui/components"
	"github.com/dsilva/studium/internal/ui/theme"
)

func (s *MatchScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render(fmt.Sprintf("\n\n\n  Could not start the game: %s\n\n  Press any key to go back.", s.errMsg))
	}
	if !s.started {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n\n  Building the board...")
	}
	if s.overlay {
		return s.renderPauseOverlay(width)
	}
	return s.renderBoard(width)
}

func (s *MatchScreen) renderBoard(width int) string {
	var b strings.Builder

	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  %s", s.ctrl.Topic()))

	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Matched %d/%d  %s",
			s.ctrl.MatchedPairs(),
			s.ctrl.TotalPairs(),
			formatTimer(s.ctrl.TimeRemaining()),
		))

	infoLine := infoLeft
	rightPad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4
	if rightPad > 0 {
		infoLine += strings.Repeat(" ", rightPad) + infoRight
	}
	b.WriteString(infoLine)
	b.WriteString("\n")

	total := s.ctrl.TotalPairs()
	var pct float64
	if total > 0 {
		pct = float64(s.ctrl.MatchedPairs()) / float64(total)
	}
	bar := components.NewProgressBar("", pct, false, width-8)
	b.WriteString("  " + bar.View())
	b.WriteString("\n\n")

	colWidth := (width - 8) / 2
	terms := s.renderColumn("Terms", s.ctrl.Terms(), colTerms, s.termIdx, colWidth)
	defs := s.renderColumn("Definitions", s.ctrl.Definitions(), colDefs, s.defIdx, colWidth)
	board := lipgloss.JoinHorizontal(lipgloss.Top, terms, "    ", defs)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, board))
	b.WriteString("\n\n")

	if s.pickedTerm != "" {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Accent).
			Render(fmt.Sprintf("Matching %q — pick its definition.", s.pickedTerm)))
		b.WriteString("\n")
	}

	if s.notice != "" {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render(s.notice))
		b.WriteString("\n")
	}

	return b.String()
}

func (s *MatchScreen) renderColumn(title string, cards []string, column, cursor, colWidth int) string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Bold(true).
		Render(title))
	b.WriteString("\n")

	active := s.column == column && !s.overlay

	for i, card := range cards {
		matched := s.cardMatched(column, card)
		picked := column == colTerms && card == s.pickedTerm

		prefix := "  "
		if active && i == cursor && !matched {
			prefix = "▸ "
		}

		style := lipgloss.NewStyle().Foreground(theme.Text).Width(colWidth)
		switch {
		case matched:
			style = style.Foreground(theme.TextDim).Strikethrough(true)
		case picked:
			style = style.Foreground(theme.Accent).Bold(true)
		case active && i == cursor:
			style = style.Foreground(theme.Primary).Bold(true)
		}

		b.WriteString(style.Render(prefix + card))
		b.WriteString("\n")
	}

	return b.String()
}

func (s *MatchScreen) renderPauseOverlay(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("Game paused"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%d of %d matched, %s left. Unmatched cards reshuffle on resume.",
			s.ctrl.MatchedPairs(), s.ctrl.TotalPairs(), formatTimer(s.ctrl.TimeRemaining()))))
	b.WriteString("\n\n")

	for _, opt := range []string{
		"[Enter] Resume",
		"[L] Leave — come back to this topic later",
		"[N] New board on the same topic",
		"[G] Give up",
	} {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Primary).
			Render(opt))
		b.WriteString("\n")
	}

	return b.String()
}

func formatTimer(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
