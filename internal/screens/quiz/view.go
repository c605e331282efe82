package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/dsilva/studium/internal/ui/components"
	"github.com/dsilva/studium/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, s.errMsg)
	}
	if !s.started {
		return renderLoading(width)
	}
	if s.overlay {
		return s.renderPauseOverlay(width)
	}
	return s.renderQuestion(width)
}

func (s *QuizScreen) renderQuestion(width int) string {
	q, ok := s.ctrl.Current()
	if !ok {
		return renderLoading(width)
	}

	var b strings.Builder

	// Info line: topic on the left, position, score and timer on the right.
	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  %s", s.ctrl.Topic()))

	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Q %d/%d  %s %d  %s",
			s.ctrl.Cursor()+1,
			s.ctrl.Len(),
			lipgloss.NewStyle().Foreground(theme.Success).Render("✓"),
			s.ctrl.Score(),
			formatTimer(s.ctrl.TimeRemaining()),
		))

	infoLine := infoLeft
	rightPad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4
	if rightPad > 0 {
		infoLine += strings.Repeat(" ", rightPad) + infoRight
	}

	b.WriteString(infoLine)
	b.WriteString("\n")

	answered := 0
	for i := 0; i < s.ctrl.Len(); i++ {
		if s.ctrl.Answered(i) {
			answered++
		}
	}
	bar := components.NewProgressBar("", float64(answered)/float64(s.ctrl.Len()), false, width-8)
	b.WriteString("  " + bar.View())
	b.WriteString("\n\n")

	questionStyle := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true)
	b.WriteString(questionStyle.Render(q.Text))
	b.WriteString("\n\n")

	switch {
	case s.ctrl.Evaluating():
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Italic(true).
			Render("Checking your answer..."))
	case s.ctrl.Answered(s.ctrl.Cursor()):
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("Answered — Tab moves to the next open question."))
	case s.mcActive:
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.mc.View()))
	default:
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Render("Answer: " + s.input.View()))
	}

	b.WriteString("\n\n")
	b.WriteString(s.renderLastVerdict(width))

	if s.notice != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Accent).
			Render(s.notice))
	}

	return b.String()
}

// renderLastVerdict shows the most recent record's outcome.
func (s *QuizScreen) renderLastVerdict(width int) string {
	records := s.ctrl.Records()
	if len(records) == 0 {
		return ""
	}
	last := records[len(records)-1]

	var line string
	if last.Correct {
		line = lipgloss.NewStyle().
			Foreground(theme.Success).
			Bold(true).
			Render("✓ Correct")
	} else {
		line = lipgloss.NewStyle().
			Foreground(theme.Error).
			Bold(true).
			Render("✗ Not quite")
	}
	if last.Feedback != "" {
		line += lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render("  " + last.Feedback)
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, line)
}

func (s *QuizScreen) renderPauseOverlay(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("Session paused"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%s left on the clock.", formatTimer(s.ctrl.TimeRemaining()))))
	b.WriteString("\n\n")

	for _, opt := range []string{
		"[Enter] Resume",
		"[L] Leave — come back to this topic later",
		"[N] New questions on the same topic",
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

func renderLoading(width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n\n\n  Preparing your questions...")
}

func renderError(width int, errMsg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  Could not start the session: %s\n\n  Press any key to go back.", errMsg))
}
