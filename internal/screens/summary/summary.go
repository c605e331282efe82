// Package summary shows the outcome of a finished session and the
// AI-written report once it arrives.
package summary

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/dsilva/studium/internal/exercise"
	"github.com/dsilva/studium/internal/report"
	"github.com/dsilva/studium/internal/router"
	"github.com/dsilva/studium/internal/screen"
	"github.com/dsilva/studium/internal/session"
	"github.com/dsilva/studium/internal/ui/layout"
	"github.com/dsilva/studium/internal/ui/theme"
)

// Source is the finished controller the summary reads from. Both the
// question and matching controllers satisfy it.
type Source interface {
	State() session.State
	Topic() string
	Mode() exercise.Mode
	Records() []session.Record
	Report() (*report.Artifact, error)
	SaveExercise(ctx context.Context, name string) error
	SaveReport(ctx context.Context) error
}

// reportTickMsg polls for the asynchronously generated report.
type reportTickMsg time.Time

// SummaryScreen displays the session result.
type SummaryScreen struct {
	src         Source
	total       int
	saved       bool
	reportSaved bool
	notice      string
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a summary over a completed session. total is the number
// of questions or pairs the session held.
func New(src Source, total int) *SummaryScreen {
	return &SummaryScreen{src: src, total: total}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return reportTick()
}

func (s *SummaryScreen) Title() string {
	return "Session Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "S", Description: "Save for replay"},
		{Key: "R", Description: "Save report"},
		{Key: "Enter", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case reportTickMsg:
		if s.reportPending() {
			return s, reportTick()
		}
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "s", "S":
			if s.saved {
				return s, nil
			}
			if err := s.src.SaveExercise(context.Background(), s.src.Topic()); err != nil {
				s.notice = "Could not save: " + err.Error()
				return s, nil
			}
			s.saved = true
			s.notice = "Saved to your library for replay."
			return s, nil
		case "r", "R":
			if s.reportSaved {
				return s, nil
			}
			if err := s.src.SaveReport(context.Background()); err != nil {
				if errors.Is(err, session.ErrNoReport) {
					s.notice = "The report is not ready yet."
				} else {
					s.notice = "Could not save: " + err.Error()
				}
				return s, nil
			}
			s.reportSaved = true
			s.notice = "Report saved to your library."
			return s, nil
		}
	}
	return s, nil
}

// reportPending reports whether the artifact is still being written.
func (s *SummaryScreen) reportPending() bool {
	if s.src.State() == session.StateReported {
		return false
	}
	_, err := s.src.Report()
	return err == nil
}

func (s *SummaryScreen) View(width, height int) string {
	records := s.src.Records()
	correct := 0
	for _, r := range records {
		if r.Correct {
			correct++
		}
	}

	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("Session complete!"))
	b.WriteString("\n\n")

	scoreLabel := "Score"
	if s.src.Mode() == exercise.ModeMatch {
		scoreLabel = "Matched"
	}
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(fmt.Sprintf("%s  %s: %d/%d", s.src.Topic(), scoreLabel, correct, s.total)))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 60)))

	// Per-item outcomes. Matching shows attempts, quizzes show questions.
	if len(records) > 0 {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
		b.WriteString("\n")
		for _, r := range records {
			mark := lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
			if !r.Correct {
				mark = lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
			}
			line := fmt.Sprintf("%s %s  (%ds)", mark, truncate(r.Question.Text, width-16), r.TimeTaken)
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.Text).Render(line)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")
	b.WriteString(s.renderReport(width))

	if s.notice != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Secondary).
			Render(s.notice))
	}

	return b.String()
}

func (s *SummaryScreen) renderReport(width int) string {
	art, err := s.src.Report()
	if err != nil {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Italic(true).
			Render("The session report could not be generated.")
	}
	if art == nil {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Italic(true).
			Render("Writing your session report...")
	}

	body := lipgloss.NewStyle().
		Width(min(width-8, 76)).
		Foreground(theme.Text).
		Render(art.Content)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, body)
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

func reportTick() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return reportTickMsg(t)
	})
}
