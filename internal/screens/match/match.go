// Package match hosts the term/definition matching game. Board state
// and scoring live in the match controller; the screen renders the two
// columns and forwards pick attempts.
package match

import (
	"context"
	"errors"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/dsilva/studium/internal/exercise"
	"github.com/dsilva/studium/internal/router"
	"github.com/dsilva/studium/internal/screen"
	"github.com/dsilva/studium/internal/screens/summary"
	"github.com/dsilva/studium/internal/session"
	"github.com/dsilva/studium/internal/ui/layout"
)

const (
	colTerms = 0
	colDefs  = 1
)

// startedMsg is sent when Start (or Regenerate) has finished.
type startedMsg struct {
	Err error
}

// uiTickMsg drives the once-per-second redraw of the countdown.
type uiTickMsg time.Time

// MatchScreen implements screen.Screen for matching sessions.
type MatchScreen struct {
	ctrl  *session.MatchController
	topic string
	count int
	secs  int

	// replay holds a saved pair set; when present the session starts
	// over it instead of generating new items.
	replay []exercise.Pair

	column  int
	termIdx int
	defIdx  int

	// pickedTerm is the term awaiting a definition pick, "" when none.
	pickedTerm string

	started  bool
	overlay  bool
	finished bool
	notice   string
	errMsg   string
}

var _ screen.Screen = (*MatchScreen)(nil)
var _ screen.KeyHintProvider = (*MatchScreen)(nil)

// New creates a screen that will start (or resume) a matching session.
func New(ctrl *session.MatchController, topic string, count, seconds int) *MatchScreen {
	return &MatchScreen{
		ctrl:  ctrl,
		topic: topic,
		count: count,
		secs:  seconds,
	}
}

// NewReplay creates a screen that replays a saved pair set.
func NewReplay(ctrl *session.MatchController, topic string, pairs []exercise.Pair, seconds int) *MatchScreen {
	return &MatchScreen{
		ctrl:   ctrl,
		topic:  topic,
		count:  len(pairs),
		secs:   seconds,
		replay: pairs,
	}
}

func (s *MatchScreen) Title() string {
	return "Matching"
}

// CapturesEsc keeps the global esc-pops-screen rule out of a live game.
func (s *MatchScreen) CapturesEsc() bool {
	return s.errMsg == ""
}

func (s *MatchScreen) Init() tea.Cmd {
	return tea.Batch(s.startCmd(), tickCmd())
}

func (s *MatchScreen) KeyHints() []layout.KeyHint {
	if s.overlay {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Resume"},
			{Key: "L", Description: "Leave (keep progress)"},
			{Key: "N", Description: "New board"},
			{Key: "G", Description: "Give up"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Pick"},
		{Key: "Tab", Description: "Switch column"},
		{Key: "Esc", Description: "Pause"},
	}
}

func (s *MatchScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case startedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.started = true
		s.overlay = false
		s.column = colTerms
		s.termIdx, s.defIdx = 0, 0
		s.pickedTerm = ""
		return s, nil

	case uiTickMsg:
		if cmd := s.maybeFinish(); cmd != nil {
			return s, cmd
		}
		return s, tickCmd()

	case tea.KeyMsg:
		return s.handleKey(msg.String())
	}

	return s, nil
}

func (s *MatchScreen) handleKey(key string) (screen.Screen, tea.Cmd) {
	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	if !s.started {
		return s, nil
	}
	if s.overlay {
		return s.handleOverlayKey(key)
	}

	switch key {
	case "esc":
		if err := s.ctrl.Pause(); err == nil {
			s.overlay = true
		}
		return s, nil
	case "tab", "left", "right":
		s.column = 1 - s.column
		return s, nil
	case "up", "k":
		s.move(-1)
		return s, nil
	case "down", "j":
		s.move(1)
		return s, nil
	case "enter", " ":
		return s.pick()
	}

	return s, nil
}

func (s *MatchScreen) handleOverlayKey(key string) (screen.Screen, tea.Cmd) {
	switch key {
	case "enter", "esc":
		if err := s.ctrl.Resume(); err == nil {
			// Resume reshuffles the board; start from the top.
			s.overlay = false
			s.termIdx, s.defIdx = 0, 0
			s.pickedTerm = ""
		}
		return s, nil
	case "l", "L":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "g", "G":
		s.ctrl.GiveUp()
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "n", "N":
		s.overlay = false
		s.started = false
		return s, s.regenerateCmd()
	}
	return s, nil
}

// move shifts the cursor in the active column, skipping matched cards.
func (s *MatchScreen) move(delta int) {
	cards, idx := s.activeColumn()
	for i := idx + delta; i >= 0 && i < len(cards); i += delta {
		if !s.cardMatched(s.column, cards[i]) {
			s.setActiveIndex(i)
			return
		}
	}
}

func (s *MatchScreen) activeColumn() ([]string, int) {
	if s.column == colTerms {
		return s.ctrl.Terms(), s.termIdx
	}
	return s.ctrl.Definitions(), s.defIdx
}

func (s *MatchScreen) setActiveIndex(i int) {
	if s.column == colTerms {
		s.termIdx = i
	} else {
		s.defIdx = i
	}
}

func (s *MatchScreen) cardMatched(column int, card string) bool {
	if column == colTerms {
		return s.ctrl.MatchedTerm(card)
	}
	return s.ctrl.MatchedDefinition(card)
}

// pick selects a term, or attempts a match once both sides are chosen.
func (s *MatchScreen) pick() (screen.Screen, tea.Cmd) {
	cards, idx := s.activeColumn()
	if idx < 0 || idx >= len(cards) {
		return s, nil
	}
	card := cards[idx]
	if s.cardMatched(s.column, card) {
		return s, nil
	}

	if s.column == colTerms {
		s.pickedTerm = card
		s.column = colDefs
		s.notice = ""
		return s, nil
	}

	if s.pickedTerm == "" {
		s.notice = "Pick a term first."
		s.column = colTerms
		return s, nil
	}

	correct, err := s.ctrl.Attempt(s.pickedTerm, card)
	switch {
	case errors.Is(err, session.ErrCardUnavailable):
		s.notice = "That card is already matched."
	case err != nil:
		s.notice = err.Error()
	case correct:
		s.notice = ""
	default:
		s.notice = "Not a match — try again."
	}

	s.pickedTerm = ""
	s.column = colTerms
	if cmd := s.maybeFinish(); cmd != nil {
		return s, cmd
	}
	return s, nil
}

// maybeFinish swaps in the summary screen once the board is done.
func (s *MatchScreen) maybeFinish() tea.Cmd {
	if s.finished {
		return nil
	}
	st := s.ctrl.State()
	if st != session.StateCompleted && st != session.StateReported {
		return nil
	}
	s.finished = true
	total := s.ctrl.TotalPairs()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: summary.New(s.ctrl, total)}
	}
}

func (s *MatchScreen) startCmd() tea.Cmd {
	ctrl, topic, count, secs := s.ctrl, s.topic, s.count, s.secs
	if s.replay != nil {
		pairs := s.replay
		return func() tea.Msg {
			return startedMsg{Err: ctrl.StartWith(topic, pairs, secs)}
		}
	}
	return func() tea.Msg {
		return startedMsg{Err: ctrl.Start(context.Background(), topic, count, secs)}
	}
}

func (s *MatchScreen) regenerateCmd() tea.Cmd {
	ctrl := s.ctrl
	return func() tea.Msg {
		return startedMsg{Err: ctrl.Regenerate(context.Background())}
	}
}

// tickCmd returns a 1-second tick command.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return uiTickMsg(t)
	})
}
