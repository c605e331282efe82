// Package quiz hosts a question session (quiz or mixed mode) behind a
// long-lived session controller. The screen only forwards intents; all
// session rules live in the controller.
package quiz

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
	"github.com/dsilva/studium/internal/ui/components"
	"github.com/dsilva/studium/internal/ui/layout"
)

// QuizScreen implements screen.Screen for quiz and mixed sessions.
type QuizScreen struct {
	ctrl  *session.Controller
	topic string
	count int
	secs  int

	// replay holds a saved question set; when present the session
	// starts over it instead of generating new items.
	replay []exercise.Question

	input    components.TextInput
	mc       components.MultiChoice
	mcActive bool

	started  bool
	overlay  bool // pause overlay showing
	finished bool // summary already pushed
	notice   string
	errMsg   string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New creates a screen that will start (or resume) a session on the
// given controller.
func New(ctrl *session.Controller, topic string, count, seconds int) *QuizScreen {
	return &QuizScreen{
		ctrl:  ctrl,
		topic: topic,
		count: count,
		secs:  seconds,
	}
}

// NewReplay creates a screen that replays a saved question set.
func NewReplay(ctrl *session.Controller, topic string, questions []exercise.Question, seconds int) *QuizScreen {
	return &QuizScreen{
		ctrl:   ctrl,
		topic:  topic,
		count:  len(questions),
		secs:   seconds,
		replay: questions,
	}
}

func (s *QuizScreen) Title() string {
	return s.ctrl.Mode().DisplayName()
}

// CapturesEsc keeps the global esc-pops-screen rule out of a live
// session; esc opens the pause overlay instead.
func (s *QuizScreen) CapturesEsc() bool {
	return s.errMsg == ""
}

func (s *QuizScreen) Init() tea.Cmd {
	return tea.Batch(s.startCmd(), tickCmd())
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	if s.overlay {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Resume"},
			{Key: "L", Description: "Leave (keep progress)"},
			{Key: "N", Description: "New questions"},
			{Key: "G", Description: "Give up"},
		}
	}
	if s.ctrl.Evaluating() {
		return []layout.KeyHint{
			{Key: "...", Description: "Checking your answer"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Submit"},
		{Key: "Tab", Description: "Skip"},
		{Key: "Esc", Description: "Pause"},
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case startedMsg:
		return s.handleStarted(msg)

	case verdictMsg:
		return s.handleVerdict(msg)

	case pausedMsg:
		if msg.Err == nil {
			s.overlay = true
		}
		return s, nil

	case uiTickMsg:
		if cmd := s.maybeFinish(); cmd != nil {
			return s, cmd
		}
		return s, tickCmd()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	return s.forwardToWidget(msg)
}

func (s *QuizScreen) handleStarted(msg startedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	s.started = true
	s.overlay = false
	s.syncWidgets()
	return s, s.input.Init()
}

func (s *QuizScreen) handleVerdict(msg verdictMsg) (screen.Screen, tea.Cmd) {
	switch {
	case msg.Err == nil:
		s.notice = ""
	case errors.Is(msg.Err, session.ErrEmptyAnswer):
		s.notice = "Type an answer first."
	case errors.Is(msg.Err, session.ErrAlreadyAnswered):
		s.notice = "Already answered — Tab moves on."
	case errors.Is(msg.Err, session.ErrEvaluating):
		s.notice = "Hold on, still checking."
	case errors.Is(msg.Err, session.ErrNotRunning):
		// Session ended while the submission was in flight.
	default:
		s.notice = msg.Err.Error()
	}

	if cmd := s.maybeFinish(); cmd != nil {
		return s, cmd
	}
	s.syncWidgets()
	return s, s.input.Init()
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	// Generation failed; any key goes back.
	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	if !s.started {
		return s, nil
	}

	if s.overlay {
		return s.handleOverlayKey(key)
	}

	// Submissions are one at a time; ignore input while judging.
	if s.ctrl.Evaluating() {
		return s, nil
	}

	switch key {
	case "esc":
		return s, s.pauseCmd()
	case "enter":
		return s, s.submitCmd()
	case "tab":
		if err := s.ctrl.Next(); err == nil {
			s.syncWidgets()
		}
		if cmd := s.maybeFinish(); cmd != nil {
			return s, cmd
		}
		return s, s.input.Init()
	case "shift+tab":
		if err := s.ctrl.Prev(); err == nil {
			s.syncWidgets()
		}
		return s, s.input.Init()
	}

	return s.forwardToWidget(msg)
}

func (s *QuizScreen) handleOverlayKey(key string) (screen.Screen, tea.Cmd) {
	switch key {
	case "enter", "esc":
		if err := s.ctrl.Resume(); err == nil {
			s.overlay = false
		}
		return s, nil
	case "l", "L":
		// Stays paused; re-entering the same topic resumes it.
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

func (s *QuizScreen) forwardToWidget(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if !s.started || s.overlay {
		return s, nil
	}
	var cmd tea.Cmd
	if s.mcActive {
		s.mc, cmd = s.mc.Update(msg)
	} else {
		s.input, cmd = s.input.Update(msg)
	}
	return s, cmd
}

// syncWidgets rebuilds the answer widget for the current question.
func (s *QuizScreen) syncWidgets() {
	q, ok := s.ctrl.Current()
	if !ok {
		return
	}
	if q.Kind == exercise.KindMultipleChoice {
		s.mcActive = true
		s.mc = components.NewMultiChoice(s.ctrl.DisplayOptions())
	} else {
		s.mcActive = false
		s.input = components.NewTextInput("Type your answer...", false, 80)
	}
}

// maybeFinish swaps in the summary screen once the session completes.
func (s *QuizScreen) maybeFinish() tea.Cmd {
	if s.finished {
		return nil
	}
	st := s.ctrl.State()
	if st != session.StateCompleted && st != session.StateReported {
		return nil
	}
	s.finished = true
	total := s.ctrl.Len()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: summary.New(s.ctrl, total)}
	}
}

func (s *QuizScreen) startCmd() tea.Cmd {
	ctrl, topic, count, secs := s.ctrl, s.topic, s.count, s.secs
	if s.replay != nil {
		questions := s.replay
		return func() tea.Msg {
			return startedMsg{Err: ctrl.StartWith(topic, questions, secs)}
		}
	}
	return func() tea.Msg {
		return startedMsg{Err: ctrl.Start(context.Background(), topic, count, secs)}
	}
}

func (s *QuizScreen) regenerateCmd() tea.Cmd {
	ctrl := s.ctrl
	return func() tea.Msg {
		return startedMsg{Err: ctrl.Regenerate(context.Background())}
	}
}

func (s *QuizScreen) submitCmd() tea.Cmd {
	var answer string
	if s.mcActive {
		answer = s.mc.Value()
	} else {
		answer = s.input.Value()
	}
	s.mc.Locked = true
	ctrl := s.ctrl
	return func() tea.Msg {
		return verdictMsg{Err: ctrl.Submit(context.Background(), answer)}
	}
}

func (s *QuizScreen) pauseCmd() tea.Cmd {
	ctrl := s.ctrl
	return func() tea.Msg {
		return pausedMsg{Err: ctrl.Pause()}
	}
}

// tickCmd returns a 1-second tick command.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return uiTickMsg(t)
	})
}
