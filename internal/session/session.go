// Package session implements the timed study session state machines: a
// cursor controller for the two quiz modes and a board controller for
// the matching game. Both share the same lifecycle:
//
//	Setup → Running ⇄ Paused → Completed → Reported
//
// Completion writes a history entry before anything else, then requests
// a performance report asynchronously. A controller is safe for use
// from the host event loop, the clock goroutine and a submitting
// goroutine at once.
package session

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/dsilva/studium/internal/clock"
	"github.com/dsilva/studium/internal/exercise"
	"github.com/dsilva/studium/internal/judge"
	"github.com/dsilva/studium/internal/library"
	"github.com/dsilva/studium/internal/report"
)

// State is a controller's lifecycle phase.
type State int

const (
	StateSetup State = iota
	StateRunning
	StatePaused
	StateCompleted
	StateReported
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateSetup:
		return "setup"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateCompleted:
		return "completed"
	case StateReported:
		return "reported"
	}
	return "unknown"
}

// Record is one resolved submission. Records are append-only and kept
// in the order submissions resolve; they are never mutated afterwards.
type Record struct {
	Question  exercise.Question
	Answer    string
	Correct   bool
	Feedback  string
	TimeTaken int // seconds spent before this submission resolved
}

// Deps are the collaborators a controller is constructed with.
type Deps struct {
	Clock     clock.Clock
	Generator exercise.Generator
	Judge     judge.Judge
	Reporter  report.Reporter
	Library   *library.Library
	Logger    *zap.Logger
}

var (
	// ErrSessionActive is returned by Start while a session is running.
	ErrSessionActive = errors.New("session already active")
	// ErrNotRunning is returned by operations that need a running session.
	ErrNotRunning = errors.New("session is not running")
	// ErrNotPaused is returned by Resume outside the paused state.
	ErrNotPaused = errors.New("session is not paused")
	// ErrEvaluating is returned while a submission is being judged.
	ErrEvaluating = errors.New("an answer is being evaluated")
	// ErrEmptyAnswer is returned for blank submissions; no record is made.
	ErrEmptyAnswer = errors.New("answer is empty")
	// ErrAlreadyAnswered is returned when the current question has a record.
	ErrAlreadyAnswered = errors.New("question already answered")
	// ErrCardUnavailable is returned for attempts on matched or unknown cards.
	ErrCardUnavailable = errors.New("card is not in play")
	// ErrNotCompleted is returned by SaveExercise before the session finishes.
	ErrNotCompleted = errors.New("session is not completed")
	// ErrNoReport is returned by SaveReport while no artifact is available.
	ErrNoReport = errors.New("no report available")
)

// base holds the lifecycle state shared by both controllers. Methods
// with the Locked suffix require the caller to hold mu.
type base struct {
	mu sync.Mutex

	clock    clock.Clock
	gen      exercise.Generator
	reporter report.Reporter
	lib      *library.Library
	logger   *zap.Logger

	state State

	// epoch increments whenever the session is discarded, so async
	// report results for a dead session are dropped.
	epoch int

	topic     string
	count     int
	duration  int
	remaining int
	records   []Record

	handle clock.Handle

	reportArt *report.Artifact
	reportErr error
}

func newBase(deps Deps) base {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return base{
		clock:    deps.Clock,
		gen:      deps.Generator,
		reporter: deps.Reporter,
		lib:      deps.Library,
		logger:   logger,
		state:    StateSetup,
	}
}

// startClockLocked stops any active handle first, so a controller never
// holds two ticking handles.
func (b *base) startClockLocked(onTick func()) {
	b.stopClockLocked()
	b.handle = b.clock.Start(onTick)
}

func (b *base) stopClockLocked() {
	if b.handle != nil {
		b.clock.Stop(b.handle)
		b.handle = nil
	}
}

func (b *base) elapsedLocked() int {
	return b.duration - b.remaining
}

// writeHistoryLocked records the finished session. History is the first
// side effect of completion; the report comes after and never blocks it.
func (b *base) writeHistoryLocked(mode exercise.Mode, score string, perQuestion []int) {
	if b.lib == nil {
		return
	}
	item := library.HistoryItem{
		Mode:  mode.DisplayName(),
		Topic: b.topic,
		Score: score,
		Details: &library.HistoryDetails{
			TotalTime:       b.elapsedLocked(),
			TimePerQuestion: perQuestion,
		},
	}
	if _, err := b.lib.AddHistory(context.Background(), item); err != nil {
		b.logger.Warn("history write failed",
			zap.String("topic", b.topic),
			zap.Error(err),
		)
	}
}

// generateReportLocked requests the performance report in the
// background. The session stays usable in Completed whether or not the
// report ever arrives; a result for a discarded session is dropped. The
// artifact is held in memory only; SaveReport persists it on request.
func (b *base) generateReportLocked(in report.Input) {
	if b.reporter == nil {
		return
	}
	epoch := b.epoch
	go func() {
		art, err := b.reporter.Generate(context.Background(), in)

		b.mu.Lock()
		defer b.mu.Unlock()
		if b.epoch != epoch {
			return
		}
		if err != nil {
			b.logger.Warn("report generation failed",
				zap.String("topic", in.Topic),
				zap.Error(err),
			)
			b.reportErr = err
			return
		}
		b.reportArt = art
		if b.state == StateCompleted {
			b.state = StateReported
		}
	}()
}

// SaveReport writes the generated report to the library's reports
// collection. Reports are never persisted without this call.
func (b *base) SaveReport(ctx context.Context) error {
	b.mu.Lock()
	art := b.reportArt
	topic := b.topic
	lib := b.lib
	b.mu.Unlock()

	if art == nil {
		return ErrNoReport
	}
	if lib == nil {
		return nil
	}
	saved := library.SavedReport{
		Topic:   topic,
		Mode:    art.Mode,
		Content: art.Content,
	}
	_, err := lib.AddReport(ctx, saved)
	return err
}

// resetLocked discards all session state and returns to Setup. Nothing
// is persisted.
func (b *base) resetLocked() {
	b.stopClockLocked()
	b.epoch++
	b.state = StateSetup
	b.topic = ""
	b.count = 0
	b.duration = 0
	b.remaining = 0
	b.records = nil
	b.reportArt = nil
	b.reportErr = nil
}

// State returns the current lifecycle state.
func (b *base) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Topic returns the active session's topic, or "" in Setup.
func (b *base) Topic() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.topic
}

// Duration returns the session's initial duration in seconds.
func (b *base) Duration() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.duration
}

// TimeRemaining returns the seconds left on the countdown.
func (b *base) TimeRemaining() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.remaining
}

// Records returns a copy of the resolved submissions, in resolution
// order.
func (b *base) Records() []Record {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Record(nil), b.records...)
}

// Score returns the count of correct records.
func (b *base) Score() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return countCorrect(b.records)
}

// Report returns the performance report once available, or the error
// that prevented it. Both are nil while generation is still pending.
func (b *base) Report() (*report.Artifact, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.reportArt, b.reportErr
}

func countCorrect(records []Record) int {
	n := 0
	for _, r := range records {
		if r.Correct {
			n++
		}
	}
	return n
}

func resultsFromRecords(records []Record) []report.QuestionResult {
	out := make([]report.QuestionResult, len(records))
	for i, r := range records {
		out[i] = report.QuestionResult{
			Question:  r.Question.Text,
			Answer:    r.Answer,
			Correct:   r.Correct,
			Feedback:  r.Feedback,
			TimeTaken: r.TimeTaken,
		}
	}
	return out
}
