package session

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/dsilva/studium/internal/exercise"
	"github.com/dsilva/studium/internal/judge"
	"github.com/dsilva/studium/internal/library"
	"github.com/dsilva/studium/internal/report"
)

// Controller runs the two cursor-based modes: Quiz (every answer goes
// to the judge) and Mixed Quiz (grading depends on the question kind).
//
// One submission is evaluated at a time. While a verdict is pending,
// Submit, Next and Prev return ErrEvaluating; Pause and GiveUp wait for
// the verdict so the record lands before the session leaves Running.
type Controller struct {
	base
	cond *sync.Cond

	mode   exercise.Mode
	judge  judge.Judge
	grader grader

	questions    []exercise.Question
	cursor       int
	answered     []bool
	questionMark int // remaining when the current question was shown

	judging bool

	// expired is set when the countdown hits zero while a verdict is
	// pending; the resolved submission decides how the session ends.
	expired bool

	snapshot *Snapshot
}

// NewQuiz creates a controller for the open-answer quiz mode.
func NewQuiz(deps Deps) *Controller {
	return newController(deps, exercise.ModeQuiz, judgeAllGrader{})
}

// NewMixed creates a controller for the mixed-type quiz mode.
func NewMixed(deps Deps) *Controller {
	return newController(deps, exercise.ModeMixed, byKindGrader{})
}

func newController(deps Deps, mode exercise.Mode, g grader) *Controller {
	c := &Controller{
		base:   newBase(deps),
		mode:   mode,
		judge:  deps.Judge,
		grader: g,
	}
	c.cond = sync.NewCond(&c.mu)
	return c
}

// Mode returns the controller's exercise mode.
func (c *Controller) Mode() exercise.Mode { return c.mode }

// Start begins a session. If the controller holds a paused session for
// the same topic it resumes that session instead of generating new
// items; a paused session for a different topic is discarded. A
// generation failure leaves the controller in Setup and is retryable.
func (c *Controller) Start(ctx context.Context, topic string, count, durationSeconds int) error {
	c.mu.Lock()
	switch c.state {
	case StateRunning:
		c.mu.Unlock()
		return ErrSessionActive
	case StatePaused:
		if c.snapshot != nil && c.snapshot.Topic == topic {
			c.resumeLocked()
			c.mu.Unlock()
			return nil
		}
		c.discardLocked()
	case StateCompleted, StateReported:
		c.discardLocked()
	}
	c.mu.Unlock()

	set, err := c.gen.Generate(ctx, topic, count, c.mode)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.beginLocked(topic, count, durationSeconds, set.Questions)
	return nil
}

// StartWith begins a session over a pre-built question list, used when
// replaying a saved exercise. Any paused session is discarded.
func (c *Controller) StartWith(topic string, questions []exercise.Question, durationSeconds int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateRunning {
		return ErrSessionActive
	}
	c.discardLocked()
	c.beginLocked(topic, len(questions), durationSeconds, questions)
	return nil
}

func (c *Controller) beginLocked(topic string, count, durationSeconds int, questions []exercise.Question) {
	c.topic = topic
	c.count = count
	c.duration = durationSeconds
	c.remaining = durationSeconds
	c.questions = append([]exercise.Question(nil), questions...)
	c.cursor = 0
	c.answered = make([]bool, len(questions))
	c.records = nil
	c.questionMark = durationSeconds
	c.expired = false
	c.reportArt = nil
	c.reportErr = nil
	c.state = StateRunning
	c.startClockLocked(c.onTick)
}

func (c *Controller) onTick() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateRunning {
		return
	}
	if c.remaining > 0 {
		c.remaining--
	}
	if c.remaining > 0 {
		return
	}
	if c.judging {
		c.expired = true
		return
	}
	c.completeLocked(true)
}

// Submit grades the current question's answer and appends its record.
// The call blocks until the verdict resolves; the countdown keeps
// running meanwhile. Submitting the last question completes the
// session, and a submission in flight when time runs out still counts.
func (c *Controller) Submit(ctx context.Context, answer string) error {
	c.mu.Lock()
	if c.state != StateRunning {
		c.mu.Unlock()
		return ErrNotRunning
	}
	if c.judging {
		c.mu.Unlock()
		return ErrEvaluating
	}
	if strings.TrimSpace(answer) == "" {
		c.mu.Unlock()
		return ErrEmptyAnswer
	}
	idx := c.cursor
	if c.answered[idx] {
		c.mu.Unlock()
		return ErrAlreadyAnswered
	}
	q := c.questions[idx]
	mark := c.questionMark
	c.judging = true
	c.mu.Unlock()

	correct, feedback := c.grader.grade(ctx, c.judge, q, answer)

	c.mu.Lock()
	defer c.mu.Unlock()

	taken := mark - c.remaining
	if taken < 0 {
		taken = 0
	}
	c.records = append(c.records, Record{
		Question:  q,
		Answer:    answer,
		Correct:   correct,
		Feedback:  feedback,
		TimeTaken: taken,
	})
	c.answered[idx] = true
	c.judging = false
	c.cond.Broadcast()

	if c.allAnsweredLocked() || idx == len(c.questions)-1 {
		c.completeLocked(false)
		return nil
	}
	if c.expired {
		c.completeLocked(true)
		return nil
	}
	c.advanceLocked()
	return nil
}

// Next moves the cursor forward without answering; from the last
// question it finalizes the session.
func (c *Controller) Next() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateRunning {
		return ErrNotRunning
	}
	if c.judging {
		return ErrEvaluating
	}
	if c.cursor >= len(c.questions)-1 {
		c.completeLocked(false)
		return nil
	}
	c.cursor++
	c.questionMark = c.remaining
	return nil
}

// Prev moves the cursor back one question; unanswered questions may be
// revisited.
func (c *Controller) Prev() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateRunning {
		return ErrNotRunning
	}
	if c.judging {
		return ErrEvaluating
	}
	if c.cursor > 0 {
		c.cursor--
		c.questionMark = c.remaining
	}
	return nil
}

// Pause stops the countdown and snapshots the session. If a verdict is
// pending, Pause waits for it so the record is in place before the
// snapshot is taken.
func (c *Controller) Pause() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateRunning {
		return ErrNotRunning
	}
	for c.judging {
		c.cond.Wait()
	}
	if c.state != StateRunning {
		// The awaited submission completed the session.
		return ErrNotRunning
	}
	c.stopClockLocked()
	c.snapshot = c.captureLocked()
	c.state = StatePaused
	return nil
}

// Resume re-enters Running from a paused session and discards the
// snapshot.
func (c *Controller) Resume() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StatePaused {
		return ErrNotPaused
	}
	c.resumeLocked()
	return nil
}

func (c *Controller) resumeLocked() {
	c.snapshot = nil
	c.questionMark = c.remaining
	c.state = StateRunning
	c.startClockLocked(c.onTick)
}

// GiveUp abandons the session and returns to Setup without writing a
// history entry. Calling it on an idle controller is a no-op; a pending
// verdict is waited out, then discarded with everything else.
func (c *Controller) GiveUp() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateSetup {
		return
	}
	for c.judging {
		c.cond.Wait()
	}
	if c.state == StateSetup {
		return
	}
	c.discardLocked()
}

// Regenerate starts a fresh session with the same topic, count and
// duration. Prior records are dropped, never reused.
func (c *Controller) Regenerate(ctx context.Context) error {
	c.mu.Lock()
	topic, count, duration := c.topic, c.count, c.duration
	if topic == "" {
		c.mu.Unlock()
		return ErrNotRunning
	}
	c.discardLocked()
	c.mu.Unlock()
	return c.Start(ctx, topic, count, duration)
}

func (c *Controller) discardLocked() {
	c.resetLocked()
	c.questions = nil
	c.cursor = 0
	c.answered = nil
	c.questionMark = 0
	c.expired = false
	c.snapshot = nil
}

// allAnsweredLocked reports whether every question has a record.
func (c *Controller) allAnsweredLocked() bool {
	return len(c.records) == len(c.questions)
}

// advanceLocked moves the cursor to the next unanswered question,
// wrapping past the end if needed. Callers ensure one exists.
func (c *Controller) advanceLocked() {
	n := len(c.questions)
	for off := 1; off <= n; off++ {
		i := (c.cursor + off) % n
		if !c.answered[i] {
			c.cursor = i
			c.questionMark = c.remaining
			return
		}
	}
}

// completeLocked finishes the session: clock stopped, history written
// first, then the report requested in the background.
func (c *Controller) completeLocked(timedOut bool) {
	c.stopClockLocked()
	c.expired = false
	c.snapshot = nil

	score := fmt.Sprintf("%d/%d", countCorrect(c.records), len(c.questions))
	if timedOut {
		score += " (time expired)"
	}

	perQuestion := make([]int, len(c.records))
	for i, r := range c.records {
		perQuestion[i] = r.TimeTaken
	}
	c.writeHistoryLocked(c.mode, score, perQuestion)

	c.state = StateCompleted

	c.generateReportLocked(report.Input{
		Topic:   c.topic,
		Mode:    c.mode.DisplayName(),
		Results: resultsFromRecords(c.records),
	})
}

func (c *Controller) captureLocked() *Snapshot {
	return &Snapshot{
		Topic:           c.topic,
		Questions:       append([]exercise.Question(nil), c.questions...),
		Cursor:          c.cursor,
		Answered:        append([]bool(nil), c.answered...),
		Records:         append([]Record(nil), c.records...),
		TimeRemaining:   c.remaining,
		InitialDuration: c.duration,
	}
}

// Cursor returns the index of the current question.
func (c *Controller) Cursor() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cursor
}

// Len returns the number of questions in the session.
func (c *Controller) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.questions)
}

// Current returns the question under the cursor.
func (c *Controller) Current() (exercise.Question, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cursor >= len(c.questions) {
		return exercise.Question{}, false
	}
	return c.questions[c.cursor], true
}

// Answered reports whether question i has been answered.
func (c *Controller) Answered(i int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return i >= 0 && i < len(c.answered) && c.answered[i]
}

// Evaluating reports whether a submission verdict is pending. Hosts
// disable the answer controls while this is true.
func (c *Controller) Evaluating() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.judging
}

// Snapshot returns the paused session's snapshot, or nil.
func (c *Controller) Snapshot() *Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot
}

// SaveExercise writes the finished session's question set to the
// library under the given name, so it can be replayed later.
func (c *Controller) SaveExercise(ctx context.Context, name string) error {
	c.mu.Lock()
	if c.state != StateCompleted && c.state != StateReported {
		c.mu.Unlock()
		return ErrNotCompleted
	}
	ex := library.SavedExercise{
		Name:      name,
		Mode:      c.mode,
		Topic:     c.topic,
		Questions: append([]exercise.Question(nil), c.questions...),
	}
	lib := c.lib
	c.mu.Unlock()

	if lib == nil {
		return nil
	}
	_, err := lib.AddExercise(ctx, ex)
	return err
}

// DisplayOptions returns the current question's choices in a fresh
// random order, independent of their stored order.
func (c *Controller) DisplayOptions() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cursor >= len(c.questions) {
		return nil
	}
	opts := append([]string(nil), c.questions[c.cursor].Options...)
	rand.Shuffle(len(opts), func(i, j int) {
		opts[i], opts[j] = opts[j], opts[i]
	})
	return opts
}

