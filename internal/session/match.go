package session

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/dsilva/studium/internal/exercise"
	"github.com/dsilva/studium/internal/library"
	"github.com/dsilva/studium/internal/report"
)

// MatchController runs the matching game: all terms and definitions are
// on the board at once, each column shuffled independently. Correct
// matches are final and leave play; the session succeeds when every
// pair is matched and times out otherwise.
type MatchController struct {
	base

	pairs  []exercise.Pair
	byTerm map[string]string // term -> definition

	terms []string // display order
	defs  []string

	matchedTerms map[string]bool
	matchedDefs  map[string]bool
	matchedCount int

	attemptMark int // remaining when the previous attempt resolved

	snapshot *MatchSnapshot
}

// NewMatch creates a controller for the matching game.
func NewMatch(deps Deps) *MatchController {
	return &MatchController{base: newBase(deps)}
}

// Mode returns the controller's exercise mode.
func (m *MatchController) Mode() exercise.Mode { return exercise.ModeMatch }

// Start begins a session. A paused session for the same topic is
// resumed with its matched cards pre-solved and the rest of the board
// freshly shuffled; a paused session for a different topic is
// discarded. A generation failure leaves the controller in Setup.
func (m *MatchController) Start(ctx context.Context, topic string, count, durationSeconds int) error {
	m.mu.Lock()
	switch m.state {
	case StateRunning:
		m.mu.Unlock()
		return ErrSessionActive
	case StatePaused:
		if m.snapshot != nil && m.snapshot.Topic == topic {
			m.resumeLocked()
			m.mu.Unlock()
			return nil
		}
		m.discardLocked()
	case StateCompleted, StateReported:
		m.discardLocked()
	}
	m.mu.Unlock()

	set, err := m.gen.Generate(ctx, topic, count, exercise.ModeMatch)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.beginLocked(topic, count, durationSeconds, set.Pairs)
	return nil
}

// StartWith begins a session over a pre-built pair list, used when
// replaying a saved exercise.
func (m *MatchController) StartWith(topic string, pairs []exercise.Pair, durationSeconds int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == StateRunning {
		return ErrSessionActive
	}
	m.discardLocked()
	m.beginLocked(topic, len(pairs), durationSeconds, pairs)
	return nil
}

func (m *MatchController) beginLocked(topic string, count, durationSeconds int, pairs []exercise.Pair) {
	m.topic = topic
	m.count = count
	m.duration = durationSeconds
	m.remaining = durationSeconds
	m.pairs = append([]exercise.Pair(nil), pairs...)
	m.byTerm = make(map[string]string, len(pairs))
	for _, p := range pairs {
		m.byTerm[p.Term] = p.Definition
	}
	m.matchedTerms = make(map[string]bool)
	m.matchedDefs = make(map[string]bool)
	m.matchedCount = 0
	m.records = nil
	m.attemptMark = durationSeconds
	m.reportArt = nil
	m.reportErr = nil
	m.shuffleBoardLocked()
	m.state = StateRunning
	m.startClockLocked(m.onTick)
}

// shuffleBoardLocked lays out both columns in independent random
// orders.
func (m *MatchController) shuffleBoardLocked() {
	m.terms = make([]string, len(m.pairs))
	m.defs = make([]string, len(m.pairs))
	for i, p := range m.pairs {
		m.terms[i] = p.Term
		m.defs[i] = p.Definition
	}
	rand.Shuffle(len(m.terms), func(i, j int) {
		m.terms[i], m.terms[j] = m.terms[j], m.terms[i]
	})
	rand.Shuffle(len(m.defs), func(i, j int) {
		m.defs[i], m.defs[j] = m.defs[j], m.defs[i]
	})
}

func (m *MatchController) onTick() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateRunning {
		return
	}
	if m.remaining > 0 {
		m.remaining--
	}
	if m.remaining > 0 {
		return
	}
	m.completeLocked(false)
}

// Attempt pairs a term with a definition. Correctness is checked
// against the term's own definition, never the board position. A
// correct match is final; matching the last pair completes the session.
func (m *MatchController) Attempt(term, definition string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateRunning {
		return false, ErrNotRunning
	}
	if m.matchedTerms[term] || m.matchedDefs[definition] {
		return false, ErrCardUnavailable
	}
	want, ok := m.byTerm[term]
	if !ok {
		return false, ErrCardUnavailable
	}

	correct := definition == want
	taken := m.attemptMark - m.remaining
	if taken < 0 {
		taken = 0
	}
	m.attemptMark = m.remaining
	m.records = append(m.records, Record{
		Question:  exercise.Question{Text: term, Answer: want},
		Answer:    definition,
		Correct:   correct,
		TimeTaken: taken,
	})

	if !correct {
		return false, nil
	}

	m.matchedTerms[term] = true
	m.matchedDefs[definition] = true
	m.matchedCount++
	if m.matchedCount == len(m.pairs) {
		m.completeLocked(true)
	}
	return true, nil
}

// Pause stops the countdown and snapshots the board, recording exactly
// which terms and definitions are already matched.
func (m *MatchController) Pause() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateRunning {
		return ErrNotRunning
	}
	m.stopClockLocked()
	m.snapshot = m.captureLocked()
	m.state = StatePaused
	return nil
}

// Resume re-enters Running: matched cards stay solved and
// non-interactive, all remaining cards are freshly shuffled.
func (m *MatchController) Resume() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StatePaused {
		return ErrNotPaused
	}
	m.resumeLocked()
	return nil
}

func (m *MatchController) resumeLocked() {
	m.snapshot = nil
	m.shuffleBoardLocked()
	m.attemptMark = m.remaining
	m.state = StateRunning
	m.startClockLocked(m.onTick)
}

// GiveUp abandons the session and returns to Setup without writing a
// history entry. A second call is a no-op.
func (m *MatchController) GiveUp() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == StateSetup {
		return
	}
	m.discardLocked()
}

// Regenerate starts a fresh session with the same topic, count and
// duration: a new draw, a new shuffle, no prior records.
func (m *MatchController) Regenerate(ctx context.Context) error {
	m.mu.Lock()
	topic, count, duration := m.topic, m.count, m.duration
	if topic == "" {
		m.mu.Unlock()
		return ErrNotRunning
	}
	m.discardLocked()
	m.mu.Unlock()
	return m.Start(ctx, topic, count, duration)
}

func (m *MatchController) discardLocked() {
	m.resetLocked()
	m.pairs = nil
	m.byTerm = nil
	m.terms = nil
	m.defs = nil
	m.matchedTerms = nil
	m.matchedDefs = nil
	m.matchedCount = 0
	m.attemptMark = 0
	m.snapshot = nil
}

// completeLocked finishes the session: clock stopped, history written
// first with the matched/total score, then the report requested.
func (m *MatchController) completeLocked(success bool) {
	m.stopClockLocked()
	m.snapshot = nil

	score := fmt.Sprintf("%d/%d", m.matchedCount, len(m.pairs))
	if !success {
		score += " (time expired)"
	}
	m.writeHistoryLocked(exercise.ModeMatch, score, nil)

	m.state = StateCompleted

	m.generateReportLocked(report.Input{
		Topic: m.topic,
		Mode:  exercise.ModeMatch.DisplayName(),
		Match: &report.MatchSummary{
			TotalPairs:     len(m.pairs),
			MatchedPairs:   m.matchedCount,
			ElapsedSeconds: m.elapsedLocked(),
			Completed:      success,
		},
	})
}

func (m *MatchController) captureLocked() *MatchSnapshot {
	snap := &MatchSnapshot{
		Topic:           m.topic,
		Pairs:           append([]exercise.Pair(nil), m.pairs...),
		Records:         append([]Record(nil), m.records...),
		TimeRemaining:   m.remaining,
		InitialDuration: m.duration,
	}
	for _, t := range m.terms {
		if m.matchedTerms[t] {
			snap.MatchedTerms = append(snap.MatchedTerms, t)
		}
	}
	for _, d := range m.defs {
		if m.matchedDefs[d] {
			snap.MatchedDefs = append(snap.MatchedDefs, d)
		}
	}
	return snap
}

// Terms returns the term column in display order.
func (m *MatchController) Terms() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.terms...)
}

// Definitions returns the definition column in display order.
func (m *MatchController) Definitions() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.defs...)
}

// MatchedTerm reports whether the term is already matched.
func (m *MatchController) MatchedTerm(term string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchedTerms[term]
}

// MatchedDefinition reports whether the definition is already matched.
func (m *MatchController) MatchedDefinition(def string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchedDefs[def]
}

// MatchedPairs returns the count of matched pairs. It never decreases
// within a session.
func (m *MatchController) MatchedPairs() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchedCount
}

// TotalPairs returns the board size.
func (m *MatchController) TotalPairs() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pairs)
}

// SaveExercise writes the finished session's pair set to the library
// under the given name, so it can be replayed later.
func (m *MatchController) SaveExercise(ctx context.Context, name string) error {
	m.mu.Lock()
	if m.state != StateCompleted && m.state != StateReported {
		m.mu.Unlock()
		return ErrNotCompleted
	}
	ex := library.SavedExercise{
		Name:  name,
		Mode:  exercise.ModeMatch,
		Topic: m.topic,
		Pairs: append([]exercise.Pair(nil), m.pairs...),
	}
	lib := m.lib
	m.mu.Unlock()

	if lib == nil {
		return nil
	}
	_, err := lib.AddExercise(ctx, ex)
	return err
}

// Snapshot returns the paused session's snapshot, or nil.
func (m *MatchController) Snapshot() *MatchSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshot
}
