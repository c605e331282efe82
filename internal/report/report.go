// Package report turns a completed session into a self-contained
// performance analysis artifact.
package report

import (
	"context"
	"fmt"
	"time"
)

// QuestionResult is one answered question as the reporter sees it.
type QuestionResult struct {
	Question  string
	Answer    string
	Correct   bool
	Feedback  string
	TimeTaken int // seconds spent on this question
}

// MatchSummary describes a finished matching-game session.
type MatchSummary struct {
	TotalPairs     int
	MatchedPairs   int
	ElapsedSeconds int
	Completed      bool
}

// Input is what the reporter analyzes: question results for the quiz
// modes, or a match summary for the matching game.
type Input struct {
	Topic   string
	Mode    string
	Results []QuestionResult
	Match   *MatchSummary
}

// Artifact is the rendered report. Content is plain markdown with no
// live references: redisplaying it requires no further model calls.
type Artifact struct {
	Topic       string
	Mode        string
	GeneratedAt time.Time
	Content     string
}

// Reporter produces a performance analysis for a completed session.
type Reporter interface {
	// Generate returns an Artifact, or *ErrUnavailable when the
	// analysis backend failed. Callers show a static placeholder and do
	// not retry automatically.
	Generate(ctx context.Context, in Input) (*Artifact, error)
}

// ErrUnavailable indicates report generation failed.
type ErrUnavailable struct {
	Err error
}

func (e *ErrUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("report generation unavailable: %v", e.Err)
	}
	return "report generation unavailable"
}

func (e *ErrUnavailable) Unwrap() error { return e.Err }
