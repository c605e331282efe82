// Package judge scores free-text answers against a canonical answer
// using the model provider.
package judge

import (
	"context"
	"fmt"
)

// Verdict is the outcome of judging one answer.
type Verdict struct {
	Correct  bool
	Feedback string
}

// Judge evaluates a candidate answer against the canonical one.
type Judge interface {
	// Evaluate returns a Verdict, or *ErrUnavailable when the judging
	// backend cannot be reached. Callers treat failure as incorrect and
	// unscored; it never aborts a session.
	Evaluate(ctx context.Context, question, canonicalAnswer, candidateAnswer string) (Verdict, error)
}

// ErrUnavailable indicates the judge backend failed for this answer.
type ErrUnavailable struct {
	Err error
}

func (e *ErrUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("answer judge unavailable: %v", e.Err)
	}
	return "answer judge unavailable"
}

func (e *ErrUnavailable) Unwrap() error { return e.Err }
