package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/dsilva/studium/internal/exercise"
	"github.com/dsilva/studium/internal/judge"
)

// fallbackFeedback is shown when the judge cannot evaluate an answer.
// The record still lands, marked incorrect, and the session continues.
const fallbackFeedback = "could not evaluate"

// grader decides correctness and feedback for one submission. Grading
// may block on the external judge; callers must not hold the controller
// lock across a grade call.
type grader interface {
	grade(ctx context.Context, j judge.Judge, q exercise.Question, answer string) (bool, string)
}

// judgeAllGrader sends every answer to the external judge. Quiz mode.
type judgeAllGrader struct{}

func (judgeAllGrader) grade(ctx context.Context, j judge.Judge, q exercise.Question, answer string) (bool, string) {
	v, err := j.Evaluate(ctx, q.Text, q.Answer, answer)
	if err != nil {
		return false, fallbackFeedback
	}
	return v.Correct, v.Feedback
}

// byKindGrader grades by question kind: multiple choice by exact match,
// fill-in-the-blank by case-insensitive trimmed match, open-ended via
// the judge. Mixed quiz mode.
type byKindGrader struct{}

func (byKindGrader) grade(ctx context.Context, j judge.Judge, q exercise.Question, answer string) (bool, string) {
	switch q.Kind {
	case exercise.KindMultipleChoice:
		if answer == q.Answer {
			return true, "Correct."
		}
		return false, fmt.Sprintf("The correct answer is %q.", q.Answer)
	case exercise.KindFillBlank:
		if strings.EqualFold(strings.TrimSpace(answer), strings.TrimSpace(q.Answer)) {
			return true, "Correct."
		}
		return false, fmt.Sprintf("The expected answer is %q.", q.Answer)
	default:
		return judgeAllGrader{}.grade(ctx, j, q, answer)
	}
}
