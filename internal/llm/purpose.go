package llm

import "context"

type contextKey string

const purposeKey contextKey = "llm_purpose"

// Purposes label model calls for request logging.
const (
	PurposeExerciseGen  = "exercise-gen"
	PurposeAnswerJudge  = "answer-judge"
	PurposeReportGen    = "report-gen"
	PurposeSolutionGen  = "solution-gen"
	PurposeFlashcardGen = "flashcard-gen"
)

// WithPurpose attaches a purpose label to the context.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey, purpose)
}

// PurposeFrom extracts the purpose label, or "unknown".
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey).(string); ok {
		return v
	}
	return "unknown"
}
