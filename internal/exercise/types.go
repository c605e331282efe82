// Package exercise defines the study items Studium generates and the
// content generator that produces them.
package exercise

// Mode identifies an exercise variant.
type Mode string

const (
	// ModeQuiz is the open-answer quiz: every question is free text and
	// judged by the external answer judge.
	ModeQuiz Mode = "quiz"

	// ModeMixed mixes multiple-choice, fill-in-the-blank and open-ended
	// questions in one session.
	ModeMixed Mode = "mixed"

	// ModeMatch is the term/definition matching game.
	ModeMatch Mode = "match"
)

// DisplayName returns the mode label used in history entries and views.
func (m Mode) DisplayName() string {
	switch m {
	case ModeQuiz:
		return "Quiz"
	case ModeMixed:
		return "Mixed Quiz"
	case ModeMatch:
		return "Matching"
	default:
		return string(m)
	}
}

// Kind discriminates how a Question is answered and judged.
type Kind string

const (
	// KindOpenEnded questions take free text, scored by the judge.
	KindOpenEnded Kind = "open_ended"

	// KindMultipleChoice questions are scored by exact, case-sensitive
	// match of the selected option against the canonical answer.
	KindMultipleChoice Kind = "multiple_choice"

	// KindFillBlank questions are scored by case-insensitive trimmed
	// equality with the canonical answer.
	KindFillBlank Kind = "fill_blank"
)

// Question is a single quiz item. Immutable once generated for a session.
type Question struct {
	// Text is the question prompt shown to the learner.
	Text string `json:"text"`

	// Kind selects the judging rule.
	Kind Kind `json:"kind"`

	// Answer is the canonical correct answer.
	Answer string `json:"answer"`

	// Options holds the choices for multiple-choice questions, in
	// storage order. Display order is shuffled independently.
	Options []string `json:"options,omitempty"`
}

// Pair is one term/definition pair for the matching game.
type Pair struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
}

// Set is the full item payload of one session or saved exercise.
// Exactly one of Questions or Pairs is populated, per Mode.
type Set struct {
	Mode      Mode       `json:"mode"`
	Topic     string     `json:"topic"`
	Questions []Question `json:"questions,omitempty"`
	Pairs     []Pair     `json:"pairs,omitempty"`
}

// Len returns the number of items in the set.
func (s *Set) Len() int {
	if s.Mode == ModeMatch {
		return len(s.Pairs)
	}
	return len(s.Questions)
}
