package session

import "github.com/dsilva/studium/internal/exercise"

// Snapshot is a value copy of a paused quiz session, sufficient to
// resume it exactly. Mutating the live session after the snapshot is
// taken never changes the snapshot.
//
// Invariants: Cursor <= len(Questions), TimeRemaining <= InitialDuration.
type Snapshot struct {
	Topic           string
	Questions       []exercise.Question
	Cursor          int
	Answered        []bool
	Records         []Record
	TimeRemaining   int
	InitialDuration int
}

// MatchSnapshot is a value copy of a paused matching session. The
// matched term and definition sets let a resume rebuild the board with
// matched cards pre-solved and everything else freshly shuffled.
type MatchSnapshot struct {
	Topic           string
	Pairs           []exercise.Pair
	MatchedTerms    []string
	MatchedDefs     []string
	Records         []Record
	TimeRemaining   int
	InitialDuration int
}
