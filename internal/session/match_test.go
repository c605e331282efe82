package session

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/dsilva/studium/internal/clock"
	"github.com/dsilva/studium/internal/exercise"
)

func matchPairs(n int) []exercise.Pair {
	pairs := make([]exercise.Pair, n)
	for i := range pairs {
		pairs[i] = exercise.Pair{
			Term:       fmt.Sprintf("term%d", i+1),
			Definition: fmt.Sprintf("def%d", i+1),
		}
	}
	return pairs
}

func matchSet(topic string, n int) *exercise.Set {
	return &exercise.Set{Mode: exercise.ModeMatch, Topic: topic, Pairs: matchPairs(n)}
}

func startedMatch(t *testing.T, topic string, n, duration int) (*MatchController, *clock.Manual, *stubGen) {
	t.Helper()
	gen := &stubGen{set: matchSet(topic, n)}
	clk := clock.NewManual()
	m := NewMatch(Deps{Clock: clk, Generator: gen, Library: testLibrary(t)})
	if err := m.Start(context.Background(), topic, n, duration); err != nil {
		t.Fatalf("start: %v", err)
	}
	return m, clk, gen
}

func TestMatch_BoardHoldsAllCards(t *testing.T) {
	m, _, _ := startedMatch(t, "Latin", 4, 120)

	terms, defs := m.Terms(), m.Definitions()
	if len(terms) != 4 || len(defs) != 4 {
		t.Fatalf("board = %d terms, %d defs, want 4/4", len(terms), len(defs))
	}
	seen := make(map[string]bool)
	for _, term := range terms {
		seen[term] = true
	}
	for i := 1; i <= 4; i++ {
		if !seen[fmt.Sprintf("term%d", i)] {
			t.Errorf("term%d missing from board", i)
		}
	}
}

func TestMatch_CorrectnessIsAgainstOwnDefinition(t *testing.T) {
	m, _, _ := startedMatch(t, "Latin", 4, 120)

	ok, err := m.Attempt("term1", "def2")
	if err != nil {
		t.Fatalf("attempt: %v", err)
	}
	if ok {
		t.Error("mismatched pair accepted")
	}
	if m.MatchedPairs() != 0 {
		t.Errorf("matchedPairs = %d, want 0", m.MatchedPairs())
	}

	ok, err = m.Attempt("term1", "def1")
	if err != nil {
		t.Fatalf("attempt: %v", err)
	}
	if !ok {
		t.Error("correct pair rejected")
	}
	if m.MatchedPairs() != 1 {
		t.Errorf("matchedPairs = %d, want 1", m.MatchedPairs())
	}

	records := m.Records()
	if len(records) != 2 {
		t.Fatalf("records = %d, want one per attempt", len(records))
	}
	if records[0].Correct || !records[1].Correct {
		t.Errorf("record correctness = %v/%v, want false/true", records[0].Correct, records[1].Correct)
	}
}

func TestMatch_MatchedCardsLeavePlay(t *testing.T) {
	m, _, _ := startedMatch(t, "Latin", 4, 120)

	if _, err := m.Attempt("term1", "def1"); err != nil {
		t.Fatalf("attempt: %v", err)
	}
	if !m.MatchedTerm("term1") || !m.MatchedDefinition("def1") {
		t.Error("matched cards not marked")
	}

	if _, err := m.Attempt("term1", "def2"); !errors.Is(err, ErrCardUnavailable) {
		t.Errorf("reuse matched term: err = %v, want ErrCardUnavailable", err)
	}
	if _, err := m.Attempt("term2", "def1"); !errors.Is(err, ErrCardUnavailable) {
		t.Errorf("reuse matched definition: err = %v, want ErrCardUnavailable", err)
	}
	if _, err := m.Attempt("no-such-term", "def2"); !errors.Is(err, ErrCardUnavailable) {
		t.Errorf("unknown term: err = %v, want ErrCardUnavailable", err)
	}
}

func TestMatch_AllPairsMatchedCompletesWithSuccess(t *testing.T) {
	gen := &stubGen{set: matchSet("Latin", 3)}
	clk := clock.NewManual()
	lib := testLibrary(t)
	m := NewMatch(Deps{Clock: clk, Generator: gen, Library: lib})
	if err := m.Start(context.Background(), "Latin", 3, 120); err != nil {
		t.Fatalf("start: %v", err)
	}

	clk.Advance(30)
	for i := 1; i <= 3; i++ {
		if _, err := m.Attempt(fmt.Sprintf("term%d", i), fmt.Sprintf("def%d", i)); err != nil {
			t.Fatalf("attempt %d: %v", i, err)
		}
	}

	if m.State() != StateCompleted {
		t.Fatalf("state = %v, want completed", m.State())
	}
	hist := lib.History()
	if len(hist) != 1 {
		t.Fatalf("history entries = %d, want 1", len(hist))
	}
	if hist[0].Mode != "Matching" || hist[0].Score != "3/3" {
		t.Errorf("history = %s %q, want Matching 3/3", hist[0].Mode, hist[0].Score)
	}
	if hist[0].Details == nil || hist[0].Details.TotalTime != 30 {
		t.Errorf("details = %+v, want totalTime 30", hist[0].Details)
	}
}

func TestMatch_TimeoutReportsPartialCredit(t *testing.T) {
	gen := &stubGen{set: matchSet("Latin", 4)}
	clk := clock.NewManual()
	lib := testLibrary(t)
	m := NewMatch(Deps{Clock: clk, Generator: gen, Library: lib})
	if err := m.Start(context.Background(), "Latin", 4, 60); err != nil {
		t.Fatalf("start: %v", err)
	}

	if _, err := m.Attempt("term1", "def1"); err != nil {
		t.Fatalf("attempt: %v", err)
	}
	if _, err := m.Attempt("term2", "def2"); err != nil {
		t.Fatalf("attempt: %v", err)
	}

	clk.Advance(60)

	if m.State() != StateCompleted {
		t.Fatalf("state = %v, want completed", m.State())
	}
	hist := lib.History()
	if len(hist) != 1 || hist[0].Score != "2/4 (time expired)" {
		t.Errorf("history = %+v, want score %q", hist, "2/4 (time expired)")
	}
}

func TestMatch_MatchedPairsNeverDecrease(t *testing.T) {
	m, _, _ := startedMatch(t, "Latin", 4, 120)

	prev := 0
	attempts := [][2]string{
		{"term1", "def1"}, {"term2", "def3"}, {"term2", "def2"},
		{"term3", "def4"}, {"term3", "def3"},
	}
	for _, a := range attempts {
		m.Attempt(a[0], a[1])
		cur := m.MatchedPairs()
		if cur < prev {
			t.Fatalf("matchedPairs decreased from %d to %d", prev, cur)
		}
		prev = cur
	}
	if prev != 3 {
		t.Errorf("matchedPairs = %d, want 3", prev)
	}
}

func TestMatch_PauseSnapshotsExactlyTheMatchedSets(t *testing.T) {
	m, clk, _ := startedMatch(t, "Latin", 4, 120)

	clk.Advance(10)
	if _, err := m.Attempt("term2", "def2"); err != nil {
		t.Fatalf("attempt: %v", err)
	}
	if _, err := m.Attempt("term4", "def4"); err != nil {
		t.Fatalf("attempt: %v", err)
	}

	if err := m.Pause(); err != nil {
		t.Fatalf("pause: %v", err)
	}
	snap := m.Snapshot()
	if snap == nil {
		t.Fatal("expected snapshot")
	}

	wantTerms := map[string]bool{"term2": true, "term4": true}
	if len(snap.MatchedTerms) != 2 {
		t.Fatalf("matched terms = %v, want exactly 2", snap.MatchedTerms)
	}
	for _, term := range snap.MatchedTerms {
		if !wantTerms[term] {
			t.Errorf("unexpected matched term %q", term)
		}
	}
	wantDefs := map[string]bool{"def2": true, "def4": true}
	if len(snap.MatchedDefs) != 2 {
		t.Fatalf("matched defs = %v, want exactly 2", snap.MatchedDefs)
	}
	for _, def := range snap.MatchedDefs {
		if !wantDefs[def] {
			t.Errorf("unexpected matched definition %q", def)
		}
	}
	if snap.TimeRemaining != 110 {
		t.Errorf("snapshot remaining = %d, want 110", snap.TimeRemaining)
	}
}

func TestMatch_ResumeKeepsMatchesAndRebuildsBoard(t *testing.T) {
	m, _, _ := startedMatch(t, "Latin", 6, 120)

	if _, err := m.Attempt("term1", "def1"); err != nil {
		t.Fatalf("attempt: %v", err)
	}
	if _, err := m.Attempt("term2", "def2"); err != nil {
		t.Fatalf("attempt: %v", err)
	}
	if err := m.Pause(); err != nil {
		t.Fatalf("pause: %v", err)
	}

	if err := m.Resume(); err != nil {
		t.Fatalf("resume: %v", err)
	}
	if m.State() != StateRunning {
		t.Fatalf("state = %v, want running", m.State())
	}

	if len(m.Terms()) != 6 || len(m.Definitions()) != 6 {
		t.Errorf("board = %d/%d cards, want 6/6", len(m.Terms()), len(m.Definitions()))
	}
	if !m.MatchedTerm("term1") || !m.MatchedTerm("term2") {
		t.Error("pre-matched terms lost on resume")
	}
	if m.MatchedTerm("term3") {
		t.Error("unmatched term marked matched")
	}
	if m.MatchedPairs() != 2 {
		t.Errorf("matchedPairs = %d, want 2", m.MatchedPairs())
	}

	// Matched cards stay out of play after the rebuild.
	if _, err := m.Attempt("term1", "def3"); !errors.Is(err, ErrCardUnavailable) {
		t.Errorf("matched term interactive after resume: err = %v", err)
	}
	if ok, err := m.Attempt("term3", "def3"); err != nil || !ok {
		t.Errorf("fresh card not playable after resume: ok=%v err=%v", ok, err)
	}
}

func TestMatch_GiveUpIsIdempotent(t *testing.T) {
	gen := &stubGen{set: matchSet("Latin", 4)}
	lib := testLibrary(t)
	m := NewMatch(Deps{Clock: clock.NewManual(), Generator: gen, Library: lib})
	if err := m.Start(context.Background(), "Latin", 4, 120); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := m.Attempt("term1", "def1"); err != nil {
		t.Fatalf("attempt: %v", err)
	}

	m.GiveUp()
	if m.State() != StateSetup {
		t.Fatalf("state = %v, want setup", m.State())
	}
	m.GiveUp()
	if m.State() != StateSetup {
		t.Fatalf("state after second giveUp = %v, want setup", m.State())
	}
	if got := len(lib.History()); got != 0 {
		t.Errorf("history entries = %d, want 0", got)
	}
}

func TestMatch_RegenerateRedrawsAndDropsRecords(t *testing.T) {
	m, _, gen := startedMatch(t, "Latin", 4, 120)

	for i := 1; i <= 4; i++ {
		if _, err := m.Attempt(fmt.Sprintf("term%d", i), fmt.Sprintf("def%d", i)); err != nil {
			t.Fatalf("attempt %d: %v", i, err)
		}
	}
	if m.State() != StateCompleted {
		t.Fatalf("state = %v, want completed", m.State())
	}

	if err := m.Regenerate(context.Background()); err != nil {
		t.Fatalf("regenerate: %v", err)
	}
	if gen.calls != 2 {
		t.Errorf("generator calls = %d, want 2", gen.calls)
	}
	if m.State() != StateRunning {
		t.Errorf("state = %v, want running", m.State())
	}
	if got := len(m.Records()); got != 0 {
		t.Errorf("records = %d, want 0", got)
	}
	if m.MatchedPairs() != 0 {
		t.Errorf("matchedPairs = %d, want 0", m.MatchedPairs())
	}
}

func TestMatch_SaveExerciseKeepsPairSet(t *testing.T) {
	ctx := context.Background()
	lib := testLibrary(t)
	gen := &stubGen{set: matchSet("Latin", 3)}
	m := NewMatch(Deps{Clock: clock.NewManual(), Generator: gen, Library: lib})

	if err := m.Start(ctx, "Latin", 3, 120); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := m.SaveExercise(ctx, "too early"); !errors.Is(err, ErrNotCompleted) {
		t.Fatalf("save while running = %v, want ErrNotCompleted", err)
	}
	for i := 1; i <= 3; i++ {
		if _, err := m.Attempt(fmt.Sprintf("term%d", i), fmt.Sprintf("def%d", i)); err != nil {
			t.Fatalf("attempt %d: %v", i, err)
		}
	}

	if err := m.SaveExercise(ctx, "Latin vocab"); err != nil {
		t.Fatalf("save: %v", err)
	}
	saved := lib.Exercises()
	if len(saved) != 1 {
		t.Fatalf("saved exercises = %d, want 1", len(saved))
	}
	ex := saved[0]
	if ex.Mode != exercise.ModeMatch || len(ex.Pairs) != 3 {
		t.Errorf("saved = mode %v with %d pairs, want match with 3", ex.Mode, len(ex.Pairs))
	}

	if err := m.StartWith(ex.Topic, ex.Pairs, 60); err != nil {
		t.Fatalf("replay: %v", err)
	}
	if m.TotalPairs() != 3 || gen.calls != 1 {
		t.Errorf("replay pairs = %d gen calls = %d, want 3 and 1", m.TotalPairs(), gen.calls)
	}
}
