package library

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsilva/studium/internal/exercise"
)

func newTestLibrary(t *testing.T) *Library {
	t.Helper()
	lib := New(NewMemoryStore(), nil)
	require.NoError(t, lib.SwitchUser(context.Background(), "alice"))
	return lib
}

func TestInertWithoutUser(t *testing.T) {
	lib := New(NewMemoryStore(), nil)
	ctx := context.Background()

	_, err := lib.AddHistory(ctx, HistoryItem{Topic: "Rome"})
	require.NoError(t, err)

	assert.Empty(t, lib.History())
	assert.Empty(t, lib.Solutions())
	assert.Empty(t, lib.Reports())
}

func TestAddHistory_PrependsAndFillsIDAndDate(t *testing.T) {
	lib := newTestLibrary(t)
	ctx := context.Background()

	first, err := lib.AddHistory(ctx, HistoryItem{Mode: "Quiz", Topic: "Rome", Score: "2/3"})
	require.NoError(t, err)
	second, err := lib.AddHistory(ctx, HistoryItem{Mode: "Quiz", Topic: "Gaul", Score: "3/3"})
	require.NoError(t, err)

	assert.NotEmpty(t, first.ID)
	assert.NotEmpty(t, first.Date)
	assert.NotEqual(t, first.ID, second.ID)

	got := lib.History()
	require.Len(t, got, 2)
	assert.Equal(t, "Gaul", got[0].Topic)
	assert.Equal(t, "Rome", got[1].Topic)
}

func TestSwitchUser_IsolatesCollections(t *testing.T) {
	store := NewMemoryStore()
	lib := New(store, nil)
	ctx := context.Background()

	require.NoError(t, lib.SwitchUser(ctx, "alice"))
	_, err := lib.AddHistory(ctx, HistoryItem{Topic: "Rome", Score: "1/1"})
	require.NoError(t, err)

	require.NoError(t, lib.SwitchUser(ctx, "bob"))
	assert.Empty(t, lib.History())

	require.NoError(t, lib.SwitchUser(ctx, "alice"))
	require.Len(t, lib.History(), 1)
	assert.Equal(t, "Rome", lib.History()[0].Topic)
}

func TestLogout_ClearsWithoutPersistingDeletions(t *testing.T) {
	store := NewMemoryStore()
	lib := New(store, nil)
	ctx := context.Background()

	require.NoError(t, lib.SwitchUser(ctx, "alice"))
	_, err := lib.AddHistory(ctx, HistoryItem{Topic: "Rome", Score: "1/1"})
	require.NoError(t, err)

	lib.Logout()
	assert.Empty(t, lib.History())
	assert.Empty(t, lib.UserID())

	require.NoError(t, lib.SwitchUser(ctx, "alice"))
	assert.Len(t, lib.History(), 1)
}

func TestRemove_ByID(t *testing.T) {
	lib := newTestLibrary(t)
	ctx := context.Background()

	kept, err := lib.AddSolution(ctx, SavedSolution{Problem: "integrate x^2"})
	require.NoError(t, err)
	gone, err := lib.AddSolution(ctx, SavedSolution{Problem: "derive sin x"})
	require.NoError(t, err)

	require.NoError(t, lib.RemoveSolution(ctx, gone.ID))

	got := lib.Solutions()
	require.Len(t, got, 1)
	assert.Equal(t, kept.ID, got[0].ID)
}

func TestReplaceExercise_KeepsIDAndMode(t *testing.T) {
	lib := newTestLibrary(t)
	ctx := context.Background()

	saved, err := lib.AddExercise(ctx, SavedExercise{
		Name:  "Roman emperors",
		Mode:  exercise.ModeQuiz,
		Topic: "Rome",
		Questions: []exercise.Question{
			{Text: "First emperor?", Kind: exercise.KindOpenEnded, Answer: "Augustus"},
		},
	})
	require.NoError(t, err)

	err = lib.ReplaceExercise(ctx, saved.ID, SavedExercise{
		Name: "Emperors (revised)",
		Mode: exercise.ModeMatch,
		Questions: []exercise.Question{
			{Text: "First emperor?", Kind: exercise.KindOpenEnded, Answer: "Augustus"},
			{Text: "Last western emperor?", Kind: exercise.KindOpenEnded, Answer: "Romulus Augustulus"},
		},
	})
	require.NoError(t, err)

	got := lib.Exercises()
	require.Len(t, got, 1)
	assert.Equal(t, saved.ID, got[0].ID)
	assert.Equal(t, exercise.ModeQuiz, got[0].Mode)
	assert.Equal(t, "Emperors (revised)", got[0].Name)
	assert.Len(t, got[0].Questions, 2)
}

func TestReset_WipesAllCollections(t *testing.T) {
	lib := newTestLibrary(t)
	ctx := context.Background()

	_, err := lib.AddHistory(ctx, HistoryItem{Topic: "Rome", Score: "1/1"})
	require.NoError(t, err)
	_, err = lib.AddReport(ctx, SavedReport{Topic: "Rome", Content: "report"})
	require.NoError(t, err)

	require.NoError(t, lib.Reset(ctx))
	assert.Empty(t, lib.History())
	assert.Empty(t, lib.Reports())

	require.NoError(t, lib.SwitchUser(ctx, "alice"))
	assert.Empty(t, lib.History())
}

type failingStore struct{ loads Data }

func (f *failingStore) Load(context.Context, string) (Data, error) { return f.loads, nil }
func (f *failingStore) Save(context.Context, string, Data) error {
	return errors.New("disk full")
}

func TestSaveFailure_KeepsMutationInMemory(t *testing.T) {
	lib := New(&failingStore{}, nil)
	ctx := context.Background()
	require.NoError(t, lib.SwitchUser(ctx, "alice"))

	_, err := lib.AddHistory(ctx, HistoryItem{Topic: "Rome", Score: "1/1"})
	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)

	assert.Len(t, lib.History(), 1)
}

func TestConcurrentMutationAndReads(t *testing.T) {
	lib := newTestLibrary(t)
	ctx := context.Background()

	// Session goroutines write history and reports while the host reads
	// the collections; the race detector must stay quiet.
	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 25; i++ {
				_, err := lib.AddHistory(ctx, HistoryItem{Mode: "Quiz", Topic: "Rome", Score: "1/1"})
				assert.NoError(t, err)
				_, err = lib.AddReport(ctx, SavedReport{Topic: "Rome", Mode: "Quiz", Content: "# r"})
				assert.NoError(t, err)
			}
		}(w)
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			_ = lib.History()
			_ = lib.Reports()
			_ = lib.UserID()
		}
	}()
	wg.Wait()
	<-done

	assert.Len(t, lib.History(), 100)
	assert.Len(t, lib.Reports(), 100)
}
