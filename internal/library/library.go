package library

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Library holds the active user's collections in memory and writes every
// mutation through to the Store. Without an active user the library is
// inert: reads return empty and writes are no-ops.
//
// Completion callbacks run on session goroutines while the host reads
// the same collections, so every method synchronizes on the library's
// own mutex.
type Library struct {
	mu     sync.Mutex
	store  Store
	logger *zap.Logger
	userID string
	data   Data
	now    func() time.Time
}

// New creates a Library over the given store. No user is active until
// SwitchUser is called.
func New(store Store, logger *zap.Logger) *Library {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Library{store: store, logger: logger, now: time.Now}
}

// SwitchUser makes userID the active user, discarding the previous
// user's in-memory collections and loading the new user's. An empty
// userID is a logout.
func (l *Library) SwitchUser(ctx context.Context, userID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.userID = ""
	l.data = Data{}
	if userID == "" {
		return nil
	}

	data, err := l.store.Load(ctx, userID)
	if err != nil {
		return &PersistenceError{Op: "load", Err: err}
	}

	l.userID = userID
	l.data = data
	return nil
}

// Logout clears the in-memory collections without persisting deletions.
func (l *Library) Logout() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.userID = ""
	l.data = Data{}
}

// UserID returns the active user identifier, or "" when logged out.
func (l *Library) UserID() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.userID
}

// History returns the user's history entries, most recent first.
func (l *Library) History() []HistoryItem {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]HistoryItem(nil), l.data.History...)
}

// Solutions returns the user's saved solutions, most recent first.
func (l *Library) Solutions() []SavedSolution {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]SavedSolution(nil), l.data.Solutions...)
}

// FlashcardSets returns the user's flashcard sets, most recent first.
func (l *Library) FlashcardSets() []FlashcardSet {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]FlashcardSet(nil), l.data.FlashcardSets...)
}

// Exercises returns the user's saved exercises, most recent first.
func (l *Library) Exercises() []SavedExercise {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]SavedExercise(nil), l.data.Exercises...)
}

// Reports returns the user's saved reports, most recent first.
func (l *Library) Reports() []SavedReport {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]SavedReport(nil), l.data.Reports...)
}

// AddHistory prepends a history entry. A missing ID or Date is filled
// in. Returns the stored item.
func (l *Library) AddHistory(ctx context.Context, item HistoryItem) (HistoryItem, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.userID == "" {
		return item, nil
	}
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if item.Date == "" {
		item.Date = l.now().UTC().Format(time.RFC3339)
	}
	l.data.History = append([]HistoryItem{item}, l.data.History...)
	return item, l.persist(ctx)
}

// AddSolution prepends a saved solution.
func (l *Library) AddSolution(ctx context.Context, sol SavedSolution) (SavedSolution, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.userID == "" {
		return sol, nil
	}
	if sol.ID == "" {
		sol.ID = uuid.New().String()
	}
	if sol.Date == "" {
		sol.Date = l.now().UTC().Format(time.RFC3339)
	}
	l.data.Solutions = append([]SavedSolution{sol}, l.data.Solutions...)
	return sol, l.persist(ctx)
}

// AddFlashcardSet prepends a flashcard set.
func (l *Library) AddFlashcardSet(ctx context.Context, set FlashcardSet) (FlashcardSet, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.userID == "" {
		return set, nil
	}
	if set.ID == "" {
		set.ID = uuid.New().String()
	}
	if set.Date == "" {
		set.Date = l.now().UTC().Format(time.RFC3339)
	}
	l.data.FlashcardSets = append([]FlashcardSet{set}, l.data.FlashcardSets...)
	return set, l.persist(ctx)
}

// AddExercise prepends a saved exercise.
func (l *Library) AddExercise(ctx context.Context, ex SavedExercise) (SavedExercise, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.userID == "" {
		return ex, nil
	}
	if ex.ID == "" {
		ex.ID = uuid.New().String()
	}
	l.data.Exercises = append([]SavedExercise{ex}, l.data.Exercises...)
	return ex, l.persist(ctx)
}

// AddReport prepends a saved report.
func (l *Library) AddReport(ctx context.Context, rep SavedReport) (SavedReport, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.userID == "" {
		return rep, nil
	}
	if rep.ID == "" {
		rep.ID = uuid.New().String()
	}
	if rep.Date == "" {
		rep.Date = l.now().UTC().Format(time.RFC3339)
	}
	l.data.Reports = append([]SavedReport{rep}, l.data.Reports...)
	return rep, l.persist(ctx)
}

// RemoveHistory deletes a history entry by id.
func (l *Library) RemoveHistory(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.userID == "" {
		return nil
	}
	l.data.History = removeByID(l.data.History, id, func(h HistoryItem) string { return h.ID })
	return l.persist(ctx)
}

// RemoveSolution deletes a saved solution by id.
func (l *Library) RemoveSolution(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.userID == "" {
		return nil
	}
	l.data.Solutions = removeByID(l.data.Solutions, id, func(s SavedSolution) string { return s.ID })
	return l.persist(ctx)
}

// RemoveFlashcardSet deletes a flashcard set by id.
func (l *Library) RemoveFlashcardSet(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.userID == "" {
		return nil
	}
	l.data.FlashcardSets = removeByID(l.data.FlashcardSets, id, func(s FlashcardSet) string { return s.ID })
	return l.persist(ctx)
}

// RemoveExercise deletes a saved exercise by id.
func (l *Library) RemoveExercise(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.userID == "" {
		return nil
	}
	l.data.Exercises = removeByID(l.data.Exercises, id, func(e SavedExercise) string { return e.ID })
	return l.persist(ctx)
}

// RemoveReport deletes a saved report by id.
func (l *Library) RemoveReport(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.userID == "" {
		return nil
	}
	l.data.Reports = removeByID(l.data.Reports, id, func(r SavedReport) string { return r.ID })
	return l.persist(ctx)
}

// ReplaceExercise updates a saved exercise in place. The stored Mode is
// kept; only name, topic and items change.
func (l *Library) ReplaceExercise(ctx context.Context, id string, updated SavedExercise) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.userID == "" {
		return nil
	}
	for i, ex := range l.data.Exercises {
		if ex.ID == id {
			updated.ID = ex.ID
			updated.Mode = ex.Mode
			l.data.Exercises[i] = updated
			return l.persist(ctx)
		}
	}
	return nil
}

// Reset wipes all five collections for the active user.
func (l *Library) Reset(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.userID == "" {
		return nil
	}
	l.data = Data{}
	return l.persist(ctx)
}

func (l *Library) persist(ctx context.Context) error {
	if err := l.store.Save(ctx, l.userID, l.data); err != nil {
		l.logger.Warn("library save failed", zap.String("user", l.userID), zap.Error(err))
		return &PersistenceError{Op: "save", Err: err}
	}
	return nil
}

func removeByID[T any](items []T, id string, idOf func(T) string) []T {
	out := items[:0]
	for _, item := range items {
		if idOf(item) != id {
			out = append(out, item)
		}
	}
	return out
}
