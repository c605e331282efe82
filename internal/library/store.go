package library

import (
	"context"
	"fmt"
)

// Store is the persistence substrate for per-user library data. A Save
// writes all five collections together: partial writes must never be
// observable.
type Store interface {
	// Load returns the user's collections, or empty Data when the user
	// has none yet.
	Load(ctx context.Context, userID string) (Data, error)

	// Save replaces the user's collections atomically.
	Save(ctx context.Context, userID string, data Data) error
}

// PersistenceError indicates a storage write failed. The in-memory
// collections keep the mutation so the user can retry saving.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("library persistence failed (%s): %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
