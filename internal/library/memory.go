package library

import (
	"context"
	"encoding/json"
	"fmt"
)

// MemoryStore keeps library data in process memory. Data is stored as
// serialized JSON so loads return value copies, never aliases of a
// caller's slices.
type MemoryStore struct {
	users map[string][]byte
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: make(map[string][]byte)}
}

func (m *MemoryStore) Load(_ context.Context, userID string) (Data, error) {
	raw, ok := m.users[userID]
	if !ok {
		return Data{}, nil
	}
	var data Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return Data{}, fmt.Errorf("decode library data: %w", err)
	}
	return data, nil
}

func (m *MemoryStore) Save(_ context.Context, userID string, data Data) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode library data: %w", err)
	}
	m.users[userID] = raw
	return nil
}
