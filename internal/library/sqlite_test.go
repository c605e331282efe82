package library

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "studium.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLite_LoadMissingUserReturnsEmpty(t *testing.T) {
	s := openTestStore(t)

	data, err := s.Load(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(data.History) != 0 || len(data.Reports) != 0 {
		t.Fatal("expected empty data for unknown user")
	}
}

func TestSQLite_SaveLoadRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	want := Data{
		History: []HistoryItem{
			{ID: "h1", Mode: "Quiz", Topic: "Rome", Score: "3/3", Date: "2026-08-30T10:00:00Z"},
		},
		Solutions: []SavedSolution{
			{ID: "s1", Problem: "integrate x^2", Content: "x^3/3 + C"},
		},
	}
	if err := s.Save(ctx, "alice", want); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.Load(ctx, "alice")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got.History) != 1 || got.History[0].Topic != "Rome" {
		t.Errorf("history = %+v, want one Rome entry", got.History)
	}
	if len(got.Solutions) != 1 || got.Solutions[0].Content != "x^3/3 + C" {
		t.Errorf("solutions = %+v, want one entry", got.Solutions)
	}
}

func TestSQLite_SaveReplacesAllCollections(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first := Data{
		History: []HistoryItem{{ID: "h1", Topic: "Rome", Score: "1/1"}},
		Reports: []SavedReport{{ID: "r1", Topic: "Rome", Content: "old"}},
	}
	if err := s.Save(ctx, "alice", first); err != nil {
		t.Fatalf("save first: %v", err)
	}

	second := Data{
		History: []HistoryItem{{ID: "h2", Topic: "Gaul", Score: "2/2"}},
	}
	if err := s.Save(ctx, "alice", second); err != nil {
		t.Fatalf("save second: %v", err)
	}

	got, err := s.Load(ctx, "alice")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got.History) != 1 || got.History[0].ID != "h2" {
		t.Errorf("history = %+v, want only h2", got.History)
	}
	if len(got.Reports) != 0 {
		t.Errorf("reports = %+v, want none after replacement", got.Reports)
	}
}

func TestSQLite_UsersAreIndependent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.Save(ctx, "alice", Data{
		History: []HistoryItem{{ID: "h1", Topic: "Rome", Score: "1/1"}},
	}); err != nil {
		t.Fatalf("save alice: %v", err)
	}

	got, err := s.Load(ctx, "bob")
	if err != nil {
		t.Fatalf("load bob: %v", err)
	}
	if len(got.History) != 0 {
		t.Errorf("bob history = %+v, want empty", got.History)
	}
}

func TestSQLite_PragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}
