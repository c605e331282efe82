package logging

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "studium.log")

	logger, err := New(path)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	logger.Info("session started")
	logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if len(data) == 0 {
		t.Error("log file empty after write")
	}
}

func TestLevelFromEnv(t *testing.T) {
	tests := []struct {
		env  string
		want string
	}{
		{"debug", "debug"},
		{"warn", "warn"},
		{"error", "error"},
		{"", "info"},
		{"bogus", "info"},
	}
	for _, tt := range tests {
		t.Setenv("STUDIUM_LOG_LEVEL", tt.env)
		if got := levelFromEnv().String(); got != tt.want {
			t.Errorf("level(%q) = %q, want %q", tt.env, got, tt.want)
		}
	}
}
