package exercise

import (
	"context"
	"fmt"
)

// Generator produces exercise items for a topic.
type Generator interface {
	// Generate produces a Set of count items for the topic and mode.
	// It returns *GenerationError when fewer than count valid items can
	// be produced; callers must not start a session in that case.
	Generate(ctx context.Context, topic string, count int, mode Mode) (*Set, error)
}

// GenerationError indicates the content source failed or returned too
// few valid items. It is retryable: the caller stays in setup and may
// ask again.
type GenerationError struct {
	Topic  string
	Wanted int
	Got    int
	Err    error
}

func (e *GenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("generate items for %q: %v", e.Topic, e.Err)
	}
	return fmt.Sprintf("generate items for %q: got %d valid items, need %d", e.Topic, e.Got, e.Wanted)
}

func (e *GenerationError) Unwrap() error { return e.Err }
