// Package flashcards generates named term/definition card sets and
// saves them to the user's library.
package flashcards

import (
	"context"
	"fmt"

	"github.com/dsilva/studium/internal/exercise"
	"github.com/dsilva/studium/internal/library"
)

// Service builds flashcard sets from generated term/definition pairs.
type Service struct {
	gen exercise.Generator
	lib *library.Library
}

// New creates a flashcards Service.
func New(gen exercise.Generator, lib *library.Library) *Service {
	return &Service{gen: gen, lib: lib}
}

// Create generates count cards for the topic and saves them as a named
// set. An empty name defaults to the topic.
func (s *Service) Create(ctx context.Context, name, topic string, count int) (library.FlashcardSet, error) {
	set, err := s.gen.Generate(ctx, topic, count, exercise.ModeMatch)
	if err != nil {
		return library.FlashcardSet{}, fmt.Errorf("generate cards: %w", err)
	}
	if name == "" {
		name = topic
	}
	return s.lib.AddFlashcardSet(ctx, library.FlashcardSet{
		Name:  name,
		Topic: topic,
		Cards: set.Pairs,
	})
}

// List returns the user's flashcard sets, most recent first.
func (s *Service) List() []library.FlashcardSet {
	return s.lib.FlashcardSets()
}

// Remove deletes a set by id.
func (s *Service) Remove(ctx context.Context, id string) error {
	return s.lib.RemoveFlashcardSet(ctx, id)
}
