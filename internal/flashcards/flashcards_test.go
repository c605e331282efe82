package flashcards

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsilva/studium/internal/exercise"
	"github.com/dsilva/studium/internal/library"
)

type stubGen struct {
	set *exercise.Set
	err error
}

func (g *stubGen) Generate(context.Context, string, int, exercise.Mode) (*exercise.Set, error) {
	if g.err != nil {
		return nil, g.err
	}
	return g.set, nil
}

func newService(t *testing.T, gen exercise.Generator) (*Service, *library.Library) {
	t.Helper()
	lib := library.New(library.NewMemoryStore(), nil)
	require.NoError(t, lib.SwitchUser(context.Background(), "learner"))
	return New(gen, lib), lib
}

func TestCreate_SavesNamedSet(t *testing.T) {
	gen := &stubGen{set: &exercise.Set{
		Mode:  exercise.ModeMatch,
		Topic: "Latin",
		Pairs: []exercise.Pair{
			{Term: "aqua", Definition: "water"},
			{Term: "ignis", Definition: "fire"},
		},
	}}
	svc, lib := newService(t, gen)

	set, err := svc.Create(context.Background(), "Latin basics", "Latin", 2)
	require.NoError(t, err)
	assert.NotEmpty(t, set.ID)
	assert.Equal(t, "Latin basics", set.Name)
	assert.Len(t, set.Cards, 2)

	got := lib.FlashcardSets()
	require.Len(t, got, 1)
	assert.Equal(t, set.ID, got[0].ID)
}

func TestCreate_EmptyNameDefaultsToTopic(t *testing.T) {
	gen := &stubGen{set: &exercise.Set{
		Mode:  exercise.ModeMatch,
		Topic: "Latin",
		Pairs: []exercise.Pair{{Term: "aqua", Definition: "water"}},
	}}
	svc, _ := newService(t, gen)

	set, err := svc.Create(context.Background(), "", "Latin", 1)
	require.NoError(t, err)
	assert.Equal(t, "Latin", set.Name)
}

func TestCreate_GenerationFailureDoesNotSave(t *testing.T) {
	gen := &stubGen{err: &exercise.GenerationError{Topic: "Latin", Wanted: 8, Got: 2, Err: errors.New("too few")}}
	svc, lib := newService(t, gen)

	_, err := svc.Create(context.Background(), "Latin basics", "Latin", 8)
	var genErr *exercise.GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Empty(t, lib.FlashcardSets())
}
