package solutions

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsilva/studium/internal/library"
	"github.com/dsilva/studium/internal/llm"
)

var solutionJSON = json.RawMessage(`{
	"steps": ["Rewrite x^2 as a power.", "Apply the power rule."],
	"answer": "x^3/3 + C"
}`)

func newService(t *testing.T, mock *llm.MockProvider) (*Service, *library.Library) {
	t.Helper()
	lib := library.New(library.NewMemoryStore(), nil)
	require.NoError(t, lib.SwitchUser(context.Background(), "learner"))
	return New(mock, lib, DefaultConfig()), lib
}

func TestSolve_RendersNumberedSteps(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: solutionJSON})
	svc, _ := newService(t, mock)

	content, err := svc.Solve(context.Background(), "Integrate x^2")
	require.NoError(t, err)
	assert.Contains(t, content, "1. Rewrite x^2 as a power.")
	assert.Contains(t, content, "2. Apply the power rule.")
	assert.Contains(t, content, "**Answer:** x^3/3 + C")
}

func TestSolve_ProviderFailurePropagates(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.ErrProviderUnavailable{Err: errors.New("down")},
	})
	svc, _ := newService(t, mock)

	_, err := svc.Solve(context.Background(), "Integrate x^2")
	var unavail *llm.ErrProviderUnavailable
	require.ErrorAs(t, err, &unavail)
}

func TestSolve_EmptyStepsRejected(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"steps": [], "answer": "42"}`),
	})
	svc, _ := newService(t, mock)

	_, err := svc.Solve(context.Background(), "Integrate x^2")
	require.Error(t, err)
}

func TestSave_PersistsToLibrary(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: solutionJSON})
	svc, lib := newService(t, mock)

	content, err := svc.Solve(context.Background(), "Integrate x^2")
	require.NoError(t, err)

	saved, err := svc.Save(context.Background(), "Integrate x^2", content)
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)

	got := lib.Solutions()
	require.Len(t, got, 1)
	assert.Equal(t, "Integrate x^2", got[0].Problem)
	assert.Equal(t, content, got[0].Content)
}
