package judge

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsilva/studium/internal/llm"
)

func TestEvaluate_CorrectVerdict(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"is_correct": true, "feedback": "Exactly right."}`),
	})
	j := New(mock, DefaultConfig())

	v, err := j.Evaluate(context.Background(), "What carries water up a plant?", "Xylem", "the xylem tissue")
	require.NoError(t, err)
	assert.True(t, v.Correct)
	assert.Equal(t, "Exactly right.", v.Feedback)
}

func TestEvaluate_IncorrectVerdict(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"is_correct": false, "feedback": "Phloem carries sugars, not water."}`),
	})
	j := New(mock, DefaultConfig())

	v, err := j.Evaluate(context.Background(), "What carries water up a plant?", "Xylem", "phloem")
	require.NoError(t, err)
	assert.False(t, v.Correct)
	assert.NotEmpty(t, v.Feedback)
}

func TestEvaluate_ProviderFailureMapsToUnavailable(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.ErrProviderUnavailable{Err: errors.New("down")},
	})
	j := New(mock, DefaultConfig())

	_, err := j.Evaluate(context.Background(), "q", "a", "b")
	var unavail *ErrUnavailable
	require.ErrorAs(t, err, &unavail)
}

func TestEvaluate_MalformedVerdictMapsToUnavailable(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`"not an object"`),
	})
	j := New(mock, DefaultConfig())

	_, err := j.Evaluate(context.Background(), "q", "a", "b")
	var unavail *ErrUnavailable
	require.ErrorAs(t, err, &unavail)
}

func TestEvaluate_SendsAllThreeParts(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"is_correct": true, "feedback": "ok"}`),
	})
	j := New(mock, DefaultConfig())

	_, err := j.Evaluate(context.Background(), "the question", "the canon", "the attempt")
	require.NoError(t, err)
	require.Len(t, mock.Calls, 1)

	msg := mock.Calls[0].Messages[0].Content
	assert.Contains(t, msg, "the question")
	assert.Contains(t, msg, "the canon")
	assert.Contains(t, msg, "the attempt")
}
