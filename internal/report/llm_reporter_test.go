package report

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsilva/studium/internal/llm"
)

var analysisJSON = json.RawMessage(`{
	"summary": "Solid grasp of the basics with gaps on edge cases.",
	"strengths": ["Definitions"],
	"weaknesses": ["Applying formulas"],
	"suggestions": ["Rework the two missed questions"]
}`)

func quizInput() Input {
	return Input{
		Topic: "Photosynthesis",
		Mode:  "Quiz",
		Results: []QuestionResult{
			{Question: "What pigment absorbs light?", Answer: "chlorophyll", Correct: true, TimeTaken: 12},
			{Question: "Where does the Calvin cycle run?", Answer: "mitochondria", Correct: false, TimeTaken: 30},
		},
	}
}

func TestGenerate_RendersSelfContainedArtifact(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: analysisJSON})
	r := New(mock, DefaultConfig())

	art, err := r.Generate(context.Background(), quizInput())
	require.NoError(t, err)

	assert.Equal(t, "Photosynthesis", art.Topic)
	assert.False(t, art.GeneratedAt.IsZero())
	assert.Contains(t, art.Content, "Score: 1/2")
	assert.Contains(t, art.Content, "Solid grasp of the basics")
	assert.Contains(t, art.Content, "Rework the two missed questions")
}

func TestGenerate_SendsResultsToModel(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: analysisJSON})
	r := New(mock, DefaultConfig())

	_, err := r.Generate(context.Background(), quizInput())
	require.NoError(t, err)
	require.Len(t, mock.Calls, 1)

	msg := mock.Calls[0].Messages[0].Content
	assert.Contains(t, msg, "What pigment absorbs light?")
	assert.Contains(t, msg, "incorrect")
}

func TestGenerate_MatchSummary(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: analysisJSON})
	r := New(mock, DefaultConfig())

	art, err := r.Generate(context.Background(), Input{
		Topic: "Latin vocabulary",
		Mode:  "Matching",
		Match: &MatchSummary{TotalPairs: 8, MatchedPairs: 6, ElapsedSeconds: 95},
	})
	require.NoError(t, err)
	assert.Contains(t, art.Content, "Matched 6 of 8 pairs")

	msg := mock.Calls[0].Messages[0].Content
	assert.Contains(t, msg, "Matched pairs: 6 of 8")
}

func TestGenerate_ProviderFailureMapsToUnavailable(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.ErrProviderUnavailable{Err: errors.New("down")},
	})
	r := New(mock, DefaultConfig())

	_, err := r.Generate(context.Background(), quizInput())
	var unavail *ErrUnavailable
	require.ErrorAs(t, err, &unavail)
}

func TestGenerate_MalformedAnalysisMapsToUnavailable(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`[]`),
	})
	r := New(mock, DefaultConfig())

	_, err := r.Generate(context.Background(), quizInput())
	var unavail *ErrUnavailable
	require.ErrorAs(t, err, &unavail)
}
