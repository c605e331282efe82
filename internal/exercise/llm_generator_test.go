package exercise

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsilva/studium/internal/llm"
)

func questionsJSON(qs ...Question) json.RawMessage {
	b, err := json.Marshal(questionSetOutput{Questions: qs})
	if err != nil {
		panic(err)
	}
	return b
}

func pairsJSON(ps ...Pair) json.RawMessage {
	b, err := json.Marshal(pairSetOutput{Pairs: ps})
	if err != nil {
		panic(err)
	}
	return b
}

func TestGenerate_QuizReturnsOpenQuestions(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: questionsJSON(
		Question{Text: "What drives the light reactions?", Kind: KindOpenEnded, Answer: "Sunlight absorbed by chlorophyll"},
		Question{Text: "Where does the Calvin cycle run?", Kind: KindOpenEnded, Answer: "In the stroma of the chloroplast"},
	)})
	g := New(mock, DefaultConfig())

	set, err := g.Generate(context.Background(), "Photosynthesis", 2, ModeQuiz)
	require.NoError(t, err)
	assert.Equal(t, ModeQuiz, set.Mode)
	assert.Equal(t, "Photosynthesis", set.Topic)
	assert.Len(t, set.Questions, 2)
	assert.Empty(t, set.Pairs)
}

func TestGenerate_TruncatesSurplusItems(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: questionsJSON(
		Question{Text: "q1", Kind: KindOpenEnded, Answer: "a1"},
		Question{Text: "q2", Kind: KindOpenEnded, Answer: "a2"},
		Question{Text: "q3", Kind: KindOpenEnded, Answer: "a3"},
	)})
	g := New(mock, DefaultConfig())

	set, err := g.Generate(context.Background(), "Tides", 2, ModeQuiz)
	require.NoError(t, err)
	assert.Len(t, set.Questions, 2)
}

func TestGenerate_InsufficientItemsIsGenerationError(t *testing.T) {
	// One of the three items is broken (empty answer), leaving 2 < 3.
	mock := llm.NewMockProvider(llm.MockResponse{Content: questionsJSON(
		Question{Text: "q1", Kind: KindOpenEnded, Answer: "a1"},
		Question{Text: "q2", Kind: KindOpenEnded, Answer: ""},
		Question{Text: "q3", Kind: KindOpenEnded, Answer: "a3"},
	)})
	g := New(mock, DefaultConfig())

	_, err := g.Generate(context.Background(), "Tides", 3, ModeQuiz)
	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, 3, genErr.Wanted)
	assert.Equal(t, 2, genErr.Got)
}

func TestGenerate_ProviderFailureIsGenerationError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.ErrProviderUnavailable{Err: errors.New("down")},
	})
	g := New(mock, DefaultConfig())

	_, err := g.Generate(context.Background(), "Tides", 3, ModeQuiz)
	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)

	var unavail *llm.ErrProviderUnavailable
	assert.ErrorAs(t, err, &unavail)
}

func TestGenerate_QuizRejectsNonOpenKinds(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: questionsJSON(
		Question{Text: "q1", Kind: KindOpenEnded, Answer: "a1"},
		Question{Text: "q2", Kind: KindMultipleChoice, Answer: "a2", Options: []string{"a2", "x", "y", "z"}},
	)})
	g := New(mock, DefaultConfig())

	_, err := g.Generate(context.Background(), "Tides", 2, ModeQuiz)
	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, 1, genErr.Got)
}

func TestGenerate_MixedAcceptsAllKinds(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: questionsJSON(
		Question{Text: "q1", Kind: KindOpenEnded, Answer: "a1"},
		Question{Text: "q2", Kind: KindMultipleChoice, Answer: "a2", Options: []string{"a2", "x", "y", "z"}},
		Question{Text: "q3", Kind: KindFillBlank, Answer: "a3"},
	)})
	g := New(mock, DefaultConfig())

	set, err := g.Generate(context.Background(), "Tides", 3, ModeMixed)
	require.NoError(t, err)
	require.Len(t, set.Questions, 3)
	assert.Equal(t, KindMultipleChoice, set.Questions[1].Kind)
}

func TestGenerate_MultipleChoiceOptionsMustContainAnswer(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: questionsJSON(
		Question{Text: "q1", Kind: KindMultipleChoice, Answer: "right", Options: []string{"wrong", "also wrong", "no", "nope"}},
	)})
	g := New(mock, DefaultConfig())

	_, err := g.Generate(context.Background(), "Tides", 1, ModeMixed)
	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, 0, genErr.Got)
}

func TestGenerate_MatchDropsDuplicateTerms(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: pairsJSON(
		Pair{Term: "xylem", Definition: "carries water upward"},
		Pair{Term: "xylem", Definition: "duplicate"},
		Pair{Term: "phloem", Definition: "carries sugars"},
	)})
	g := New(mock, DefaultConfig())

	set, err := g.Generate(context.Background(), "Plant tissue", 2, ModeMatch)
	require.NoError(t, err)
	require.Len(t, set.Pairs, 2)
	assert.Equal(t, "xylem", set.Pairs[0].Term)
	assert.Equal(t, "phloem", set.Pairs[1].Term)
}

func TestSet_Len(t *testing.T) {
	qs := &Set{Mode: ModeQuiz, Questions: make([]Question, 3)}
	ps := &Set{Mode: ModeMatch, Pairs: make([]Pair, 4)}
	assert.Equal(t, 3, qs.Len())
	assert.Equal(t, 4, ps.Len())
}
