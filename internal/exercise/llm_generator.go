package exercise

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dsilva/studium/internal/llm"
)

// Config controls the LLMGenerator.
type Config struct {
	// MaxTokens is the token budget for a generation response.
	MaxTokens int

	// Temperature controls output randomness (0.0-1.0).
	Temperature float64
}

// DefaultConfig returns recommended generation settings.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   2048,
		Temperature: 0.7,
	}
}

// LLMGenerator implements Generator using the model provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates an LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

type questionSetOutput struct {
	Questions []Question `json:"questions"`
}

type pairSetOutput struct {
	Pairs []Pair `json:"pairs"`
}

// Generate produces a Set of count items for the topic and mode.
func (g *LLMGenerator) Generate(ctx context.Context, topic string, count int, mode Mode) (*Set, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeExerciseGen)

	if mode == ModeMatch {
		return g.generatePairs(ctx, topic, count)
	}
	return g.generateQuestions(ctx, topic, count, mode)
}

func (g *LLMGenerator) generateQuestions(ctx context.Context, topic string, count int, mode Mode) (*Set, error) {
	req := llm.Request{
		System: questionSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildQuestionMessage(topic, count, mode)},
		},
		Schema:      questionSetSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, &GenerationError{Topic: topic, Wanted: count, Err: err}
	}

	var raw questionSetOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, &GenerationError{Topic: topic, Wanted: count, Err: fmt.Errorf("parse response: %w", err)}
	}

	valid := make([]Question, 0, len(raw.Questions))
	for _, q := range raw.Questions {
		if validQuestion(q, mode) {
			valid = append(valid, q)
		}
	}
	if len(valid) < count {
		return nil, &GenerationError{Topic: topic, Wanted: count, Got: len(valid)}
	}

	return &Set{Mode: mode, Topic: topic, Questions: valid[:count]}, nil
}

func (g *LLMGenerator) generatePairs(ctx context.Context, topic string, count int) (*Set, error) {
	req := llm.Request{
		System: pairSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildPairMessage(topic, count)},
		},
		Schema:      pairSetSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, &GenerationError{Topic: topic, Wanted: count, Err: err}
	}

	var raw pairSetOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, &GenerationError{Topic: topic, Wanted: count, Err: fmt.Errorf("parse response: %w", err)}
	}

	valid := validPairs(raw.Pairs)
	if len(valid) < count {
		return nil, &GenerationError{Topic: topic, Wanted: count, Got: len(valid)}
	}

	return &Set{Mode: ModeMatch, Topic: topic, Pairs: valid[:count]}, nil
}

// validQuestion filters out structurally broken items: empty fields,
// a kind the mode does not allow, or multiple-choice options that do
// not contain the answer.
func validQuestion(q Question, mode Mode) bool {
	if strings.TrimSpace(q.Text) == "" || strings.TrimSpace(q.Answer) == "" {
		return false
	}

	switch q.Kind {
	case KindOpenEnded:
		return true
	case KindMultipleChoice, KindFillBlank:
		if mode == ModeQuiz {
			return false
		}
	default:
		return false
	}

	if q.Kind == KindMultipleChoice {
		if len(q.Options) < 2 {
			return false
		}
		found := false
		for _, o := range q.Options {
			if o == q.Answer {
				found = true
				break
			}
		}
		return found
	}

	return true
}

// validPairs drops empty pairs and duplicate terms, preserving order.
func validPairs(pairs []Pair) []Pair {
	seen := make(map[string]bool, len(pairs))
	out := make([]Pair, 0, len(pairs))
	for _, p := range pairs {
		term := strings.TrimSpace(p.Term)
		if term == "" || strings.TrimSpace(p.Definition) == "" {
			continue
		}
		if seen[term] {
			continue
		}
		seen[term] = true
		out = append(out, p)
	}
	return out
}
