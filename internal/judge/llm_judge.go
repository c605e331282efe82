package judge

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dsilva/studium/internal/llm"
)

const systemPrompt = `You are grading a learner's answer to a study question.

Rules:
- Judge meaning, not wording: accept paraphrases, synonyms and reordered phrasing that convey the canonical answer.
- Reject answers that are incomplete, contradict the canonical answer, or answer a different question.
- Feedback is one or two sentences addressed to the learner: confirm what was right, or state what was missing or wrong.
- Never reveal more of the canonical answer than needed to explain the verdict.`

// verdictSchema is the JSON schema for judging responses.
var verdictSchema = &llm.Schema{
	Name:        "answer-verdict",
	Description: "Correctness verdict and feedback for a learner's answer",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"is_correct": map[string]any{
				"type":        "boolean",
				"description": "Whether the learner's answer conveys the canonical answer",
			},
			"feedback": map[string]any{
				"type":        "string",
				"description": "One or two sentences of feedback for the learner",
			},
		},
		"required":             []any{"is_correct", "feedback"},
		"additionalProperties": false,
	},
}

// Config controls the LLMJudge.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns recommended judging settings. Temperature stays
// at zero so verdicts are reproducible.
func DefaultConfig() Config {
	return Config{MaxTokens: 256}
}

// LLMJudge implements Judge using the model provider.
type LLMJudge struct {
	provider llm.Provider
	config   Config
}

// New creates an LLMJudge with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMJudge {
	return &LLMJudge{provider: provider, config: cfg}
}

type verdictOutput struct {
	IsCorrect bool   `json:"is_correct"`
	Feedback  string `json:"feedback"`
}

// Evaluate asks the model for a verdict on one answer.
func (j *LLMJudge) Evaluate(ctx context.Context, question, canonicalAnswer, candidateAnswer string) (Verdict, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeAnswerJudge)

	userMsg := fmt.Sprintf(
		"Question: %s\nCanonical answer: %s\nLearner's answer: %s",
		question, canonicalAnswer, candidateAnswer,
	)

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: userMsg},
		},
		Schema:      verdictSchema,
		MaxTokens:   j.config.MaxTokens,
		Temperature: j.config.Temperature,
	}

	resp, err := j.provider.Generate(ctx, req)
	if err != nil {
		return Verdict{}, &ErrUnavailable{Err: err}
	}

	var raw verdictOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return Verdict{}, &ErrUnavailable{Err: fmt.Errorf("parse verdict: %w", err)}
	}

	return Verdict{Correct: raw.IsCorrect, Feedback: raw.Feedback}, nil
}
