// Package solutions produces step-by-step worked solutions for a
// problem statement and saves them to the user's library.
package solutions

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dsilva/studium/internal/library"
	"github.com/dsilva/studium/internal/llm"
)

const systemPrompt = `You are writing a guided, step-by-step solution to a study problem.

Rules:
- Break the solution into small numbered steps a learner can follow.
- Each step states what is done and why, in one or two sentences.
- End with the final answer, clearly marked.
- If the problem statement is ambiguous, state the assumption you make.`

var solutionSchema = &llm.Schema{
	Name:        "worked-solution",
	Description: "A step-by-step worked solution",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"steps": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"minItems":    1,
				"description": "Ordered solution steps",
			},
			"answer": map[string]any{
				"type":        "string",
				"description": "The final answer",
			},
		},
		"required":             []any{"steps", "answer"},
		"additionalProperties": false,
	},
}

// Config controls the Service.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns recommended solution settings.
func DefaultConfig() Config {
	return Config{MaxTokens: 2048, Temperature: 0.2}
}

// Service generates worked solutions via the model provider and
// persists them to the library's solutions collection.
type Service struct {
	provider llm.Provider
	lib      *library.Library
	config   Config
}

// New creates a solutions Service.
func New(provider llm.Provider, lib *library.Library, cfg Config) *Service {
	return &Service{provider: provider, lib: lib, config: cfg}
}

type solutionOutput struct {
	Steps  []string `json:"steps"`
	Answer string   `json:"answer"`
}

// Solve produces a worked solution for the problem statement. The
// rendered solution is returned and not yet saved.
func (s *Service) Solve(ctx context.Context, problem string) (string, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeSolutionGen)

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: "Problem: " + problem},
		},
		Schema:      solutionSchema,
		MaxTokens:   s.config.MaxTokens,
		Temperature: s.config.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return "", fmt.Errorf("generate solution: %w", err)
	}

	var raw solutionOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return "", fmt.Errorf("parse solution: %w", err)
	}
	if len(raw.Steps) == 0 {
		return "", fmt.Errorf("parse solution: no steps returned")
	}

	return render(problem, raw), nil
}

// Save persists a rendered solution to the library.
func (s *Service) Save(ctx context.Context, problem, content string) (library.SavedSolution, error) {
	return s.lib.AddSolution(ctx, library.SavedSolution{
		Problem: problem,
		Content: content,
	})
}

func render(problem string, sol solutionOutput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", problem)
	for i, step := range sol.Steps {
		fmt.Fprintf(&b, "%d. %s\n", i+1, step)
	}
	fmt.Fprintf(&b, "\n**Answer:** %s\n", sol.Answer)
	return b.String()
}
