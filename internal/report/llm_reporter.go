package report

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dsilva/studium/internal/llm"
)

const systemPrompt = `You are writing a short study-performance analysis for a learner who just finished an exercise session.

Rules:
- Base every statement strictly on the results given; never invent questions or scores.
- Name the learner's strong areas and weak areas in terms of the question content.
- Give two or three concrete suggestions for what to review next.
- Address the learner directly, in an encouraging but honest tone.`

// analysisSchema is the JSON schema for report responses.
var analysisSchema = &llm.Schema{
	Name:        "performance-analysis",
	Description: "Structured performance analysis of a study session",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"summary": map[string]any{
				"type":        "string",
				"description": "Two or three sentences summarizing overall performance",
			},
			"strengths": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Topics or skills the learner handled well",
			},
			"weaknesses": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Topics or skills that need work",
			},
			"suggestions": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Concrete next steps for the learner",
			},
		},
		"required":             []any{"summary", "strengths", "weaknesses", "suggestions"},
		"additionalProperties": false,
	},
}

// Config controls the LLMReporter.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns recommended reporting settings.
func DefaultConfig() Config {
	return Config{MaxTokens: 1024, Temperature: 0.3}
}

// LLMReporter implements Reporter using the model provider.
type LLMReporter struct {
	provider llm.Provider
	config   Config
	now      func() time.Time
}

// New creates an LLMReporter with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMReporter {
	return &LLMReporter{provider: provider, config: cfg, now: time.Now}
}

type analysisOutput struct {
	Summary     string   `json:"summary"`
	Strengths   []string `json:"strengths"`
	Weaknesses  []string `json:"weaknesses"`
	Suggestions []string `json:"suggestions"`
}

// Generate asks the model for an analysis and renders it, together with
// the raw numbers, into a self-contained markdown artifact.
func (r *LLMReporter) Generate(ctx context.Context, in Input) (*Artifact, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeReportGen)

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildReportMessage(in)},
		},
		Schema:      analysisSchema,
		MaxTokens:   r.config.MaxTokens,
		Temperature: r.config.Temperature,
	}

	resp, err := r.provider.Generate(ctx, req)
	if err != nil {
		return nil, &ErrUnavailable{Err: err}
	}

	var raw analysisOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, &ErrUnavailable{Err: fmt.Errorf("parse analysis: %w", err)}
	}

	return &Artifact{
		Topic:       in.Topic,
		Mode:        in.Mode,
		GeneratedAt: r.now(),
		Content:     renderArtifact(in, raw),
	}, nil
}

// buildReportMessage serializes the session outcome for the prompt.
func buildReportMessage(in Input) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Topic: %s\nMode: %s\n", in.Topic, in.Mode)

	if in.Match != nil {
		fmt.Fprintf(&b, "Matched pairs: %d of %d\n", in.Match.MatchedPairs, in.Match.TotalPairs)
		fmt.Fprintf(&b, "Elapsed: %d seconds\n", in.Match.ElapsedSeconds)
		fmt.Fprintf(&b, "Finished the board: %t\n", in.Match.Completed)
		return b.String()
	}

	b.WriteString("Results:\n")
	for i, res := range in.Results {
		verdict := "correct"
		if !res.Correct {
			verdict = "incorrect"
		}
		fmt.Fprintf(&b, "%d. [%s, %ds] %s\n   Learner answered: %s\n", i+1, verdict, res.TimeTaken, res.Question, res.Answer)
	}

	return b.String()
}

// renderArtifact combines the model's analysis with the session's own
// numbers so the artifact needs no live data to redisplay.
func renderArtifact(in Input, a analysisOutput) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Session Report — %s\n\n", in.Topic)

	if in.Match != nil {
		fmt.Fprintf(&b, "Matched %d of %d pairs in %ds.\n\n", in.Match.MatchedPairs, in.Match.TotalPairs, in.Match.ElapsedSeconds)
	} else {
		correct := 0
		for _, res := range in.Results {
			if res.Correct {
				correct++
			}
		}
		fmt.Fprintf(&b, "Score: %d/%d\n\n", correct, len(in.Results))
	}

	b.WriteString(a.Summary)
	b.WriteString("\n")

	writeSection(&b, "Strengths", a.Strengths)
	writeSection(&b, "Needs work", a.Weaknesses)
	writeSection(&b, "Suggested next steps", a.Suggestions)

	return b.String()
}

func writeSection(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "\n## %s\n", title)
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
}
