package exercise

import "github.com/dsilva/studium/internal/llm"

// questionSetSchema defines the JSON schema for quiz and mixed-quiz
// generation responses.
var questionSetSchema = &llm.Schema{
	Name:        "study-questions",
	Description: "A set of study questions for a topic",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"text": map[string]any{
							"type":        "string",
							"description": "The question prompt, clear and self-contained",
						},
						"kind": map[string]any{
							"type":        "string",
							"enum":        []any{"open_ended", "multiple_choice", "fill_blank"},
							"description": "How the learner answers this question",
						},
						"answer": map[string]any{
							"type":        "string",
							"description": "The correct answer. For multiple_choice: the text of the correct option.",
						},
						"options": map[string]any{
							"type": "array",
							"items": map[string]any{
								"type": "string",
							},
							"description": "Exactly 4 options for multiple_choice, one of which equals answer. Empty otherwise.",
						},
					},
					"required":             []any{"text", "kind", "answer", "options"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}

// pairSetSchema defines the JSON schema for matching-game generation
// responses.
var pairSetSchema = &llm.Schema{
	Name:        "study-pairs",
	Description: "A set of term/definition pairs for a matching game",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"pairs": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"term": map[string]any{
							"type":        "string",
							"description": "A short term or concept name",
						},
						"definition": map[string]any{
							"type":        "string",
							"description": "A one-sentence definition of the term",
						},
					},
					"required":             []any{"term", "definition"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"pairs"},
		"additionalProperties": false,
	},
}
