package paper

import (
	"strconv"
	"strings"

	"github.com/reddycharan348/Gate-Exam/internal/llm"
)

// questionItem is the JSON schema of a single generated question. Upstream
// ids are allowed but ignored, since questions are renumbered after
// assembly. NAT questions may leave out options.
var questionItem = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"id": map[string]any{
			"type":        "integer",
			"description": "Position of the question in the batch",
		},
		"text": map[string]any{
			"type":        "string",
			"description": "The question stem, in plain text",
		},
		"type": map[string]any{
			"type":        "string",
			"enum":        []any{"MCQ", "MSQ", "NAT"},
			"description": "MCQ: one correct option. MSQ: one or more correct options. NAT: numerical answer, no options.",
		},
		"marks": map[string]any{
			"type":        "integer",
			"enum":        []any{1, 2},
			"description": "Marks awarded for a correct answer",
		},
		"options": map[string]any{
			"type":        "array",
			"items":       map[string]any{"type": "string"},
			"description": "Exactly 4 options for MCQ and MSQ. Empty array for NAT.",
		},
		"correctAnswer": map[string]any{
			"type":        "string",
			"description": "MCQ: zero-based option index, e.g. \"2\". MSQ: comma-separated indices, e.g. \"0,2\". NAT: the numeric value.",
		},
		"explanation": map[string]any{
			"type":        "string",
			"description": "A concise worked solution",
		},
		"section": map[string]any{
			"type":        "string",
			"description": "The section label given in the request",
		},
	},
	"required":             []any{"text", "type", "marks", "correctAnswer", "explanation", "section"},
	"additionalProperties": false,
}

// batchSchema returns the response schema for a batch. The question list is
// wrapped in an object because several providers only accept an object at
// the top level of a structured response.
func batchSchema(b Batch) *llm.Schema {
	return &llm.Schema{
		Name:        schemaName(b),
		Description: "A batch of GATE exam questions",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"questions": map[string]any{
					"type":     "array",
					"items":    questionItem,
					"minItems": b.Count,
					"maxItems": b.Count,
				},
			},
			"required":             []any{"questions"},
			"additionalProperties": false,
		},
	}
}

// schemaName must be unique per distinct schema: compiled schemas are
// cached by name.
func schemaName(b Batch) string {
	return "gate-questions-" + strings.ToLower(b.Name) + "-" + strconv.Itoa(b.Count)
}

// BatchForSchema maps a schema name produced by this package back to its
// batch. It lets offline responders answer with the right shape.
func BatchForSchema(name string) (Batch, bool) {
	for _, b := range append([]Batch{aptitudePaper}, fullPaper...) {
		if schemaName(b) == name {
			return b, true
		}
	}
	return Batch{}, false
}
