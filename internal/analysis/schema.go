package analysis

import "github.com/reddycharan348/Gate-Exam/internal/llm"

// Schema is the response schema for performance feedback.
var Schema = &llm.Schema{
	Name:        "gate-analysis",
	Description: "Improvement areas and per-section feedback for a GATE mock test",
	Strict:      true,
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"improvementAreas": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "3-5 high-impact improvement areas, one sentence each",
			},
			"sectionPerformance": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"section": map[string]any{
							"type":        "string",
							"description": "Section label exactly as given",
						},
						"feedback": map[string]any{
							"type":        "string",
							"description": "One or two sentences on performance in this section",
						},
					},
					"required":             []any{"section", "feedback"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"improvementAreas", "sectionPerformance"},
		"additionalProperties": false,
	},
}
