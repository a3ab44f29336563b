package content

import "github.com/abhisek/daylingo/internal/llm"

// LessonSchema defines the JSON schema for generated lesson batches.
var LessonSchema = &llm.Schema{
	Name:        "lesson",
	Description: "A structured lesson of 8 exercises",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"exercises": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"type": map[string]any{
							"type": "string",
							"enum": []any{
								"TRANSLATE_TO_TARGET",
								"TRANSLATE_TO_SOURCE",
								"MULTIPLE_CHOICE",
								"PRONUNCIATION",
								"MATCHING",
								"LISTENING",
							},
						},
						"question":      map[string]any{"type": "string"},
						"correctAnswer": map[string]any{"type": "string"},
						"options": map[string]any{
							"type":  "array",
							"items": map[string]any{"type": "string"},
						},
						"pairs": map[string]any{
							"type": "array",
							"items": map[string]any{
								"type": "object",
								"properties": map[string]any{
									"source": map[string]any{"type": "string"},
									"target": map[string]any{"type": "string"},
								},
							},
						},
						"tip": map[string]any{
							"type":        "string",
							"description": "Optional helpful tip from the mascot.",
						},
					},
					"required": []any{"type", "question", "correctAnswer"},
				},
			},
		},
		"required": []any{"exercises"},
	},
}
