package deckgen

import "github.com/abhisek/lingodeck/internal/llm"

// DeckSchema defines the JSON schema for generated vocabulary decks.
// Every property is required so that strict structured-output modes accept it.
var DeckSchema = &llm.Schema{
	Name:        "vocab-deck",
	Description: "A deck of vocabulary flashcards for a language learner",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name": map[string]any{
				"type":        "string",
				"description": "Short deck title (2-6 words)",
			},
			"description": map[string]any{
				"type":        "string",
				"description": "One sentence describing what the deck covers",
			},
			"language": map[string]any{
				"type":        "string",
				"description": "Language of the terms, as a short code such as es or de",
			},
			"cards": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"term": map[string]any{
							"type":        "string",
							"description": "Word or short phrase in the target language",
						},
						"definition": map[string]any{
							"type":        "string",
							"description": "Meaning in English, at most a few words",
						},
					},
					"required":             []any{"term", "definition"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"name", "description", "language", "cards"},
		"additionalProperties": false,
	},
}
