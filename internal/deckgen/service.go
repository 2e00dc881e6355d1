// Package deckgen generates vocabulary decks with an LLM.
package deckgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/abhisek/lingodeck/internal/deck"
	"github.com/abhisek/lingodeck/internal/llm"
)

// Learner levels accepted in Input.Level.
const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
)

// ErrInvalidInput is returned when generation parameters are out of range.
var ErrInvalidInput = errors.New("invalid generation input")

// Input describes the deck to generate.
type Input struct {
	Topic    string
	Language string
	Level    string
	Count    int

	// Avoid lists terms the learner already has.
	Avoid []string
}

// Service generates decks through an llm.Provider.
type Service struct {
	provider llm.Provider
	cfg      Config
}

// NewService creates a deck generation service.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

// Generate asks the provider for a deck and runs it through the same
// validation a deck file goes through. The result has at most Count cards
// and none of the Avoid terms.
func (s *Service) Generate(ctx context.Context, input Input) (*deck.Deck, error) {
	input, err := s.normalize(input)
	if err != nil {
		return nil, err
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeDeckGeneration)

	req := llm.Request{
		System: deckSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildDeckUserMessage(input)},
		},
		Schema:      DeckSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		var inv *llm.ErrInvalidResponse
		if errors.As(err, &inv) {
			err = inv.About(input.Topic)
		}
		return nil, fmt.Errorf("deck generation: %w", err)
	}

	// A response that passed the schema can still leave no usable deck.
	unusable := func(err error) error {
		return &llm.ErrInvalidResponse{
			Schema:  DeckSchema.Name,
			Subject: input.Topic,
			Content: resp.Content,
			Err:     err,
		}
	}

	var d deck.Deck
	if err := json.Unmarshal(resp.Content, &d); err != nil {
		return nil, unusable(fmt.Errorf("parse deck response: %w", err))
	}
	if d.Language == "" {
		d.Language = input.Language
	}

	d.Cards = dropTerms(d.Cards, input.Avoid)
	if len(d.Cards) > input.Count {
		d.Cards = d.Cards[:input.Count]
	}

	if err := deck.Validate(d); err != nil {
		return nil, unusable(err)
	}
	if err := d.Normalize(); err != nil {
		return nil, unusable(err)
	}

	slog.Info("generated deck", "topic", input.Topic, "language", d.Language,
		"requested", input.Count, "cards", len(d.Cards))
	return &d, nil
}

func (s *Service) normalize(input Input) (Input, error) {
	input.Topic = strings.TrimSpace(input.Topic)
	input.Language = strings.TrimSpace(input.Language)
	input.Level = strings.ToLower(strings.TrimSpace(input.Level))

	if input.Topic == "" {
		return input, fmt.Errorf("%w: topic is required", ErrInvalidInput)
	}
	if input.Language == "" {
		return input, fmt.Errorf("%w: language is required", ErrInvalidInput)
	}
	switch input.Level {
	case "":
		input.Level = LevelBeginner
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
	default:
		return input, fmt.Errorf("%w: unknown level %q", ErrInvalidInput, input.Level)
	}
	if input.Count < 1 || input.Count > s.cfg.MaxCards {
		return input, fmt.Errorf("%w: count must be between 1 and %d", ErrInvalidInput, s.cfg.MaxCards)
	}
	return input, nil
}

func dropTerms(cards []deck.Card, avoid []string) []deck.Card {
	if len(avoid) == 0 {
		return cards
	}
	skip := make(map[string]bool, len(avoid))
	for _, t := range avoid {
		skip[strings.ToLower(strings.TrimSpace(t))] = true
	}
	out := cards[:0]
	for _, c := range cards {
		if !skip[strings.ToLower(strings.TrimSpace(c.Term))] {
			out = append(out, c)
		}
	}
	return out
}
