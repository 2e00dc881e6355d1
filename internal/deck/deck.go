// Package deck reads and validates JSON deck files.
//
// A deck file looks like:
//
//	{
//	  "name": "Spanish greetings",
//	  "language": "es",
//	  "cards": [{"term": "hola", "definition": "hello"}]
//	}
package deck

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/abhisek/lingodeck/internal/schemas"
	"github.com/abhisek/lingodeck/internal/store"
)

// ErrInvalidDeck is returned when a deck fails schema validation or
// normalization.
var ErrInvalidDeck = errors.New("invalid deck")

//go:embed deck.schema.json
var schemaJSON []byte

// SchemaName is the name the deck file schema is registered under.
const SchemaName = "deck"

// Deck is a named list of cards as stored in a deck file.
type Deck struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Language    string `json:"language,omitempty"`
	Cards       []Card `json:"cards"`
}

// Card is a single term/definition pair.
type Card struct {
	ID         string `json:"id,omitempty"`
	Term       string `json:"term"`
	Definition string `json:"definition"`
}

// SchemaDefinition returns the deck JSON schema as a generic map, suitable
// for structured LLM output.
func SchemaDefinition() map[string]any {
	var def map[string]any
	if err := json.Unmarshal(schemaJSON, &def); err != nil {
		panic(fmt.Sprintf("deck: embedded schema: %v", err))
	}
	delete(def, "$schema")
	delete(def, "title")
	return def
}

// Parse validates raw JSON against the deck schema and decodes it.
// The returned deck is normalized.
func Parse(data []byte) (*Deck, error) {
	if err := validateRaw(data); err != nil {
		return nil, err
	}

	var d Deck
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDeck, err)
	}
	if err := d.Normalize(); err != nil {
		return nil, err
	}
	return &d, nil
}

// Load reads and parses a deck file.
func Load(path string) (*Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read deck: %w", err)
	}
	d, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// Validate checks an in-memory deck against the schema, the same check a
// deck file goes through.
func Validate(d Deck) error {
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("marshal deck: %w", err)
	}
	return validateRaw(data)
}

// Normalize trims whitespace, drops cards left empty after trimming and
// duplicate terms, and assigns IDs to cards that lack one.
func (d *Deck) Normalize() error {
	d.Name = strings.TrimSpace(d.Name)
	d.Description = strings.TrimSpace(d.Description)
	d.Language = strings.TrimSpace(d.Language)
	if d.Name == "" {
		return fmt.Errorf("%w: name is blank", ErrInvalidDeck)
	}

	seenTerm := make(map[string]bool, len(d.Cards))
	seenID := make(map[string]bool, len(d.Cards))
	cards := d.Cards[:0]
	for _, c := range d.Cards {
		c.Term = strings.TrimSpace(c.Term)
		c.Definition = strings.TrimSpace(c.Definition)
		if c.Term == "" || c.Definition == "" {
			continue
		}
		key := strings.ToLower(c.Term)
		if seenTerm[key] {
			continue
		}
		seenTerm[key] = true

		if c.ID == "" || seenID[c.ID] {
			c.ID = uuid.New().String()
		}
		seenID[c.ID] = true
		cards = append(cards, c)
	}
	d.Cards = cards

	if len(d.Cards) == 0 {
		return fmt.Errorf("%w: no usable cards", ErrInvalidDeck)
	}
	return nil
}

// NewSet converts the deck into a store.NewSet ready for insertion.
func (d Deck) NewSet() store.NewSet {
	ns := store.NewSet{
		Name:        d.Name,
		Description: d.Description,
		Language:    d.Language,
		Cards:       make([]store.CardData, len(d.Cards)),
	}
	for i, c := range d.Cards {
		ns.Cards[i] = store.CardData{ID: c.ID, Term: c.Term, Definition: c.Definition}
	}
	return ns
}

func validateRaw(data []byte) error {
	schema, err := schemas.CompileJSON(SchemaName, schemaJSON)
	if err != nil {
		return err
	}
	if err := schemas.ValidateJSON(schema, data); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDeck, err)
	}
	return nil
}
