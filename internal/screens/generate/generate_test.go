package generate

import (
	"context"
	"errors"
	"fmt"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lingodeck/internal/deck"
	"github.com/abhisek/lingodeck/internal/deckgen"
	"github.com/abhisek/lingodeck/internal/llm"
	"github.com/abhisek/lingodeck/internal/store"
)

type fakeGenerator struct {
	got  deckgen.Input
	deck *deck.Deck
	err  error
}

func (f *fakeGenerator) Generate(_ context.Context, in deckgen.Input) (*deck.Deck, error) {
	f.got = in
	return f.deck, f.err
}

type fakeSets struct {
	created []store.NewSet
	err     error
}

func (f *fakeSets) CreateSet(_ context.Context, ns store.NewSet) (*store.Set, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = append(f.created, ns)
	return &store.Set{ID: "new", Name: ns.Name, CardCount: len(ns.Cards)}, nil
}
func (f *fakeSets) ListSets(context.Context) ([]store.Set, error)            { return nil, nil }
func (f *fakeSets) GetSet(context.Context, string) (*store.Set, error)       { return nil, store.ErrNotFound }
func (f *fakeSets) DeleteSet(context.Context, string) error                  { return nil }

func typeText(s *GenerateScreen, text string) {
	for _, r := range text {
		s.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func foodDeck() *deck.Deck {
	return &deck.Deck{
		Name:     "Food",
		Language: "Spanish",
		Cards: []deck.Card{
			{ID: "1", Term: "pan", Definition: "bread"},
			{ID: "2", Term: "agua", Definition: "water"},
		},
	}
}

func fill(s *GenerateScreen) {
	s.Init()
	typeText(s, "food")
	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	typeText(s, "Spanish")
	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	s.Update(tea.KeyPressMsg{Code: tea.KeyRight})
}

func TestGenerateScreen_RequiresFields(t *testing.T) {
	s := New(&fakeGenerator{}, &fakeSets{}, nil)
	s.Init()

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.False(t, s.running)
	assert.Contains(t, s.View(80, 24), "required")
}

func TestGenerateScreen_GeneratesAndStores(t *testing.T) {
	gen := &fakeGenerator{deck: foodDeck()}
	sets := &fakeSets{}
	s := New(gen, sets, []string{"Food"})
	fill(s)

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.True(t, s.running)

	s.Update(cmd())

	assert.Equal(t, deckgen.Input{
		Topic:    "food",
		Language: "Spanish",
		Level:    deckgen.LevelIntermediate,
		Count:    20,
	}, gen.got)
	require.Len(t, sets.created, 1)
	assert.Equal(t, "Food (2)", sets.created[0].Name)
	assert.Contains(t, s.View(80, 24), "with 2 cards")

	_, cmd = s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
}

func TestGenerateScreen_ShowsGenerationError(t *testing.T) {
	s := New(&fakeGenerator{err: errors.New("rate limited")}, &fakeSets{}, nil)
	fill(s)

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	s.Update(cmd())

	assert.False(t, s.running)
	assert.Contains(t, s.View(80, 24), "rate limited")
}

func TestGenerateScreen_NamesTopicOnUnusableDeck(t *testing.T) {
	err := fmt.Errorf("deck generation: %w", &llm.ErrInvalidResponse{
		Schema: deckgen.DeckSchema.Name, Subject: "food", Err: errors.New("cards: minItems"),
	})
	s := New(&fakeGenerator{err: err}, &fakeSets{}, nil)
	fill(s)

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	s.Update(cmd())

	assert.Contains(t, s.errMsg, `unusable deck for "food"`)
	assert.Contains(t, s.View(100, 24), "unusable deck")
}

func TestErrorText(t *testing.T) {
	assert.Equal(t, "boom", errorText(errors.New("boom")))
	assert.Contains(t, errorText(&llm.ErrMaxTokensExceeded{Limit: 10}), "fewer cards")
	assert.Equal(t, (&llm.ErrInvalidResponse{Err: errors.New("x")}).Error(),
		errorText(&llm.ErrInvalidResponse{Err: errors.New("x")}))
}

func TestGenerateScreen_CancelWhileRunning(t *testing.T) {
	gen := &fakeGenerator{err: context.Canceled}
	s := New(gen, &fakeSets{}, nil)
	fill(s)

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	s.Update(cmd())

	assert.Contains(t, s.View(80, 24), "cancelled")
}

func TestUniqueName(t *testing.T) {
	taken := map[string]bool{"food": true, "food (2)": true}
	assert.Equal(t, "Food (3)", uniqueName("Food", taken))
	assert.Equal(t, "Drinks", uniqueName("Drinks", taken))
}
