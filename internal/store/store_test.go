package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func createSet(t *testing.T, s *Store, name string, terms ...string) *Set {
	t.Helper()
	ns := NewSet{Name: name, Language: "es"}
	for _, term := range terms {
		ns.Cards = append(ns.Cards, CardData{Term: term, Definition: term + "-def"})
	}
	set, err := s.SetRepo().CreateSet(context.Background(), ns)
	require.NoError(t, err)
	return set
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		require.NoError(t, s.DB().QueryRow("PRAGMA "+tt.pragma).Scan(&got), tt.pragma)
		assert.Equal(t, tt.want, got, tt.pragma)
	}
}

func TestOpenTwiceMigratesOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "twice.db")
	s1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s1.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()

	var n int
	require.NoError(t, s2.DB().QueryRow("SELECT COUNT(*) FROM card_sets").Scan(&n))
	assert.Zero(t, n)
}

func TestMigrationsCreateSchema(t *testing.T) {
	s := openTestStore(t)

	rows, err := s.DB().Query(`SELECT name FROM sqlite_master
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`)
	require.NoError(t, err)
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		tables = append(tables, name)
	}
	require.NoError(t, rows.Err())

	assert.ElementsMatch(t, []string{
		"goose_db_version",
		"card_sets",
		"cards",
		"session_events",
		"answer_events",
		"llm_request_events",
	}, tables)
}

func TestCreateAndGetSet(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	created := createSet(t, s, "Spanish basics", "hola", "adiós", "gracias")
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, 3, created.CardCount)

	byID, err := s.SetRepo().GetSet(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Spanish basics", byID.Name)
	assert.Equal(t, "es", byID.Language)
	assert.Equal(t, 3, byID.CardCount)
	assert.WithinDuration(t, created.CreatedAt, byID.CreatedAt, time.Second)

	byName, err := s.SetRepo().GetSet(ctx, "Spanish basics")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byName.ID)
}

func TestGetSetNotFound(t *testing.T) {
	s := openTestStore(t)
	_, err := s.SetRepo().GetSet(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateSetDuplicateName(t *testing.T) {
	s := openTestStore(t)
	createSet(t, s, "dup", "a")

	_, err := s.SetRepo().CreateSet(context.Background(), NewSet{Name: "dup"})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestCreateSetRequiresName(t *testing.T) {
	s := openTestStore(t)
	_, err := s.SetRepo().CreateSet(context.Background(), NewSet{})
	assert.Error(t, err)
}

func TestListSetsOrderedByName(t *testing.T) {
	s := openTestStore(t)
	createSet(t, s, "zulu", "z")
	createSet(t, s, "alpha", "a", "b")

	sets, err := s.SetRepo().ListSets(context.Background())
	require.NoError(t, err)
	require.Len(t, sets, 2)
	assert.Equal(t, "alpha", sets[0].Name)
	assert.Equal(t, 2, sets[0].CardCount)
	assert.Equal(t, "zulu", sets[1].Name)
	assert.Equal(t, 1, sets[1].CardCount)
}

func TestCardsForSetPreservesInsertionOrder(t *testing.T) {
	s := openTestStore(t)
	set := createSet(t, s, "order", "uno", "dos", "tres")

	cards, err := s.CardRepo().CardsForSet(context.Background(), set.ID)
	require.NoError(t, err)
	require.Len(t, cards, 3)
	assert.Equal(t, "uno", cards[0].Term)
	assert.Equal(t, "dos", cards[1].Term)
	assert.Equal(t, "tres", cards[2].Term)
	assert.Equal(t, "uno-def", cards[0].Definition)
	for _, c := range cards {
		assert.NotEmpty(t, c.ID)
	}
}

func TestAddCardsAppends(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	set := createSet(t, s, "grow", "one")

	err := s.CardRepo().AddCards(ctx, set.ID, []CardData{
		{ID: "c2", Term: "two", Definition: "2"},
		{Term: "three", Definition: "3"},
	})
	require.NoError(t, err)

	cards, err := s.CardRepo().CardsForSet(ctx, set.ID)
	require.NoError(t, err)
	require.Len(t, cards, 3)
	assert.Equal(t, []string{"one", "two", "three"}, []string{cards[0].Term, cards[1].Term, cards[2].Term})
	assert.Equal(t, "c2", cards[1].ID)
}

func TestAddCardsUnknownSet(t *testing.T) {
	s := openTestStore(t)
	err := s.CardRepo().AddCards(context.Background(), "nope", []CardData{{Term: "x", Definition: "y"}})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddCardsDuplicateID(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	set, err := s.SetRepo().CreateSet(ctx, NewSet{Name: "ids", Cards: []CardData{{ID: "same", Term: "a", Definition: "b"}}})
	require.NoError(t, err)

	err = s.CardRepo().AddCards(ctx, set.ID, []CardData{{ID: "same", Term: "c", Definition: "d"}})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestDeleteSetCascadesCards(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	set := createSet(t, s, "gone", "a", "b")

	require.NoError(t, s.SetRepo().DeleteSet(ctx, set.ID))

	cards, err := s.CardRepo().CardsForSet(ctx, set.ID)
	require.NoError(t, err)
	assert.Empty(t, cards)

	assert.ErrorIs(t, s.SetRepo().DeleteSet(ctx, set.ID), ErrNotFound)
}

func TestSessionHistory(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	set := createSet(t, s, "history", "a", "b")
	repo := s.SessionRepo()

	require.NoError(t, repo.AppendSessionEvent(ctx, SessionEventData{SessionID: "s1", SetID: set.ID, Action: SessionStart}))
	require.NoError(t, repo.AppendOutcomeEvent(ctx, OutcomeEventData{SessionID: "s1", SetID: set.ID, CardID: "a", Correct: true, Source: "swipe"}))
	require.NoError(t, repo.AppendOutcomeEvent(ctx, OutcomeEventData{SessionID: "s1", SetID: set.ID, CardID: "b", Correct: false, Source: "timer"}))
	require.NoError(t, repo.AppendSessionEvent(ctx, SessionEventData{
		SessionID: "s1", SetID: set.ID, Action: SessionEnd,
		Correct: 1, Incorrect: 1, Duration: 42 * time.Second,
	}))

	sessions, err := repo.RecentSessions(ctx, 10)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	got := sessions[0]
	assert.Equal(t, "s1", got.SessionID)
	assert.Equal(t, "history", got.SetName)
	assert.Equal(t, 1, got.Correct)
	assert.Equal(t, 1, got.Incorrect)
	assert.Equal(t, 42*time.Second, got.Duration)
	assert.InDelta(t, 50.0, got.Percent(), 0.001)

	acc, err := repo.SetAccuracy(ctx, set.ID)
	require.NoError(t, err)
	assert.Equal(t, Accuracy{Correct: 1, Incorrect: 1}, acc)
}

func TestRecentSessionsNewestFirstWithLimit(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.SessionRepo()

	for _, id := range []string{"s1", "s2", "s3"} {
		require.NoError(t, repo.AppendSessionEvent(ctx, SessionEventData{SessionID: id, SetID: "x", Action: SessionEnd}))
	}

	sessions, err := repo.RecentSessions(ctx, 2)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "s3", sessions[0].SessionID)
	assert.Equal(t, "s2", sessions[1].SessionID)
	assert.Empty(t, sessions[0].SetName)
}

func TestSetAccuracyEmpty(t *testing.T) {
	s := openTestStore(t)
	acc, err := s.SessionRepo().SetAccuracy(context.Background(), "none")
	require.NoError(t, err)
	assert.Zero(t, acc.Percent())
}

func TestAppendLLMRequest(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	err := s.EventRepo().AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "mock", Model: "m", Purpose: "deck-generation",
		InputTokens: 10, OutputTokens: 20, LatencyMs: 5, Success: true,
	})
	require.NoError(t, err)

	var n int
	require.NoError(t, s.DB().QueryRow("SELECT COUNT(*) FROM llm_request_events WHERE success = 1").Scan(&n))
	assert.Equal(t, 1, n)
}

func TestLLMRequestQueries(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.EventRepo()

	events := []LLMRequestEventData{
		{Provider: "mock", Model: "m", Purpose: "deck-generation", InputTokens: 10, OutputTokens: 20, LatencyMs: 10, Success: true},
		{Provider: "mock", Model: "m", Purpose: "deck-generation", InputTokens: 5, OutputTokens: 0, LatencyMs: 30, ErrorMessage: "boom"},
		{Provider: "mock", Model: "m", Purpose: "other", InputTokens: 1, OutputTokens: 1, LatencyMs: 1, Success: true},
	}
	for _, e := range events {
		require.NoError(t, repo.AppendLLMRequest(ctx, e))
	}

	t.Run("recent newest first", func(t *testing.T) {
		got, err := repo.RecentLLMRequests(ctx, "", 2)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "other", got[0].Purpose)
		assert.False(t, got[1].Success)
		assert.Equal(t, "boom", got[1].ErrorMessage)
		assert.False(t, got[0].Timestamp.IsZero())
	})

	t.Run("filter by purpose", func(t *testing.T) {
		got, err := repo.RecentLLMRequests(ctx, "deck-generation", 0)
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("usage by purpose", func(t *testing.T) {
		usage, err := repo.LLMUsageByPurpose(ctx)
		require.NoError(t, err)
		require.Len(t, usage, 2)
		assert.Equal(t, LLMUsage{
			Purpose: "deck-generation", Calls: 2, Failures: 1,
			InputTokens: 15, OutputTokens: 20, AvgLatencyMs: 20,
		}, usage[0])
		assert.Equal(t, "other", usage[1].Purpose)
	})
}

func TestReset(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	createSet(t, s, "wipe", "a")
	require.NoError(t, s.SessionRepo().AppendSessionEvent(ctx, SessionEventData{SessionID: "s", SetID: "x", Action: SessionEnd}))

	require.NoError(t, s.Reset(ctx))

	sets, err := s.SetRepo().ListSets(ctx)
	require.NoError(t, err)
	assert.Empty(t, sets)
	sessions, err := s.SessionRepo().RecentSessions(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestDefaultDBPath(t *testing.T) {
	dir := t.TempDir()

	t.Run("env override", func(t *testing.T) {
		want := filepath.Join(dir, "custom", "x.db")
		t.Setenv("LINGODECK_DB", want)
		got, err := DefaultDBPath()
		require.NoError(t, err)
		assert.Equal(t, want, got)
		assert.DirExists(t, filepath.Join(dir, "custom"))
	})

	t.Run("xdg data home", func(t *testing.T) {
		t.Setenv("LINGODECK_DB", "")
		t.Setenv("XDG_DATA_HOME", dir)
		got, err := DefaultDBPath()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "lingodeck", "lingodeck.db"), got)
	})
}
