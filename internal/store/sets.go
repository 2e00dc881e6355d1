package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

// Set is a named collection of cards.
type Set struct {
	ID          string
	Name        string
	Description string
	Language    string
	CardCount   int
	CreatedAt   time.Time
}

// CardData is a card to be stored. An empty ID is assigned a UUID.
type CardData struct {
	ID         string
	Term       string
	Definition string
}

// NewSet describes a set to create together with its cards.
type NewSet struct {
	Name        string
	Description string
	Language    string
	Cards       []CardData
}

// SetRepo manages card sets.
type SetRepo interface {
	// CreateSet stores a set and its cards in one transaction.
	CreateSet(ctx context.Context, ns NewSet) (*Set, error)

	// ListSets returns all sets ordered by name.
	ListSets(ctx context.Context) ([]Set, error)

	// GetSet looks a set up by ID or, failing that, by name.
	GetSet(ctx context.Context, idOrName string) (*Set, error)

	// DeleteSet removes a set and its cards.
	DeleteSet(ctx context.Context, id string) error
}

type setRepo struct {
	db *sql.DB
}

var setColumns = []string{"id", "name", "description", "language", "created_at"}

func (r *setRepo) CreateSet(ctx context.Context, ns NewSet) (*Set, error) {
	if ns.Name == "" {
		return nil, fmt.Errorf("create set: name is required")
	}

	set := &Set{
		ID:          uuid.New().String(),
		Name:        ns.Name,
		Description: ns.Description,
		Language:    ns.Language,
		CardCount:   len(ns.Cards),
		CreatedAt:   time.Now(),
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	query, args := builder().Insert("card_sets").
		Columns(setColumns...).
		Values(set.ID, set.Name, set.Description, set.Language, toMillis(set.CreatedAt)).
		Query()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("insert set %q: %w", ns.Name, mapError(err))
	}

	if err := insertCards(ctx, tx, set.ID, 0, ns.Cards); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return set, nil
}

func (r *setRepo) ListSets(ctx context.Context) ([]Set, error) {
	query, args := builder().Select(setColumns...).
		From(builder().Table("card_sets")).
		OrderBy("name").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sets: %w", err)
	}
	defer rows.Close()

	var sets []Set
	for rows.Next() {
		s, err := scanSet(rows)
		if err != nil {
			return nil, err
		}
		sets = append(sets, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sets: %w", err)
	}

	for i := range sets {
		n, err := r.countCards(ctx, sets[i].ID)
		if err != nil {
			return nil, err
		}
		sets[i].CardCount = n
	}
	return sets, nil
}

func (r *setRepo) GetSet(ctx context.Context, idOrName string) (*Set, error) {
	for _, col := range []string{"id", "name"} {
		query, args := builder().Select(setColumns...).
			From(builder().Table("card_sets")).
			Where(entsql.EQ(col, idOrName)).
			Limit(1).
			Query()

		s, err := scanSet(r.db.QueryRowContext(ctx, query, args...))
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return nil, err
		}
		s.CardCount, err = r.countCards(ctx, s.ID)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return nil, fmt.Errorf("set %q: %w", idOrName, ErrNotFound)
}

func (r *setRepo) DeleteSet(ctx context.Context, id string) error {
	query, args := builder().Delete("card_sets").Where(entsql.EQ("id", id)).Query()
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete set: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("set %q: %w", id, ErrNotFound)
	}
	return nil
}

func (r *setRepo) countCards(ctx context.Context, setID string) (int, error) {
	return countCards(ctx, r.db, setID)
}

func countCards(ctx context.Context, q queryer, setID string) (int, error) {
	query, args := builder().Select(entsql.Count("*")).
		From(builder().Table("cards")).
		Where(entsql.EQ("set_id", setID)).
		Query()

	var n int
	if err := q.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count cards: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSet(row rowScanner) (*Set, error) {
	var s Set
	var created int64
	if err := row.Scan(&s.ID, &s.Name, &s.Description, &s.Language, &created); err != nil {
		return nil, mapError(err)
	}
	s.CreatedAt = fromMillis(created)
	return &s, nil
}
