package store

import (
	"context"
	"database/sql"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"

	"github.com/abhisek/lingodeck/internal/practice"
)

// CardRepo reads and appends cards. It is the card source for practice
// sessions.
type CardRepo interface {
	// AddCards appends cards to an existing set after its current cards.
	AddCards(ctx context.Context, setID string, cards []CardData) error

	// CardsForSet returns a set's cards in insertion order.
	CardsForSet(ctx context.Context, setID string) ([]practice.Card, error)
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type cardRepo struct {
	db *sql.DB
}

func (r *cardRepo) AddCards(ctx context.Context, setID string, cards []CardData) error {
	if len(cards) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	query, args := builder().Select(entsql.Count("*")).
		From(builder().Table("card_sets")).
		Where(entsql.EQ("id", setID)).
		Query()
	var exists int
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return fmt.Errorf("lookup set: %w", err)
	}
	if exists == 0 {
		return fmt.Errorf("set %q: %w", setID, ErrNotFound)
	}

	query, args = builder().Select("COALESCE(MAX(position), -1)").
		From(builder().Table("cards")).
		Where(entsql.EQ("set_id", setID)).
		Query()
	var last int
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&last); err != nil {
		return fmt.Errorf("last position: %w", err)
	}

	if err := insertCards(ctx, tx, setID, last+1, cards); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *cardRepo) CardsForSet(ctx context.Context, setID string) ([]practice.Card, error) {
	query, args := builder().Select("id", "term", "definition").
		From(builder().Table("cards")).
		Where(entsql.EQ("set_id", setID)).
		OrderBy("position").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("load cards: %w", err)
	}
	defer rows.Close()

	var cards []practice.Card
	for rows.Next() {
		var c practice.Card
		if err := rows.Scan(&c.ID, &c.Term, &c.Definition); err != nil {
			return nil, fmt.Errorf("scan card: %w", err)
		}
		cards = append(cards, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load cards: %w", err)
	}
	return cards, nil
}

func insertCards(ctx context.Context, ex execer, setID string, start int, cards []CardData) error {
	if len(cards) == 0 {
		return nil
	}
	ins := builder().Insert("cards").Columns("id", "set_id", "position", "term", "definition")
	for i, c := range cards {
		id := c.ID
		if id == "" {
			id = uuid.New().String()
		}
		ins.Values(id, setID, start+i, c.Term, c.Definition)
	}
	query, args := ins.Query()
	if _, err := ex.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert cards: %w", mapError(err))
	}
	return nil
}
