package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// Session lifecycle actions recorded in session_events.
const (
	SessionStart   = "start"
	SessionEnd     = "end"
	SessionRestart = "restart"
	SessionAbandon = "abandon"
)

// SessionEventData records a session lifecycle event.
type SessionEventData struct {
	SessionID string
	SetID     string
	Action    string
	Correct   int
	Incorrect int
	Duration  time.Duration
}

// OutcomeEventData records the outcome of a single card.
type OutcomeEventData struct {
	SessionID string
	SetID     string
	CardID    string
	Correct   bool
	Source    string
}

// SessionSummary is a completed session as shown in history listings.
type SessionSummary struct {
	SessionID string
	SetID     string
	SetName   string
	Correct   int
	Incorrect int
	Duration  time.Duration
	EndedAt   time.Time
}

// Percent returns the session score as a percentage.
func (s SessionSummary) Percent() float64 {
	total := s.Correct + s.Incorrect
	if total == 0 {
		return 0
	}
	return float64(s.Correct) / float64(total) * 100
}

// Accuracy aggregates all recorded outcomes for a set.
type Accuracy struct {
	Correct   int
	Incorrect int
}

// Percent returns the share of correct outcomes as a percentage.
func (a Accuracy) Percent() float64 {
	total := a.Correct + a.Incorrect
	if total == 0 {
		return 0
	}
	return float64(a.Correct) / float64(total) * 100
}

// SessionRepo persists practice history.
type SessionRepo interface {
	AppendSessionEvent(ctx context.Context, data SessionEventData) error
	AppendOutcomeEvent(ctx context.Context, data OutcomeEventData) error

	// RecentSessions returns the most recently ended sessions, newest first.
	RecentSessions(ctx context.Context, limit int) ([]SessionSummary, error)

	// SetAccuracy aggregates every outcome recorded for a set.
	SetAccuracy(ctx context.Context, setID string) (Accuracy, error)
}

type sessionRepo struct {
	db *sql.DB
}

func (r *sessionRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	query, args := builder().Insert("session_events").
		Columns("session_id", "set_id", "action", "correct_count", "incorrect_count", "duration_ms", "created_at").
		Values(data.SessionID, data.SetID, data.Action, data.Correct, data.Incorrect,
			data.Duration.Milliseconds(), toMillis(time.Now())).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("append session event: %w", err)
	}
	return nil
}

func (r *sessionRepo) AppendOutcomeEvent(ctx context.Context, data OutcomeEventData) error {
	correct := 0
	if data.Correct {
		correct = 1
	}
	query, args := builder().Insert("answer_events").
		Columns("session_id", "set_id", "card_id", "correct", "source", "created_at").
		Values(data.SessionID, data.SetID, data.CardID, correct, data.Source, toMillis(time.Now())).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("append outcome event: %w", err)
	}
	return nil
}

func (r *sessionRepo) RecentSessions(ctx context.Context, limit int) ([]SessionSummary, error) {
	ev := entsql.Table("session_events").As("e")
	sets := entsql.Table("card_sets").As("s")
	sel := builder().
		Select(ev.C("session_id"), ev.C("set_id"), "COALESCE(s.name, '')",
			ev.C("correct_count"), ev.C("incorrect_count"), ev.C("duration_ms"), ev.C("created_at")).
		From(ev).
		LeftJoin(sets).On(ev.C("set_id"), sets.C("id")).
		Where(entsql.EQ(ev.C("action"), SessionEnd)).
		OrderBy(entsql.Desc(ev.C("created_at")), entsql.Desc(ev.C("id")))
	if limit > 0 {
		sel.Limit(limit)
	}
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("recent sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionSummary
	for rows.Next() {
		var s SessionSummary
		var durMs, ended int64
		if err := rows.Scan(&s.SessionID, &s.SetID, &s.SetName, &s.Correct, &s.Incorrect, &durMs, &ended); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		s.Duration = time.Duration(durMs) * time.Millisecond
		s.EndedAt = fromMillis(ended)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("recent sessions: %w", err)
	}
	return out, nil
}

func (r *sessionRepo) SetAccuracy(ctx context.Context, setID string) (Accuracy, error) {
	query, args := builder().
		Select("COALESCE(SUM(correct), 0)", "COUNT(*)").
		From(builder().Table("answer_events")).
		Where(entsql.EQ("set_id", setID)).
		Query()

	var correct, total int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&correct, &total); err != nil {
		return Accuracy{}, fmt.Errorf("set accuracy: %w", err)
	}
	return Accuracy{Correct: correct, Incorrect: total - correct}, nil
}
