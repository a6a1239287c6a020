package history

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Entry is one row of the question transcript.
type Entry struct {
	ID         uuid.UUID
	Kind       string
	Prompt     string
	Options    []string
	Answer     string
	Status     string // pending | answered | expired
	AskedAt    time.Time
	ResolvedAt *time.Time
}

const (
	StatusPending  = "pending"
	StatusAnswered = "answered"
	StatusExpired  = "expired"
)

const schema = `
CREATE TABLE IF NOT EXISTS consult_questions (
	id          UUID PRIMARY KEY,
	kind        TEXT NOT NULL,
	prompt      TEXT NOT NULL,
	options     TEXT[] NOT NULL DEFAULT '{}',
	answer      TEXT NOT NULL DEFAULT '',
	status      TEXT NOT NULL DEFAULT 'pending',
	asked_at    TIMESTAMPTZ NOT NULL,
	resolved_at TIMESTAMPTZ
)`

// Repository persists the transcript in Postgres.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository bootstraps the schema and returns the repository.
func NewRepository(ctx context.Context, db *pgxpool.Pool) (*Repository, error) {
	if _, err := db.Exec(ctx, schema); err != nil {
		return nil, fmt.Errorf("create history schema: %w", err)
	}
	return &Repository{db: db}, nil
}

// Insert records a freshly dispatched question as pending.
func (r *Repository) Insert(ctx context.Context, e Entry) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO consult_questions (id, kind, prompt, options, status, asked_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		e.ID, e.Kind, e.Prompt, e.Options, StatusPending, e.AskedAt)
	if err != nil {
		return fmt.Errorf("insert question %s: %w", e.ID, err)
	}
	return nil
}

// MarkAnswered stores the resolved answer.
func (r *Repository) MarkAnswered(ctx context.Context, id uuid.UUID, answer string, at time.Time) error {
	_, err := r.db.Exec(ctx,
		`UPDATE consult_questions SET answer=$2, status=$3, resolved_at=$4 WHERE id=$1`,
		id, answer, StatusAnswered, at)
	if err != nil {
		return fmt.Errorf("mark question %s answered: %w", id, err)
	}
	return nil
}

// MarkExpired records that the wait was abandoned.
func (r *Repository) MarkExpired(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx,
		`UPDATE consult_questions SET status=$2, resolved_at=$3 WHERE id=$1`,
		id, StatusExpired, time.Now())
	if err != nil {
		return fmt.Errorf("mark question %s expired: %w", id, err)
	}
	return nil
}

// List returns the most recent entries, newest first.
func (r *Repository) List(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, kind, prompt, options, answer, status, asked_at, resolved_at
		 FROM consult_questions ORDER BY asked_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Kind, &e.Prompt, &e.Options,
			&e.Answer, &e.Status, &e.AskedAt, &e.ResolvedAt); err != nil {
			return nil, fmt.Errorf("scan question row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
