package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"mergington/internal/activity/models"
	"mergington/pkg/platform/sentinel"
)

// Postgres persists the registry in two tables: activities for the metadata
// and participants for the rosters. Signup order is preserved by an
// insertion-ordered bigserial on participants.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres constructs the store. Call InitSchema and Seed before serving.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// InitSchema creates the tables when they do not exist yet.
func (s *Postgres) InitSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS activities (
    name             TEXT PRIMARY KEY,
    description      TEXT NOT NULL,
    schedule         TEXT NOT NULL,
    max_participants INT  NOT NULL
);
CREATE TABLE IF NOT EXISTS participants (
    id            BIGSERIAL PRIMARY KEY,
    activity_name TEXT NOT NULL REFERENCES activities(name) ON DELETE CASCADE,
    email         TEXT NOT NULL,
    UNIQUE (activity_name, email)
);`
	if _, err := s.pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

// Seed inserts the default activities and their rosters, skipping anything
// already present so repeated startups are safe.
func (s *Postgres) Seed(ctx context.Context) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer tx.Rollback(ctx)

	for name, a := range Defaults() {
		tag, err := tx.Exec(ctx,
			`INSERT INTO activities (name, description, schedule, max_participants)
             VALUES ($1, $2, $3, $4) ON CONFLICT (name) DO NOTHING`,
			name, a.Description, a.Schedule, a.MaxParticipants)
		if err != nil {
			return fmt.Errorf("seed activity %q: %w", name, err)
		}
		if tag.RowsAffected() == 0 {
			continue // already seeded, keep its roster as-is
		}
		for _, email := range a.Participants {
			if _, err := tx.Exec(ctx,
				`INSERT INTO participants (activity_name, email) VALUES ($1, $2)`,
				name, email); err != nil {
				return fmt.Errorf("seed participant %q for %q: %w", email, name, err)
			}
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit seed: %w", err)
	}
	return nil
}

func (s *Postgres) List(ctx context.Context) (map[string]models.Activity, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT name, description, schedule, max_participants FROM activities`)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	defer rows.Close()

	out := make(map[string]models.Activity)
	for rows.Next() {
		var name string
		var a models.Activity
		if err := rows.Scan(&name, &a.Description, &a.Schedule, &a.MaxParticipants); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		a.Participants = []string{}
		out[name] = a
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}

	prows, err := s.pool.Query(ctx,
		`SELECT activity_name, email FROM participants ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	defer prows.Close()

	for prows.Next() {
		var name, email string
		if err := prows.Scan(&name, &email); err != nil {
			return nil, fmt.Errorf("scan participant: %w", err)
		}
		a, ok := out[name]
		if !ok {
			continue
		}
		a.Participants = append(a.Participants, email)
		out[name] = a
	}
	if err := prows.Err(); err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	return out, nil
}

func (s *Postgres) AddParticipant(ctx context.Context, activity, email string) error {
	if err := s.requireActivity(ctx, activity); err != nil {
		return err
	}
	tag, err := s.pool.Exec(ctx,
		`INSERT INTO participants (activity_name, email) VALUES ($1, $2)
         ON CONFLICT (activity_name, email) DO NOTHING`,
		activity, email)
	if err != nil {
		return fmt.Errorf("add participant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return sentinel.ErrAlreadyRegistered
	}
	return nil
}

func (s *Postgres) RemoveParticipant(ctx context.Context, activity, email string) error {
	if err := s.requireActivity(ctx, activity); err != nil {
		return err
	}
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM participants WHERE activity_name = $1 AND email = $2`,
		activity, email)
	if err != nil {
		return fmt.Errorf("remove participant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return sentinel.ErrNotRegistered
	}
	return nil
}

func (s *Postgres) requireActivity(ctx context.Context, activity string) error {
	var one int
	err := s.pool.QueryRow(ctx,
		`SELECT 1 FROM activities WHERE name = $1`, activity).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return sentinel.ErrNotFound
		}
		return fmt.Errorf("look up activity %q: %w", activity, err)
	}
	return nil
}
