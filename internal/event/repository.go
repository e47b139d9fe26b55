package event

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Repository persists events to Postgres and serves the recent-activity feed
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new event repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Save inserts one event
func (r *Repository) Save(ctx context.Context, e Event) error {
	var detail []byte
	if e.Detail != nil {
		var err error
		detail, err = json.Marshal(e.Detail)
		if err != nil {
			return fmt.Errorf("failed to encode event detail: %w", err)
		}
	}

	query := `
		INSERT INTO events (id, type, entity_id, detail, occurred_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query, uuid.New(), e.Type, e.EntityID, detail, e.OccurredAt)
	if err != nil {
		return fmt.Errorf("failed to save event: %w", err)
	}

	return nil
}

// ListRecent retrieves the most recent events, newest first
func (r *Repository) ListRecent(ctx context.Context, limit int) ([]Event, error) {
	query := `
		SELECT type, entity_id, detail, occurred_at
		FROM events
		ORDER BY occurred_at DESC
		LIMIT $1
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		var detail []byte
		if err := rows.Scan(&e.Type, &e.EntityID, &detail, &e.OccurredAt); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		if len(detail) > 0 {
			if err := json.Unmarshal(detail, &e.Detail); err != nil {
				return nil, fmt.Errorf("failed to decode event detail: %w", err)
			}
		}
		events = append(events, e)
	}

	return events, nil
}
