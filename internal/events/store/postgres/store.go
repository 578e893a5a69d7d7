package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"surety/internal/events"
	"surety/internal/surety/models"
	txcontext "surety/pkg/platform/tx"
)

// Store implements events.Log using the transactional outbox pattern.
// Each Append writes the event to ledger_events and a copy to outbox in the
// caller's transaction (see pkg/platform/tx), so an event exists iff the
// state change that produced it committed.
type Store struct {
	db *sql.DB
}

// New creates a PostgreSQL event log.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Append assigns the next sequence number and enqueues the event for relay.
func (s *Store) Append(ctx context.Context, event *events.Event) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	exec := txcontext.Use(ctx, s.db)

	query := `
		INSERT INTO ledger_events (id, kind, airline, actor, amount, operational, request_id, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING sequence
	`
	var seq int64
	err := exec.QueryRowContext(ctx, query,
		event.ID,
		string(event.Kind),
		event.Airline.String(),
		event.Actor.String(),
		int64(event.Amount),
		event.Operational,
		event.RequestID,
		event.Timestamp,
	).Scan(&seq)
	if err != nil {
		return fmt.Errorf("insert ledger event: %w", err)
	}
	event.Sequence = uint64(seq)

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event payload: %w", err)
	}

	_, err = exec.ExecContext(ctx, `
		INSERT INTO outbox (id, sequence, aggregate_type, aggregate_id, event_type, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`,
		uuid.New(),
		seq,
		"airline",
		event.Key(),
		string(event.Kind),
		payload,
		event.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert outbox entry: %w", err)
	}
	return nil
}

// List returns events after the given sequence, oldest first.
func (s *Store) List(ctx context.Context, after uint64, limit int) ([]events.Event, error) {
	rows, err := txcontext.Use(ctx, s.db).QueryContext(ctx, `
		SELECT sequence, id, kind, airline, actor, amount, operational, request_id, occurred_at
		FROM ledger_events
		WHERE sequence > $1
		ORDER BY sequence ASC
		LIMIT $2
	`, int64(after), events.ClampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("list ledger events: %w", err)
	}
	defer rows.Close()

	result := []events.Event{}
	for rows.Next() {
		var (
			e       events.Event
			seq     int64
			kind    string
			airline string
			actor   string
			amount  int64
		)
		if err := rows.Scan(&seq, &e.ID, &kind, &airline, &actor, &amount, &e.Operational, &e.RequestID, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("scan ledger event: %w", err)
		}
		e.Sequence = uint64(seq)
		e.Kind = events.Kind(kind)
		e.Airline = models.Address(airline)
		e.Actor = models.Address(actor)
		e.Amount = models.Amount(amount)
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ledger events: %w", err)
	}
	return result, nil
}
