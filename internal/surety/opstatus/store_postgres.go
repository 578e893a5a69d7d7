package opstatus

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	txcontext "surety/pkg/platform/tx"
)

// PostgresStore keeps the flag in the single-row operating_status table and
// joins the ledger transaction in ctx, so the flag and its event commit together.
type PostgresStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db, now: time.Now}
}

func (s *PostgresStore) Load(ctx context.Context) (bool, error) {
	var operational bool
	err := txcontext.Use(ctx, s.db).QueryRowContext(ctx,
		`SELECT operational FROM operating_status WHERE id = 1`).Scan(&operational)
	if errors.Is(err, sql.ErrNoRows) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("get operational status: %w", err)
	}
	return operational, nil
}

func (s *PostgresStore) Save(ctx context.Context, operational bool) error {
	_, err := txcontext.Use(ctx, s.db).ExecContext(ctx, `
		INSERT INTO operating_status (id, operational, updated_at)
		VALUES (1, $1, $2)
		ON CONFLICT (id) DO UPDATE SET
			operational = EXCLUDED.operational,
			updated_at = EXCLUDED.updated_at
	`, operational, s.now())
	if err != nil {
		return fmt.Errorf("set operational status: %w", err)
	}
	return nil
}
