package store

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"strings"
)

//go:embed schema.sql
var schema string

// Migrate applies the idempotent schema. Statements run one at a time so the
// driver never needs multi-statement support.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range strings.Split(schema, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

// Tables lists every table the schema owns, for test truncation.
var Tables = []string{
	"airlines",
	"registration_proposals",
	"funding_contributions",
	"operating_status",
	"ledger_events",
	"outbox",
}
