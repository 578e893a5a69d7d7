package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"surety/internal/surety/models"
	"surety/internal/surety/ports"
	dErrors "surety/pkg/domain-errors"
	"surety/pkg/platform/sentinel"
	txcontext "surety/pkg/platform/tx"
)

const defaultLedgerTxTimeout = 5 * time.Second

// ledgerLockKey is the advisory lock every ledger transaction takes, so
// replicas sharing one database still apply mutations one at a time.
const ledgerLockKey int64 = 0x5375726574790001

// PostgresLedger runs registry mutations in a database transaction.
type PostgresLedger struct {
	db      *sql.DB
	store   *PostgresStore
	timeout time.Duration
}

type LedgerOption func(*PostgresLedger)

// WithTxTimeout bounds transactions whose context has no deadline.
func WithTxTimeout(d time.Duration) LedgerOption {
	return func(l *PostgresLedger) {
		if d > 0 {
			l.timeout = d
		}
	}
}

func NewPostgresLedger(db *sql.DB, opts ...LedgerOption) *PostgresLedger {
	l := &PostgresLedger{db: db, store: NewPostgres(db), timeout: defaultLedgerTxTimeout}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *PostgresLedger) RunInTx(ctx context.Context, fn func(ctx context.Context, store ports.Store) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to begin ledger transaction")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, ledgerLockKey); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to acquire ledger lock")
	}

	if err := fn(txcontext.WithTx(ctx, tx), l.store); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to commit ledger transaction")
	}
	return nil
}

func (l *PostgresLedger) View(ctx context.Context, fn func(ctx context.Context, store ports.Store) error) error {
	return fn(ctx, l.store)
}

// PostgresStore is pure I/O; every rule lives in the registry, voter, and
// funding gate. Methods join the transaction carried by ctx when present.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *PostgresStore) GetAirline(ctx context.Context, addr models.Address) (*models.Airline, error) {
	query := `
		SELECT address, state, registered_at, funded_at, funded_amount, funded_by
		FROM airlines
		WHERE address = $1
	`
	airline, err := scanAirline(txcontext.Use(ctx, s.db).QueryRowContext(ctx, query, addr.String()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("get airline: %w", err)
	}
	return airline, nil
}

func (s *PostgresStore) SaveAirline(ctx context.Context, airline *models.Airline) error {
	query := `
		INSERT INTO airlines (address, state, registered_at, funded_at, funded_amount, funded_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (address) DO UPDATE SET
			state = EXCLUDED.state,
			registered_at = EXCLUDED.registered_at,
			funded_at = EXCLUDED.funded_at,
			funded_amount = EXCLUDED.funded_amount,
			funded_by = EXCLUDED.funded_by
	`
	_, err := txcontext.Use(ctx, s.db).ExecContext(ctx, query,
		airline.Address.String(),
		string(airline.State),
		nullTime(airline.RegisteredAt),
		nullTime(airline.FundedAt),
		int64(airline.FundedAmount),
		airline.FundedBy.String(),
	)
	if err != nil {
		return fmt.Errorf("save airline: %w", err)
	}
	return nil
}

func (s *PostgresStore) CountRegistered(ctx context.Context) (int, error) {
	var n int
	err := txcontext.Use(ctx, s.db).QueryRowContext(ctx,
		`SELECT COUNT(*) FROM airlines WHERE state IN ($1, $2)`,
		string(models.AirlineRegistered), string(models.AirlineFunded),
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count registered airlines: %w", err)
	}
	return n, nil
}

func (s *PostgresStore) GetProposal(ctx context.Context, candidate models.Address) (*models.Proposal, error) {
	var (
		p     models.Proposal
		cand  string
		votes []string
	)
	err := txcontext.Use(ctx, s.db).QueryRowContext(ctx, `
		SELECT candidate, votes, created_at, updated_at
		FROM registration_proposals
		WHERE candidate = $1
	`, candidate.String()).Scan(&cand, pq.Array(&votes), &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("get proposal: %w", err)
	}
	p.Candidate = models.Address(cand)
	p.Votes = make([]models.Address, len(votes))
	for i, v := range votes {
		p.Votes[i] = models.Address(v)
	}
	return &p, nil
}

func (s *PostgresStore) SaveProposal(ctx context.Context, proposal *models.Proposal) error {
	votes := make([]string, len(proposal.Votes))
	for i, v := range proposal.Votes {
		votes[i] = v.String()
	}
	_, err := txcontext.Use(ctx, s.db).ExecContext(ctx, `
		INSERT INTO registration_proposals (candidate, votes, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (candidate) DO UPDATE SET
			votes = EXCLUDED.votes,
			updated_at = EXCLUDED.updated_at
	`, proposal.Candidate.String(), pq.Array(votes), proposal.CreatedAt, proposal.UpdatedAt)
	if err != nil {
		return fmt.Errorf("save proposal: %w", err)
	}
	return nil
}

func (s *PostgresStore) DeleteProposal(ctx context.Context, candidate models.Address) error {
	_, err := txcontext.Use(ctx, s.db).ExecContext(ctx,
		`DELETE FROM registration_proposals WHERE candidate = $1`, candidate.String())
	if err != nil {
		return fmt.Errorf("delete proposal: %w", err)
	}
	return nil
}

func (s *PostgresStore) AddContribution(ctx context.Context, c models.Contribution) error {
	_, err := txcontext.Use(ctx, s.db).ExecContext(ctx, `
		INSERT INTO funding_contributions (airline, funder, amount, paid_at)
		VALUES ($1, $2, $3, $4)
	`, c.Airline.String(), c.Funder.String(), int64(c.Amount), c.PaidAt)
	if err != nil {
		return fmt.Errorf("add contribution: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListContributions(ctx context.Context, airline models.Address) ([]models.Contribution, error) {
	rows, err := txcontext.Use(ctx, s.db).QueryContext(ctx, `
		SELECT airline, funder, amount, paid_at
		FROM funding_contributions
		WHERE airline = $1
		ORDER BY id ASC
	`, airline.String())
	if err != nil {
		return nil, fmt.Errorf("list contributions: %w", err)
	}
	defer rows.Close()

	result := []models.Contribution{}
	for rows.Next() {
		var (
			c            models.Contribution
			addr, funder string
			amount       int64
		)
		if err := rows.Scan(&addr, &funder, &amount, &c.PaidAt); err != nil {
			return nil, fmt.Errorf("scan contribution: %w", err)
		}
		c.Airline = models.Address(addr)
		c.Funder = models.Address(funder)
		c.Amount = models.Amount(amount)
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate contributions: %w", err)
	}
	return result, nil
}

func scanAirline(row rowScanner) (*models.Airline, error) {
	var (
		a            models.Airline
		addr, state  string
		fundedBy     string
		amount       int64
		registeredAt sql.NullTime
		fundedAt     sql.NullTime
	)
	if err := row.Scan(&addr, &state, &registeredAt, &fundedAt, &amount, &fundedBy); err != nil {
		return nil, err
	}
	a.Address = models.Address(addr)
	a.State = models.AirlineState(state)
	a.FundedAmount = models.Amount(amount)
	a.FundedBy = models.Address(fundedBy)
	if registeredAt.Valid {
		a.RegisteredAt = registeredAt.Time
	}
	if fundedAt.Valid {
		a.FundedAt = fundedAt.Time
	}
	return &a, nil
}

func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}
