// Package funding validates funding payments and promotes registered
// airlines to Funded.
package funding

import (
	"context"
	"time"

	"surety/internal/surety/models"
	"surety/internal/surety/ports"
	"surety/internal/surety/registry"
	dErrors "surety/pkg/domain-errors"
)

// Request is one fundAirline call. Caller may differ from Airline.
type Request struct {
	Airline models.Address
	Caller  models.Address
	Amount  models.Amount
}

// Gate checks the threshold through the registry and records the payment.
type Gate struct {
	registry      *registry.Registry
	contributions ports.ContributionStore
	now           func() time.Time
}

type Option func(*Gate)

func WithClock(now func() time.Time) Option {
	return func(g *Gate) {
		if now != nil {
			g.now = now
		}
	}
}

func New(reg *registry.Registry, contributions ports.ContributionStore, opts ...Option) *Gate {
	g := &Gate{registry: reg, contributions: contributions, now: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Fund promotes req.Airline to Funded. Amounts above the threshold are
// accepted as-is. The registry write and the contribution record share the
// caller's transaction.
func (g *Gate) Fund(ctx context.Context, req Request) (*models.Airline, error) {
	airline, err := g.registry.Fund(ctx, req.Airline, req.Amount, req.Caller)
	if err != nil {
		return nil, err
	}
	contribution := models.Contribution{
		Airline: req.Airline,
		Funder:  req.Caller,
		Amount:  req.Amount,
		PaidAt:  airline.FundedAt,
	}
	if contribution.PaidAt.IsZero() {
		contribution.PaidAt = g.now()
	}
	if err := contribution.Validate(); err != nil {
		return nil, err
	}
	if err := g.contributions.AddContribution(ctx, contribution); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to record contribution")
	}
	return airline, nil
}

// Contributions lists accepted payments for an airline, oldest first.
func (g *Gate) Contributions(ctx context.Context, airline models.Address) ([]models.Contribution, error) {
	list, err := g.contributions.ListContributions(ctx, airline)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list contributions")
	}
	return list, nil
}
