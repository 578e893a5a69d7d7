// Package registry owns airline records and their admission state.
//
// Register is deliberately not exposed to transports: the consensus voter (or
// bootstrap) calls it only after the registration policy has passed.
package registry

import (
	"context"
	"errors"
	"time"

	"surety/internal/surety/models"
	"surety/internal/surety/ports"
	dErrors "surety/pkg/domain-errors"
	"surety/pkg/platform/sentinel"
)

// Registry applies airline state transitions against a store. It is cheap to
// construct and is usually created per ledger transaction.
type Registry struct {
	store     ports.AirlineStore
	threshold models.Amount
	now       func() time.Time
}

type Option func(*Registry)

// WithClock overrides time.Now for deterministic timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) {
		if now != nil {
			r.now = now
		}
	}
}

// New builds a Registry enforcing the given funding threshold.
func New(store ports.AirlineStore, fundingThreshold models.Amount, opts ...Option) *Registry {
	r := &Registry{store: store, threshold: fundingThreshold, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Lookup returns the airline record, or an Unregistered placeholder when the
// address is unknown.
func (r *Registry) Lookup(ctx context.Context, addr models.Address) (*models.Airline, error) {
	airline, err := r.store.GetAirline(ctx, addr)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return models.NewUnregisteredAirline(addr), nil
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load airline")
	}
	return airline, nil
}

// Register transitions candidate Unregistered → Registered.
func (r *Registry) Register(ctx context.Context, candidate models.Address) (*models.Airline, error) {
	airline, err := r.Lookup(ctx, candidate)
	if err != nil {
		return nil, err
	}
	if err := airline.CanRegister(); err != nil {
		return nil, err
	}
	airline.ApplyRegistration(r.now())
	if err := r.store.SaveAirline(ctx, airline); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save airline")
	}
	return airline, nil
}

// Fund transitions addr Registered → Funded when amount meets the threshold.
func (r *Registry) Fund(ctx context.Context, addr models.Address, amount models.Amount, funder models.Address) (*models.Airline, error) {
	airline, err := r.Lookup(ctx, addr)
	if err != nil {
		return nil, err
	}
	if err := airline.CanFund(amount, r.threshold); err != nil {
		return nil, err
	}
	airline.ApplyFunding(amount, funder, r.now())
	if err := r.store.SaveAirline(ctx, airline); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save airline")
	}
	return airline, nil
}

func (r *Registry) IsRegistered(ctx context.Context, addr models.Address) (bool, error) {
	airline, err := r.Lookup(ctx, addr)
	if err != nil {
		return false, err
	}
	return airline.IsRegistered(), nil
}

func (r *Registry) IsFunded(ctx context.Context, addr models.Address) (bool, error) {
	airline, err := r.Lookup(ctx, addr)
	if err != nil {
		return false, err
	}
	return airline.IsFunded(), nil
}

// Count is the number of airlines in state Registered or Funded.
func (r *Registry) Count(ctx context.Context) (int, error) {
	n, err := r.store.CountRegistered(ctx)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to count airlines")
	}
	return n, nil
}

// Threshold is the minimum accepted funding amount.
func (r *Registry) Threshold() models.Amount {
	return r.threshold
}
