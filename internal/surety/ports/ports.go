// Package ports defines the storage boundaries shared by the registry,
// consensus, and funding components. Implementations live in
// internal/surety/store; interfaces sit here so components and stores do not
// import each other.
package ports

//go:generate mockgen -source=ports.go -destination=mocks/mocks.go -package=mocks AirlineStore,ProposalStore,ContributionStore

import (
	"context"

	"surety/internal/surety/models"
)

// AirlineStore persists airline records. Get returns sentinel.ErrNotFound for
// an address the registry has never seen.
type AirlineStore interface {
	GetAirline(ctx context.Context, addr models.Address) (*models.Airline, error)
	SaveAirline(ctx context.Context, airline *models.Airline) error
	// CountRegistered counts airlines in state Registered or Funded.
	CountRegistered(ctx context.Context) (int, error)
}

// ProposalStore persists pending registration proposals.
type ProposalStore interface {
	GetProposal(ctx context.Context, candidate models.Address) (*models.Proposal, error)
	SaveProposal(ctx context.Context, proposal *models.Proposal) error
	DeleteProposal(ctx context.Context, candidate models.Address) error
}

// ContributionStore records accepted funding payments.
type ContributionStore interface {
	AddContribution(ctx context.Context, c models.Contribution) error
	ListContributions(ctx context.Context, airline models.Address) ([]models.Contribution, error)
}

// Store is everything a ledger transaction can touch.
type Store interface {
	AirlineStore
	ProposalStore
	ContributionStore
}

// Ledger is the serialization boundary for registry state.
//
// RunInTx applies fn atomically: either every write fn made is committed or
// none is. The ctx passed to fn carries the transaction so other stores (the
// event log, the status flag) can join it. View runs fn against committed
// state and must not write.
type Ledger interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context, store Store) error) error
	View(ctx context.Context, fn func(ctx context.Context, store Store) error) error
}
