package models

import (
	"math"
	"time"

	dErrors "surety/pkg/domain-errors"
)

// AirlineState is the admission state of an airline.
//
// States only move forward: Unregistered → Registered → Funded.
type AirlineState string

const (
	AirlineUnregistered AirlineState = "unregistered"
	AirlineRegistered   AirlineState = "registered"
	AirlineFunded       AirlineState = "funded"
)

func (s AirlineState) rank() int {
	switch s {
	case AirlineRegistered:
		return 1
	case AirlineFunded:
		return 2
	default:
		return 0
	}
}

// CanTransitionTo reports whether next is the immediate successor of s.
func (s AirlineState) CanTransitionTo(next AirlineState) bool {
	return next.rank() == s.rank()+1
}

// Amount is a funding value in the ledger's smallest unit.
type Amount uint64

// MaxAmount is the largest amount the ledger stores (a signed 64-bit column).
const MaxAmount Amount = math.MaxInt64

// Airline is the aggregate owned by the registry.
//
// Invariants:
//   - Address is non-empty and immutable
//   - State never regresses
//   - FundedAt/FundedAmount/FundedBy are set iff State == Funded
type Airline struct {
	Address      Address      `json:"address"`
	State        AirlineState `json:"state"`
	RegisteredAt time.Time    `json:"registered_at,omitzero"`
	FundedAt     time.Time    `json:"funded_at,omitzero"`
	FundedAmount Amount       `json:"funded_amount,omitempty"`
	FundedBy     Address      `json:"funded_by,omitempty"`
}

// NewUnregisteredAirline returns the zero-state record for an address that
// the registry has never seen.
func NewUnregisteredAirline(addr Address) *Airline {
	return &Airline{Address: addr, State: AirlineUnregistered}
}

// IsRegistered is true once the airline has been admitted, funded or not.
func (a *Airline) IsRegistered() bool {
	return a.State.rank() >= AirlineRegistered.rank()
}

func (a *Airline) IsFunded() bool {
	return a.State == AirlineFunded
}

// CanRegister validates the Unregistered → Registered transition.
func (a *Airline) CanRegister() error {
	if !a.State.CanTransitionTo(AirlineRegistered) {
		return ErrCandidateAlreadyRegistered
	}
	return nil
}

// ApplyRegistration moves the airline to Registered. Call CanRegister first.
func (a *Airline) ApplyRegistration(now time.Time) {
	a.State = AirlineRegistered
	a.RegisteredAt = now
}

// CanFund validates the Registered → Funded transition for amount.
func (a *Airline) CanFund(amount, threshold Amount) error {
	if !a.State.CanTransitionTo(AirlineFunded) {
		if a.State == AirlineFunded {
			return Reject(ReasonTargetNotRegistered, "airline is already funded")
		}
		return ErrTargetNotRegistered
	}
	if amount < threshold {
		return ErrInsufficientFunding
	}
	return nil
}

// ApplyFunding moves the airline to Funded. Call CanFund first.
func (a *Airline) ApplyFunding(amount Amount, funder Address, now time.Time) {
	a.State = AirlineFunded
	a.FundedAt = now
	a.FundedAmount = amount
	a.FundedBy = funder
}

// Contribution records a single accepted funding payment.
type Contribution struct {
	Airline Address   `json:"airline"`
	Funder  Address   `json:"funder"`
	Amount  Amount    `json:"amount"`
	PaidAt  time.Time `json:"paid_at"`
}

// Validate enforces that a contribution names both parties.
func (c Contribution) Validate() error {
	if c.Airline.IsZero() || c.Funder.IsZero() {
		return dErrors.New(dErrors.CodeInvariantViolation, "contribution requires airline and funder")
	}
	return nil
}
