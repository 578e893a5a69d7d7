// Package events is the append-only log of accepted state transitions.
//
// Every successful registration, funding, or status change appends exactly one
// Event. Rejected calls never append. Events are never retracted; observers
// page through them by Sequence.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"

	"surety/internal/surety/models"
)

// Kind names the transition an event records.
type Kind string

const (
	KindAirlineRegistered      Kind = "AirlineRegistered"
	KindAirlineFunded          Kind = "AirlineFunded"
	KindOperatingStatusChanged Kind = "OperatingStatusChanged"
)

// Event is transport-agnostic so logs and relays can fan it out.
// Operational carries the new flag value for OperatingStatusChanged only.
type Event struct {
	ID          uuid.UUID      `json:"id"`
	Sequence    uint64         `json:"sequence"`
	Kind        Kind           `json:"kind"`
	Airline     models.Address `json:"airline,omitempty"`
	Actor       models.Address `json:"actor,omitempty"`
	Amount      models.Amount  `json:"amount,omitempty"`
	Operational bool           `json:"operational"`
	RequestID   string         `json:"request_id,omitempty"`
	Timestamp   time.Time      `json:"timestamp"`
}

// Key is the partition key used when relaying the event.
func (e Event) Key() string {
	if e.Airline != "" {
		return e.Airline.String()
	}
	return string(e.Kind)
}

func newEvent(kind Kind, now time.Time) Event {
	return Event{ID: uuid.New(), Kind: kind, Timestamp: now}
}

func AirlineRegistered(candidate, sponsor models.Address, now time.Time) Event {
	e := newEvent(KindAirlineRegistered, now)
	e.Airline = candidate
	e.Actor = sponsor
	return e
}

func AirlineFunded(airline, funder models.Address, amount models.Amount, now time.Time) Event {
	e := newEvent(KindAirlineFunded, now)
	e.Airline = airline
	e.Actor = funder
	e.Amount = amount
	return e
}

func OperatingStatusChanged(operational bool, owner models.Address, now time.Time) Event {
	e := newEvent(KindOperatingStatusChanged, now)
	e.Operational = operational
	e.Actor = owner
	return e
}

// Log is the append-only event store. Append assigns Sequence; List returns
// events with Sequence > after in ascending order.
type Log interface {
	Append(ctx context.Context, event *Event) error
	List(ctx context.Context, after uint64, limit int) ([]Event, error)
}

// DefaultListLimit caps List when the caller passes a non-positive limit.
const DefaultListLimit = 100

// MaxListLimit is the largest page a log will return.
const MaxListLimit = 1000

// ClampLimit normalizes a requested page size.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return min(limit, MaxListLimit)
}
