// Package outbox relays committed ledger events to the message bus.
package outbox

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Entry is one pending outbox row.
type Entry struct {
	ID          uuid.UUID
	Sequence    int64
	AggregateID string
	EventType   string
	Payload     []byte
	CreatedAt   time.Time
}

// Store claims pending entries. ProcessBatch must hand at most limit entries
// to publish and mark them published only if publish returns nil.
type Store interface {
	ProcessBatch(ctx context.Context, limit int, publish func(ctx context.Context, entries []Entry) error) (int, error)
}

// Publisher delivers a batch of entries to the bus, all or nothing.
type Publisher interface {
	Publish(ctx context.Context, entries []Entry) error
}

const (
	defaultInterval  = time.Second
	defaultBatchSize = 100
)

// Relay polls the outbox and publishes pending entries. It keeps background
// delivery out of the request path; a failed batch is retried next tick.
type Relay struct {
	store     Store
	publisher Publisher
	logger    *slog.Logger
	interval  time.Duration
	batchSize int
}

type Option func(*Relay)

func WithLogger(logger *slog.Logger) Option {
	return func(r *Relay) {
		r.logger = logger
	}
}

func WithInterval(d time.Duration) Option {
	return func(r *Relay) {
		if d > 0 {
			r.interval = d
		}
	}
}

func WithBatchSize(n int) Option {
	return func(r *Relay) {
		if n > 0 {
			r.batchSize = n
		}
	}
}

func New(store Store, publisher Publisher, opts ...Option) (*Relay, error) {
	if store == nil {
		return nil, errors.New("outbox store is required")
	}
	if publisher == nil {
		return nil, errors.New("outbox publisher is required")
	}
	r := &Relay{
		store:     store,
		publisher: publisher,
		logger:    slog.New(slog.DiscardHandler),
		interval:  defaultInterval,
		batchSize: defaultBatchSize,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Run relays until ctx is cancelled. A full batch triggers an immediate
// follow-up instead of waiting for the next tick.
func (r *Relay) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		n, err := r.RelayOnce(ctx)
		if err != nil && ctx.Err() == nil {
			r.logger.WarnContext(ctx, "outbox relay batch failed", "error", err)
		}
		if err == nil && n == r.batchSize {
			continue
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// RelayOnce publishes a single batch and returns how many entries it sent.
func (r *Relay) RelayOnce(ctx context.Context) (int, error) {
	n, err := r.store.ProcessBatch(ctx, r.batchSize, r.publisher.Publish)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		r.logger.DebugContext(ctx, "outbox batch relayed", "count", n)
	}
	return n, nil
}
