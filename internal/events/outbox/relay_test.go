package outbox

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"surety/internal/platform/kafka/producer"
)

type fakeStore struct {
	mu        sync.Mutex
	pending   []Entry
	published []Entry
}

func (f *fakeStore) ProcessBatch(ctx context.Context, limit int, publish func(context.Context, []Entry) error) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := min(limit, len(f.pending))
	if n == 0 {
		return 0, nil
	}
	batch := append([]Entry{}, f.pending[:n]...)
	if err := publish(ctx, batch); err != nil {
		return 0, err
	}
	f.published = append(f.published, batch...)
	f.pending = f.pending[n:]
	return n, nil
}

type fakeProducer struct {
	mu   sync.Mutex
	msgs []producer.Message
	err  error
}

func (f *fakeProducer) Publish(_ context.Context, msgs ...producer.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func entries(n int) []Entry {
	out := make([]Entry, n)
	for i := range out {
		out[i] = Entry{ID: uuid.New(), Sequence: int64(i + 1), AggregateID: "0xa", EventType: "AirlineRegistered", Payload: []byte(`{}`)}
	}
	return out
}

func TestRelayOncePublishesBatch(t *testing.T) {
	store := &fakeStore{pending: entries(3)}
	prod := &fakeProducer{}
	relay, err := New(store, NewKafkaPublisher(prod), WithBatchSize(2))
	require.NoError(t, err)

	n, err := relay.RelayOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	require.Len(t, prod.msgs, 2)
	assert.Equal(t, "0xa", prod.msgs[0].Key)
	assert.Equal(t, "AirlineRegistered", prod.msgs[0].Headers["event_type"])
	assert.Equal(t, "1", prod.msgs[0].Headers["sequence"])
	assert.Equal(t, "2", prod.msgs[1].Headers["sequence"])
	assert.Len(t, store.pending, 1)
}

func TestRelayOnceKeepsEntriesWhenPublishFails(t *testing.T) {
	store := &fakeStore{pending: entries(2)}
	relay, err := New(store, NewKafkaPublisher(&fakeProducer{err: errors.New("broker down")}))
	require.NoError(t, err)

	_, err = relay.RelayOnce(context.Background())
	require.Error(t, err)
	assert.Len(t, store.pending, 2)
	assert.Empty(t, store.published)
}

func TestRelayRunDrainsUntilCancelled(t *testing.T) {
	store := &fakeStore{pending: entries(5)}
	prod := &fakeProducer{}
	relay, err := New(store, NewKafkaPublisher(prod), WithBatchSize(2), WithInterval(10*time.Millisecond))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- relay.Run(ctx) }()

	require.Eventually(t, func() bool {
		prod.mu.Lock()
		defer prod.mu.Unlock()
		return len(prod.msgs) == 5
	}, time.Second, 5*time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestNewRequiresDependencies(t *testing.T) {
	_, err := New(nil, NewKafkaPublisher(&fakeProducer{}))
	assert.Error(t, err)
	_, err = New(&fakeStore{}, nil)
	assert.Error(t, err)
}
