//go:build integration

package outbox_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"surety/internal/events"
	"surety/internal/events/outbox"
	eventstore "surety/internal/events/store/postgres"
	"surety/internal/surety/models"
	"surety/pkg/testutil/containers"
)

type PostgresOutboxSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	log      *eventstore.Store
	outbox   *outbox.PostgresStore
}

func TestPostgresOutboxSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresOutboxSuite))
}

func (s *PostgresOutboxSuite) SetupSuite() {
	s.postgres = containers.GetManager().GetPostgres(s.T())
	s.log = eventstore.New(s.postgres.DB)
	s.outbox = outbox.NewPostgresStore(s.postgres.DB)
}

func (s *PostgresOutboxSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background()))
}

// A request that arrived earlier can commit later; the relay must still follow
// the ledger sequence, not the event timestamps.
func (s *PostgresOutboxSuite) TestBatchFollowsSequenceNotTimestamp() {
	ctx := context.Background()
	airline := models.MustAddress("0xa2")
	arrivedLater := time.Date(2026, 3, 14, 9, 0, 2, 0, time.UTC)
	arrivedEarlier := arrivedLater.Add(-time.Second)

	registered := events.AirlineRegistered(airline, "0xa1", arrivedLater)
	s.Require().NoError(s.log.Append(ctx, &registered))
	funded := events.AirlineFunded(airline, airline, 10, arrivedEarlier)
	s.Require().NoError(s.log.Append(ctx, &funded))

	var got []outbox.Entry
	n, err := s.outbox.ProcessBatch(ctx, 10, func(_ context.Context, batch []outbox.Entry) error {
		got = batch
		return nil
	})
	s.Require().NoError(err)
	s.Equal(2, n)
	s.Require().Len(got, 2)
	s.Equal(int64(registered.Sequence), got[0].Sequence)
	s.Equal(string(events.KindAirlineRegistered), got[0].EventType)
	s.Equal(int64(funded.Sequence), got[1].Sequence)
	s.Equal(string(events.KindAirlineFunded), got[1].EventType)

	pending, err := s.outbox.Pending(ctx)
	s.Require().NoError(err)
	s.Zero(pending)
}
