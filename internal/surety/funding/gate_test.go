package funding

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"surety/internal/surety/models"
	"surety/internal/surety/ports/mocks"
	"surety/internal/surety/registry"
	dErrors "surety/pkg/domain-errors"
	"surety/pkg/platform/sentinel"
)

var now = time.Date(2026, 7, 4, 8, 30, 0, 0, time.UTC)

type fixture struct {
	airlines      *mocks.MockAirlineStore
	contributions *mocks.MockContributionStore
	gate          *Gate
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)
	f := fixture{
		airlines:      mocks.NewMockAirlineStore(ctrl),
		contributions: mocks.NewMockContributionStore(ctrl),
	}
	clock := func() time.Time { return now }
	reg := registry.New(f.airlines, 10, registry.WithClock(clock))
	f.gate = New(reg, f.contributions, WithClock(clock))
	return f
}

func TestFund(t *testing.T) {
	ctx := context.Background()
	airline := models.MustAddress("0xair")
	payer := models.MustAddress("0xpayer")
	registered := &models.Airline{Address: airline, State: models.AirlineRegistered}

	t.Run("third party funding records a contribution", func(t *testing.T) {
		f := newFixture(t)
		f.airlines.EXPECT().GetAirline(ctx, airline).Return(registered, nil)
		f.airlines.EXPECT().SaveAirline(ctx, gomock.Any()).Return(nil)
		f.contributions.EXPECT().AddContribution(ctx, models.Contribution{
			Airline: airline,
			Funder:  payer,
			Amount:  25,
			PaidAt:  now,
		}).Return(nil)

		got, err := f.gate.Fund(ctx, Request{Airline: airline, Caller: payer, Amount: 25})
		require.NoError(t, err)
		assert.True(t, got.IsFunded())
		assert.Equal(t, models.Amount(25), got.FundedAmount)
	})

	t.Run("rejected amount writes nothing", func(t *testing.T) {
		f := newFixture(t)
		f.airlines.EXPECT().GetAirline(ctx, airline).Return(&models.Airline{Address: airline, State: models.AirlineRegistered}, nil)

		_, err := f.gate.Fund(ctx, Request{Airline: airline, Caller: payer, Amount: 3})
		assert.ErrorIs(t, err, models.ErrInsufficientFunding)
	})

	t.Run("unknown airline is refused", func(t *testing.T) {
		f := newFixture(t)
		f.airlines.EXPECT().GetAirline(ctx, airline).Return(nil, sentinel.ErrNotFound)

		_, err := f.gate.Fund(ctx, Request{Airline: airline, Caller: payer, Amount: 10})
		assert.ErrorIs(t, err, models.ErrTargetNotRegistered)
	})

	t.Run("contribution write failure is internal", func(t *testing.T) {
		f := newFixture(t)
		f.airlines.EXPECT().GetAirline(ctx, airline).Return(&models.Airline{Address: airline, State: models.AirlineRegistered}, nil)
		f.airlines.EXPECT().SaveAirline(ctx, gomock.Any()).Return(nil)
		f.contributions.EXPECT().AddContribution(ctx, gomock.Any()).Return(errors.New("constraint"))

		_, err := f.gate.Fund(ctx, Request{Airline: airline, Caller: payer, Amount: 10})
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInternal))
	})
}

func TestContributions(t *testing.T) {
	ctx := context.Background()
	airline := models.MustAddress("0xair")

	f := newFixture(t)
	f.contributions.EXPECT().ListContributions(ctx, airline).Return([]models.Contribution{{Airline: airline, Amount: 10}}, nil)

	list, err := f.gate.Contributions(ctx, airline)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
