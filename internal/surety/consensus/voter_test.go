package consensus

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"surety/internal/surety/models"
	"surety/internal/surety/ports"
	"surety/internal/surety/ports/mocks"
	"surety/internal/surety/registry"
	"surety/internal/surety/store"
	dErrors "surety/pkg/domain-errors"
	"surety/pkg/platform/sentinel"
	"surety/pkg/testutil"
)

var now = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return now }

// seed registers n airlines (0x1..0xn) and funds the first funded of them.
func seed(t *testing.T, ledger *store.MemoryLedger, n, funded int) {
	t.Helper()
	err := ledger.RunInTx(context.Background(), func(ctx context.Context, st ports.Store) error {
		for i := 1; i <= n; i++ {
			a := &models.Airline{Address: address(i), State: models.AirlineRegistered, RegisteredAt: now}
			if i <= funded {
				a.ApplyFunding(10, a.Address, now)
			}
			if err := st.SaveAirline(ctx, a); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)
}

func address(i int) models.Address {
	return models.MustAddress("0x" + string(rune('0'+i)))
}

func sponsor(t *testing.T, ledger *store.MemoryLedger, from, candidate models.Address) (*Decision, error) {
	t.Helper()
	var d *Decision
	err := ledger.RunInTx(context.Background(), func(ctx context.Context, st ports.Store) error {
		v := New(registry.New(st, 10, registry.WithClock(clock)), st, WithClock(clock))
		var err error
		d, err = v.Sponsor(ctx, from, candidate)
		return err
	})
	return d, err
}

func TestSponsorBelowThreshold(t *testing.T) {
	testutil.Given(t, "three registered airlines with one funded", func(t *testing.T) {
		ledger := store.NewMemoryLedger()
		seed(t, ledger, 3, 1)

		testutil.When(t, "the funded airline sponsors a new candidate", func(t *testing.T) {
			d, err := sponsor(t, ledger, address(1), address(4))
			require.NoError(t, err)

			testutil.Then(t, "the candidate is registered without a proposal", func(t *testing.T) {
				assert.Equal(t, models.StatusRegistered, d.Result.Status)
				assert.False(t, d.Result.Consensus)
				assert.Equal(t, 4, d.Result.Registered)
				assert.Nil(t, d.Proposal)
				require.NotNil(t, d.Airline)
				assert.Equal(t, now, d.Airline.RegisteredAt)
			})
		})
	})
}

func TestSponsorRejections(t *testing.T) {
	ledger := store.NewMemoryLedger()
	seed(t, ledger, 2, 1)

	t.Run("registered but unfunded sponsor", func(t *testing.T) {
		_, err := sponsor(t, ledger, address(2), address(5))
		assert.ErrorIs(t, err, models.ErrSponsorNotFunded)
	})

	t.Run("candidate already registered", func(t *testing.T) {
		_, err := sponsor(t, ledger, address(1), address(2))
		assert.ErrorIs(t, err, models.ErrCandidateAlreadyRegistered)
	})

	t.Run("sponsor check precedes candidate check", func(t *testing.T) {
		_, err := sponsor(t, ledger, address(2), address(1))
		assert.ErrorIs(t, err, models.ErrSponsorNotFunded)
	})
}

func TestSponsorConsensus(t *testing.T) {
	testutil.Given(t, "four registered airlines with three funded", func(t *testing.T) {
		ledger := store.NewMemoryLedger()
		seed(t, ledger, 4, 3)
		candidate := address(8)

		testutil.When(t, "one airline votes", func(t *testing.T) {
			d, err := sponsor(t, ledger, address(1), candidate)
			require.NoError(t, err)

			testutil.Then(t, "the vote is pending", func(t *testing.T) {
				assert.Equal(t, models.StatusVoteRecordedPending, d.Result.Status)
				assert.Equal(t, 1, d.Result.Votes)
				assert.True(t, d.Result.VoteAdded)
				assert.Equal(t, 4, d.Result.Registered)
			})
		})

		testutil.When(t, "the same airline votes again", func(t *testing.T) {
			d, err := sponsor(t, ledger, address(1), candidate)
			require.NoError(t, err)

			testutil.Then(t, "the tally is unchanged", func(t *testing.T) {
				assert.False(t, d.Result.VoteAdded)
				assert.Equal(t, 1, d.Result.Votes)
			})
		})

		testutil.When(t, "a second airline votes", func(t *testing.T) {
			d, err := sponsor(t, ledger, address(2), candidate)
			require.NoError(t, err)

			testutil.Then(t, "half the registry approved and the candidate is registered", func(t *testing.T) {
				assert.Equal(t, models.StatusRegistered, d.Result.Status)
				assert.Equal(t, 2, d.Result.Votes)
				assert.Equal(t, 5, d.Result.Registered)
			})

			testutil.Then(t, "the proposal is gone", func(t *testing.T) {
				err := ledger.View(context.Background(), func(ctx context.Context, st ports.Store) error {
					_, err := New(registry.New(st, 10), st).Pending(ctx, candidate)
					return err
				})
				assert.ErrorIs(t, err, sentinel.ErrNotFound)
			})
		})
	})
}

func TestSponsorCustomThreshold(t *testing.T) {
	ledger := store.NewMemoryLedger()
	seed(t, ledger, 2, 1)

	var d *Decision
	err := ledger.RunInTx(context.Background(), func(ctx context.Context, st ports.Store) error {
		v := New(registry.New(st, 10), st, WithThreshold(2))
		assert.Equal(t, 2, v.Threshold())
		var err error
		d, err = v.Sponsor(ctx, address(1), address(3))
		return err
	})
	require.NoError(t, err)
	// 1*2 >= 2 registers on the first vote.
	assert.True(t, d.Result.Consensus)
	assert.Equal(t, models.StatusRegistered, d.Result.Status)
}

func TestVoteStoreFailure(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	airlines := mocks.NewMockAirlineStore(ctrl)
	proposals := mocks.NewMockProposalStore(ctrl)

	sponsorAddr := address(1)
	candidate := address(9)
	airlines.EXPECT().GetAirline(ctx, sponsorAddr).Return(&models.Airline{Address: sponsorAddr, State: models.AirlineFunded}, nil)
	airlines.EXPECT().GetAirline(ctx, candidate).Return(nil, sentinel.ErrNotFound)
	airlines.EXPECT().CountRegistered(ctx).Return(6, nil)
	proposals.EXPECT().GetProposal(ctx, candidate).Return(nil, sentinel.ErrNotFound)
	proposals.EXPECT().SaveProposal(ctx, gomock.Any()).Return(errors.New("write timeout"))

	v := New(registry.New(airlines, 10), proposals, WithClock(clock))
	_, err := v.Sponsor(ctx, sponsorAddr, candidate)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInternal))
}
