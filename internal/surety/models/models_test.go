package models

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "surety/pkg/domain-errors"
)

func TestParseAddress(t *testing.T) {
	addr, err := ParseAddress("  0x97A52A92609895d08E45098AD39Ed28AaDf02AfE ")
	require.NoError(t, err)
	assert.Equal(t, Address("0x97a52a92609895d08e45098ad39ed28aadf02afe"), addr)

	_, err = ParseAddress("   ")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
}

func TestAirlineTransitions(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	a := NewUnregisteredAirline("0xa")

	assert.ErrorIs(t, a.CanFund(10, 10), ErrTargetNotRegistered)

	require.NoError(t, a.CanRegister())
	a.ApplyRegistration(now)
	assert.True(t, a.IsRegistered())
	assert.False(t, a.IsFunded())
	assert.ErrorIs(t, a.CanRegister(), ErrCandidateAlreadyRegistered)

	assert.ErrorIs(t, a.CanFund(9, 10), ErrInsufficientFunding)
	require.NoError(t, a.CanFund(25, 10))
	a.ApplyFunding(25, "0xb", now)
	assert.True(t, a.IsFunded())
	assert.True(t, a.IsRegistered())
	assert.Equal(t, Amount(25), a.FundedAmount)

	err := a.CanFund(10, 10)
	assert.ErrorIs(t, err, ErrTargetNotRegistered)
	assert.Contains(t, err.Error(), "already funded")
	assert.ErrorIs(t, a.CanRegister(), ErrCandidateAlreadyRegistered)
}

func TestProposalVotesAreDeduplicated(t *testing.T) {
	now := time.Now()
	p := NewProposal("0xc", now)

	assert.True(t, p.AddVote("0xa", now))
	assert.False(t, p.AddVote("0xa", now))
	assert.Equal(t, 1, p.Tally())
	assert.False(t, p.HasQuorum(4))

	assert.True(t, p.AddVote("0xb", now))
	assert.True(t, p.HasQuorum(4))
	assert.False(t, p.HasQuorum(5))
}

func TestProposalCloneDoesNotAlias(t *testing.T) {
	p := NewProposal("0xc", time.Now())
	p.AddVote("0xa", time.Now())

	cp := p.Clone()
	cp.AddVote("0xb", time.Now())

	assert.Equal(t, 1, p.Tally())
	assert.Equal(t, 2, cp.Tally())
}

func TestRejectionMatching(t *testing.T) {
	err := Reject(ReasonSponsorNotFunded, "0xa has not funded")
	assert.ErrorIs(t, err, ErrSponsorNotFunded)
	assert.NotErrorIs(t, err, ErrUnauthorized)

	reason, ok := ReasonOf(errors.Join(errors.New("ctx"), err))
	require.True(t, ok)
	assert.Equal(t, ReasonSponsorNotFunded, reason)

	assert.False(t, IsRejection(errors.New("db down")))
	assert.Equal(t, "contract is not operational", ErrOperationalStatusDisabled.Message())
}
