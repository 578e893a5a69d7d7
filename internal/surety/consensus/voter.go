// Package consensus decides whether a sponsored candidate is admitted outright
// or needs votes from the registered airlines.
package consensus

import (
	"context"
	"errors"
	"time"

	"surety/internal/surety/models"
	"surety/internal/surety/ports"
	"surety/internal/surety/registry"
	dErrors "surety/pkg/domain-errors"
	"surety/pkg/platform/sentinel"
)

// DefaultThreshold is the registry size at which registration switches from
// single-sponsor to multi-party consensus.
const DefaultThreshold = 4

// Decision is what Sponsor did with an accepted request.
type Decision struct {
	Result   models.RegistrationResult
	Airline  *models.Airline  // set when the candidate was registered
	Proposal *models.Proposal // set while the vote is pending
}

// Voter owns registration proposals. It reads airline state through the
// registry and promotes candidates only via Registry.Register.
type Voter struct {
	registry  *registry.Registry
	proposals ports.ProposalStore
	threshold int
	now       func() time.Time
}

type Option func(*Voter)

// WithThreshold overrides DefaultThreshold.
func WithThreshold(n int) Option {
	return func(v *Voter) {
		if n > 0 {
			v.threshold = n
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(v *Voter) {
		if now != nil {
			v.now = now
		}
	}
}

func New(reg *registry.Registry, proposals ports.ProposalStore, opts ...Option) *Voter {
	v := &Voter{
		registry:  reg,
		proposals: proposals,
		threshold: DefaultThreshold,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Sponsor records sponsor's approval of candidate.
//
// Below the threshold the candidate is registered immediately and no proposal
// is created. At or above it, the vote is added to the candidate's proposal
// (repeat votes are ignored) and the candidate is registered once
// votes*2 >= registered count, using the count at evaluation time.
func (v *Voter) Sponsor(ctx context.Context, sponsor, candidate models.Address) (*Decision, error) {
	sponsorRecord, err := v.registry.Lookup(ctx, sponsor)
	if err != nil {
		return nil, err
	}
	if !sponsorRecord.IsFunded() {
		return nil, models.ErrSponsorNotFunded
	}

	candidateRecord, err := v.registry.Lookup(ctx, candidate)
	if err != nil {
		return nil, err
	}
	if candidateRecord.IsRegistered() {
		return nil, models.ErrCandidateAlreadyRegistered
	}

	registered, err := v.registry.Count(ctx)
	if err != nil {
		return nil, err
	}

	if registered < v.threshold {
		airline, err := v.registry.Register(ctx, candidate)
		if err != nil {
			return nil, err
		}
		return &Decision{
			Airline: airline,
			Result: models.RegistrationResult{
				Candidate:  candidate,
				Status:     models.StatusRegistered,
				Registered: registered + 1,
			},
		}, nil
	}

	return v.vote(ctx, sponsor, candidate, registered)
}

func (v *Voter) vote(ctx context.Context, sponsor, candidate models.Address, registered int) (*Decision, error) {
	now := v.now()
	proposal, err := v.proposals.GetProposal(ctx, candidate)
	if err != nil {
		if !errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load proposal")
		}
		proposal = models.NewProposal(candidate, now)
	}

	added := proposal.AddVote(sponsor, now)

	if proposal.HasQuorum(registered) {
		airline, err := v.registry.Register(ctx, candidate)
		if err != nil {
			return nil, err
		}
		if err := v.proposals.DeleteProposal(ctx, candidate); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to discard proposal")
		}
		return &Decision{
			Airline: airline,
			Result: models.RegistrationResult{
				Candidate:  candidate,
				Status:     models.StatusRegistered,
				Consensus:  true,
				Votes:      proposal.Tally(),
				VoteAdded:  added,
				Registered: registered + 1,
			},
		}, nil
	}

	if added {
		if err := v.proposals.SaveProposal(ctx, proposal); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save proposal")
		}
	}
	return &Decision{
		Proposal: proposal,
		Result: models.RegistrationResult{
			Candidate:  candidate,
			Status:     models.StatusVoteRecordedPending,
			Consensus:  true,
			Votes:      proposal.Tally(),
			VoteAdded:  added,
			Registered: registered,
		},
	}, nil
}

// Pending returns the open proposal for candidate, or sentinel.ErrNotFound.
func (v *Voter) Pending(ctx context.Context, candidate models.Address) (*models.Proposal, error) {
	p, err := v.proposals.GetProposal(ctx, candidate)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, err
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load proposal")
	}
	return p, nil
}

// Threshold is the registry size at which consensus is required.
func (v *Voter) Threshold() int {
	return v.threshold
}
