package models

import (
	"slices"
	"time"
)

// Proposal tracks votes for a candidate once registration needs consensus.
//
// Invariants:
//   - Candidate is Unregistered while the proposal exists
//   - Votes holds distinct, funded sponsors in the order they voted
//   - There is no expiry; a proposal waits until quorum
type Proposal struct {
	Candidate Address   `json:"candidate"`
	Votes     []Address `json:"votes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewProposal(candidate Address, now time.Time) *Proposal {
	return &Proposal{Candidate: candidate, CreatedAt: now, UpdatedAt: now}
}

func (p *Proposal) HasVoted(voter Address) bool {
	return slices.Contains(p.Votes, voter)
}

// AddVote records voter's approval. A repeated vote is a no-op and returns false.
func (p *Proposal) AddVote(voter Address, now time.Time) bool {
	if p.HasVoted(voter) {
		return false
	}
	p.Votes = append(p.Votes, voter)
	p.UpdatedAt = now
	return true
}

func (p *Proposal) Tally() int {
	return len(p.Votes)
}

// HasQuorum reports whether the tally is at least half of registered.
// registered is read at evaluation time, not when the proposal was opened.
func (p *Proposal) HasQuorum(registered int) bool {
	return p.Tally()*2 >= registered
}

// Clone returns a deep copy so staged edits never alias committed state.
func (p *Proposal) Clone() *Proposal {
	cp := *p
	cp.Votes = slices.Clone(p.Votes)
	return &cp
}
