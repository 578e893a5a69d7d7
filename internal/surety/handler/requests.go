package handler

import (
	"time"

	"surety/internal/events"
	"surety/internal/surety/models"
	dErrors "surety/pkg/domain-errors"
)

type setStatusRequest struct {
	Operational *bool `json:"operational"`
}

func (r setStatusRequest) Validate() error {
	if r.Operational == nil {
		return dErrors.New(dErrors.CodeValidation, "operational is required")
	}
	return nil
}

type setTestingModeRequest struct {
	Enabled *bool `json:"enabled"`
}

func (r setTestingModeRequest) Validate() error {
	if r.Enabled == nil {
		return dErrors.New(dErrors.CodeValidation, "enabled is required")
	}
	return nil
}

type registerAirlineRequest struct {
	Candidate string `json:"candidate"`
}

// Normalize parses the candidate address.
func (r registerAirlineRequest) Normalize() (models.Address, error) {
	return models.ParseAddress(r.Candidate)
}

type fundAirlineRequest struct {
	Amount uint64 `json:"amount"`
}

func (r fundAirlineRequest) Validate() error {
	if models.Amount(r.Amount) > models.MaxAmount {
		return dErrors.New(dErrors.CodeValidation, "amount exceeds the ledger range")
	}
	return nil
}

type statusResponse struct {
	Operational bool `json:"operational"`
	TestingMode bool `json:"testing_mode"`
}

type countResponse struct {
	RegisteredCount uint32 `json:"registered_count"`
}

type airlineResponse struct {
	*models.Airline
	Registered bool `json:"registered"`
	Funded     bool `json:"funded"`
}

type proposalResponse struct {
	Candidate models.Address   `json:"candidate"`
	Votes     []models.Address `json:"votes"`
	Tally     int              `json:"tally"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

func toProposalResponse(p *models.Proposal) proposalResponse {
	votes := p.Votes
	if votes == nil {
		votes = []models.Address{}
	}
	return proposalResponse{
		Candidate: p.Candidate,
		Votes:     votes,
		Tally:     p.Tally(),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

type contributionsResponse struct {
	Airline       models.Address        `json:"airline"`
	Contributions []models.Contribution `json:"contributions"`
}

type eventsResponse struct {
	Events []events.Event `json:"events"`
	Next   uint64         `json:"next"`
}
