package models

// RegistrationStatus is the accepted outcome of a registration request.
type RegistrationStatus string

const (
	StatusRegistered          RegistrationStatus = "registered"
	StatusVoteRecordedPending RegistrationStatus = "vote_recorded_pending"
)

// RegistrationResult describes an accepted registerAirline call.
// Votes and VoteAdded are populated on the consensus path only.
type RegistrationResult struct {
	Candidate  Address            `json:"candidate"`
	Status     RegistrationStatus `json:"status"`
	Consensus  bool               `json:"consensus"`
	Votes      int                `json:"votes,omitempty"`
	Registered int                `json:"registered_count"`
	VoteAdded  bool               `json:"vote_added,omitempty"`
}

func (r *RegistrationResult) IsRegistered() bool {
	return r.Status == StatusRegistered
}

// FundingResult describes an accepted fundAirline call.
type FundingResult struct {
	Airline Address `json:"airline"`
	Funder  Address `json:"funder"`
	Amount  Amount  `json:"amount"`
}

// StatusResult describes an accepted setOperatingStatus call.
type StatusResult struct {
	Operational bool `json:"operational"`
	Changed     bool `json:"changed"`
}
