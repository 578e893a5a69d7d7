package models

import "errors"

// Reason names why a mutating call was refused. Rejections are final for the
// call; nothing is written and no event is emitted.
type Reason string

const (
	ReasonUnauthorized               Reason = "unauthorized"
	ReasonOperationalStatusDisabled  Reason = "operational_status_disabled"
	ReasonSponsorNotFunded           Reason = "sponsor_not_funded"
	ReasonCandidateAlreadyRegistered Reason = "candidate_already_registered"
	ReasonInsufficientFunding        Reason = "insufficient_funding"
	ReasonTargetNotRegistered        Reason = "target_not_registered"
)

var reasonMessages = map[Reason]string{
	ReasonUnauthorized:               "caller is not the contract owner",
	ReasonOperationalStatusDisabled:  "contract is not operational",
	ReasonSponsorNotFunded:           "sponsor airline has not provided funding",
	ReasonCandidateAlreadyRegistered: "airline is already registered",
	ReasonInsufficientFunding:        "funding amount is below the threshold",
	ReasonTargetNotRegistered:        "airline is not registered",
}

// RejectionError is returned for every business-rule refusal. Two rejections
// match under errors.Is when their reasons are equal.
type RejectionError struct {
	Reason Reason
	Detail string
}

func (e *RejectionError) Error() string {
	if e.Detail != "" {
		return string(e.Reason) + ": " + e.Detail
	}
	if msg, ok := reasonMessages[e.Reason]; ok {
		return string(e.Reason) + ": " + msg
	}
	return string(e.Reason)
}

func (e *RejectionError) Is(target error) bool {
	t, ok := target.(*RejectionError)
	return ok && t.Reason == e.Reason
}

// Message is the human-readable part of the rejection.
func (e *RejectionError) Message() string {
	if e.Detail != "" {
		return e.Detail
	}
	return reasonMessages[e.Reason]
}

// Reject builds a rejection with a call-specific detail.
func Reject(reason Reason, detail string) error {
	return &RejectionError{Reason: reason, Detail: detail}
}

var (
	ErrUnauthorized               = &RejectionError{Reason: ReasonUnauthorized}
	ErrOperationalStatusDisabled  = &RejectionError{Reason: ReasonOperationalStatusDisabled}
	ErrSponsorNotFunded           = &RejectionError{Reason: ReasonSponsorNotFunded}
	ErrCandidateAlreadyRegistered = &RejectionError{Reason: ReasonCandidateAlreadyRegistered}
	ErrInsufficientFunding        = &RejectionError{Reason: ReasonInsufficientFunding}
	ErrTargetNotRegistered        = &RejectionError{Reason: ReasonTargetNotRegistered}
)

// ReasonOf extracts the rejection reason from err, if any.
func ReasonOf(err error) (Reason, bool) {
	var rej *RejectionError
	if errors.As(err, &rej) {
		return rej.Reason, true
	}
	return "", false
}

// IsRejection reports whether err is a business-rule refusal rather than an
// infrastructure failure.
func IsRejection(err error) bool {
	_, ok := ReasonOf(err)
	return ok
}
