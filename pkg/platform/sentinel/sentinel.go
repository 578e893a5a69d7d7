package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores return these (optionally
// wrapped) and components translate them into rejections or coded errors.
//
//   - ErrNotFound: record does not exist in the store
//   - ErrConflict: a concurrent writer got there first
//   - ErrUnavailable: backing service temporarily unavailable
//
// Business-rule refusals are models.RejectionError, never a sentinel.
var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrUnavailable = errors.New("unavailable")
)
