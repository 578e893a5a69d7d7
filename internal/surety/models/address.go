package models

import (
	"strings"

	dErrors "surety/pkg/domain-errors"
)

const maxAddressLength = 128

// Address is an opaque participant identity, typically an account address.
// Addresses compare case-insensitively and are stored lowercased.
type Address string

// ParseAddress normalizes and validates a caller-supplied identity.
func ParseAddress(raw string) (Address, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return "", dErrors.New(dErrors.CodeValidation, "address is required")
	}
	if len(s) > maxAddressLength {
		return "", dErrors.New(dErrors.CodeValidation, "address must be 128 characters or less")
	}
	return Address(s), nil
}

// MustAddress is ParseAddress for constants and tests.
func MustAddress(raw string) Address {
	a, err := ParseAddress(raw)
	if err != nil {
		panic(err)
	}
	return a
}

func (a Address) String() string {
	return string(a)
}

func (a Address) IsZero() bool {
	return a == ""
}
