package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidSide is returned for anything other than DEBIT or CREDIT.
var ErrInvalidSide = errors.New("side must be DEBIT or CREDIT")

// Side is the debit/credit orientation of a balance or entry.
type Side string

const (
	Debit  Side = "DEBIT"
	Credit Side = "CREDIT"
)

// ParseSide accepts DEBIT or CREDIT in any case.
func ParseSide(s string) (Side, error) {
	switch Side(strings.ToUpper(strings.TrimSpace(s))) {
	case Debit:
		return Debit, nil
	case Credit:
		return Credit, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidSide, s)
	}
}

// Valid reports whether s is DEBIT or CREDIT.
func (s Side) Valid() bool {
	return s == Debit || s == Credit
}

// Opposite returns the other side.
func (s Side) Opposite() Side {
	if s == Debit {
		return Credit
	}
	return Debit
}

func (s Side) String() string { return string(s) }
