package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/ttacon/libphonenumber"
)

// Validation errors
var (
	ErrInvalidAccountName = errors.New("invalid account name")
	ErrInvalidGroupName   = errors.New("invalid group name")
	ErrAmountTooLarge     = errors.New("amount exceeds maximum allowed")
	ErrAmountPrecision    = errors.New("amount has more than two decimal places")
	ErrNegativeOpening    = errors.New("opening balance cannot be negative")
	ErrInvalidMobileNo    = errors.New("invalid mobile number")
	ErrInvalidDate        = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidIDFormat    = errors.New("invalid ID format")
)

// Validation constants
const (
	MaxNameLength    = 255
	MaxRemarksLength = 1024
	MaxRefNoLength   = 64
	MaxAmount        = "9999999999.99"
	AmountScale      = 2
	DateLayout       = "2006-01-02"
	DefaultRegion    = "MM"
)

var maxAmount = decimal.RequireFromString(MaxAmount)

// ValidateName checks a display name for an account or group.
func ValidateName(name string, kind error) error {
	name = strings.TrimSpace(name)

	if name == "" {
		return fmt.Errorf("%w: name cannot be empty", kind)
	}

	if utf8.RuneCountInString(name) > MaxNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", kind, MaxNameLength)
	}

	return nil
}

// ValidateAccountName validates account name
func ValidateAccountName(name string) error {
	return ValidateName(name, ErrInvalidAccountName)
}

// ValidateAmount validates a posting amount: positive, at most two decimal
// places, and within the maximum.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}

	if err := validateScale(amount); err != nil {
		return err
	}

	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrAmountTooLarge, MaxAmount)
	}

	return nil
}

// ValidateOpeningBalance allows zero but otherwise follows the amount rules.
func ValidateOpeningBalance(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return ErrNegativeOpening
	}
	if amount.IsZero() {
		return nil
	}
	return ValidateAmount(amount)
}

func validateScale(amount decimal.Decimal) error {
	if !amount.Equal(amount.Truncate(AmountScale)) {
		return ErrAmountPrecision
	}
	return nil
}

// ValidateMobileNo parses number for region and returns it in E.164 form.
// An empty number is allowed.
func ValidateMobileNo(number, region string) (string, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return "", nil
	}
	if region == "" {
		region = DefaultRegion
	}

	p, err := libphonenumber.Parse(number, region)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidMobileNo, err)
	}

	if !libphonenumber.IsValidNumber(p) {
		return "", ErrInvalidMobileNo
	}

	return libphonenumber.Format(p, libphonenumber.E164), nil
}

// ParseDate parses a calendar day in YYYY-MM-DD form as UTC midnight.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// Day truncates t to its UTC calendar day.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatDate renders a calendar day.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}
