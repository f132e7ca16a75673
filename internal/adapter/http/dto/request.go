package dto

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/iho/restledger/internal/usecase"
)

// ErrMalformedPair is returned when a two-entry posting is not a mirror pair.
var ErrMalformedPair = errors.New("transaction1 and transaction2 must be a debit and a credit mirroring each other")

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks struct tags and returns validator.ValidationErrors on failure.
func Validate(v any) error {
	return validate.Struct(v)
}

// ValidationDetails maps each failing field to the tag it failed.
func ValidationDetails(err error) map[string]string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}

	details := make(map[string]string, len(validationErrors))
	for _, ve := range validationErrors {
		details[ve.Namespace()] = ve.Tag()
	}
	return details
}

// CreateGroupRequest represents a request to create a main group.
type CreateGroupRequest struct {
	Name   string `json:"name"   validate:"required,max=255"`
	Nature string `json:"nature" validate:"required"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateGroupRequest) ToUseCaseInput() usecase.CreateGroupInput {
	return usecase.CreateGroupInput{
		Name:   r.Name,
		Nature: r.Nature,
	}
}

// CreateAccountRequest represents a request to create an account.
type CreateAccountRequest struct {
	Name           string          `json:"name"            validate:"required,max=255"`
	MobileNo       string          `json:"mobile_no"       validate:"omitempty,max=32"`
	GroupID        string          `json:"group_id"        validate:"required"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	NormalSide     string          `json:"normal_side"     validate:"omitempty,oneof=DEBIT CREDIT debit credit"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateAccountRequest) ToUseCaseInput() usecase.CreateAccountInput {
	return usecase.CreateAccountInput{
		Name:           r.Name,
		MobileNo:       r.MobileNo,
		GroupID:        r.GroupID,
		OpeningBalance: r.OpeningBalance,
		NormalSide:     r.NormalSide,
	}
}

// UpdateAccountRequest represents a partial update of an account.
type UpdateAccountRequest struct {
	Name     *string `json:"name"      validate:"omitempty,max=255"`
	MobileNo *string `json:"mobile_no" validate:"omitempty,max=32"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateAccountRequest) ToUseCaseInput(id string) usecase.UpdateAccountInput {
	return usecase.UpdateAccountInput{
		ID:       id,
		Name:     r.Name,
		MobileNo: r.MobileNo,
	}
}

// EntryRequest is one half of the two-entry posting shape used by the
// cash book screens.
type EntryRequest struct {
	LedgerID        string          `json:"ledger_id"        validate:"required"`
	ParticularsID   string          `json:"particulars_id"   validate:"required"`
	Date            string          `json:"date"             validate:"required"`
	DebitAmount     decimal.Decimal `json:"debit_amount"`
	CreditAmount    decimal.Decimal `json:"credit_amount"`
	Remarks         string          `json:"remarks"`
	RefNo           string          `json:"ref_no"`
	DebitCredit     string          `json:"debit_credit"     validate:"omitempty,oneof=debit credit DEBIT CREDIT"`
	TransactionType string          `json:"transaction_type"`
}

// CreateTransactionRequest accepts either a single posting or the pair
// {transaction1, transaction2}.
type CreateTransactionRequest struct {
	FromAccountID string          `json:"from_account_id" validate:"required_without=Transaction1"`
	ToAccountID   string          `json:"to_account_id"   validate:"required_without=Transaction1"`
	Date          string          `json:"date"            validate:"required_without=Transaction1"`
	Amount        decimal.Decimal `json:"amount"`
	Kind          string          `json:"kind"`
	Remarks       string          `json:"remarks"`
	RefNo         string          `json:"ref_no"`

	Transaction1 *EntryRequest `json:"transaction1,omitempty" validate:"required_with=Transaction2"`
	Transaction2 *EntryRequest `json:"transaction2,omitempty" validate:"required_with=Transaction1"`
}

// ToUseCaseInput converts to use case input. For the pair shape the debit
// half names the from-account and the credit half the to-account.
func (r *CreateTransactionRequest) ToUseCaseInput(idempotencyKey string) (usecase.PostInput, error) {
	if r.Transaction1 == nil {
		return usecase.PostInput{
			FromAccountID:  r.FromAccountID,
			ToAccountID:    r.ToAccountID,
			Date:           r.Date,
			Amount:         r.Amount,
			Kind:           r.Kind,
			Remarks:        r.Remarks,
			RefNo:          r.RefNo,
			IdempotencyKey: idempotencyKey,
		}, nil
	}

	debit, credit := r.Transaction1, r.Transaction2
	if debit.DebitAmount.IsZero() {
		debit, credit = credit, debit
	}

	if !debit.CreditAmount.IsZero() || !credit.DebitAmount.IsZero() {
		return usecase.PostInput{}, ErrMalformedPair
	}
	if !debit.DebitAmount.Equal(credit.CreditAmount) {
		return usecase.PostInput{}, ErrMalformedPair
	}
	if debit.LedgerID != credit.ParticularsID || credit.LedgerID != debit.ParticularsID {
		return usecase.PostInput{}, ErrMalformedPair
	}
	if debit.Date != credit.Date {
		return usecase.PostInput{}, ErrMalformedPair
	}
	if !strings.EqualFold(debit.TransactionType, credit.TransactionType) {
		return usecase.PostInput{}, ErrMalformedPair
	}
	if debit.Remarks != credit.Remarks || debit.RefNo != credit.RefNo {
		return usecase.PostInput{}, ErrMalformedPair
	}
	if !tagMatches(debit.DebitCredit, "debit") || !tagMatches(credit.DebitCredit, "credit") {
		return usecase.PostInput{}, ErrMalformedPair
	}

	return usecase.PostInput{
		FromAccountID:  debit.LedgerID,
		ToAccountID:    credit.LedgerID,
		Date:           debit.Date,
		Amount:         debit.DebitAmount,
		Kind:           debit.TransactionType,
		Remarks:        debit.Remarks,
		RefNo:          debit.RefNo,
		IdempotencyKey: idempotencyKey,
	}, nil
}

// tagMatches reports whether an optional debit_credit tag agrees with the
// side implied by the amounts.
func tagMatches(tag, side string) bool {
	return tag == "" || strings.EqualFold(tag, side)
}

// ReverseTransactionRequest represents a request to reverse a voucher.
type ReverseTransactionRequest struct {
	Date    string `json:"date"`
	Remarks string `json:"remarks" validate:"max=1024"`
}

// ToUseCaseInput converts to use case input.
func (r *ReverseTransactionRequest) ToUseCaseInput(voucherNo string) usecase.ReverseInput {
	return usecase.ReverseInput{
		VoucherNo: voucherNo,
		Date:      r.Date,
		Remarks:   r.Remarks,
	}
}
