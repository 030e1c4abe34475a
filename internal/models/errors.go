package models

import (
	"errors"
	"fmt"
)

// Sentinel errors for the account invariants. All of them are client
// errors; the HTTP layer maps them to status codes.
var (
	ErrInvalidAmount        = errors.New("amount must be greater than 0")
	ErrNegativeBalance      = errors.New("initial balance can't be less than 0")
	ErrAmountExceedsBalance = errors.New("withdraw amount exceeds balance")
	ErrInvalidAccountNumber = errors.New("invalid account number")
	ErrSameAccount          = errors.New("source and target account numbers can't be equal")
)

// AccountNotFoundError identifies which account number failed to resolve.
type AccountNotFoundError struct {
	Number string
}

func (e *AccountNotFoundError) Error() string {
	return fmt.Sprintf("account with number '%s' not found", e.Number)
}

// UnsupportedCurrencyError reports a currency code outside the supported
// enumeration.
type UnsupportedCurrencyError struct {
	Code string
}

func (e *UnsupportedCurrencyError) Error() string {
	return fmt.Sprintf("currency '%s' is not supported", e.Code)
}
