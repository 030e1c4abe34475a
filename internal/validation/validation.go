// Package validation checks request inputs before they reach the account
// aggregate: the account-number format, amount signs and transfer request
// shape.
package validation

import (
	"regexp"

	"github.com/shopspring/decimal"

	"github.com/aklyuk/banking-ledger/internal/models"
	"github.com/aklyuk/banking-ledger/internal/money"
)

// Account numbers are "2600" followed by exactly 10 decimal digits.
var accountNumberPattern = regexp.MustCompile(`^2600\d{10}$`)

// AccountNumber checks the fixed account-number format.
func AccountNumber(number string) error {
	if !accountNumberPattern.MatchString(number) {
		return models.ErrInvalidAccountNumber
	}
	return nil
}

// BalanceAmount checks an initial balance: anything rounding below zero is
// rejected.
func BalanceAmount(balance decimal.Decimal) error {
	if money.IsNegative(balance) {
		return models.ErrNegativeBalance
	}
	return nil
}

// TransferAmount checks a deposit, withdraw or transfer amount: the
// rounded value must be strictly positive.
func TransferAmount(amount decimal.Decimal) error {
	if money.IsNegativeOrZero(amount) {
		return models.ErrInvalidAmount
	}
	return nil
}

// TransferRequest checks both account numbers and their distinctness. The
// amount itself is left to the source account's Withdraw, which applies
// the same rule as TransferAmount.
func TransferRequest(req models.TransferRequest) error {
	if err := AccountNumber(req.SourceNumber); err != nil {
		return err
	}
	if err := AccountNumber(req.TargetNumber); err != nil {
		return err
	}
	if req.SourceNumber == req.TargetNumber {
		return models.ErrSameAccount
	}
	return nil
}
