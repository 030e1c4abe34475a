// Package models defines the ledger domain: the Account aggregate, its
// currency, the transfer request value object, the error taxonomy and the
// persistence contract the rest of the service depends on.
package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/aklyuk/banking-ledger/internal/money"
)

// Account is the aggregate root. Its business identity is Number; ID is a
// storage surrogate that never reaches callers. Balance is always stored
// rounded and never goes negative — Deposit and Withdraw are the only
// mutation points and both re-validate the invariants.
type Account struct {
	ID        uint            `gorm:"primaryKey" json:"-"`
	Number    string          `gorm:"uniqueIndex;size:14;not null" json:"number"`
	Currency  Currency        `gorm:"size:3;not null" json:"currency"`
	Balance   decimal.Decimal `gorm:"type:numeric(19,2);not null" json:"balance"`
	CreatedAt time.Time       `json:"-"`
	UpdatedAt time.Time       `json:"-"`
}

// NewAccount opens an account in the default currency holding the
// floor-rounded initial balance. Negative initial balances are rejected.
func NewAccount(number string, initialBalance decimal.Decimal) (*Account, error) {
	if money.IsNegative(initialBalance) {
		return nil, ErrNegativeBalance
	}
	return &Account{
		Number:   number,
		Currency: DefaultCurrency,
		Balance:  money.Round(initialBalance),
	}, nil
}

// Deposit adds amount to the balance. Amounts whose rounded value is not
// strictly positive move no funds and are rejected.
func (a *Account) Deposit(amount decimal.Decimal) error {
	if money.IsNegativeOrZero(amount) {
		return ErrInvalidAmount
	}
	a.Balance = money.Round(a.Balance.Add(amount))
	return nil
}

// Withdraw subtracts amount from the balance. The amount is rounded once
// up front so the positivity check and the balance comparison agree on the
// same value; anything above the current balance fails without mutating it.
func (a *Account) Withdraw(amount decimal.Decimal) error {
	rounded := money.Round(amount)
	if money.IsNegativeOrZero(rounded) {
		return ErrInvalidAmount
	}
	if a.Balance.LessThan(rounded) {
		return ErrAmountExceedsBalance
	}
	a.Balance = money.Round(a.Balance.Sub(rounded))
	return nil
}

// Equal reports structural equality on the caller-visible state: number,
// currency and balance. Surrogate and bookkeeping fields do not count.
func (a *Account) Equal(other *Account) bool {
	if other == nil {
		return false
	}
	return a.Number == other.Number &&
		a.Currency == other.Currency &&
		a.Balance.Equal(other.Balance)
}
