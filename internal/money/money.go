// Package money defines the fixed-point rules every amount in the ledger
// follows: a canonical scale of 2 fractional digits and floor truncation.
//
// Floor means toward negative infinity, not toward zero: 0.009 rounds to
// 0.00 while -0.001 rounds to -0.01. Negative-balance checks rely on that
// direction, so it must not be swapped for half-up rounding.
package money

import "github.com/shopspring/decimal"

// Scale is the canonical number of fractional digits for stored amounts.
const Scale = 2

// Round truncates value to the canonical scale toward negative infinity.
func Round(value decimal.Decimal) decimal.Decimal {
	return value.RoundFloor(Scale)
}

// IsNegative reports whether value is below zero once rounded.
func IsNegative(value decimal.Decimal) bool {
	return Round(value).IsNegative()
}

// IsNegativeOrZero reports whether the rounded value fails the
// strictly-positive rule deposits and withdrawals enforce.
func IsNegativeOrZero(value decimal.Decimal) bool {
	rounded := Round(value)
	return rounded.IsNegative() || rounded.IsZero()
}
