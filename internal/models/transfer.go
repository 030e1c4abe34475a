package models

import "github.com/shopspring/decimal"

// TransferRequest names the two accounts of a transfer and carries the raw
// amount. It holds no ownership over the accounts and is validated before
// use, not at construction.
type TransferRequest struct {
	SourceNumber string
	TargetNumber string
	Amount       decimal.Decimal
}
