package handlers

import (
	"github.com/shopspring/decimal"

	"github.com/aklyuk/banking-ledger/internal/models"
)

// Balances render as bare JSON numbers, not quoted strings.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// AccountDetails is the single-account response body.
type AccountDetails struct {
	Number   string          `json:"number"`
	Currency models.Currency `json:"currency"`
	Balance  decimal.Decimal `json:"balance"`
}

func newAccountDetails(account *models.Account) AccountDetails {
	return AccountDetails{
		Number:   account.Number,
		Currency: account.Currency,
		Balance:  account.Balance,
	}
}

// AccountSummary is one entry of the account listing.
type AccountSummary struct {
	Number   string          `json:"number"`
	Currency models.Currency `json:"currency"`
}

// AccountList wraps the listing in a data envelope.
type AccountList struct {
	Data []AccountSummary `json:"data"`
}

func newAccountList(accounts []*models.Account) AccountList {
	data := make([]AccountSummary, 0, len(accounts))
	for _, account := range accounts {
		data = append(data, AccountSummary{Number: account.Number, Currency: account.Currency})
	}
	return AccountList{Data: data}
}
