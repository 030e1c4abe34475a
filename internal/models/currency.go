package models

// Currency is an ISO-style currency code. The enumeration is open to
// extension but unknown codes are rejected at parse time.
type Currency string

const CurrencyUAH Currency = "UAH"

// DefaultCurrency is assigned to every newly opened account.
const DefaultCurrency = CurrencyUAH

var supportedCurrencies = map[Currency]struct{}{
	CurrencyUAH: {},
}

// ParseCurrency resolves a currency code, failing with
// UnsupportedCurrencyError for codes outside the enumeration.
func ParseCurrency(code string) (Currency, error) {
	currency := Currency(code)
	if _, ok := supportedCurrencies[currency]; !ok {
		return "", &UnsupportedCurrencyError{Code: code}
	}
	return currency, nil
}
