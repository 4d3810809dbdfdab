package models

// Currency is one of the two currencies the book is kept in.
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyIQD Currency = "IQD"
)

// Symbol returns the display symbol appended after formatted amounts.
func (c Currency) Symbol() string {
	switch c {
	case CurrencyUSD:
		return "$"
	case CurrencyIQD:
		return "د.ع"
	}
	return string(c)
}

// DecimalPlaces returns the number of fraction digits used when formatting.
// USD amounts show cents, IQD amounts are whole dinars.
func (c Currency) DecimalPlaces() int32 {
	if c == CurrencyIQD {
		return 0
	}
	return 2
}

// IsValid reports whether the currency is one of the supported pair.
func (c Currency) IsValid() bool {
	return c == CurrencyUSD || c == CurrencyIQD
}
