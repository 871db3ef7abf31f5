package model

import "github.com/shopspring/decimal"

func init() {
	// Prices are rendered as JSON numbers, e.g. 150.5 rather than "150.5".
	decimal.MarshalJSONWithoutQuotes = true
}
