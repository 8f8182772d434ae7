// Package models defines the core domain types shared across the application.
package models

import (
	"github.com/shopspring/decimal"
)

// Transaction is an immutable bank-transaction record as returned by the
// store, already joined with its human-readable category name. Dates travel
// as ISO-8601 text (YYYY-MM-DD). Downstream components never mutate a
// Transaction; classification produces new derived values instead.
type Transaction struct {
	ID          int64           `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description,omitempty"`
	Date        string          `json:"date"`
}
