package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const DefaultDescription = "No description provided"

type Invoice struct {
	ID          uuid.UUID
	Supplier    string
	DateIssued  time.Time
	Currency    string
	Amount      decimal.Decimal
	Description string
}

// Converted returns a copy of the invoice expressed in currency. The receiver is left untouched.
func (i Invoice) Converted(currency string, rate decimal.Decimal) Invoice {
	out := i
	out.Amount = i.Amount.Mul(rate)
	out.Currency = currency
	return out
}
