package invoice

import (
	"github.com/shopspring/decimal"
)

// Optional carries a value together with whether the caller supplied it at all.
type Optional[T any] struct {
	Value T
	Set   bool
}

func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

// FromPtr maps a nil pointer to an absent value.
func FromPtr[T any](p *T) Optional[T] {
	if p == nil {
		return Optional[T]{}
	}
	return Some(*p)
}

// Patch is a partial update of an invoice. Fields left unset are not touched.
type Patch struct {
	Supplier    Optional[string]
	Currency    Optional[string]
	Amount      Optional[decimal.Decimal]
	Description Optional[string]
	// ConvertAmount rescales the stored amount by the exchange rate when Currency changes.
	ConvertAmount bool
}

type NewInvoice struct {
	Supplier    string
	Currency    string
	Amount      decimal.Decimal
	Description string
}
