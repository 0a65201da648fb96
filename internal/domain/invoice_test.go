package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestInvoice_Converted_ReturnsCopy(t *testing.T) {
	issued := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	original := Invoice{
		ID:          uuid.New(),
		Supplier:    "ACME",
		DateIssued:  issued,
		Currency:    "EUR",
		Amount:      decimal.NewFromInt(100),
		Description: "consulting",
	}

	converted := original.Converted("USD", decimal.RequireFromString("1.1"))

	require.Equal(t, "USD", converted.Currency)
	require.True(t, converted.Amount.Equal(decimal.NewFromInt(110)))
	require.Equal(t, original.ID, converted.ID)
	require.Equal(t, issued, converted.DateIssued)
	require.Equal(t, "ACME", converted.Supplier)

	// original must stay as stored
	require.Equal(t, "EUR", original.Currency)
	require.True(t, original.Amount.Equal(decimal.NewFromInt(100)))
}

func TestInvoice_Converted_NegativeAmount(t *testing.T) {
	inv := Invoice{Currency: "GBP", Amount: decimal.RequireFromString("-20.50")}

	converted := inv.Converted("JPY", decimal.NewFromInt(190))

	require.True(t, converted.Amount.Equal(decimal.RequireFromString("-3895")))
}
