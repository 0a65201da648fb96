package handler

import (
	"invoices/internal/domain"
	"time"

	"github.com/shopspring/decimal"
)

type InvoiceResponse struct {
	ID          string          `json:"id" example:"77b5d9f5-0569-47e3-aee2-f659d59fbd97"`
	Supplier    string          `json:"supplier" example:"ACME Ltd"`
	DateIssued  time.Time       `json:"date_issued" example:"2025-01-02T15:04:05Z"`
	Currency    string          `json:"currency" example:"EUR"`
	Amount      decimal.Decimal `json:"amount" swaggertype:"string" example:"100.50"`
	Description string          `json:"description" example:"Consulting, January"`
}

func toResponse(inv domain.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:          inv.ID.String(),
		Supplier:    inv.Supplier,
		DateIssued:  inv.DateIssued,
		Currency:    inv.Currency,
		Amount:      inv.Amount,
		Description: inv.Description,
	}
}
