package handler

import (
	"invoices/internal/invoice"
	"net/http"

	"github.com/shopspring/decimal"
)

// UpdateRequest is a partial update; omitted fields keep their stored values.
type UpdateRequest struct {
	Supplier    *string          `json:"supplier,omitempty" example:"ACME Ltd"`
	Currency    *string          `json:"currency,omitempty" validate:"omitempty,len=3" example:"USD"`
	Amount      *decimal.Decimal `json:"amount,omitempty" swaggertype:"string" example:"110.55"`
	Description *string          `json:"description,omitempty" example:"Consulting, January"`
	// UpdateCurrencyAmount rescales the amount by the exchange rate when currency changes.
	UpdateCurrencyAmount bool `json:"update_currency_amount" example:"true"`
}

// Update godoc
// @Summary Update invoice
// @Tags Invoices
// @Accept json
// @Produce json
// @Param id path string true "Invoice ID"
// @Param request body UpdateRequest true "Fields to change"
// @Success 200 {object} InvoiceResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 502 {object} errorResponse "exchange rate service unavailable"
// @Failure 500 {object} errorResponse
// @Router /invoices/{id} [patch]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid invoice ID format")
		return
	}

	var req UpdateRequest
	if err = decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err = h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	inv, err := h.manager.Update(r.Context(), id, invoice.Patch{
		Supplier:      invoice.FromPtr(req.Supplier),
		Currency:      invoice.FromPtr(req.Currency),
		Amount:        invoice.FromPtr(req.Amount),
		Description:   invoice.FromPtr(req.Description),
		ConvertAmount: req.UpdateCurrencyAmount,
	})
	if err != nil {
		writeManagerError(w, err, "Update")
		return
	}

	writeJSON(w, http.StatusOK, toResponse(inv))
}
