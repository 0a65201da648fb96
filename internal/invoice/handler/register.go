package handler

import (
	"invoices/internal/invoice"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"
)

type RegisterRequest struct {
	Supplier    string           `json:"supplier" validate:"required" example:"ACME Ltd"`
	Currency    string           `json:"currency" validate:"required,len=3" example:"EUR"`
	Amount      *decimal.Decimal `json:"amount" validate:"required" swaggertype:"string" example:"100.50"`
	Description string           `json:"description,omitempty" example:"Consulting, January"`
}

// Register godoc
// @Summary Register invoice
// @Description Create an invoice. Send an Idempotency-Key header to make retries safe.
// @Tags Invoices
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Client generated key"
// @Param request body RegisterRequest true "Invoice"
// @Success 201 {object} InvoiceResponse
// @Header 201 {string} Location "URL of the new invoice"
// @Failure 400 {object} errorResponse
// @Failure 409 {object} errorResponse "request with the same key in progress"
// @Failure 422 {object} errorResponse "key reused with a different body"
// @Failure 500 {object} errorResponse
// @Router /invoices [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	inv, err := h.manager.Register(r.Context(), invoice.NewInvoice{
		Supplier:    req.Supplier,
		Currency:    req.Currency,
		Amount:      *req.Amount,
		Description: req.Description,
	})
	if err != nil {
		writeManagerError(w, err, "Register")
		return
	}

	w.Header().Set("Location", strings.TrimSuffix(r.URL.Path, "/")+"/"+inv.ID.String())
	writeJSON(w, http.StatusCreated, toResponse(inv))
}
