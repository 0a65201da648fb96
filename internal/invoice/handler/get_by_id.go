package handler

import (
	"net/http"
)

// GetByID godoc
// @Summary Get invoice
// @Description Get an invoice by ID, optionally converted into another currency. The stored invoice is not changed.
// @Tags Invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Param currency query string false "Target currency code" example(USD)
// @Success 200 {object} InvoiceResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 502 {object} errorResponse "exchange rate service unavailable"
// @Failure 500 {object} errorResponse
// @Router /invoices/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid invoice ID format")
		return
	}

	inv, err := h.manager.GetByID(r.Context(), id, r.URL.Query().Get("currency"))
	if err != nil {
		writeManagerError(w, err, "GetByID")
		return
	}

	writeJSON(w, http.StatusOK, toResponse(inv))
}
