package handler

import (
	"net/http"
)

// List godoc
// @Summary List invoices
// @Description Return every stored invoice in its stored currency
// @Tags Invoices
// @Produce json
// @Success 200 {array} InvoiceResponse
// @Failure 500 {object} errorResponse
// @Router /invoices [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.manager.List(r.Context())
	if err != nil {
		writeManagerError(w, err, "List")
		return
	}

	res := make([]InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		res = append(res, toResponse(inv))
	}
	writeJSON(w, http.StatusOK, res)
}
