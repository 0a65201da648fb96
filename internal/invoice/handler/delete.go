package handler

import (
	"net/http"
)

// Delete godoc
// @Summary Delete invoice
// @Tags Invoices
// @Param id path string true "Invoice ID"
// @Success 204
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /invoices/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid invoice ID format")
		return
	}

	if err = h.manager.Delete(r.Context(), id); err != nil {
		writeManagerError(w, err, "Delete")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
