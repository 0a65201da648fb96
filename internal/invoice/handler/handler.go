package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"invoices/internal/domain"
	"invoices/internal/invoice"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const maxBodyBytes = 1 << 16

type InvoiceManager interface {
	List(ctx context.Context) ([]domain.Invoice, error)
	GetByID(ctx context.Context, id uuid.UUID, targetCurrency string) (domain.Invoice, error)
	Register(ctx context.Context, in invoice.NewInvoice) (domain.Invoice, error)
	Update(ctx context.Context, id uuid.UUID, patch invoice.Patch) (domain.Invoice, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type Handler struct {
	manager  InvoiceManager
	validate *validator.Validate
}

func NewInvoiceHandler(manager InvoiceManager) *Handler {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &Handler{manager: manager, validate: v}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, statusCode int, errorMsg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(errorResponse{
		Error: errorMsg,
	})
}

func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

// writeManagerError maps manager errors to status codes. The failure itself was already
// logged where it was detected, so only unclassified errors are logged here.
func writeManagerError(w http.ResponseWriter, err error, handler string) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrInvoiceNotFound):
		writeError(w, http.StatusNotFound, "invoice not found")
	case errors.Is(err, domain.ErrExternalService):
		writeError(w, http.StatusBadGateway, "exchange rate service unavailable")
	case errors.Is(err, domain.ErrPersistence):
		writeError(w, http.StatusInternalServerError, "ups, couldn't reach invoice storage this time")
	default:
		logrus.WithError(err).WithField("handler", handler).Error("unexpected error")
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func parseID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(strings.TrimSpace(chi.URLParam(r, "id")))
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// validationMessage flattens validator errors into a single client-facing line.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "invalid request body"
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s: must satisfy %s=%s", fe.Field(), fe.Tag(), fe.Param()))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Field(), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}
