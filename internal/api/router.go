package api

import (
	"fmt"
	_ "invoices/docs"
	"invoices/internal/adapters"
	"invoices/internal/invoice/handler"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	swagger "github.com/swaggo/http-swagger"
)

type RouterOptions struct {
	// RateLimit is a formatted rate such as "100-M". Empty disables limiting.
	RateLimit string
	// Idempotency is optional; without it the Idempotency-Key header is ignored.
	Idempotency    adapters.IdempotencyCache
	IdempotencyTTL time.Duration
}

func NewRouter(invoiceHandler *handler.Handler, opts RouterOptions) (*chi.Mux, error) {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(RequestLogger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Heartbeat("/healthz"))

	// Swagger UI
	router.Get("/swagger/*", swagger.WrapHandler)

	var limit func(next http.Handler) http.Handler
	if opts.RateLimit != "" {
		var err error
		if limit, err = NewRateLimiter(opts.RateLimit); err != nil {
			return nil, fmt.Errorf("invalid rate limit %q: %w", opts.RateLimit, err)
		}
	}

	router.Route("/api/v1/invoices", func(r chi.Router) {
		if limit != nil {
			r.Use(limit)
		}
		register := r.With()
		if opts.Idempotency != nil {
			register = r.With(Idempotency(opts.Idempotency, opts.IdempotencyTTL))
		}

		r.Get("/", invoiceHandler.List)
		register.Post("/", invoiceHandler.Register)
		r.Get("/{id}", invoiceHandler.GetByID)
		r.Patch("/{id}", invoiceHandler.Update)
		r.Delete("/{id}", invoiceHandler.Delete)
	})
	return router, nil
}
