package adapters

import (
	"context"
	"invoices/internal/domain"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RateClient interface {
	GetExchangeRate(ctx context.Context, base string, target string) (decimal.Decimal, error)
}

type InvoiceRepository interface {
	ListAll(ctx context.Context) ([]domain.Invoice, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Invoice, error)
	Insert(ctx context.Context, invoice domain.Invoice) error
	Update(ctx context.Context, invoice domain.Invoice) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type IdempotencyCache interface {
	Get(key string) (domain.IdempotentResponse, bool)
	// Reserve marks key as in flight. It returns false if the key is already known.
	Reserve(key string, bodyHash string) bool
	Complete(key string, resp domain.IdempotentResponse, ttl time.Duration)
	Release(key string)
}
