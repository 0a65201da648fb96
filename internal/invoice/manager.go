package invoice

import (
	"context"
	"errors"
	"fmt"
	"invoices/internal/adapters"
	"invoices/internal/domain"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrInvalidCurrency  = fmt.Errorf("%w: invalid currency code", domain.ErrValidation)
	ErrSupplierRequired = fmt.Errorf("%w: supplier is required", domain.ErrValidation)
)

// Manager holds the invoice business rules. Store and rate client failures are
// logged by the adapters that detect them; the manager logs its own rejections.
type Manager struct {
	repo       adapters.InvoiceRepository
	rateClient adapters.RateClient
	now        func() time.Time
}

func (m *Manager) List(ctx context.Context) ([]domain.Invoice, error) {
	return m.repo.ListAll(ctx)
}

// GetByID returns the stored invoice. When targetCurrency is given and differs from the
// stored currency the result is a converted copy; nothing is written back.
func (m *Manager) GetByID(ctx context.Context, id uuid.UUID, targetCurrency string) (domain.Invoice, error) {
	inv, err := m.fetch(ctx, id)
	if err != nil {
		return domain.Invoice{}, err
	}

	target := strings.ToUpper(strings.TrimSpace(targetCurrency))
	if target == "" || target == inv.Currency {
		return inv, nil
	}
	if !IsValidCurrencyCode(target) {
		m.reject(ErrInvalidCurrency, logrus.Fields{"op": "GetByID", "invoice_id": id, "currency": targetCurrency})
		return domain.Invoice{}, ErrInvalidCurrency
	}

	rate, err := m.rateClient.GetExchangeRate(ctx, inv.Currency, target)
	if err != nil {
		return domain.Invoice{}, err
	}
	return inv.Converted(target, rate), nil
}

func (m *Manager) Register(ctx context.Context, in NewInvoice) (domain.Invoice, error) {
	currency := strings.ToUpper(strings.TrimSpace(in.Currency))
	if !IsValidCurrencyCode(currency) {
		m.reject(ErrInvalidCurrency, logrus.Fields{"op": "Register", "currency": in.Currency})
		return domain.Invoice{}, ErrInvalidCurrency
	}
	supplier := strings.TrimSpace(in.Supplier)
	if supplier == "" {
		m.reject(ErrSupplierRequired, logrus.Fields{"op": "Register"})
		return domain.Invoice{}, ErrSupplierRequired
	}
	description := in.Description
	if strings.TrimSpace(description) == "" {
		description = domain.DefaultDescription
	}

	inv := domain.Invoice{
		ID:          uuid.New(),
		Supplier:    supplier,
		DateIssued:  m.now().UTC().Truncate(time.Microsecond),
		Currency:    currency,
		Amount:      in.Amount,
		Description: description,
	}
	if err := m.repo.Insert(ctx, inv); err != nil {
		return domain.Invoice{}, err
	}

	logrus.WithFields(logrus.Fields{"invoice_id": inv.ID, "currency": inv.Currency}).Info("invoice registered")
	return inv, nil
}

// Update applies patch to the stored invoice. A currency change is applied first (rescaling
// the amount when requested), so an explicit amount in the same patch always wins.
func (m *Manager) Update(ctx context.Context, id uuid.UUID, patch Patch) (domain.Invoice, error) {
	inv, err := m.fetch(ctx, id)
	if err != nil {
		return domain.Invoice{}, err
	}

	if patch.Currency.Set {
		currency := strings.ToUpper(strings.TrimSpace(patch.Currency.Value))
		if !IsValidCurrencyCode(currency) {
			m.reject(ErrInvalidCurrency, logrus.Fields{"op": "Update", "invoice_id": id, "currency": patch.Currency.Value})
			return domain.Invoice{}, ErrInvalidCurrency
		}
		if patch.ConvertAmount && currency != inv.Currency {
			rate, rateErr := m.rateClient.GetExchangeRate(ctx, inv.Currency, currency)
			if rateErr != nil {
				return domain.Invoice{}, rateErr
			}
			inv = inv.Converted(currency, rate)
		}
		inv.Currency = currency
	}

	if patch.Supplier.Set && strings.TrimSpace(patch.Supplier.Value) != "" {
		inv.Supplier = strings.TrimSpace(patch.Supplier.Value)
	}

	if patch.Amount.Set {
		inv.Amount = patch.Amount.Value
	}

	if patch.Description.Set && strings.TrimSpace(patch.Description.Value) != "" {
		inv.Description = patch.Description.Value
	}

	if err = m.repo.Update(ctx, inv); err != nil {
		if errors.Is(err, domain.ErrInvoiceNotFound) {
			m.reject(err, logrus.Fields{"op": "Update", "invoice_id": id})
		}
		return domain.Invoice{}, err
	}

	logrus.WithField("invoice_id", id).Info("invoice updated")
	return inv, nil
}

func (m *Manager) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := m.fetch(ctx, id); err != nil {
		return err
	}

	if err := m.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrInvoiceNotFound) {
			m.reject(err, logrus.Fields{"op": "Delete", "invoice_id": id})
		}
		return err
	}

	logrus.WithField("invoice_id", id).Info("invoice deleted")
	return nil
}

func (m *Manager) fetch(ctx context.Context, id uuid.UUID) (domain.Invoice, error) {
	inv, err := m.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrInvoiceNotFound) {
			m.reject(err, logrus.Fields{"invoice_id": id})
		}
		return domain.Invoice{}, err
	}
	return inv, nil
}

func (m *Manager) reject(err error, fields logrus.Fields) {
	logrus.WithFields(fields).Warn(err.Error())
}

func NewManager(repo adapters.InvoiceRepository, rateClient adapters.RateClient) *Manager {
	return &Manager{repo: repo, rateClient: rateClient, now: time.Now}
}
