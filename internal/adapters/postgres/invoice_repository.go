package postgres

import (
	"context"
	"errors"
	"fmt"
	"invoices/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

type InvoiceRepository struct {
	pool *pgxpool.Pool
}

func (r *InvoiceRepository) ListAll(ctx context.Context) ([]domain.Invoice, error) {
	const q = `
		select id, supplier, date_issued, currency, amount, description
		from invoices
		order by date_issued, id;
	`

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, r.fail(err, "ListAll", "failed to query invoices")
	}
	defer rows.Close()

	invoices := make([]domain.Invoice, 0, 64)
	for rows.Next() {
		var inv domain.Invoice
		if err = rows.Scan(&inv.ID, &inv.Supplier, &inv.DateIssued, &inv.Currency, &inv.Amount, &inv.Description); err != nil {
			return nil, r.fail(err, "ListAll", "failed to scan invoice")
		}
		invoices = append(invoices, inv)
	}
	if err = rows.Err(); err != nil {
		return nil, r.fail(err, "ListAll", "error iterating invoices")
	}
	return invoices, nil
}

func (r *InvoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.Invoice, error) {
	const q = `
		select id, supplier, date_issued, currency, amount, description
		from invoices
		where id = $1;
	`

	var inv domain.Invoice
	if err := r.pool.QueryRow(ctx, q, id).Scan(
		&inv.ID,
		&inv.Supplier,
		&inv.DateIssued,
		&inv.Currency,
		&inv.Amount,
		&inv.Description,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Invoice{}, domain.ErrInvoiceNotFound
		}
		return domain.Invoice{}, r.fail(err, "GetByID", fmt.Sprintf("failed to select invoice %q", id))
	}
	return inv, nil
}

func (r *InvoiceRepository) Insert(ctx context.Context, inv domain.Invoice) error {
	const q = `
		insert into invoices (id, supplier, date_issued, currency, amount, description)
		values ($1, $2, $3, $4, $5, $6);
	`

	if _, err := r.pool.Exec(ctx, q, inv.ID, inv.Supplier, inv.DateIssued, inv.Currency, inv.Amount, inv.Description); err != nil {
		return r.fail(err, "Insert", fmt.Sprintf("failed to insert invoice %q", inv.ID))
	}
	return nil
}

// Update writes the mutable columns only; id and date_issued are never part of the statement.
func (r *InvoiceRepository) Update(ctx context.Context, inv domain.Invoice) error {
	const q = `
		update invoices
		set supplier = $2, currency = $3, amount = $4, description = $5
		where id = $1;
	`

	tag, err := r.pool.Exec(ctx, q, inv.ID, inv.Supplier, inv.Currency, inv.Amount, inv.Description)
	if err != nil {
		return r.fail(err, "Update", fmt.Sprintf("failed to update invoice %q", inv.ID))
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInvoiceNotFound
	}
	return nil
}

func (r *InvoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `delete from invoices where id = $1;`

	tag, err := r.pool.Exec(ctx, q, id)
	if err != nil {
		return r.fail(err, "Delete", fmt.Sprintf("failed to delete invoice %q", id))
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInvoiceNotFound
	}
	return nil
}

// fail logs a store failure once and wraps it as a persistence error.
func (r *InvoiceRepository) fail(err error, op string, msg string) error {
	entry := logrus.WithError(err).WithFields(logrus.Fields{"component": "invoice_repository", "op": op})

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		entry = entry.WithFields(logrus.Fields{"pg_code": pgErr.Code, "constraint": pgErr.ConstraintName})
		switch pgErr.Code {
		case pgerrcode.CheckViolation, pgerrcode.NotNullViolation:
			msg += ": write rejected by constraint " + pgErr.ConstraintName
		case pgerrcode.UniqueViolation:
			msg += ": invoice id already exists"
		}
	}
	entry.Error(msg)
	return fmt.Errorf("%w: %s: %v", domain.ErrPersistence, msg, err)
}

func NewInvoiceRepository(pool *pgxpool.Pool) *InvoiceRepository {
	return &InvoiceRepository{pool: pool}
}
