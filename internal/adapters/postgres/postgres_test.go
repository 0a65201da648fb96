package postgres_test

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"invoices/internal/adapters/postgres"
	"invoices/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	tcpg "github.com/testcontainers/testcontainers-go/modules/postgres"
)

const migrationsDir = "../../platform/db/migrations"

var (
	pgSetupOnce sync.Once

	pgContainer *tcpg.PostgresContainer
	pgConnStr   string
)

func TestMain(m *testing.M) {
	code := m.Run()
	if pgContainer != nil {
		_ = pgContainer.Terminate(context.Background())
	}
	os.Exit(code)
}

func setupPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()

	pgSetupOnce.Do(func() {
		startPostgres(t)
	})

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, pgConnStr)
	require.NoError(t, err)
	t.Cleanup(func() { pool.Close() })

	_, err = pool.Exec(ctx, `truncate table invoices`)
	require.NoError(t, err)

	return pool
}

func startPostgres(t *testing.T) {
	ctx := context.Background()
	pg, err := tcpg.Run(ctx,
		"postgres:16-alpine",
		tcpg.WithDatabase("postgres"),
		tcpg.WithUsername("postgres"),
		tcpg.WithPassword("postgres"),
	)
	require.NoError(t, err)

	dsn, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := goose.OpenDBWithDriver("pgx", dsn)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	require.Eventually(t, func() bool {
		pingCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		return db.PingContext(pingCtx) == nil
	}, 15*time.Second, 500*time.Millisecond)

	require.NoError(t, goose.SetDialect("postgres"))
	require.NoError(t, goose.UpContext(ctx, db, migrationsDir))

	pgContainer = pg
	pgConnStr = dsn
}

func newInvoice(supplier string, currency string, amount string, issued time.Time) domain.Invoice {
	return domain.Invoice{
		ID:          uuid.New(),
		Supplier:    supplier,
		DateIssued:  issued,
		Currency:    currency,
		Amount:      decimal.RequireFromString(amount),
		Description: domain.DefaultDescription,
	}
}

func TestInvoiceRepository_InsertAndGetByID(t *testing.T) {
	pool := setupPostgres(t)
	repo := postgres.NewInvoiceRepository(pool)
	ctx := context.Background()

	issued := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	inv := newInvoice("ACME", "EUR", "1234.5678", issued)
	require.NoError(t, repo.Insert(ctx, inv))

	got, err := repo.GetByID(ctx, inv.ID)
	require.NoError(t, err)
	require.Equal(t, inv.ID, got.ID)
	require.Equal(t, "ACME", got.Supplier)
	require.Equal(t, "EUR", got.Currency)
	require.True(t, got.Amount.Equal(decimal.RequireFromString("1234.5678")))
	require.True(t, got.DateIssued.Equal(issued))
	require.Equal(t, domain.DefaultDescription, got.Description)
}

func TestInvoiceRepository_GetByID_NotFound(t *testing.T) {
	pool := setupPostgres(t)
	repo := postgres.NewInvoiceRepository(pool)

	_, err := repo.GetByID(context.Background(), uuid.New())
	require.ErrorIs(t, err, domain.ErrInvoiceNotFound)
}

func TestInvoiceRepository_GetByID_DBError(t *testing.T) {
	pool := setupPostgres(t)
	repo := postgres.NewInvoiceRepository(pool)

	// Use a canceled context to force an error path distinct from ErrInvoiceNotFound.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := repo.GetByID(ctx, uuid.New())
	require.ErrorIs(t, err, domain.ErrPersistence)
	require.NotErrorIs(t, err, domain.ErrInvoiceNotFound)
}

func TestInvoiceRepository_ListAll_OrderedByDateIssued(t *testing.T) {
	pool := setupPostgres(t)
	repo := postgres.NewInvoiceRepository(pool)
	ctx := context.Background()

	empty, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Empty(t, empty)

	later := newInvoice("Later Ltd", "USD", "10", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
	earlier := newInvoice("Early GmbH", "EUR", "-5.25", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Insert(ctx, later))
	require.NoError(t, repo.Insert(ctx, earlier))

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, earlier.ID, all[0].ID)
	require.True(t, all[0].Amount.Equal(decimal.RequireFromString("-5.25")))
	require.Equal(t, later.ID, all[1].ID)
}

func TestInvoiceRepository_Insert_DuplicateID(t *testing.T) {
	pool := setupPostgres(t)
	repo := postgres.NewInvoiceRepository(pool)
	ctx := context.Background()

	inv := newInvoice("ACME", "EUR", "1", time.Now().UTC())
	require.NoError(t, repo.Insert(ctx, inv))

	err := repo.Insert(ctx, inv)
	require.ErrorIs(t, err, domain.ErrPersistence)
	require.Contains(t, err.Error(), "already exists")
}

func TestInvoiceRepository_Insert_RejectedByConstraint(t *testing.T) {
	pool := setupPostgres(t)
	repo := postgres.NewInvoiceRepository(pool)

	inv := newInvoice("ACME", "eur", "1", time.Now().UTC())
	err := repo.Insert(context.Background(), inv)
	require.ErrorIs(t, err, domain.ErrPersistence)
	require.Contains(t, err.Error(), "write rejected by constraint")
}

func TestInvoiceRepository_Update_KeepsIDAndDateIssued(t *testing.T) {
	pool := setupPostgres(t)
	repo := postgres.NewInvoiceRepository(pool)
	ctx := context.Background()

	issued := time.Date(2023, 12, 24, 18, 0, 0, 0, time.UTC)
	inv := newInvoice("ACME", "EUR", "100", issued)
	require.NoError(t, repo.Insert(ctx, inv))

	changed := inv
	changed.Supplier = "ACME Holdings"
	changed.Currency = "USD"
	changed.Amount = decimal.RequireFromString("110")
	changed.Description = "re-issued"
	changed.DateIssued = time.Now().UTC() // ignored by Update
	require.NoError(t, repo.Update(ctx, changed))

	got, err := repo.GetByID(ctx, inv.ID)
	require.NoError(t, err)
	require.Equal(t, "ACME Holdings", got.Supplier)
	require.Equal(t, "USD", got.Currency)
	require.True(t, got.Amount.Equal(decimal.NewFromInt(110)))
	require.Equal(t, "re-issued", got.Description)
	require.True(t, got.DateIssued.Equal(issued))
}

func TestInvoiceRepository_Update_Missing(t *testing.T) {
	pool := setupPostgres(t)
	repo := postgres.NewInvoiceRepository(pool)

	err := repo.Update(context.Background(), newInvoice("ACME", "EUR", "1", time.Now().UTC()))
	require.ErrorIs(t, err, domain.ErrInvoiceNotFound)
}

func TestInvoiceRepository_Delete(t *testing.T) {
	pool := setupPostgres(t)
	repo := postgres.NewInvoiceRepository(pool)
	ctx := context.Background()

	inv := newInvoice("ACME", "EUR", "1", time.Now().UTC())
	require.NoError(t, repo.Insert(ctx, inv))

	require.NoError(t, repo.Delete(ctx, inv.ID))

	_, err := repo.GetByID(ctx, inv.ID)
	require.ErrorIs(t, err, domain.ErrInvoiceNotFound)

	// second delete finds nothing
	require.ErrorIs(t, repo.Delete(ctx, inv.ID), domain.ErrInvoiceNotFound)
}

func TestInvoiceRepository_Delete_DBError(t *testing.T) {
	pool := setupPostgres(t)
	repo := postgres.NewInvoiceRepository(pool)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := repo.Delete(ctx, uuid.New())
	require.ErrorIs(t, err, domain.ErrPersistence)
}
