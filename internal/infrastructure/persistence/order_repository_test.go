package persistence

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/buildmart/backend/internal/domain/order"
	"github.com/buildmart/backend/internal/domain/shared"
	"github.com/buildmart/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupOrderTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&order.Order{}, &order.Line{}))
	return db
}

// buildTestOrder assembles a COD order with a single line through the
// domain constructors, so persisted rows carry real snapshot data.
func buildTestOrder(t *testing.T, invoiceNumber string) *order.Order {
	t.Helper()

	addr, err := valueobject.NewAddress(
		"99/1 Rama IX Rd", "Huai Khwang", "Huai Khwang", "Bangkok", "10310",
		valueobject.WithPhone("0812345678"),
	)
	require.NoError(t, err)

	o, err := order.NewOrder(uuid.New(), invoiceNumber, order.PaymentCashOnDelivery, addr)
	require.NoError(t, err)

	line, err := order.NewLine(
		o.ID, uuid.New(),
		"Portland Cement 50kg", "TPI", "bag", "",
		2, valueobject.NewMoneyTHBFromFloat(150), decimal.Zero,
	)
	require.NoError(t, err)
	o.AddLine(*line)

	return o
}

func TestGormOrderRepository_SaveAndFindByID(t *testing.T) {
	db := setupOrderTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	o := buildTestOrder(t, "INV-2026-00001")
	require.NoError(t, repo.Save(ctx, o))

	t.Run("reads the order back with its lines", func(t *testing.T) {
		found, err := repo.FindByID(ctx, o.ID)
		require.NoError(t, err)

		assert.Equal(t, "INV-2026-00001", found.InvoiceNumber)
		assert.Equal(t, order.StatusPending, found.Status)
		assert.True(t, found.TotalAmount.Equal(decimal.NewFromInt(300)))
		assert.Equal(t, "Bangkok", found.ShippingAddress.Province())
		require.Len(t, found.Lines, 1)
		assert.Equal(t, "Portland Cement 50kg", found.Lines[0].ProductName)
		assert.Equal(t, o.ID, found.Lines[0].OrderID)
	})

	t.Run("an unknown order is not found", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("a foreign order reads as not found for the user", func(t *testing.T) {
		_, err := repo.FindByIDForUser(ctx, uuid.New(), o.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)

		found, err := repo.FindByIDForUser(ctx, o.UserID, o.ID)
		require.NoError(t, err)
		assert.Equal(t, o.ID, found.ID)
	})

	t.Run("a duplicate invoice number reads as a concurrency conflict", func(t *testing.T) {
		dup := buildTestOrder(t, "INV-2026-00001")
		err := repo.Save(ctx, dup)
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	})
}

func TestGormOrderRepository_SaveWithLock(t *testing.T) {
	db := setupOrderTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	o := buildTestOrder(t, "INV-2026-00002")
	require.NoError(t, repo.Save(ctx, o))

	t.Run("writes the mutation and bumps the version", func(t *testing.T) {
		current, err := repo.FindByID(ctx, o.ID)
		require.NoError(t, err)

		require.NoError(t, current.StartPreparing())
		require.NoError(t, repo.SaveWithLock(ctx, current))

		stored, err := repo.FindByID(ctx, o.ID)
		require.NoError(t, err)
		assert.Equal(t, order.StatusPreparing, stored.Status)
		assert.Equal(t, 2, stored.Version)
	})

	t.Run("a stale version is rejected without writing", func(t *testing.T) {
		// o still carries version 1 from before the previous update
		require.NoError(t, o.StartPreparing())
		err := repo.SaveWithLock(ctx, o)
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)

		stored, err := repo.FindByID(ctx, o.ID)
		require.NoError(t, err)
		assert.Equal(t, order.StatusPreparing, stored.Status)
	})

	t.Run("an order that was never saved reports not found", func(t *testing.T) {
		ghost := buildTestOrder(t, "INV-2026-00099")
		err := repo.SaveWithLock(ctx, ghost)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormOrderRepository_GenerateInvoiceNumber(t *testing.T) {
	db := setupOrderTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	year := time.Now().Year()

	t.Run("starts the sequence on an empty table", func(t *testing.T) {
		num, err := repo.GenerateInvoiceNumber(ctx)
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("INV-%d-00001", year), num)
	})

	t.Run("continues after the highest stored number", func(t *testing.T) {
		o := buildTestOrder(t, fmt.Sprintf("INV-%d-00041", year))
		require.NoError(t, repo.Save(ctx, o))

		num, err := repo.GenerateInvoiceNumber(ctx)
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("INV-%d-00042", year), num)
	})
}

func TestGormOrderRepository_Counts(t *testing.T) {
	db := setupOrderTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	first := buildTestOrder(t, "INV-2026-00010")
	second := buildTestOrder(t, "INV-2026-00011")
	require.NoError(t, repo.Save(ctx, first))
	require.NoError(t, repo.Save(ctx, second))

	t.Run("counts orders per status", func(t *testing.T) {
		count, err := repo.CountByStatus(ctx, order.StatusPending)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)

		count, err = repo.CountByStatus(ctx, order.StatusShipped)
		require.NoError(t, err)
		assert.Equal(t, int64(0), count)
	})

	t.Run("counts orders per user", func(t *testing.T) {
		count, err := repo.CountByUser(ctx, first.UserID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})
}
