package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/buildmart/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockStockItemRepository creates a GormStockItemRepository with a mocked SQL connection
func newMockStockItemRepository(t *testing.T) (*GormStockItemRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormStockItemRepository(gormDB), mock, mockDB
}

func TestGormStockItemRepository_FindByProductID(t *testing.T) {
	t.Run("finds the stock row for a product", func(t *testing.T) {
		repo, mock, mockDB := newMockStockItemRepository(t)
		defer mockDB.Close()

		productID := uuid.New()
		stockID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "product_id", "available_quantity", "version"}).
			AddRow(stockID, productID, int64(7), 1)

		mock.ExpectQuery(`SELECT \* FROM "stock_items" WHERE product_id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(productID, 1).
			WillReturnRows(rows)

		item, err := repo.FindByProductID(context.Background(), productID)

		assert.NoError(t, err)
		require.NotNil(t, item)
		assert.Equal(t, productID, item.ProductID)
		assert.Equal(t, int64(7), item.AvailableQuantity)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing stock row reads as not found", func(t *testing.T) {
		repo, mock, mockDB := newMockStockItemRepository(t)
		defer mockDB.Close()

		productID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "stock_items" WHERE product_id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(productID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		item, err := repo.FindByProductID(context.Background(), productID)

		assert.Nil(t, item)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormStockItemRepository_FindByProductIDForUpdate(t *testing.T) {
	t.Run("locks the row with FOR UPDATE", func(t *testing.T) {
		repo, mock, mockDB := newMockStockItemRepository(t)
		defer mockDB.Close()

		productID := uuid.New()
		stockID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "product_id", "available_quantity", "version"}).
			AddRow(stockID, productID, int64(3), 2)

		mock.ExpectQuery(`SELECT \* FROM "stock_items" WHERE product_id = \$1 ORDER BY .* LIMIT .* FOR UPDATE`).
			WithArgs(productID, 1).
			WillReturnRows(rows)

		item, err := repo.FindByProductIDForUpdate(context.Background(), productID)

		assert.NoError(t, err)
		require.NotNil(t, item)
		assert.Equal(t, int64(3), item.AvailableQuantity)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row reads as not found even under lock", func(t *testing.T) {
		repo, mock, mockDB := newMockStockItemRepository(t)
		defer mockDB.Close()

		productID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "stock_items" WHERE product_id = \$1 ORDER BY .* LIMIT .* FOR UPDATE`).
			WithArgs(productID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		item, err := repo.FindByProductIDForUpdate(context.Background(), productID)

		assert.Nil(t, item)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
