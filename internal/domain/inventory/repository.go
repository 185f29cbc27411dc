package inventory

import (
	"context"

	"github.com/google/uuid"
)

// StockItemRepository defines persistence operations for stock items
type StockItemRepository interface {
	FindByProductID(ctx context.Context, productID uuid.UUID) (*StockItem, error)
	// FindByProductIDForUpdate loads the stock row under a row-level lock.
	// Must be called inside a transaction; the lock is held until commit.
	FindByProductIDForUpdate(ctx context.Context, productID uuid.UUID) (*StockItem, error)
	Save(ctx context.Context, item *StockItem) error
	Create(ctx context.Context, item *StockItem) error
}
