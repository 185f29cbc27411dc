package order

import (
	"context"

	"github.com/buildmart/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Repository defines persistence operations for orders
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	// FindByIDForUser loads an order only if it belongs to the user.
	FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*Order, error)
	FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]Order, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
	CountByStatus(ctx context.Context, status Status) (int64, error)
	Save(ctx context.Context, order *Order) error
	// SaveWithLock persists with an optimistic version check and fails
	// with a concurrency conflict when the row changed underneath.
	SaveWithLock(ctx context.Context, order *Order) error
	// GenerateInvoiceNumber allocates the next INV-YYYY-NNNNN number.
	GenerateInvoiceNumber(ctx context.Context) (string, error)
}
