package cart

import (
	"context"

	"github.com/google/uuid"
)

// CartLineRepository defines persistence operations for cart lines
type CartLineRepository interface {
	FindByUser(ctx context.Context, userID uuid.UUID) ([]CartLine, error)
	FindByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (*CartLine, error)
	Save(ctx context.Context, line *CartLine) error
	// DeleteByUserAndProduct removes a line; deleting an absent line is not an error.
	DeleteByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) error
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}
