package customer

import (
	"context"

	"github.com/google/uuid"
)

// AddressRepository defines persistence operations for the address book
type AddressRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Address, error)
	// FindByUser returns a user's addresses ordered by creation time ascending.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]Address, error)
	FindDefaultByUser(ctx context.Context, userID uuid.UUID) (*Address, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
	Save(ctx context.Context, address *Address) error
	// ClearDefaultForUser unsets the default flag on all of a user's addresses.
	ClearDefaultForUser(ctx context.Context, userID uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}
