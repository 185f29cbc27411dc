package cart

import (
	"time"

	"github.com/buildmart/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CartLine is one product with a desired quantity in a user's cart.
// A user has at most one line per product; upserting the same product
// replaces the quantity rather than adding a second line.
type CartLine struct {
	shared.BaseEntity
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_user_product"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_user_product"`
	Quantity  int64
}

// NewCartLine creates a cart line for a user and product
func NewCartLine(userID, productID uuid.UUID, quantity int64) (*CartLine, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity < 1 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}

	return &CartLine{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		ProductID:  productID,
		Quantity:   quantity,
	}, nil
}

// SetQuantity replaces the desired quantity
func (l *CartLine) SetQuantity(quantity int64) error {
	if quantity < 1 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	l.Quantity = quantity
	l.UpdatedAt = time.Now()
	return nil
}
