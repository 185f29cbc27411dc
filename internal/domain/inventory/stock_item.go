package inventory

import (
	"fmt"
	"time"

	"github.com/buildmart/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// StockItem tracks the sellable quantity of a single product.
// Reservations decrement the available quantity at checkout and
// releases restore it when an order enters the cancellation branch.
type StockItem struct {
	shared.BaseAggregateRoot
	ProductID         uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	AvailableQuantity int64
}

// NewStockItem creates a stock record for a product
func NewStockItem(productID uuid.UUID, quantity int64) (*StockItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity < 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Initial quantity cannot be negative")
	}

	return &StockItem{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProductID:         productID,
		AvailableQuantity: quantity,
	}, nil
}

// Reserve decrements available stock for an order.
// The caller must hold a row lock on this item for the duration of
// the checkout transaction.
func (s *StockItem) Reserve(quantity int64, orderRef uuid.UUID) error {
	if quantity < 1 {
		return shared.NewDomainError("INVALID_QUANTITY", "Reserve quantity must be positive")
	}
	if quantity > s.AvailableQuantity {
		return shared.NewDomainError("INSUFFICIENT_STOCK",
			fmt.Sprintf("Only %d units available for product %s", s.AvailableQuantity, s.ProductID))
	}

	s.AvailableQuantity -= quantity
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	s.AddDomainEvent(NewStockReservedEvent(s, quantity, orderRef))

	return nil
}

// Release restores stock that was reserved for a cancelled order
func (s *StockItem) Release(quantity int64, orderRef uuid.UUID) error {
	if quantity < 1 {
		return shared.NewDomainError("INVALID_QUANTITY", "Release quantity must be positive")
	}

	s.AvailableQuantity += quantity
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	s.AddDomainEvent(NewStockReleasedEvent(s, quantity, orderRef))

	return nil
}

// Restock adds purchased stock to the available quantity
func (s *StockItem) Restock(quantity int64) error {
	if quantity < 1 {
		return shared.NewDomainError("INVALID_QUANTITY", "Restock quantity must be positive")
	}

	s.AvailableQuantity += quantity
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// CanSatisfy reports whether the requested quantity is in stock.
// This is an advisory read used by the cart; only Reserve under a
// row lock is authoritative.
func (s *StockItem) CanSatisfy(quantity int64) bool {
	return quantity <= s.AvailableQuantity
}
