package inventory

import (
	"github.com/buildmart/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypeStockItem = "StockItem"

// Event type constants
const (
	EventTypeStockReserved = "StockReserved"
	EventTypeStockReleased = "StockReleased"
)

// StockReservedEvent is raised when stock is reserved for an order
type StockReservedEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int64     `json:"quantity"`
	Remaining int64     `json:"remaining"`
	OrderRef  uuid.UUID `json:"order_ref"`
}

// NewStockReservedEvent creates a new StockReservedEvent
func NewStockReservedEvent(item *StockItem, quantity int64, orderRef uuid.UUID) *StockReservedEvent {
	return &StockReservedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockReserved, AggregateTypeStockItem, item.ID),
		ProductID:       item.ProductID,
		Quantity:        quantity,
		Remaining:       item.AvailableQuantity,
		OrderRef:        orderRef,
	}
}

// EventType returns the event type name
func (e *StockReservedEvent) EventType() string {
	return EventTypeStockReserved
}

// StockReleasedEvent is raised when reserved stock is returned after cancellation
type StockReleasedEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int64     `json:"quantity"`
	Remaining int64     `json:"remaining"`
	OrderRef  uuid.UUID `json:"order_ref"`
}

// NewStockReleasedEvent creates a new StockReleasedEvent
func NewStockReleasedEvent(item *StockItem, quantity int64, orderRef uuid.UUID) *StockReleasedEvent {
	return &StockReleasedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockReleased, AggregateTypeStockItem, item.ID),
		ProductID:       item.ProductID,
		Quantity:        quantity,
		Remaining:       item.AvailableQuantity,
		OrderRef:        orderRef,
	}
}

// EventType returns the event type name
func (e *StockReleasedEvent) EventType() string {
	return EventTypeStockReleased
}
