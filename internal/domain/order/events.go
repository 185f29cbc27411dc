package order

import (
	"github.com/buildmart/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeOrder = "Order"

// Event type constants
const (
	EventTypeOrderPlaced          = "OrderPlaced"
	EventTypePaymentSlipAttached  = "PaymentSlipAttached"
	EventTypePaymentAccepted      = "PaymentAccepted"
	EventTypePaymentRejected      = "PaymentRejected"
	EventTypeOrderStatusChanged   = "OrderStatusChanged"
	EventTypeOrderCancelRequested = "OrderCancelRequested"
)

// LineInfo carries line snapshot data on events
type LineInfo struct {
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

func lineInfos(o *Order) []LineInfo {
	infos := make([]LineInfo, len(o.Lines))
	for i, l := range o.Lines {
		infos[i] = LineInfo{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			Subtotal:  l.Subtotal,
		}
	}
	return infos
}

// OrderPlacedEvent is raised when checkout creates a new order
type OrderPlacedEvent struct {
	shared.BaseDomainEvent
	OrderID       uuid.UUID       `json:"order_id"`
	InvoiceNumber string          `json:"invoice_number"`
	UserID        uuid.UUID       `json:"user_id"`
	PaymentType   PaymentType     `json:"payment_type"`
	Status        Status          `json:"status"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Lines         []LineInfo      `json:"lines"`
}

// NewOrderPlacedEvent creates a new OrderPlacedEvent
func NewOrderPlacedEvent(o *Order) *OrderPlacedEvent {
	return &OrderPlacedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderPlaced, AggregateTypeOrder, o.ID),
		OrderID:         o.ID,
		InvoiceNumber:   o.InvoiceNumber,
		UserID:          o.UserID,
		PaymentType:     o.PaymentType,
		Status:          o.Status,
		TotalAmount:     o.TotalAmount,
		Lines:           lineInfos(o),
	}
}

// EventType returns the event type name
func (e *OrderPlacedEvent) EventType() string {
	return EventTypeOrderPlaced
}

// PaymentSlipAttachedEvent is raised when the customer uploads a transfer slip
type PaymentSlipAttachedEvent struct {
	shared.BaseDomainEvent
	OrderID uuid.UUID `json:"order_id"`
	SlipRef string    `json:"slip_ref"`
}

// NewPaymentSlipAttachedEvent creates a new PaymentSlipAttachedEvent
func NewPaymentSlipAttachedEvent(o *Order) *PaymentSlipAttachedEvent {
	return &PaymentSlipAttachedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentSlipAttached, AggregateTypeOrder, o.ID),
		OrderID:         o.ID,
		SlipRef:         o.TransferSlipRef,
	}
}

// EventType returns the event type name
func (e *PaymentSlipAttachedEvent) EventType() string {
	return EventTypePaymentSlipAttached
}

// PaymentAcceptedEvent is raised when an admin verifies the transfer slip
type PaymentAcceptedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID       `json:"order_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// NewPaymentAcceptedEvent creates a new PaymentAcceptedEvent
func NewPaymentAcceptedEvent(o *Order) *PaymentAcceptedEvent {
	return &PaymentAcceptedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentAccepted, AggregateTypeOrder, o.ID),
		OrderID:         o.ID,
		TotalAmount:     o.TotalAmount,
	}
}

// EventType returns the event type name
func (e *PaymentAcceptedEvent) EventType() string {
	return EventTypePaymentAccepted
}

// PaymentRejectedEvent is raised when an admin rejects the transfer slip
type PaymentRejectedEvent struct {
	shared.BaseDomainEvent
	OrderID uuid.UUID `json:"order_id"`
	SlipRef string    `json:"slip_ref"`
}

// NewPaymentRejectedEvent creates a new PaymentRejectedEvent
func NewPaymentRejectedEvent(o *Order) *PaymentRejectedEvent {
	return &PaymentRejectedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentRejected, AggregateTypeOrder, o.ID),
		OrderID:         o.ID,
		SlipRef:         o.TransferSlipRef,
	}
}

// EventType returns the event type name
func (e *PaymentRejectedEvent) EventType() string {
	return EventTypePaymentRejected
}

// OrderStatusChangedEvent is raised for fulfilment transitions
type OrderStatusChangedEvent struct {
	shared.BaseDomainEvent
	OrderID uuid.UUID `json:"order_id"`
	From    Status    `json:"from"`
	To      Status    `json:"to"`
}

// NewOrderStatusChangedEvent creates a new OrderStatusChangedEvent
func NewOrderStatusChangedEvent(o *Order, from, to Status) *OrderStatusChangedEvent {
	return &OrderStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderStatusChanged, AggregateTypeOrder, o.ID),
		OrderID:         o.ID,
		From:            from,
		To:              to,
	}
}

// EventType returns the event type name
func (e *OrderStatusChangedEvent) EventType() string {
	return EventTypeOrderStatusChanged
}

// OrderCancelRequestedEvent is raised on entry into the cancellation
// branch. Consumers release reserved stock exactly once per order.
type OrderCancelRequestedEvent struct {
	shared.BaseDomainEvent
	OrderID      uuid.UUID  `json:"order_id"`
	From         Status     `json:"from"`
	Target       Status     `json:"target"`
	CancelReason string     `json:"cancel_reason"`
	Lines        []LineInfo `json:"lines"`
}

// NewOrderCancelRequestedEvent creates a new OrderCancelRequestedEvent
func NewOrderCancelRequestedEvent(o *Order, from, target Status) *OrderCancelRequestedEvent {
	return &OrderCancelRequestedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCancelRequested, AggregateTypeOrder, o.ID),
		OrderID:         o.ID,
		From:            from,
		Target:          target,
		CancelReason:    o.CancelReason,
		Lines:           lineInfos(o),
	}
}

// EventType returns the event type name
func (e *OrderCancelRequestedEvent) EventType() string {
	return EventTypeOrderCancelRequested
}
