package checkout

import (
	"time"

	"github.com/buildmart/backend/internal/domain/order"
	"github.com/google/uuid"
)

// CheckoutRequest converts the user's cart into an order
type CheckoutRequest struct {
	AddressID   uuid.UUID         `json:"address_id"`
	PaymentType order.PaymentType `json:"payment_type"`
}

// LineResponse is an order line snapshot
type LineResponse struct {
	ProductID       uuid.UUID `json:"product_id"`
	ProductName     string    `json:"product_name"`
	Brand           string    `json:"brand,omitempty"`
	Unit            string    `json:"unit"`
	Quantity        int64     `json:"quantity"`
	UnitPrice       float64   `json:"unit_price"`
	DiscountPercent float64   `json:"discount_percent"`
	Subtotal        float64   `json:"subtotal"`
	ImageURL        string    `json:"image_url,omitempty"`
}

// OrderResponse is the placed order returned to the customer
type OrderResponse struct {
	ID              uuid.UUID         `json:"id"`
	InvoiceNumber   string            `json:"invoice_number"`
	Status          order.Status      `json:"status"`
	PaymentType     order.PaymentType `json:"payment_type"`
	TotalAmount     float64           `json:"total_amount"`
	ShippingAddress string            `json:"shipping_address"`
	PaymentDueAt    *time.Time        `json:"payment_due_at,omitempty"`
	OrderDate       time.Time         `json:"order_date"`
	Lines           []LineResponse    `json:"lines"`
}

// ToOrderResponse converts a domain order to its response form
func ToOrderResponse(o *order.Order) *OrderResponse {
	lines := make([]LineResponse, len(o.Lines))
	for i, l := range o.Lines {
		lines[i] = LineResponse{
			ProductID:       l.ProductID,
			ProductName:     l.ProductName,
			Brand:           l.Brand,
			Unit:            l.Unit,
			Quantity:        l.Quantity,
			UnitPrice:       l.UnitPrice.InexactFloat64(),
			DiscountPercent: l.DiscountPercent.InexactFloat64(),
			Subtotal:        l.Subtotal.InexactFloat64(),
			ImageURL:        l.ImageURL,
		}
	}

	return &OrderResponse{
		ID:              o.ID,
		InvoiceNumber:   o.InvoiceNumber,
		Status:          o.Status,
		PaymentType:     o.PaymentType,
		TotalAmount:     o.TotalAmount.InexactFloat64(),
		ShippingAddress: o.ShippingAddress.FullAddress(),
		PaymentDueAt:    o.PaymentDueAt,
		OrderDate:       o.OrderDate,
		Lines:           lines,
	}
}
