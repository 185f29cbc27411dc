package order

import (
	"time"

	"github.com/buildmart/backend/internal/domain/order"
	"github.com/google/uuid"
)

// AttachSlipRequest records an uploaded bank-transfer slip
type AttachSlipRequest struct {
	SlipRef string `json:"slip_ref"`
}

// ShipRequest records the carrier handoff
type ShipRequest struct {
	Carrier        string `json:"carrier"`
	TrackingNumber string `json:"tracking_number"`
}

// CancelRequest asks to cancel an order
type CancelRequest struct {
	Reason string `json:"reason"`
}

// ResolveCancelRequest settles a pending cancellation request
type ResolveCancelRequest struct {
	Refund bool `json:"refund"`
}

// ListQuery filters and paginates order listings
type ListQuery struct {
	Status   string `form:"status"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
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

// AuditEntryResponse is one row of the order history
type AuditEntryResponse struct {
	Status    order.Status `json:"status"`
	ActorRole string       `json:"actor_role"`
	CreatedAt time.Time    `json:"created_at"`
}

// Response is a full order with its lines
type Response struct {
	ID              uuid.UUID            `json:"id"`
	InvoiceNumber   string               `json:"invoice_number"`
	UserID          uuid.UUID            `json:"user_id"`
	Status          order.Status         `json:"status"`
	PaymentType     order.PaymentType    `json:"payment_type"`
	TotalAmount     float64              `json:"total_amount"`
	ShippingAddress string               `json:"shipping_address"`
	TransferSlipRef string               `json:"transfer_slip_ref,omitempty"`
	PaymentChecked  bool                 `json:"payment_checked"`
	ReviewStatus    order.ReviewStatus   `json:"review_status,omitempty"`
	ShippingCarrier string               `json:"shipping_carrier,omitempty"`
	TrackingNumber  string               `json:"tracking_number,omitempty"`
	CancelReason    string               `json:"cancel_reason,omitempty"`
	PaymentDueAt    *time.Time           `json:"payment_due_at,omitempty"`
	DeliveredAt     *time.Time           `json:"delivered_at,omitempty"`
	OrderDate       time.Time            `json:"order_date"`
	Lines           []LineResponse       `json:"lines"`
	History         []AuditEntryResponse `json:"history,omitempty"`
}

// SummaryResponse is a lightweight order for listings
type SummaryResponse struct {
	ID            uuid.UUID         `json:"id"`
	InvoiceNumber string            `json:"invoice_number"`
	UserID        uuid.UUID         `json:"user_id"`
	Status        order.Status      `json:"status"`
	PaymentType   order.PaymentType `json:"payment_type"`
	TotalAmount   float64           `json:"total_amount"`
	LineCount     int               `json:"line_count"`
	OrderDate     time.Time         `json:"order_date"`
}

// StatusSummaryResponse counts orders per status for the admin dashboard
type StatusSummaryResponse struct {
	Counts map[order.Status]int64 `json:"counts"`
}

// ToResponse converts a domain order to its response form
func ToResponse(o *order.Order, history []order.AuditEntry) *Response {
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

	var entries []AuditEntryResponse
	for _, e := range history {
		entries = append(entries, AuditEntryResponse{
			Status:    e.Status,
			ActorRole: e.ActorRole,
			CreatedAt: e.CreatedAt,
		})
	}

	return &Response{
		ID:              o.ID,
		InvoiceNumber:   o.InvoiceNumber,
		UserID:          o.UserID,
		Status:          o.Status,
		PaymentType:     o.PaymentType,
		TotalAmount:     o.TotalAmount.InexactFloat64(),
		ShippingAddress: o.ShippingAddress.FullAddress(),
		TransferSlipRef: o.TransferSlipRef,
		PaymentChecked:  o.PaymentChecked,
		ReviewStatus:    o.ReviewStatus,
		ShippingCarrier: o.ShippingCarrier,
		TrackingNumber:  o.TrackingNumber,
		CancelReason:    o.CancelReason,
		PaymentDueAt:    o.PaymentDueAt,
		DeliveredAt:     o.DeliveredAt,
		OrderDate:       o.OrderDate,
		Lines:           lines,
		History:         entries,
	}
}

// ToSummaryResponse converts a domain order to its listing form
func ToSummaryResponse(o *order.Order) SummaryResponse {
	return SummaryResponse{
		ID:            o.ID,
		InvoiceNumber: o.InvoiceNumber,
		UserID:        o.UserID,
		Status:        o.Status,
		PaymentType:   o.PaymentType,
		TotalAmount:   o.TotalAmount.InexactFloat64(),
		LineCount:     o.LineCount(),
		OrderDate:     o.OrderDate,
	}
}
