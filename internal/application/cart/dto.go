package cart

import (
	"time"

	"github.com/google/uuid"
)

// UpsertLineRequest adds a product to the cart or replaces its quantity
type UpsertLineRequest struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int64     `json:"quantity"`
}

// LineResponse is a cart line joined with product display data.
// Prices and stock here are advisory; checkout re-reads both.
type LineResponse struct {
	ProductID      uuid.UUID `json:"product_id"`
	ProductName    string    `json:"product_name"`
	Brand          string    `json:"brand"`
	Unit           string    `json:"unit"`
	ImageURL       string    `json:"image_url"`
	Quantity       int64     `json:"quantity"`
	UnitPrice      float64   `json:"unit_price"`
	DiscountedUnit float64   `json:"discounted_unit_price"`
	LineSubtotal   float64   `json:"line_subtotal"`
	AvailableStock int64     `json:"available_stock"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// CartResponse is the user's cart with a computed subtotal
type CartResponse struct {
	Lines    []LineResponse `json:"lines"`
	Subtotal float64        `json:"subtotal"`
}
