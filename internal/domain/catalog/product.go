package catalog

import (
	"time"

	"github.com/buildmart/backend/internal/domain/shared"
	"github.com/buildmart/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Product represents a construction material in the catalog.
// Product data is read at cart display and checkout time to build
// immutable order line snapshots.
type Product struct {
	shared.BaseAggregateRoot
	SKU             string
	Name            string
	Brand           string
	Unit            string // sale unit, e.g. "bag", "sheet", "m3"
	Price           decimal.Decimal
	DiscountPercent decimal.Decimal
	ImageURL        string
	Enabled         bool
}

// NewProduct creates a new catalog product
func NewProduct(sku, name, brand, unit string, price valueobject.Money) (*Product, error) {
	if sku == "" {
		return nil, shared.NewDomainError("INVALID_SKU", "Product SKU cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if unit == "" {
		return nil, shared.NewDomainError("INVALID_UNIT", "Product unit cannot be empty")
	}
	if price.Amount().IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Product price cannot be negative")
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SKU:               sku,
		Name:              name,
		Brand:             brand,
		Unit:              unit,
		Price:             price.Amount(),
		DiscountPercent:   decimal.Zero,
		Enabled:           true,
	}, nil
}

// SetDiscount sets the discount percentage applied at checkout
func (p *Product) SetDiscount(percent decimal.Decimal) error {
	if percent.IsNegative() || percent.GreaterThan(decimal.NewFromInt(100)) {
		return shared.NewDomainError("INVALID_DISCOUNT", "Discount percent must be between 0 and 100")
	}
	p.DiscountPercent = percent
	p.UpdatedAt = time.Now()
	return nil
}

// SetImageURL sets the product display image
func (p *Product) SetImageURL(url string) {
	p.ImageURL = url
	p.UpdatedAt = time.Now()
}

// Disable removes the product from sale without deleting it
func (p *Product) Disable() {
	p.Enabled = false
	p.UpdatedAt = time.Now()
}

// Enable makes the product sellable again
func (p *Product) Enable() {
	p.Enabled = true
	p.UpdatedAt = time.Now()
}

// PriceMoney returns the list price as Money
func (p *Product) PriceMoney() valueobject.Money {
	return valueobject.NewMoneyTHB(p.Price)
}

// DiscountedUnitPrice returns the effective unit price after discount
func (p *Product) DiscountedUnitPrice() valueobject.Money {
	return p.PriceMoney().ApplyDiscount(p.DiscountPercent)
}
