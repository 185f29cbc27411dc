package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/buildmart/backend/internal/domain/cart"
	"github.com/buildmart/backend/internal/domain/catalog"
	"github.com/buildmart/backend/internal/domain/inventory"
	"github.com/buildmart/backend/internal/domain/shared"
	"github.com/buildmart/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service manages the user's cart
type Service struct {
	lines    cart.CartLineRepository
	products catalog.ProductRepository
	stock    inventory.StockItemRepository
	logger   *zap.Logger
}

// NewService creates a new cart service
func NewService(
	lines cart.CartLineRepository,
	products catalog.ProductRepository,
	stock inventory.StockItemRepository,
	logger *zap.Logger,
) *Service {
	return &Service{
		lines:    lines,
		products: products,
		stock:    stock,
		logger:   logger,
	}
}

// UpsertLine adds a product to the cart or replaces the quantity of an
// existing line. The stock check is advisory; the authoritative check
// happens under a row lock at checkout.
func (s *Service) UpsertLine(ctx context.Context, userID uuid.UUID, req UpsertLineRequest) error {
	if req.Quantity < 1 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}

	product, err := s.products.FindByID(ctx, req.ProductID)
	if err != nil {
		return err
	}
	if !product.Enabled {
		return shared.ErrNotFound
	}

	item, err := s.stock.FindByProductID(ctx, req.ProductID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return err
	}
	available := int64(0)
	if item != nil {
		available = item.AvailableQuantity
	}
	if req.Quantity > available {
		return shared.NewDomainError("EXCEEDS_STOCK",
			fmt.Sprintf("Only %d units of %s available", available, product.Name))
	}

	existing, err := s.lines.FindByUserAndProduct(ctx, userID, req.ProductID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return err
	}

	if existing != nil {
		if err := existing.SetQuantity(req.Quantity); err != nil {
			return err
		}
		return s.lines.Save(ctx, existing)
	}

	line, err := cart.NewCartLine(userID, req.ProductID, req.Quantity)
	if err != nil {
		return err
	}

	s.logger.Debug("cart line added",
		zap.String("user_id", userID.String()),
		zap.String("product_id", req.ProductID.String()),
		zap.Int64("quantity", req.Quantity))

	return s.lines.Save(ctx, line)
}

// RemoveLine deletes a product from the cart. Removing a product that
// is not in the cart succeeds without effect.
func (s *Service) RemoveLine(ctx context.Context, userID, productID uuid.UUID) error {
	return s.lines.DeleteByUserAndProduct(ctx, userID, productID)
}

// List returns the cart joined with current product display data
func (s *Service) List(ctx context.Context, userID uuid.UUID) (*CartResponse, error) {
	lines, err := s.lines.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := &CartResponse{Lines: make([]LineResponse, 0, len(lines))}
	if len(lines) == 0 {
		return resp, nil
	}

	productIDs := make([]uuid.UUID, len(lines))
	for i, l := range lines {
		productIDs[i] = l.ProductID
	}
	products, err := s.products.FindByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*catalog.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	subtotal := valueobject.ZeroTHB()
	for _, l := range lines {
		product, ok := byID[l.ProductID]
		if !ok || !product.Enabled {
			// Product withdrawn since it was added; the line is shown
			// without it at the storefront, so skip it here.
			continue
		}

		available := int64(0)
		if item, err := s.stock.FindByProductID(ctx, l.ProductID); err == nil {
			available = item.AvailableQuantity
		} else if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}

		discounted := product.DiscountedUnitPrice()
		lineTotal := discounted.MultiplyByInt(l.Quantity).Round(2)
		subtotal = subtotal.MustAdd(lineTotal)

		resp.Lines = append(resp.Lines, LineResponse{
			ProductID:      l.ProductID,
			ProductName:    product.Name,
			Brand:          product.Brand,
			Unit:           product.Unit,
			ImageURL:       product.ImageURL,
			Quantity:       l.Quantity,
			UnitPrice:      product.PriceMoney().Float64(),
			DiscountedUnit: discounted.Float64(),
			LineSubtotal:   lineTotal.Float64(),
			AvailableStock: available,
			UpdatedAt:      l.UpdatedAt,
		})
	}
	resp.Subtotal = subtotal.Float64()

	return resp, nil
}
