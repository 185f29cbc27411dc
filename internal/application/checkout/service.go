package checkout

import (
	"context"
	"errors"
	"time"

	"github.com/buildmart/backend/internal/domain/catalog"
	"github.com/buildmart/backend/internal/domain/customer"
	"github.com/buildmart/backend/internal/domain/order"
	"github.com/buildmart/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service converts a cart into an order. The whole conversion is one
// transaction: every line's stock is reserved under a row lock, the
// order and its first audit entry are written, and the cart is purged.
// Any failure rolls the whole thing back.
type Service struct {
	scope      TransactionScope
	products   catalog.ProductRepository
	addresses  customer.AddressRepository
	paymentDue time.Duration // advisory bank-transfer window
	logger     *zap.Logger
}

// NewService creates a new checkout service
func NewService(
	scope TransactionScope,
	products catalog.ProductRepository,
	addresses customer.AddressRepository,
	paymentDue time.Duration,
	logger *zap.Logger,
) *Service {
	return &Service{
		scope:      scope,
		products:   products,
		addresses:  addresses,
		paymentDue: paymentDue,
		logger:     logger,
	}
}

// Checkout places an order from the user's current cart
func (s *Service) Checkout(ctx context.Context, userID uuid.UUID, req CheckoutRequest) (*OrderResponse, error) {
	if !req.PaymentType.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_TYPE", "Payment type must be bank_transfer or cod")
	}

	addr, err := s.addresses.FindByID(ctx, req.AddressID)
	if err != nil {
		return nil, err
	}
	if addr.UserID != userID {
		return nil, shared.ErrAddressNotOwned
	}
	shipping, err := addr.Snapshot()
	if err != nil {
		return nil, err
	}

	var placed *order.Order
	run := func(repos TransactionalRepositories) error {
		lines, err := repos.CartLines().FindByUser(ctx, userID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return shared.ErrEmptyCart
		}

		invoiceNumber, err := repos.Orders().GenerateInvoiceNumber(ctx)
		if err != nil {
			return err
		}

		o, err := order.NewOrder(userID, invoiceNumber, req.PaymentType, shipping)
		if err != nil {
			return err
		}
		if req.PaymentType == order.PaymentBankTransfer && s.paymentDue > 0 {
			o.SetPaymentDue(time.Now().Add(s.paymentDue))
		}

		for _, cartLine := range lines {
			product, err := s.products.FindByID(ctx, cartLine.ProductID)
			if err != nil {
				return err
			}
			if !product.Enabled {
				return shared.NewDomainError("NOT_FOUND", "Product "+product.Name+" is no longer for sale")
			}

			// Lock the stock row for the rest of the transaction, then
			// reserve. The first shortfall aborts the whole checkout.
			item, err := repos.Stock().FindByProductIDForUpdate(ctx, cartLine.ProductID)
			if err != nil {
				return err
			}
			if err := item.Reserve(cartLine.Quantity, o.ID); err != nil {
				return err
			}
			if err := repos.Stock().Save(ctx, item); err != nil {
				return err
			}

			snapshot, err := order.NewLine(o.ID, product.ID, product.Name, product.Brand,
				product.Unit, product.ImageURL, cartLine.Quantity,
				product.PriceMoney(), product.DiscountPercent)
			if err != nil {
				return err
			}
			o.AddLine(*snapshot)
		}

		if err := repos.Orders().Save(ctx, o); err != nil {
			return err
		}
		if err := repos.Audit().Append(ctx, order.NewAuditEntry(o.ID, o.Status, userID, "customer")); err != nil {
			return err
		}
		if err := repos.CartLines().DeleteByUser(ctx, userID); err != nil {
			return err
		}

		placed = o
		return nil
	}

	// Two checkouts can race on the invoice allocation; the losing
	// transaction rolls back and is retried once with a fresh number.
	err = s.scope.Execute(ctx, run)
	if isConcurrencyConflict(err) {
		s.logger.Warn("conflict while placing order, retrying once",
			zap.String("user_id", userID.String()))
		err = s.scope.Execute(ctx, run)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("order placed",
		zap.String("order_id", placed.ID.String()),
		zap.String("invoice_number", placed.InvoiceNumber),
		zap.String("user_id", userID.String()),
		zap.String("status", placed.Status.String()),
		zap.String("total_amount", placed.TotalAmount.String()))

	return ToOrderResponse(placed), nil
}

func isConcurrencyConflict(err error) bool {
	var domainErr *shared.DomainError
	return errors.As(err, &domainErr) && domainErr.Code == "CONCURRENCY_CONFLICT"
}
