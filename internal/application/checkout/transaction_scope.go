package checkout

import (
	"context"

	"github.com/buildmart/backend/internal/domain/cart"
	"github.com/buildmart/backend/internal/domain/inventory"
	"github.com/buildmart/backend/internal/domain/order"
)

// TransactionScope runs checkout work inside one database transaction.
// Stock reservations, the order insert, the audit entry and the cart
// purge commit or roll back together.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error the transaction is rolled back,
	// otherwise it is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes the repositories participating in
// a checkout transaction. All of them share the same underlying
// database transaction.
type TransactionalRepositories interface {
	Orders() order.Repository
	Audit() order.AuditRepository
	Stock() inventory.StockItemRepository
	CartLines() cart.CartLineRepository
}

// NoOpTransactionScope runs the function without a real transaction.
// Used in tests with in-memory repositories.
type NoOpTransactionScope struct {
	orders    order.Repository
	audit     order.AuditRepository
	stock     inventory.StockItemRepository
	cartLines cart.CartLineRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given repositories
func NewNoOpTransactionScope(
	orders order.Repository,
	audit order.AuditRepository,
	stock inventory.StockItemRepository,
	cartLines cart.CartLineRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		orders:    orders,
		audit:     audit,
		stock:     stock,
		cartLines: cartLines,
	}
}

// Execute runs the function directly
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Orders returns the order repository
func (s *NoOpTransactionScope) Orders() order.Repository { return s.orders }

// Audit returns the audit repository
func (s *NoOpTransactionScope) Audit() order.AuditRepository { return s.audit }

// Stock returns the stock repository
func (s *NoOpTransactionScope) Stock() inventory.StockItemRepository { return s.stock }

// CartLines returns the cart line repository
func (s *NoOpTransactionScope) CartLines() cart.CartLineRepository { return s.cartLines }

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
