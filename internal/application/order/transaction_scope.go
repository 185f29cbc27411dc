package order

import (
	"context"

	"github.com/buildmart/backend/internal/domain/inventory"
	"github.com/buildmart/backend/internal/domain/order"
)

// TransactionScope runs a status transition inside one database
// transaction. The optimistic-lock save, the audit entry and any stock
// release commit or roll back together.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error the transaction is rolled back,
	// otherwise it is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes the repositories participating in
// an order transition transaction.
type TransactionalRepositories interface {
	Orders() order.Repository
	Audit() order.AuditRepository
	Stock() inventory.StockItemRepository
}

// NoOpTransactionScope runs the function without a real transaction.
// Used in tests with in-memory repositories.
type NoOpTransactionScope struct {
	orders order.Repository
	audit  order.AuditRepository
	stock  inventory.StockItemRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given repositories
func NewNoOpTransactionScope(
	orders order.Repository,
	audit order.AuditRepository,
	stock inventory.StockItemRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{orders: orders, audit: audit, stock: stock}
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

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
