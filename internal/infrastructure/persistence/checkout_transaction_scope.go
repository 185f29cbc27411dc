package persistence

import (
	"context"

	appcheckout "github.com/buildmart/backend/internal/application/checkout"
	"github.com/buildmart/backend/internal/domain/cart"
	"github.com/buildmart/backend/internal/domain/inventory"
	"github.com/buildmart/backend/internal/domain/order"
	"gorm.io/gorm"
)

// GormCheckoutTransactionScope implements the checkout TransactionScope
// using GORM transactions. All repositories handed to the callback are
// bound to the same transaction.
type GormCheckoutTransactionScope struct {
	db *gorm.DB
}

// NewGormCheckoutTransactionScope creates a new GormCheckoutTransactionScope
func NewGormCheckoutTransactionScope(db *gorm.DB) *GormCheckoutTransactionScope {
	return &GormCheckoutTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error the transaction is rolled back,
// otherwise it is committed.
func (s *GormCheckoutTransactionScope) Execute(ctx context.Context, fn func(repos appcheckout.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormCheckoutRepositories{tx: tx})
	})
}

type gormCheckoutRepositories struct {
	tx *gorm.DB
}

// Orders returns the order repository scoped to the current transaction
func (r *gormCheckoutRepositories) Orders() order.Repository {
	return NewGormOrderRepository(r.tx)
}

// Audit returns the audit repository scoped to the current transaction
func (r *gormCheckoutRepositories) Audit() order.AuditRepository {
	return NewGormAuditRepository(r.tx)
}

// Stock returns the stock repository scoped to the current transaction
func (r *gormCheckoutRepositories) Stock() inventory.StockItemRepository {
	return NewGormStockItemRepository(r.tx)
}

// CartLines returns the cart line repository scoped to the current transaction
func (r *gormCheckoutRepositories) CartLines() cart.CartLineRepository {
	return NewGormCartLineRepository(r.tx)
}

// Ensure GormCheckoutTransactionScope implements TransactionScope
var _ appcheckout.TransactionScope = (*GormCheckoutTransactionScope)(nil)

// Ensure gormCheckoutRepositories implements TransactionalRepositories
var _ appcheckout.TransactionalRepositories = (*gormCheckoutRepositories)(nil)
