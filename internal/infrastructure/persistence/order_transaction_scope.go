package persistence

import (
	"context"

	apporder "github.com/buildmart/backend/internal/application/order"
	"github.com/buildmart/backend/internal/domain/inventory"
	"github.com/buildmart/backend/internal/domain/order"
	"gorm.io/gorm"
)

// GormOrderTransactionScope implements the order TransactionScope using
// GORM transactions. A status transition, its audit entry and any stock
// release commit or roll back together.
type GormOrderTransactionScope struct {
	db *gorm.DB
}

// NewGormOrderTransactionScope creates a new GormOrderTransactionScope
func NewGormOrderTransactionScope(db *gorm.DB) *GormOrderTransactionScope {
	return &GormOrderTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error the transaction is rolled back,
// otherwise it is committed.
func (s *GormOrderTransactionScope) Execute(ctx context.Context, fn func(repos apporder.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormOrderRepositories{tx: tx})
	})
}

type gormOrderRepositories struct {
	tx *gorm.DB
}

// Orders returns the order repository scoped to the current transaction
func (r *gormOrderRepositories) Orders() order.Repository {
	return NewGormOrderRepository(r.tx)
}

// Audit returns the audit repository scoped to the current transaction
func (r *gormOrderRepositories) Audit() order.AuditRepository {
	return NewGormAuditRepository(r.tx)
}

// Stock returns the stock repository scoped to the current transaction
func (r *gormOrderRepositories) Stock() inventory.StockItemRepository {
	return NewGormStockItemRepository(r.tx)
}

// Ensure GormOrderTransactionScope implements TransactionScope
var _ apporder.TransactionScope = (*GormOrderTransactionScope)(nil)

// Ensure gormOrderRepositories implements TransactionalRepositories
var _ apporder.TransactionalRepositories = (*gormOrderRepositories)(nil)
