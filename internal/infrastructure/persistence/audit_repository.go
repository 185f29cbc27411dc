package persistence

import (
	"context"

	"github.com/buildmart/backend/internal/domain/order"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAuditRepository implements order.AuditRepository using GORM.
// The table is append-only; entries are never updated or deleted.
type GormAuditRepository struct {
	db *gorm.DB
}

// NewGormAuditRepository creates a new GormAuditRepository
func NewGormAuditRepository(db *gorm.DB) *GormAuditRepository {
	return &GormAuditRepository{db: db}
}

// Append inserts one history entry
func (r *GormAuditRepository) Append(ctx context.Context, entry *order.AuditEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// HistoryByOrder returns the order's history oldest first
func (r *GormAuditRepository) HistoryByOrder(ctx context.Context, orderID uuid.UUID) ([]order.AuditEntry, error) {
	var entries []order.AuditEntry
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Ensure GormAuditRepository implements AuditRepository
var _ order.AuditRepository = (*GormAuditRepository)(nil)
