package order

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AuditEntry is one row of the append-only order history. Every
// successful transition, including order creation, appends exactly
// one entry in the same transaction as the order mutation. The
// history is for display only; transition legality is decided by the
// order's current status alone.
type AuditEntry struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Status    Status
	ActorID   uuid.UUID `gorm:"type:uuid"`
	ActorRole string
	CreatedAt time.Time
}

// TableName returns the table name for GORM
func (AuditEntry) TableName() string {
	return "order_audit_entries"
}

// NewAuditEntry records who moved the order into the given status
func NewAuditEntry(orderID uuid.UUID, status Status, actorID uuid.UUID, actorRole string) *AuditEntry {
	return &AuditEntry{
		ID:        uuid.New(),
		OrderID:   orderID,
		Status:    status,
		ActorID:   actorID,
		ActorRole: actorRole,
		CreatedAt: time.Now(),
	}
}

// AuditRepository defines persistence for the order history
type AuditRepository interface {
	Append(ctx context.Context, entry *AuditEntry) error
	// HistoryByOrder returns entries ordered by creation time ascending.
	HistoryByOrder(ctx context.Context, orderID uuid.UUID) ([]AuditEntry, error)
}
