package persistence

import (
	"context"
	"errors"

	"github.com/buildmart/backend/internal/domain/cart"
	"github.com/buildmart/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCartLineRepository implements CartLineRepository using GORM
type GormCartLineRepository struct {
	db *gorm.DB
}

// NewGormCartLineRepository creates a new GormCartLineRepository
func NewGormCartLineRepository(db *gorm.DB) *GormCartLineRepository {
	return &GormCartLineRepository{db: db}
}

// FindByUser returns a user's cart lines, oldest first
func (r *GormCartLineRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]cart.CartLine, error) {
	var lines []cart.CartLine
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}

// FindByUserAndProduct finds the cart line for one product
func (r *GormCartLineRepository) FindByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (*cart.CartLine, error) {
	var line cart.CartLine
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&line).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &line, nil
}

// Save creates or updates a cart line
func (r *GormCartLineRepository) Save(ctx context.Context, line *cart.CartLine) error {
	return r.db.WithContext(ctx).Save(line).Error
}

// DeleteByUserAndProduct removes one line. Removing a line that does
// not exist is not an error.
func (r *GormCartLineRepository) DeleteByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&cart.CartLine{}).Error
}

// DeleteByUser purges the user's whole cart
func (r *GormCartLineRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&cart.CartLine{}).Error
}

// Ensure GormCartLineRepository implements CartLineRepository
var _ cart.CartLineRepository = (*GormCartLineRepository)(nil)
