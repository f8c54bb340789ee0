package repository

import (
	"context"

	"github.com/hongaldhruv-del/SalesSavvy/models"

	"gorm.io/gorm"
)

type CartRepository interface {
	// FindCartItemsWithProductDetails returns the user's cart lines joined
	// with their product so Product.Price is the live catalog price.
	FindCartItemsWithProductDetails(ctx context.Context, userID int64) ([]models.CartItem, error)
	DeleteAllByUserID(ctx context.Context, userID int64) (int64, error)
}

type GormCartRepository struct {
	db *gorm.DB
}

func NewGormCartRepository(db *gorm.DB) CartRepository {
	return &GormCartRepository{db: db}
}

func (r *GormCartRepository) FindCartItemsWithProductDetails(ctx context.Context, userID int64) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.db.WithContext(ctx).
		InnerJoins("Product").
		Where("cart_items.user_id = ?", userID).
		Order("cart_items.id").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormCartRepository) DeleteAllByUserID(ctx context.Context, userID int64) (int64, error) {
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.CartItem{})
	return result.RowsAffected, result.Error
}
