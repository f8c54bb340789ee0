package repository

import (
	"context"
	"time"

	"github.com/hongaldhruv-del/SalesSavvy/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OrderRepository defines data access for orders and their items.
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, orderID string) (*models.Order, error)
	// FindByIDForUpdate row-locks the order until the surrounding
	// transaction ends.
	FindByIDForUpdate(ctx context.Context, orderID string) (*models.Order, error)
	// MarkSuccess moves a PENDING order to SUCCESS and returns
	// ErrStatusConflict if the order was not PENDING.
	MarkSuccess(ctx context.Context, orderID string, at time.Time) error
	CreateItem(ctx context.Context, item *models.OrderItem) error
	ListByUser(ctx context.Context, userID int64) ([]models.Order, error)
}

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) OrderRepository {
	return &GormOrderRepository{db: db}
}

func (r *GormOrderRepository) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(order).Error
}

func (r *GormOrderRepository) FindByID(ctx context.Context, orderID string) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&order).Error; err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

func (r *GormOrderRepository) FindByIDForUpdate(ctx context.Context, orderID string) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("order_id = ?", orderID).
		First(&order).Error; err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

func (r *GormOrderRepository) MarkSuccess(ctx context.Context, orderID string, at time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("order_id = ? AND status = ?", orderID, models.OrderStatusPending).
		Updates(map[string]interface{}{
			"status":     models.OrderStatusSuccess,
			"updated_at": at,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected != 1 {
		return ErrStatusConflict
	}
	return nil
}

func (r *GormOrderRepository) CreateItem(ctx context.Context, item *models.OrderItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// ListByUser returns the user's orders, newest first, with their items.
func (r *GormOrderRepository) ListByUser(ctx context.Context, userID int64) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}
