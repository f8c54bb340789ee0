package repository

import (
	"context"

	"github.com/hongaldhruv-del/SalesSavvy/models"

	"gorm.io/gorm"
)

// ProductRepository is the read side of the catalog.
type ProductRepository interface {
	// FindByCategory returns every product when categoryName is empty.
	FindByCategory(ctx context.Context, categoryName string) ([]models.Product, error)
	// FindImageURLs groups image URLs by product id, in insertion order.
	FindImageURLs(ctx context.Context, productIDs []int64) (map[int64][]string, error)
}

type GormProductRepository struct {
	db *gorm.DB
}

func NewGormProductRepository(db *gorm.DB) ProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) FindByCategory(ctx context.Context, categoryName string) ([]models.Product, error) {
	var products []models.Product
	query := r.db.WithContext(ctx).Model(&models.Product{})
	if categoryName != "" {
		query = query.
			Joins("JOIN categories ON categories.category_id = products.category_id").
			Where("categories.category_name = ?", categoryName)
	}
	if err := query.Order("products.product_id").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *GormProductRepository) FindImageURLs(ctx context.Context, productIDs []int64) (map[int64][]string, error) {
	out := make(map[int64][]string, len(productIDs))
	if len(productIDs) == 0 {
		return out, nil
	}

	var images []models.ProductImage
	if err := r.db.WithContext(ctx).
		Where("product_id IN ?", productIDs).
		Order("image_id").
		Find(&images).Error; err != nil {
		return nil, err
	}
	for _, img := range images {
		out[img.ProductID] = append(out[img.ProductID], img.ImageURL)
	}
	return out, nil
}
