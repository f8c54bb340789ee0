package services

import (
	"context"
	"encoding/json"
	"fmt"

	aws_pkg "github.com/hongaldhruv-del/SalesSavvy/pkg/aws"
	"github.com/hongaldhruv-del/SalesSavvy/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ProductView is a catalog product as served to clients.
type ProductView struct {
	ProductID   int64           `json:"productId"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Images      []string        `json:"images"`
	ImageURL    string          `json:"imageUrl,omitempty"`
}

type CatalogService struct {
	products repository.ProductRepository
	cache    CatalogCache
	metrics  aws_pkg.MetricsRecorder
	logger   *zap.Logger
}

// NewCatalogService accepts a nil cache; listings are then always read
// from the database.
func NewCatalogService(products repository.ProductRepository, cache CatalogCache, metrics aws_pkg.MetricsRecorder, logger *zap.Logger) *CatalogService {
	return &CatalogService{products: products, cache: cache, metrics: metrics, logger: logger}
}

// ListProducts returns every product, or only those in the named category,
// each with its image URLs. An unknown category yields an empty list.
func (s *CatalogService) ListProducts(ctx context.Context, category string) ([]ProductView, error) {
	key := catalogCacheKey(category)
	if s.cache != nil {
		if data, ok := s.cache.Get(ctx, key); ok {
			var cached []ProductView
			if err := json.Unmarshal(data, &cached); err == nil {
				s.count(ctx, aws_pkg.MetricCacheHits)
				return cached, nil
			}
			s.logger.Warn("Discarding malformed catalog cache entry", zap.String("key", key))
		}
		s.count(ctx, aws_pkg.MetricCacheMisses)
	}

	products, err := s.products.FindByCategory(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	ids := make([]int64, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ProductID)
	}
	images, err := s.products.FindImageURLs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list product images: %w", err)
	}

	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		v := ProductView{
			ProductID:   p.ProductID,
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price,
			Stock:       p.Stock,
			Images:      images[p.ProductID],
		}
		if v.Images == nil {
			v.Images = []string{}
		}
		if len(v.Images) > 0 {
			v.ImageURL = v.Images[0]
		}
		views = append(views, v)
	}

	if s.cache != nil {
		if data, err := json.Marshal(views); err == nil {
			s.cache.Set(ctx, key, data, CatalogCacheTTL)
		}
	}
	return views, nil
}

func (s *CatalogService) count(ctx context.Context, metric string) {
	if s.metrics == nil || !s.metrics.IsEnabled() {
		return
	}
	_ = s.metrics.RecordCount(ctx, metric, map[string]string{"Cache": "catalog"})
}
