package controllers

import (
	"context"
	"net/http"

	"github.com/hongaldhruv-del/SalesSavvy/apperrors"
	"github.com/hongaldhruv-del/SalesSavvy/middleware"
	"github.com/hongaldhruv-del/SalesSavvy/services"

	"github.com/gin-gonic/gin"
)

type Catalog interface {
	ListProducts(ctx context.Context, category string) ([]services.ProductView, error)
}

type ProductController struct {
	catalog Catalog
}

func NewProductController(catalog Catalog) *ProductController {
	return &ProductController{catalog: catalog}
}

// GetProducts handles GET /api/products?category=
func (pc *ProductController) GetProducts(c *gin.Context) {
	products, err := pc.catalog.ListProducts(c.Request.Context(), c.Query("category"))
	if err != nil {
		_ = c.Error(apperrors.Internal("Failed to fetch products", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user":     gin.H{"id": middleware.GetUserID(c)},
		"products": products,
	})
}

// GetPublicProducts handles GET /api/products/public?category=
func (pc *ProductController) GetPublicProducts(c *gin.Context) {
	products, err := pc.catalog.ListProducts(c.Request.Context(), c.Query("category"))
	if err != nil {
		_ = c.Error(apperrors.Internal("Failed to fetch products", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}
