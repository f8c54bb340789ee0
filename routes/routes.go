package routes

import (
	"github.com/hongaldhruv-del/SalesSavvy/controllers"
	"github.com/hongaldhruv-del/SalesSavvy/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the catalog, payment and order endpoints under /api.
func RegisterRoutes(r *gin.Engine, pc *controllers.PaymentController, prc *controllers.ProductController) {
	api := r.Group("/api")

	// Public: landing page catalog
	api.GET("/products/public", prc.GetPublicProducts)

	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware())

	authed.GET("/products", prc.GetProducts)

	payment := authed.Group("/payment")
	payment.POST("/create", pc.CreateOrder)
	payment.POST("/verify", pc.VerifyPayment)

	authed.GET("/orders", pc.ListOrders)
}
