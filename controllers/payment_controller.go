package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/hongaldhruv-del/SalesSavvy/apperrors"
	"github.com/hongaldhruv-del/SalesSavvy/gateway"
	"github.com/hongaldhruv-del/SalesSavvy/middleware"
	"github.com/hongaldhruv-del/SalesSavvy/models"
	"github.com/hongaldhruv-del/SalesSavvy/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// PaymentWorkflow is the part of services.PaymentService the HTTP layer
// drives.
type PaymentWorkflow interface {
	CreateOrder(ctx context.Context, userID int64, totalAmount decimal.Decimal, cartItems []services.CartLine) (string, error)
	VerifyPayment(ctx context.Context, orderID, paymentID, signature string, userID int64) bool
	OrderHistory(ctx context.Context, userID int64) ([]models.Order, error)
}

type PaymentController struct {
	payments PaymentWorkflow
}

func NewPaymentController(payments PaymentWorkflow) *PaymentController {
	return &PaymentController{payments: payments}
}

type createOrderRequest struct {
	TotalAmount decimal.Decimal     `json:"totalAmount"`
	CartItems   []services.CartLine `json:"cartItems"`
}

type verifyPaymentRequest struct {
	OrderID   string `json:"razorpayOrderId" binding:"required"`
	PaymentID string `json:"razorpayPaymentId" binding:"required"`
	Signature string `json:"razorpaySignature" binding:"required"`
}

// CreateOrder handles POST /api/payment/create
func (pc *PaymentController) CreateOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.BadRequest("Invalid request body", err))
		return
	}

	orderID, err := pc.payments.CreateOrder(c.Request.Context(), middleware.GetUserID(c), req.TotalAmount, req.CartItems)
	if err != nil {
		var gwErr *gateway.Error
		switch {
		case errors.Is(err, services.ErrInvalidRequest):
			_ = c.Error(apperrors.BadRequest(err.Error(), err))
		case errors.As(err, &gwErr):
			_ = c.Error(apperrors.BadGateway("Payment gateway unavailable", err))
		default:
			_ = c.Error(apperrors.Internal("Failed to create order", err))
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"orderId": orderID})
}

// VerifyPayment handles POST /api/payment/verify
func (pc *PaymentController) VerifyPayment(c *gin.Context) {
	var req verifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.BadRequest("razorpayOrderId, razorpayPaymentId and razorpaySignature are required", err))
		return
	}

	if !pc.payments.VerifyPayment(c.Request.Context(), req.OrderID, req.PaymentID, req.Signature, middleware.GetUserID(c)) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Payment verification failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Payment verified successfully"})
}

// ListOrders handles GET /api/orders
func (pc *PaymentController) ListOrders(c *gin.Context) {
	orders, err := pc.payments.OrderHistory(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		if errors.Is(err, services.ErrInvalidRequest) {
			_ = c.Error(apperrors.BadRequest(err.Error(), err))
			return
		}
		_ = c.Error(apperrors.Internal("Failed to fetch orders", err))
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}
