package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hongaldhruv-del/SalesSavvy/models"
	aws_pkg "github.com/hongaldhruv-del/SalesSavvy/pkg/aws"
	"github.com/hongaldhruv-del/SalesSavvy/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const EventPaymentSucceeded = "payment_succeeded"

// GatewayClient creates orders on the remote payment gateway.
type GatewayClient interface {
	CreateRemoteOrder(ctx context.Context, amount decimal.Decimal, currency string) (string, error)
}

// SignatureVerifier checks a gateway payment signature.
type SignatureVerifier func(orderID, paymentID, signature, secret string) bool

// CartLine is what the client believes it is paying for. It is only
// validated, never stored: order items come from the cart at verification.
type CartLine struct {
	ProductID int64           `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

type PaymentConfig struct {
	KeySecret      string
	Currency       string
	EventsTopicArn string
}

type PaymentService struct {
	store       repository.Store
	gateway     GatewayClient
	verify      SignatureVerifier
	secret      string
	currency    string
	snsClient   aws_pkg.SNSPublisher
	snsTopicArn string
	metrics     aws_pkg.MetricsRecorder
	logger      *zap.Logger
	now         func() time.Time
}

func NewPaymentService(
	store repository.Store,
	gateway GatewayClient,
	verify SignatureVerifier,
	cfg PaymentConfig,
	snsClient aws_pkg.SNSPublisher,
	metrics aws_pkg.MetricsRecorder,
	logger *zap.Logger,
) *PaymentService {
	if cfg.Currency == "" {
		cfg.Currency = "INR"
	}
	return &PaymentService{
		store:       store,
		gateway:     gateway,
		verify:      verify,
		secret:      cfg.KeySecret,
		currency:    cfg.Currency,
		snsClient:   snsClient,
		snsTopicArn: cfg.EventsTopicArn,
		metrics:     metrics,
		logger:      logger,
		now:         time.Now,
	}
}

// CreateOrder registers the payment with the gateway and records a PENDING
// order under the returned gateway order id. Gateway failures come back as
// the gateway's own error; storage failures as *PersistenceError.
func (s *PaymentService) CreateOrder(ctx context.Context, userID int64, totalAmount decimal.Decimal, cartItems []CartLine) (string, error) {
	switch {
	case userID <= 0:
		return "", invalid("user id must be positive")
	case !totalAmount.IsPositive():
		return "", invalid("total amount must be positive")
	case len(cartItems) == 0:
		return "", invalid("cart is empty")
	}

	orderID, err := s.gateway.CreateRemoteOrder(ctx, totalAmount, s.currency)
	if err != nil {
		s.logger.Error("Gateway order creation failed",
			zap.Int64("user_id", userID),
			zap.String("amount", totalAmount.StringFixed(2)),
			zap.Error(err))
		return "", err
	}

	order := &models.Order{
		OrderID:     orderID,
		UserID:      userID,
		TotalAmount: totalAmount,
		Currency:    s.currency,
		Status:      models.OrderStatusPending,
		CreatedAt:   s.now(),
	}

	// The gateway order already exists; a client hanging up must not stop
	// the local row from being written.
	dbCtx := context.WithoutCancel(ctx)
	err = s.store.WithinTransaction(dbCtx, func(tx repository.Store) error {
		return tx.Orders().Create(dbCtx, order)
	})
	if err != nil {
		s.logger.Error("Failed to persist order",
			zap.String("order_id", orderID),
			zap.Int64("user_id", userID),
			zap.Error(err))
		return "", &PersistenceError{Op: "create order", Err: err}
	}

	s.count(ctx, aws_pkg.MetricOrdersCreated, nil)
	s.logger.Info("Order created",
		zap.String("order_id", orderID),
		zap.Int64("user_id", userID),
		zap.String("amount", totalAmount.StringFixed(2)),
		zap.Int("cart_lines", len(cartItems)))
	return orderID, nil
}

// VerifyPayment reports whether the order is paid. Every failure,
// including a forged signature or an unknown order, is false.
func (s *PaymentService) VerifyPayment(ctx context.Context, orderID, paymentID, signature string, userID int64) bool {
	result := s.Reconcile(ctx, orderID, paymentID, signature, userID)

	fields := []zap.Field{
		zap.String("order_id", orderID),
		zap.String("payment_id", paymentID),
		zap.Int64("user_id", userID),
		zap.Stringer("outcome", result.Outcome),
	}
	if result.OK() {
		s.logger.Info("Payment verified", append(fields, zap.Int("items_created", result.ItemsCreated))...)
		return true
	}

	if result.Err != nil {
		fields = append(fields, zap.Error(result.Err))
	}
	s.logger.Warn("Payment verification failed", fields...)
	s.count(ctx, aws_pkg.MetricPaymentFailed, map[string]string{"Outcome": result.Outcome.String()})
	return false
}

// Reconcile moves the order to SUCCESS and snapshots the user's cart into
// order items, all in one transaction. A second call for an already paid
// order succeeds without touching anything.
func (s *PaymentService) Reconcile(ctx context.Context, orderID, paymentID, signature string, userID int64) VerificationResult {
	if orderID == "" || paymentID == "" || signature == "" || userID <= 0 {
		return VerificationResult{Outcome: OutcomeInvalidRequest, Err: invalid("order id, payment id, signature and user are required")}
	}
	if !s.verify(orderID, paymentID, signature, s.secret) {
		return VerificationResult{Outcome: OutcomeSignatureInvalid}
	}

	// Once the signature is good the transition runs to completion even if
	// the caller goes away.
	ctx = context.WithoutCancel(ctx)

	var (
		order   *models.Order
		already bool
		created int
	)
	err := s.store.WithinTransaction(ctx, func(tx repository.Store) error {
		var err error
		order, err = tx.Orders().FindByIDForUpdate(ctx, orderID)
		if errors.Is(err, repository.ErrNotFound) {
			return ErrOrderNotFound
		}
		if err != nil {
			return &PersistenceError{Op: "lock order", Err: err}
		}
		if order.UserID != userID {
			return ErrOrderOwnerMismatch
		}
		if order.Status == models.OrderStatusSuccess {
			already = true
			return nil
		}

		now := s.now()
		if err := tx.Orders().MarkSuccess(ctx, orderID, now); err != nil {
			return &PersistenceError{Op: "mark order paid", Err: err}
		}
		order.Status = models.OrderStatusSuccess
		order.UpdatedAt = &now

		cart, err := tx.Carts().FindCartItemsWithProductDetails(ctx, userID)
		if err != nil {
			return &PersistenceError{Op: "read cart", Err: err}
		}
		if len(cart) == 0 {
			s.logger.Warn("Paid order has an empty cart",
				zap.String("order_id", orderID),
				zap.Int64("user_id", userID))
		}

		for _, line := range cart {
			if line.Quantity <= 0 {
				return &PersistenceError{Op: "create order item", Err: fmt.Errorf("cart line %d has quantity %d", line.ID, line.Quantity)}
			}
			item := models.NewOrderItem(orderID, line.ProductID, line.Quantity, line.Product.Price)
			if err := tx.Orders().CreateItem(ctx, &item); err != nil {
				return &PersistenceError{Op: "create order item", Err: err}
			}
			created++
		}

		if _, err := tx.Carts().DeleteAllByUserID(ctx, userID); err != nil {
			return &PersistenceError{Op: "clear cart", Err: err}
		}
		return nil
	})

	switch {
	case errors.Is(err, ErrOrderNotFound):
		return VerificationResult{Outcome: OutcomeOrderNotFound, Err: err}
	case errors.Is(err, ErrOrderOwnerMismatch):
		return VerificationResult{Outcome: OutcomeOwnerMismatch, Err: err}
	case err != nil:
		var perr *PersistenceError
		if !errors.As(err, &perr) {
			err = &PersistenceError{Op: "commit", Err: err}
		}
		return VerificationResult{Outcome: OutcomePersistenceFailed, Err: err}
	case already:
		return VerificationResult{Outcome: OutcomeAlreadyVerified}
	}

	s.count(ctx, aws_pkg.MetricPaymentSucceeded, nil)
	s.publishPaid(ctx, order, paymentID, created)
	return VerificationResult{Outcome: OutcomeVerified, ItemsCreated: created}
}

// OrderHistory lists the user's orders, newest first.
func (s *PaymentService) OrderHistory(ctx context.Context, userID int64) ([]models.Order, error) {
	if userID <= 0 {
		return nil, invalid("user id must be positive")
	}
	orders, err := s.store.Orders().ListByUser(ctx, userID)
	if err != nil {
		return nil, &PersistenceError{Op: "list orders", Err: err}
	}
	return orders, nil
}

// publishPaid is best-effort; the payment is already committed.
func (s *PaymentService) publishPaid(ctx context.Context, order *models.Order, paymentID string, items int) {
	if s.snsClient == nil || s.snsTopicArn == "" {
		return
	}

	evt := models.PaymentEvent{
		Type:      EventPaymentSucceeded,
		OrderID:   order.OrderID,
		PaymentID: paymentID,
		UserID:    order.UserID,
		Amount:    order.TotalAmount,
		Currency:  order.Currency,
		ItemCount: items,
		Timestamp: s.now().UTC(),
	}
	body, err := json.Marshal(evt)
	if err != nil {
		s.logger.Warn("Failed to marshal payment event", zap.Error(err))
		return
	}
	if err := s.snsClient.Publish(ctx, s.snsTopicArn, body); err != nil {
		s.logger.Warn("Failed to publish payment event",
			zap.String("order_id", order.OrderID),
			zap.Error(err))
	}
}

func (s *PaymentService) count(ctx context.Context, metric string, dims map[string]string) {
	if s.metrics == nil || !s.metrics.IsEnabled() {
		return
	}
	if err := s.metrics.RecordCount(ctx, metric, dims); err != nil {
		s.logger.Debug("Failed to record metric", zap.String("metric", metric), zap.Error(err))
	}
}
