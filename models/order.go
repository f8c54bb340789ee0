package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

// An order only ever moves from PENDING to SUCCESS.
const (
	OrderStatusPending OrderStatus = "PENDING"
	OrderStatusSuccess OrderStatus = "SUCCESS"
)

// Order is keyed by the gateway order id, so a gateway order maps to at most
// one local row.
type Order struct {
	OrderID     string          `gorm:"column:order_id;type:varchar(64);primaryKey" json:"order_id"`
	UserID      int64           `gorm:"not null;index" json:"user_id"`
	TotalAmount decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_amount"`
	Currency    string          `gorm:"type:varchar(3);not null;default:'INR'" json:"currency"`
	Status      OrderStatus     `gorm:"type:varchar(16);not null;index" json:"status"`
	CreatedAt   time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt   *time.Time      `gorm:"autoUpdateTime:false" json:"updated_at,omitempty"`
	Items       []OrderItem     `gorm:"foreignKey:OrderID;references:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// OrderItem is a price snapshot taken when the payment was verified.
type OrderItem struct {
	ID           int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID      string          `gorm:"type:varchar(64);not null;index" json:"order_id"`
	ProductID    int64           `gorm:"not null" json:"product_id"`
	Quantity     int             `gorm:"not null;check:quantity > 0" json:"quantity"`
	PricePerUnit decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price_per_unit"`
	TotalPrice   decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_price"`
}

// NewOrderItem snapshots price × quantity for orderID.
func NewOrderItem(orderID string, productID int64, quantity int, pricePerUnit decimal.Decimal) OrderItem {
	return OrderItem{
		OrderID:      orderID,
		ProductID:    productID,
		Quantity:     quantity,
		PricePerUnit: pricePerUnit,
		TotalPrice:   pricePerUnit.Mul(decimal.NewFromInt(int64(quantity))),
	}
}

// PaymentEvent is published after a payment has been reconciled.
type PaymentEvent struct {
	Type      string          `json:"type"`
	OrderID   string          `json:"order_id"`
	PaymentID string          `json:"payment_id"`
	UserID    int64           `json:"user_id"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	ItemCount int             `json:"item_count"`
	Timestamp time.Time       `json:"timestamp"`
}
