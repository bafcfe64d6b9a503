package models

import (
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusPaid      OrderStatus = "PAID"
	StatusShipped   OrderStatus = "SHIPPED"
	StatusDelivered OrderStatus = "DELIVERED"
	StatusCompleted OrderStatus = "COMPLETED"
)

// statusTransitions lists, for each status, the statuses it may move to.
// PENDING deliberately allows skipping straight to any later state so an
// admin can fast-forward orders settled out of band. COMPLETED is terminal.
var statusTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:   {StatusPaid, StatusShipped, StatusDelivered, StatusCompleted},
	StatusPaid:      {StatusShipped, StatusDelivered, StatusCompleted},
	StatusShipped:   {StatusDelivered, StatusCompleted},
	StatusDelivered: {StatusCompleted},
	StatusCompleted: {},
}

// ParseStatus validates a raw status string.
func ParseStatus(raw string) (OrderStatus, error) {
	s := OrderStatus(raw)
	if _, ok := statusTransitions[s]; !ok {
		return "", fmt.Errorf("unknown order status %q", raw)
	}
	return s, nil
}

// CanTransition reports whether an order may move from one status to another.
func CanTransition(from, to OrderStatus) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Order is a placed order. Total is the sum of line subtotals captured at
// creation time; later price changes do not affect it.
type Order struct {
	gorm.Model
	UserID          uint            `gorm:"not null;index"       json:"user_id"`
	User            *User           `gorm:"foreignKey:UserID"    json:"-"`
	Status          OrderStatus     `gorm:"size:20;not null;default:PENDING;index" json:"status"`
	Total           decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`
	DeliveryAddress string          `gorm:"type:text"            json:"delivery_address"`
	PaymentProofURL string          `gorm:"size:1024"            json:"payment_proof_url,omitempty"`
	Items           []OrderItem     `gorm:"constraint:OnDelete:CASCADE" json:"items"`
}

// OrderItem is a single line of an order. Price is the unit price at the
// moment the order was placed.
type OrderItem struct {
	gorm.Model
	OrderID   uint            `gorm:"not null;index"      json:"order_id"`
	ProductID uint            `gorm:"not null;index"      json:"product_id"`
	Product   *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity  int             `gorm:"not null"            json:"quantity"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
}

// Subtotal is quantity times the captured unit price.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
