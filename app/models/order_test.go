package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	allowed := []struct{ from, to OrderStatus }{
		// PENDING may fast-forward to any later state
		{StatusPending, StatusPaid},
		{StatusPending, StatusShipped},
		{StatusPending, StatusDelivered},
		{StatusPending, StatusCompleted},
		{StatusPaid, StatusShipped},
		{StatusPaid, StatusDelivered},
		{StatusPaid, StatusCompleted},
		{StatusShipped, StatusDelivered},
		{StatusShipped, StatusCompleted},
		{StatusDelivered, StatusCompleted},
	}
	for _, tc := range allowed {
		assert.True(t, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}

	denied := []struct{ from, to OrderStatus }{
		{StatusPaid, StatusPending},
		{StatusShipped, StatusPaid},
		{StatusShipped, StatusPending},
		{StatusDelivered, StatusShipped},
		{StatusCompleted, StatusDelivered},
		{StatusCompleted, StatusPending},
		{StatusPending, StatusPending},
		{StatusPaid, StatusPaid},
	}
	for _, tc := range denied {
		assert.False(t, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestParseStatus(t *testing.T) {
	for _, raw := range []string{"PENDING", "PAID", "SHIPPED", "DELIVERED", "COMPLETED"} {
		status, err := ParseStatus(raw)
		require.NoError(t, err)
		assert.Equal(t, OrderStatus(raw), status)
	}

	for _, raw := range []string{"", "pending", "REFUNDED", "Paid"} {
		_, err := ParseStatus(raw)
		assert.Error(t, err, raw)
	}
}

func TestOrderItemSubtotal(t *testing.T) {
	item := OrderItem{
		Quantity: 3,
		Price:    decimal.RequireFromString("79.99"),
	}
	assert.Equal(t, "239.97", item.Subtotal().StringFixed(2))
}
