package jobs

import (
	"fmt"
	"strings"

	"github.com/Wege0921/prodev-be-ecommerce/app/models"
	"github.com/Wege0921/prodev-be-ecommerce/pkg/telegram"
)

// OrderNotification tells the store operator about a freshly placed order.
// Dispatched after the order transaction commits, never before.
type OrderNotification struct {
	OrderID uint `json:"order_id"`
}

func (j *OrderNotification) MaxAttempts() int { return 5 }

func (j *OrderNotification) Handle() error {
	var order models.Order
	err := conn().Preload("Items").Preload("Items.Product").Preload("User").
		First(&order, j.OrderID).Error
	if err != nil {
		return fmt.Errorf("load order %d: %w", j.OrderID, err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "New order #%d\n", order.ID)
	if order.User != nil {
		fmt.Fprintf(&b, "Customer: %s (%s)\n", order.User.Name, order.User.Phone)
	}
	for _, item := range order.Items {
		name := fmt.Sprintf("product %d", item.ProductID)
		if item.Product != nil {
			name = item.Product.Name
		}
		fmt.Fprintf(&b, "- %s x%d @ %s\n", name, item.Quantity, item.Price.StringFixed(2))
	}
	fmt.Fprintf(&b, "Total: %s\n", order.Total.StringFixed(2))
	if order.DeliveryAddress != "" {
		fmt.Fprintf(&b, "Deliver to: %s", order.DeliveryAddress)
	}

	return telegram.Send(b.String())
}
