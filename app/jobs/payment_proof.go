package jobs

import (
	"fmt"

	"github.com/Wege0921/prodev-be-ecommerce/app/models"
	"github.com/Wege0921/prodev-be-ecommerce/pkg/logger"
	"github.com/Wege0921/prodev-be-ecommerce/pkg/telegram"
)

// PaymentProof processes an uploaded payment proof. Verification against
// the payment provider is manual for now; the job notifies the operator so
// they can review and move the order to PAID.
type PaymentProof struct {
	OrderID  uint   `json:"order_id"`
	ProofURL string `json:"proof_url"`
}

func (j *PaymentProof) MaxAttempts() int { return 3 }

func (j *PaymentProof) Handle() error {
	var order models.Order
	if err := conn().First(&order, j.OrderID).Error; err != nil {
		return fmt.Errorf("load order %d: %w", j.OrderID, err)
	}

	logger.Info("payment proof received", "order_id", order.ID, "url", j.ProofURL)
	return telegram.Send(fmt.Sprintf(
		"Payment proof for order #%d\nStatus: %s\nProof: %s",
		order.ID, order.Status, j.ProofURL))
}
