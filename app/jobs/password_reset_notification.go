package jobs

import (
	"fmt"

	"github.com/Wege0921/prodev-be-ecommerce/pkg/telegram"
)

// PasswordResetNotification delivers a freshly generated PIN to the user's
// Telegram chat. The PIN is only ever stored hashed, so this message is the
// single place the plain value appears.
type PasswordResetNotification struct {
	ChatID string `json:"chat_id"`
	Phone  string `json:"phone"`
	PIN    string `json:"pin"`
}

func (j *PasswordResetNotification) MaxAttempts() int { return 5 }

func (j *PasswordResetNotification) Handle() error {
	text := fmt.Sprintf("Your PIN for %s has been reset.\nNew PIN: %s", j.Phone, j.PIN)
	if j.ChatID != "" {
		return telegram.SendTo(j.ChatID, text)
	}
	return telegram.Send(text)
}
