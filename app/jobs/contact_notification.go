package jobs

import (
	"fmt"

	"github.com/Wege0921/prodev-be-ecommerce/pkg/telegram"
)

// ContactNotification forwards a contact-form submission to the operator.
// Carries the message inline so it survives serialization through Redis.
type ContactNotification struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (j *ContactNotification) MaxAttempts() int { return 5 }

func (j *ContactNotification) Handle() error {
	text := fmt.Sprintf("Contact message from %s", j.Name)
	if j.Phone != "" {
		text += fmt.Sprintf(" (%s)", j.Phone)
	}
	if j.Email != "" {
		text += fmt.Sprintf(" <%s>", j.Email)
	}
	if j.Subject != "" {
		text += "\nSubject: " + j.Subject
	}
	text += "\n" + j.Message
	return telegram.Send(text)
}
