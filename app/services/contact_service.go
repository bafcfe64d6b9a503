package services

import (
	"context"

	"github.com/Wege0921/prodev-be-ecommerce/app/jobs"
	"github.com/Wege0921/prodev-be-ecommerce/app/models"
	"github.com/Wege0921/prodev-be-ecommerce/app/repositories"
	"github.com/Wege0921/prodev-be-ecommerce/pkg/logger"
	"github.com/Wege0921/prodev-be-ecommerce/pkg/queue"
)

// ContactInput is the public contact-form payload.
type ContactInput struct {
	Name    string `json:"name"    validate:"required,max=255"`
	Email   string `json:"email"   validate:"nullable,email"`
	Phone   string `json:"phone"   validate:"nullable,max=20"`
	Subject string `json:"subject" validate:"nullable,max=255"`
	Message string `json:"message" validate:"required,max=5000"`
}

type ContactService struct {
	contacts *repositories.ContactRepository
	dispatch func(queue.Job) error
}

func NewContactService(contacts *repositories.ContactRepository) *ContactService {
	return &ContactService{contacts: contacts, dispatch: queue.Dispatch}
}

// Submit stores the message and forwards it to the operator's Telegram
// chat in the background. The submission succeeds even when the forward
// cannot be queued.
func (s *ContactService) Submit(ctx context.Context, in ContactInput) (*models.Contact, error) {
	contact := &models.Contact{
		Name:    in.Name,
		Email:   in.Email,
		Phone:   in.Phone,
		Subject: in.Subject,
		Message: in.Message,
	}
	if err := s.contacts.Create(contact); err != nil {
		return nil, err
	}

	job := &jobs.ContactNotification{
		Name:    contact.Name,
		Email:   contact.Email,
		Phone:   contact.Phone,
		Subject: contact.Subject,
		Message: contact.Message,
	}
	if err := s.dispatch(job); err != nil {
		logger.WithCtx(ctx).Error("contact notification dispatch failed",
			"contact_id", contact.ID, "error", err)
	}
	return contact, nil
}

func (s *ContactService) All() ([]models.Contact, error) {
	return s.contacts.All()
}

// Resolve marks a message as handled. Resolving twice is harmless.
func (s *ContactService) Resolve(id uint) (*models.Contact, error) {
	contact, err := s.contacts.Find(id)
	if err != nil {
		return nil, err
	}
	if !contact.Resolved {
		if err := s.contacts.SetResolved(id, true); err != nil {
			return nil, err
		}
		contact.Resolved = true
	}
	return contact, nil
}
