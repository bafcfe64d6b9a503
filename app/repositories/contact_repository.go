package repositories

import (
	"errors"

	"github.com/Wege0921/prodev-be-ecommerce/app/models"
	"github.com/Wege0921/prodev-be-ecommerce/pkg/apperr"
	"gorm.io/gorm"
)

type ContactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) Create(contact *models.Contact) error {
	return r.db.Create(contact).Error
}

func (r *ContactRepository) All() ([]models.Contact, error) {
	var contacts []models.Contact
	err := r.db.Order("created_at desc").Find(&contacts).Error
	return contacts, err
}

func (r *ContactRepository) Find(id uint) (*models.Contact, error) {
	var contact models.Contact
	if err := r.db.First(&contact, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("contact message")
		}
		return nil, err
	}
	return &contact, nil
}

func (r *ContactRepository) SetResolved(id uint, resolved bool) error {
	return r.db.Model(&models.Contact{}).Where("id = ?", id).
		Update("resolved", resolved).Error
}
