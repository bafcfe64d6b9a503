package validate_test

import (
	"testing"

	"github.com/Wege0921/prodev-be-ecommerce/pkg/validate"
	"github.com/stretchr/testify/assert"
)

type orderLineInput struct {
	ProductID uint `json:"product_id" validate:"required"`
	Quantity  int  `json:"quantity"   validate:"required,integer,gte=1"`
}

type resetPINInput struct {
	Phone  string `json:"phone"   validate:"required,max=20"`
	NewPIN string `json:"new_pin" validate:"required,digits=6"`
}

type transitionInput struct {
	Status string `json:"status" validate:"required,in=PENDING,PAID,SHIPPED,DELIVERED,COMPLETED"`
}

func TestStruct_ValidLine(t *testing.T) {
	errs := validate.Struct(&orderLineInput{ProductID: 3, Quantity: 2})
	assert.Empty(t, errs)
}

func TestStruct_ZeroQuantity(t *testing.T) {
	errs := validate.Struct(&orderLineInput{ProductID: 3, Quantity: 0})
	assert.Contains(t, errs, "quantity")
}

func TestStruct_NegativeQuantity(t *testing.T) {
	errs := validate.Struct(&orderLineInput{ProductID: 3, Quantity: -4})
	assert.Contains(t, errs, "quantity")
}

func TestStruct_MissingProduct(t *testing.T) {
	errs := validate.Struct(&orderLineInput{Quantity: 1})
	assert.Contains(t, errs, "product_id")
}

func TestStruct_PINDigits(t *testing.T) {
	assert.Empty(t, validate.Struct(&resetPINInput{Phone: "+251912345678", NewPIN: "123456"}))

	errs := validate.Struct(&resetPINInput{Phone: "+251912345678", NewPIN: "12345"})
	assert.Contains(t, errs, "new_pin")

	errs = validate.Struct(&resetPINInput{Phone: "+251912345678", NewPIN: "12345a"})
	assert.Contains(t, errs, "new_pin")
}

func TestStruct_InList(t *testing.T) {
	assert.Empty(t, validate.Struct(&transitionInput{Status: "SHIPPED"}))

	errs := validate.Struct(&transitionInput{Status: "CANCELLED"})
	assert.Contains(t, errs, "status")
}

func TestStruct_NullableSkipsEmpty(t *testing.T) {
	type input struct {
		Email string `json:"email" validate:"nullable,email"`
	}
	assert.Empty(t, validate.Struct(&input{}))
	assert.Contains(t, validate.Struct(&input{Email: "not-an-email"}), "email")
}
