package controllers

import (
	"net/http"

	"github.com/Wege0921/prodev-be-ecommerce/app/services"
	"github.com/Wege0921/prodev-be-ecommerce/pkg/bind"
	"github.com/Wege0921/prodev-be-ecommerce/pkg/response"
)

type ContactController struct {
	contacts *services.ContactService
}

func NewContactController(contacts *services.ContactService) *ContactController {
	return &ContactController{contacts: contacts}
}

func (c *ContactController) Submit(w http.ResponseWriter, r *http.Request) {
	var in services.ContactInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	contact, err := c.contacts.Submit(r.Context(), in)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Created(w, contact)
}

// List is the admin view of received messages.
func (c *ContactController) List(w http.ResponseWriter, r *http.Request) {
	contacts, err := c.contacts.All()
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, contacts)
}

// Resolve marks a message as handled.
func (c *ContactController) Resolve(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(w, r, "id")
	if !ok {
		return
	}
	contact, err := c.contacts.Resolve(id)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, contact)
}
