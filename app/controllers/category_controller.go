package controllers

import (
	"net/http"

	"github.com/Wege0921/prodev-be-ecommerce/app/services"
	"github.com/Wege0921/prodev-be-ecommerce/pkg/bind"
	"github.com/Wege0921/prodev-be-ecommerce/pkg/response"
)

type CategoryController struct {
	categories *services.CategoryService
}

func NewCategoryController(categories *services.CategoryService) *CategoryController {
	return &CategoryController{categories: categories}
}

func (c *CategoryController) List(w http.ResponseWriter, r *http.Request) {
	categories, err := c.categories.All()
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, categories)
}

func (c *CategoryController) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(w, r, "id")
	if !ok {
		return
	}
	category, err := c.categories.Find(id)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, category)
}

func (c *CategoryController) Create(w http.ResponseWriter, r *http.Request) {
	var in services.CategoryInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	category, err := c.categories.Create(in)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Created(w, category)
}

func (c *CategoryController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(w, r, "id")
	if !ok {
		return
	}
	var in services.CategoryInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	category, err := c.categories.Update(id, in)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, category)
}

func (c *CategoryController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(w, r, "id")
	if !ok {
		return
	}
	if err := c.categories.Delete(id); err != nil {
		response.FromError(w, err)
		return
	}
	response.NoContent(w)
}
