package controllers

import (
	"net/http"
	"strconv"

	"github.com/Wege0921/prodev-be-ecommerce/app/services"
	"github.com/Wege0921/prodev-be-ecommerce/pkg/bind"
	"github.com/Wege0921/prodev-be-ecommerce/pkg/response"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type ProductController struct {
	products *services.ProductService
}

func NewProductController(products *services.ProductService) *ProductController {
	return &ProductController{products: products}
}

// List handles GET /api/products with the filter query parameters
// category_id, include_descendants, min_price, max_price, in_stock,
// featured, search, sort, page and per_page.
func (c *ProductController) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	listQuery := services.ListProductsQuery{
		Search: q.Get("search"),
		Sort:   q.Get("sort"),
	}
	if v := q.Get("category_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "category_id must be a number")
			return
		}
		listQuery.CategoryID = uint(id)
	}
	if v := q.Get("include_descendants"); v == "false" || v == "0" {
		listQuery.OnlyCategory = true
	}
	if v := q.Get("min_price"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "min_price must be a number")
			return
		}
		listQuery.MinPrice = &d
	}
	if v := q.Get("max_price"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "max_price must be a number")
			return
		}
		listQuery.MaxPrice = &d
	}
	if v := q.Get("in_stock"); v != "" {
		listQuery.InStock = v == "true" || v == "1"
	}
	if v := q.Get("featured"); v != "" {
		featured := v == "true" || v == "1"
		listQuery.Featured = &featured
	}
	listQuery.Page, _ = strconv.Atoi(q.Get("page"))
	listQuery.PerPage, _ = strconv.Atoi(q.Get("per_page"))

	page, err := c.products.List(listQuery)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, page)
}

func (c *ProductController) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(w, r, "id")
	if !ok {
		return
	}
	product, err := c.products.Find(id)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, product)
}

func (c *ProductController) Create(w http.ResponseWriter, r *http.Request) {
	var in services.ProductInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	product, err := c.products.Create(in)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Created(w, product)
}

func (c *ProductController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(w, r, "id")
	if !ok {
		return
	}
	var in services.ProductInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	product, err := c.products.Update(id, in)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, product)
}

func (c *ProductController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(w, r, "id")
	if !ok {
		return
	}
	if err := c.products.Delete(id); err != nil {
		response.FromError(w, err)
		return
	}
	response.NoContent(w)
}

// uintParam parses a numeric route parameter, writing a 400 on failure.
func uintParam(w http.ResponseWriter, r *http.Request, name string) (uint, bool) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		response.Error(w, http.StatusBadRequest, name+" must be a positive number")
		return 0, false
	}
	return uint(id), true
}
