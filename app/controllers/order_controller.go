package controllers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/Wege0921/prodev-be-ecommerce/app/services"
	"github.com/Wege0921/prodev-be-ecommerce/pkg/bind"
	"github.com/Wege0921/prodev-be-ecommerce/pkg/middleware"
	"github.com/Wege0921/prodev-be-ecommerce/pkg/response"
	"github.com/Wege0921/prodev-be-ecommerce/pkg/storage"
)

// maxProofBytes caps payment proof uploads at 8 MB.
const maxProofBytes = 8 << 20

type OrderController struct {
	orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{orders: orders}
}

// Create handles POST /api/orders for the authenticated user.
func (c *OrderController) Create(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromCtx(r.Context())
	if claims == nil {
		response.Unauthorized(w)
		return
	}

	var in services.CreateOrderInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	order, err := c.orders.Create(r.Context(), claims.UserID, in)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Created(w, order)
}

// List returns the authenticated user's orders, or every order for admins
// requesting with ?all=true.
func (c *OrderController) List(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromCtx(r.Context())
	if claims == nil {
		response.Unauthorized(w)
		return
	}

	if r.URL.Query().Get("all") == "true" {
		if !claims.IsAdmin {
			response.Forbidden(w)
			return
		}
		orders, err := c.orders.All()
		if err != nil {
			response.FromError(w, err)
			return
		}
		response.Success(w, orders)
		return
	}

	orders, err := c.orders.ForUser(claims.UserID)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, orders)
}

func (c *OrderController) Show(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromCtx(r.Context())
	if claims == nil {
		response.Unauthorized(w)
		return
	}
	id, ok := uintParam(w, r, "id")
	if !ok {
		return
	}

	order, err := c.orders.Find(id)
	if err != nil {
		response.FromError(w, err)
		return
	}
	// customers only see their own orders; a foreign id reads as missing
	if order.UserID != claims.UserID && !claims.IsAdmin {
		response.NotFound(w)
		return
	}
	response.Success(w, order)
}

// Transition handles PATCH /api/orders/{id}/status (admin only, enforced
// by the route's middleware).
func (c *OrderController) Transition(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(w, r, "id")
	if !ok {
		return
	}
	var in struct {
		Status string `json:"status" validate:"required"`
	}
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	order, err := c.orders.Transition(r.Context(), id, in.Status)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, order)
}

// UploadProof handles POST /api/orders/{id}/payment-proof with a
// multipart "proof" file. The file lands on the configured storage disk
// and its URL is attached to the order.
func (c *OrderController) UploadProof(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromCtx(r.Context())
	if claims == nil {
		response.Unauthorized(w)
		return
	}
	id, ok := uintParam(w, r, "id")
	if !ok {
		return
	}

	order, err := c.orders.Find(id)
	if err != nil {
		response.FromError(w, err)
		return
	}
	if order.UserID != claims.UserID && !claims.IsAdmin {
		response.NotFound(w)
		return
	}

	if err := r.ParseMultipartForm(maxProofBytes); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("proof")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "proof file is required")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".pdf":
	default:
		response.Error(w, http.StatusBadRequest, "proof must be a jpg, png or pdf")
		return
	}

	path := fmt.Sprintf("proofs/order-%d-%d%s", order.ID, time.Now().UnixNano(), ext)
	url, err := storage.PutStream(path, file)
	if err != nil {
		response.FromError(w, err)
		return
	}

	updated, err := c.orders.AttachPaymentProof(r.Context(), order.ID, url)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, updated)
}
