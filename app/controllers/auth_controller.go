package controllers

import (
	"net/http"

	"github.com/Wege0921/prodev-be-ecommerce/app/services"
	"github.com/Wege0921/prodev-be-ecommerce/pkg/bind"
	"github.com/Wege0921/prodev-be-ecommerce/pkg/middleware"
	"github.com/Wege0921/prodev-be-ecommerce/pkg/response"
)

type AuthController struct {
	auth  *services.AuthService
	users *services.UserService
}

func NewAuthController(auth *services.AuthService, users *services.UserService) *AuthController {
	return &AuthController{auth: auth, users: users}
}

func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var in services.RegisterInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	pair, err := c.auth.Register(r.Context(), in)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Created(w, pair)
}

func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var in services.LoginInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	pair, err := c.auth.Login(r.Context(), in)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, pair)
}

func (c *AuthController) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	var in struct {
		IDToken string `json:"id_token" validate:"required"`
	}
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	pair, err := c.auth.LoginWithGoogle(r.Context(), in.IDToken)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, pair)
}

func (c *AuthController) ResetPIN(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Phone string `json:"phone" validate:"required"`
	}
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	if err := c.auth.ResetPIN(r.Context(), in.Phone); err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, map[string]string{
		"message": "if the number is registered, a new PIN has been sent",
	})
}

// Me returns the authenticated user's profile.
func (c *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromCtx(r.Context())
	if claims == nil {
		response.Unauthorized(w)
		return
	}
	user, err := c.users.Find(claims.UserID)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, user)
}
