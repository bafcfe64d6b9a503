package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/Wege0921/prodev-be-ecommerce/pkg/auth"
	"github.com/Wege0921/prodev-be-ecommerce/pkg/response"
)

// claimsKey is the unexported context key for the authenticated claims.
type claimsKey struct{}

// ClaimsFromCtx returns the JWT claims stored by Auth, or nil.
func ClaimsFromCtx(ctx context.Context) *auth.Claims {
	if c, ok := ctx.Value(claimsKey{}).(*auth.Claims); ok {
		return c
	}
	return nil
}

// Auth validates the Bearer token and stores its claims in the request
// context for handlers to read.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if token == "" || token == r.Header.Get("Authorization") {
			response.Unauthorized(w)
			return
		}

		claims, err := auth.ValidateToken(token)
		if err != nil {
			response.Unauthorized(w)
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey{}, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Admin gates privileged endpoints (order status transitions, contact-message
// listing). Must be chained after Auth.
func Admin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := ClaimsFromCtx(r.Context())
		if claims == nil {
			response.Unauthorized(w)
			return
		}
		if !claims.IsAdmin {
			response.Forbidden(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}
