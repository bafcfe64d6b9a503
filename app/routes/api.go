// Package routes registers the HTTP surface of the store API.
package routes

import (
	"net/http"

	"github.com/Wege0921/prodev-be-ecommerce/app/controllers"
	"github.com/Wege0921/prodev-be-ecommerce/pkg/metrics"
	"github.com/Wege0921/prodev-be-ecommerce/pkg/middleware"
	"github.com/Wege0921/prodev-be-ecommerce/pkg/response"
	"github.com/Wege0921/prodev-be-ecommerce/pkg/router"
)

// Controllers bundles everything the route table mounts.
type Controllers struct {
	Auth       *controllers.AuthController
	Products   *controllers.ProductController
	Categories *controllers.CategoryController
	Orders     *controllers.OrderController
	Contacts   *controllers.ContactController
}

/// Register mounts every route on r. Grouping mirrors the access levels:
// public catalogue and auth endpoints, an authenticated group for orders
// and profile, and an admin group for catalogue management.
func Register(r *router.Router, c Controllers) {
	r.Get("/health", "health", func(w http.ResponseWriter, _ *http.Request) {
		response.Success(w, map[string]string{"status": "ok"})
	})
	r.HandleFunc("/metrics", metrics.Handler().ServeHTTP)

	api := r.Group("/api")

	// public
	api.Post("/auth/register", "auth.register", c.Auth.Register)
	api.Post("/auth/login", "auth.login", c.Auth.Login)
	api.Post("/auth/google", "auth.google", c.Auth.GoogleLogin)
	api.Post("/auth/reset-pin", "auth.reset_pin", c.Auth.ResetPIN)

	api.Get("/products", "products.list", c.Products.List)
	api.Get("/products/{id}", "products.show", c.Products.Show)
	api.Get("/categories", "categories.list", c.Categories.List)
	api.Get("/categories/{id}", "categories.show", c.Categories.Show)

	api.Post("/contact", "contact.submit", c.Contacts.Submit)

	// authenticated
	authed := api.Group("", middleware.Auth)
	authed.Get("/me", "auth.me", c.Auth.Me)
	authed.Post("/orders", "orders.create", c.Orders.Create)
	authed.Get("/orders", "orders.list", c.Orders.List)
	authed.Get("/orders/{id}", "orders.show", c.Orders.Show)
	authed.Post("/orders/{id}/payment-proof", "orders.upload_proof", c.Orders.UploadProof)

	// admin
	admin := api.Group("/admin", middleware.Auth, middleware.Admin)
	admin.Post("/products", "admin.products.create", c.Products.Create)
	admin.Put("/products/{id}", "admin.products.update", c.Products.Update)
	admin.Delete("/products/{id}", "admin.products.delete", c.Products.Delete)
	admin.Post("/categories", "admin.categories.create", c.Categories.Create)
	admin.Put("/categories/{id}", "admin.categories.update", c.Categories.Update)
	admin.Delete("/categories/{id}", "admin.categories.delete", c.Categories.Delete)
	admin.Patch("/orders/{id}/status", "admin.orders.transition", c.Orders.Transition)
	admin.Get("/contacts", "admin.contacts.list", c.Contacts.List)
	admin.Patch("/contacts/{id}/resolve", "admin.contacts.resolve", c.Contacts.Resolve)
}
