// Package server wires the store together: config, database, cache,
// storage, queue workers and the HTTP stack.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Wege0921/prodev-be-ecommerce/app/controllers"
	"github.com/Wege0921/prodev-be-ecommerce/app/jobs"
	"github.com/Wege0921/prodev-be-ecommerce/app/repositories"
	"github.com/Wege0921/prodev-be-ecommerce/app/routes"
	"github.com/Wege0921/prodev-be-ecommerce/app/services"
	"github.com/Wege0921/prodev-be-ecommerce/config"
	"github.com/Wege0921/prodev-be-ecommerce/pkg/cache"
	"github.com/Wege0921/prodev-be-ecommerce/pkg/database"
	"github.com/Wege0921/prodev-be-ecommerce/pkg/logger"
	"github.com/Wege0921/prodev-be-ecommerce/pkg/metrics"
	"github.com/Wege0921/prodev-be-ecommerce/pkg/middleware"
	"github.com/Wege0921/prodev-be-ecommerce/pkg/queue"
	"github.com/Wege0921/prodev-be-ecommerce/pkg/reqid"
	"github.com/Wege0921/prodev-be-ecommerce/pkg/router"
	"github.com/Wege0921/prodev-be-ecommerce/pkg/storage"
	"gorm.io/gorm"
)

// Start boots every subsystem and serves HTTP until SIGINT or SIGTERM,
// then drains in-flight requests before returning.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}
	if err := database.Connect(); err != nil {
		return err
	}
	if err := cache.Connect(); err != nil {
		logger.Warn("redis unavailable, serving without cache", "error", err)
	}
	storage.Connect()

	setupQueue()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	queue.StartWorkers(ctx, config.QueueWorkers())

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           buildHandler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// setupQueue selects the queue driver, registers job types and wires the
// database handle jobs and the failed-job table use.
func setupQueue() {
	if config.QueueDriver() == "redis" && cache.RDB != nil {
		queue.SetDriver(queue.NewRedisDriver(cache.RDB))
		logger.Info("queue: using redis driver")
	} else {
		logger.Info("queue: using memory driver")
	}
	jobs.RegisterAll()
	jobs.UseDB(database.DB)
	queue.UseDB(database.DB)
}

// buildHandler assembles the middleware chain and route table.
func buildHandler() http.Handler {
	return buildRouter(database.DB).Handler()
}

// RouteTable registers the full route surface on a throwaway router and
// returns the route list. Nothing touches the database at registration
// time, so this works without a connection.
func RouteTable() []router.RouteInfo {
	return buildRouter(nil).Routes()
}

func buildRouter(db *gorm.DB) *router.Router {
	userRepo := repositories.NewUserRepository(db)
	productRepo := repositories.NewProductRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	stockRepo := repositories.NewStockRepository(db)
	contactRepo := repositories.NewContactRepository(db)

	categorySvc := services.NewCategoryService(categoryRepo, productRepo)
	productSvc := services.NewProductService(productRepo, categorySvc)
	orderSvc := services.NewOrderService(db, orderRepo, productRepo, stockRepo)
	authSvc := services.NewAuthService(userRepo)
	userSvc := services.NewUserService(userRepo)
	contactSvc := services.NewContactService(contactRepo)

	r := router.New()
	r.Use(
		middleware.Recovery,
		reqid.Middleware(),
		middleware.Logger,
		middleware.CORS(middleware.DefaultCORSOptions()),
		middleware.RateLimit(120, time.Minute),
		metrics.Middleware(),
	)

	routes.Register(r, routes.Controllers{
		Auth:       controllers.NewAuthController(authSvc, userSvc),
		Products:   controllers.NewProductController(productSvc),
		Categories: controllers.NewCategoryController(categorySvc),
		Orders:     controllers.NewOrderController(orderSvc),
		Contacts:   controllers.NewContactController(contactSvc),
	})

	return r
}
