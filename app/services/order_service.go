package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/Wege0921/prodev-be-ecommerce/app/jobs"
	"github.com/Wege0921/prodev-be-ecommerce/app/models"
	"github.com/Wege0921/prodev-be-ecommerce/app/repositories"
	"github.com/Wege0921/prodev-be-ecommerce/pkg/apperr"
	"github.com/Wege0921/prodev-be-ecommerce/pkg/logger"
	"github.com/Wege0921/prodev-be-ecommerce/pkg/metrics"
	"github.com/Wege0921/prodev-be-ecommerce/pkg/queue"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderLine is one requested line of a new order.
type OrderLine struct {
	ProductID uint `json:"product_id" validate:"required"`
	Quantity  int  `json:"quantity"   validate:"required,gte=1"`
}

// CreateOrderInput is the payload for placing an order.
type CreateOrderInput struct {
	DeliveryAddress string      `json:"delivery_address" validate:"required"`
	Lines           []OrderLine `json:"lines"`
}

// OrderService places orders and drives their status lifecycle. Creation
// runs inside a single transaction so either every line reserves stock and
// the order exists, or nothing changed.
type OrderService struct {
	db       *gorm.DB
	orders   *repositories.OrderRepository
	products *repositories.ProductRepository
	stock    *repositories.StockRepository
	dispatch func(queue.Job) error // swapped out in tests
}

func NewOrderService(
	db *gorm.DB,
	orders *repositories.OrderRepository,
	products *repositories.ProductRepository,
	stock *repositories.StockRepository,
) *OrderService {
	return &OrderService{
		db:       db,
		orders:   orders,
		products: products,
		stock:    stock,
		dispatch: queue.Dispatch,
	}
}

// Create places an order for the user. Each line captures the product's
// current price and reserves its quantity; any failure rolls the whole
// order back. The notification job is dispatched only after commit, and a
// dispatch failure never unwinds the order.
func (s *OrderService) Create(ctx context.Context, userID uint, in CreateOrderInput) (*models.Order, error) {
	if len(in.Lines) == 0 {
		return nil, apperr.ValidationField("lines", "order must contain at least one line")
	}
	for i, line := range in.Lines {
		if line.Quantity < 1 {
			return nil, apperr.ValidationField(
				fmt.Sprintf("lines.%d.quantity", i), "quantity must be at least 1")
		}
	}

	order := &models.Order{
		UserID:          userID,
		Status:          models.StatusPending,
		Total:           decimal.Zero,
		DeliveryAddress: in.DeliveryAddress,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		stock := s.stock.WithTx(tx)
		total := decimal.Zero
		for _, line := range in.Lines {
			product, err := s.products.FindForUpdate(tx, line.ProductID)
			if err != nil {
				return err
			}
			if err := stock.Reserve(product.ID, line.Quantity); err != nil {
				if apperr.IsConflict(err) {
					metrics.StockConflicts.Inc()
					return apperr.Conflict("insufficient stock for %q", product.Name)
				}
				return err
			}
			item := models.OrderItem{
				OrderID:   order.ID,
				ProductID: product.ID,
				Quantity:  line.Quantity,
				Price:     product.Price,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
			order.Items = append(order.Items, item)
			total = total.Add(item.Subtotal())
		}
		order.Total = total
		return tx.Model(order).Update("total", total).Error
	})
	if err != nil {
		return nil, err
	}

	metrics.OrdersCreated.Inc()

	if err := s.dispatch(&jobs.OrderNotification{OrderID: order.ID}); err != nil {
		logger.WithCtx(ctx).Error("order notification dispatch failed",
			"order_id", order.ID, "error", err)
	}
	return order, nil
}

// Transition moves an order to a new status after checking the lifecycle
// table. Unknown statuses are a validation error; known but unreachable
// ones are a conflict.
func (s *OrderService) Transition(ctx context.Context, orderID uint, rawStatus string) (*models.Order, error) {
	to, err := models.ParseStatus(strings.ToUpper(rawStatus))
	if err != nil {
		return nil, apperr.ValidationField("status", err.Error())
	}
	order, err := s.orders.Find(orderID)
	if err != nil {
		return nil, err
	}
	if !models.CanTransition(order.Status, to) {
		return nil, apperr.Conflict("cannot move order from %s to %s", order.Status, to)
	}
	if err := s.orders.UpdateStatus(order.ID, to); err != nil {
		return nil, err
	}
	order.Status = to
	logger.WithCtx(ctx).Info("order status changed", "order_id", order.ID, "status", to)
	return order, nil
}

// AttachPaymentProof records the uploaded proof URL and queues it for
// background processing.
func (s *OrderService) AttachPaymentProof(ctx context.Context, orderID uint, url string) (*models.Order, error) {
	order, err := s.orders.Find(orderID)
	if err != nil {
		return nil, err
	}
	order.PaymentProofURL = url
	if err := s.orders.Update(order); err != nil {
		return nil, err
	}
	if err := s.dispatch(&jobs.PaymentProof{OrderID: order.ID, ProofURL: url}); err != nil {
		logger.WithCtx(ctx).Error("payment proof dispatch failed", "order_id", order.ID, "error", err)
	}
	return order, nil
}

func (s *OrderService) Find(orderID uint) (*models.Order, error) {
	return s.orders.Find(orderID)
}

func (s *OrderService) ForUser(userID uint) ([]models.Order, error) {
	return s.orders.ForUser(userID)
}

func (s *OrderService) All() ([]models.Order, error) {
	return s.orders.All()
}
