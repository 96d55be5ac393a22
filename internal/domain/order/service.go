// internal/domain/order/service.go
package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/domain/catalog"
	"github.com/your-org/storefront/internal/pkg/apperr"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StatusNotifier is told about status changes after they are committed
type StatusNotifier func(ctx context.Context, o *Order, comment string) error

// Service handles order business logic
type Service struct {
	db       *gorm.DB
	logger   logrus.FieldLogger
	notifier StatusNotifier
}

// NewService creates a new order service. notifier may be nil.
func NewService(db *gorm.DB, logger logrus.FieldLogger, notifier StatusNotifier) *Service {
	return &Service{
		db:       db,
		logger:   logger,
		notifier: notifier,
	}
}

// Checkout converts the customer's cart into an order in one transaction
func (s *Service) Checkout(customerID uint) (*Order, error) {
	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, apperr.Internal("begin checkout", tx.Error)
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	var lines []cart.CartItem
	if err := s.lockRows(tx).Where("customer_id = ?", customerID).Order("id ASC").Find(&lines).Error; err != nil {
		tx.Rollback()
		return nil, apperr.Internal("load cart", err)
	}

	if len(lines) == 0 {
		tx.Rollback()
		return nil, apperr.Empty("Your cart is empty")
	}

	// Take stock for store items; the guard keeps remaining from going negative.
	// Flash products are a fixed table and never sell out.
	for _, line := range lines {
		if line.Flash {
			continue
		}
		result := tx.Model(&catalog.Item{}).
			Where("id = ? AND remaining >= ?", line.ItemID, line.Quantity).
			UpdateColumn("remaining", gorm.Expr("remaining - ?", line.Quantity))
		if result.Error != nil {
			tx.Rollback()
			return nil, apperr.Internal("reserve stock", result.Error)
		}
		if result.RowsAffected == 0 {
			tx.Rollback()
			return nil, apperr.Validation("Not enough stock left for %s", line.ItemName)
		}
	}

	order := Order{
		CustomerID:  customerID,
		TotalAmount: cart.Total(lines),
		Status:      OrderStatusPlaced,
		Items:       make([]OrderItem, len(lines)),
		StatusHistory: []OrderStatusHistory{{
			Status:    OrderStatusPlaced,
			Comment:   "Order placed",
			CreatedBy: customerID,
		}},
	}
	lineIDs := make([]uint, len(lines))
	for i, line := range lines {
		order.Items[i] = OrderItem{
			ProductID:  line.ItemID,
			Name:       line.ItemName,
			Quantity:   line.Quantity,
			Price:      line.Price,
			TotalPrice: line.LineTotal(),
		}
		lineIDs[i] = line.ID
	}

	if err := tx.Create(&order).Error; err != nil {
		tx.Rollback()
		return nil, apperr.Internal("create order", err)
	}

	result := tx.Where("id IN ? AND customer_id = ?", lineIDs, customerID).Delete(&cart.CartItem{})
	if result.Error != nil {
		tx.Rollback()
		return nil, apperr.Internal("clear cart", result.Error)
	}
	if result.RowsAffected != int64(len(lineIDs)) {
		tx.Rollback()
		return nil, apperr.Internal("clear cart", fmt.Errorf("cart changed during checkout: deleted %d of %d lines", result.RowsAffected, len(lineIDs)))
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperr.Internal("commit checkout", err)
	}

	s.logger.WithFields(logrus.Fields{
		"order_id":    order.ID,
		"customer_id": customerID,
		"total":       order.TotalAmount,
		"lines":       len(order.Items),
	}).Info("order placed")

	return &order, nil
}

// ListOrders returns the customer's orders newest first
func (s *Service) ListOrders(customerID uint) ([]Order, error) {
	var orders []Order
	if err := s.db.Preload("Items").
		Where("customer_id = ?", customerID).
		Order("created_at DESC, id DESC").
		Find(&orders).Error; err != nil {
		return nil, apperr.Internal("list orders", err)
	}
	return orders, nil
}

// ListAllOrders returns every order newest first
func (s *Service) ListAllOrders() ([]Order, error) {
	var orders []Order
	if err := s.db.Preload("Items").
		Order("created_at DESC, id DESC").
		Find(&orders).Error; err != nil {
		return nil, apperr.Internal("list orders", err)
	}
	return orders, nil
}

// GetOrder returns an order visible to the caller. Other customers' orders are reported as missing.
func (s *Service) GetOrder(customerID, orderID uint, isAdmin bool) (*Order, error) {
	var order Order
	err := s.db.Preload("Items").
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		First(&order, orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("order")
		}
		return nil, apperr.Internal("load order", err)
	}

	if !isAdmin && order.CustomerID != customerID {
		return nil, apperr.NotFound("order")
	}
	return &order, nil
}

// SetStatus moves an order along the status machine and records the change
func (s *Service) SetStatus(ctx context.Context, orderID uint, status string, actorID uint, comment string) (*Order, error) {
	next, ok := ParseStatus(status)
	if !ok {
		return nil, apperr.Validation("Unknown order status %q", status)
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, apperr.Internal("begin status update", tx.Error)
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	var order Order
	if err := s.lockRows(tx).First(&order, orderID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("order")
		}
		return nil, apperr.Internal("load order", err)
	}

	if !CanTransition(order.Status, next) {
		tx.Rollback()
		return nil, apperr.Validation("Cannot change order status from %s to %s", order.Status, next)
	}

	now := time.Now().UTC()
	updates := map[string]interface{}{
		"status": next,
	}

	// Set timestamps based on status
	switch next {
	case OrderStatusProcessing:
		updates["processed_at"] = now
	case OrderStatusShipped:
		updates["shipped_at"] = now
	case OrderStatusDelivered:
		updates["delivered_at"] = now
	}

	if err := tx.Model(&order).Updates(updates).Error; err != nil {
		tx.Rollback()
		return nil, apperr.Internal("update order status", err)
	}

	history := OrderStatusHistory{
		OrderID:   order.ID,
		Status:    next,
		Comment:   comment,
		CreatedBy: actorID,
	}
	if err := tx.Create(&history).Error; err != nil {
		tx.Rollback()
		return nil, apperr.Internal("create status history", err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperr.Internal("commit status update", err)
	}

	order.Status = next
	s.logger.WithFields(logrus.Fields{
		"order_id": order.ID,
		"status":   next,
		"actor_id": actorID,
	}).Info("order status updated")

	if s.notifier != nil {
		if err := s.notifier(ctx, &order, comment); err != nil {
			s.logger.WithError(err).WithField("order_id", order.ID).Warn("failed to notify customer of status change")
		}
	}

	return &order, nil
}

// lockRows adds FOR UPDATE where the dialect supports it
func (s *Service) lockRows(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}
