// internal/domain/cart/service.go
package cart

import (
	"errors"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/domain/catalog"
	"github.com/your-org/storefront/internal/pkg/apperr"
	"gorm.io/gorm"
)

// Service handles cart business logic
type Service struct {
	db      *gorm.DB
	catalog *catalog.Service
	logger  logrus.FieldLogger
}

// NewService creates a new cart service
func NewService(db *gorm.DB, catalogService *catalog.Service, logger logrus.FieldLogger) *Service {
	return &Service{
		db:      db,
		catalog: catalogService,
		logger:  logger,
	}
}

// Add puts one unit of a catalog entry in the customer's cart
func (s *Service) Add(customerID, catalogID uint) (*CartItem, error) {
	entry, err := s.catalog.Lookup(catalogID)
	if err != nil {
		return nil, err
	}

	var line CartItem
	err = s.db.Where("customer_id = ? AND item_id = ?", customerID, entry.ItemID()).First(&line).Error
	switch {
	case err == nil:
		return s.increment(customerID, &line)
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, apperr.Internal("load cart line", err)
	}

	line = CartItem{
		CustomerID: customerID,
		ItemID:     entry.ItemID(),
		ItemName:   entry.Name(),
		Price:      entry.Price(),
		Image:      entry.Image(),
		Quantity:   1,
		Flash:      entry.IsFlash(),
	}
	if err := s.db.Create(&line).Error; err != nil {
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Internal("create cart line", err)
		}
		// A concurrent first add won the insert, fold this one into it
		var winner CartItem
		if err := s.db.Where("customer_id = ? AND item_id = ?", customerID, entry.ItemID()).First(&winner).Error; err != nil {
			return nil, apperr.Internal("load cart line", err)
		}
		return s.increment(customerID, &winner)
	}

	s.logger.WithFields(logrus.Fields{
		"customer_id": customerID,
		"item_id":     line.ItemID,
		"flash":       entry.IsFlash(),
	}).Debug("cart line created")
	return &line, nil
}

// Increase adds one unit to a cart line
func (s *Service) Increase(customerID, lineID uint) (*CartItem, error) {
	line, err := s.ownedLine(customerID, lineID)
	if err != nil {
		return nil, err
	}

	return s.increment(customerID, line)
}

// Decrease removes one unit from a cart line, deleting the line at quantity 1.
// The returned line is nil when the line was removed.
func (s *Service) Decrease(customerID, lineID uint) (*CartItem, error) {
	line, err := s.ownedLine(customerID, lineID)
	if err != nil {
		return nil, err
	}

	result := s.db.Model(&CartItem{}).
		Where("id = ? AND customer_id = ? AND quantity > 1", line.ID, customerID).
		UpdateColumn("quantity", gorm.Expr("quantity - 1"))
	if result.Error != nil {
		return nil, apperr.Internal("decrease cart line", result.Error)
	}
	if result.RowsAffected == 1 {
		line.Quantity--
		return line, nil
	}

	if err := s.Remove(customerID, line.ID); err != nil {
		return nil, err
	}
	return nil, nil
}

// SetQuantity overwrites the quantity of a cart line
func (s *Service) SetQuantity(customerID, lineID uint, quantity int) (*CartItem, error) {
	if quantity < 1 {
		return nil, apperr.Validation("Quantity must be at least 1")
	}

	line, err := s.ownedLine(customerID, lineID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(&CartItem{}).
		Where("id = ? AND customer_id = ?", line.ID, customerID).
		Update("quantity", quantity).Error; err != nil {
		return nil, apperr.Internal("update cart line", err)
	}

	line.Quantity = quantity
	return line, nil
}

// Remove deletes a cart line
func (s *Service) Remove(customerID, lineID uint) error {
	result := s.db.Where("id = ? AND customer_id = ?", lineID, customerID).Delete(&CartItem{})
	if result.Error != nil {
		return apperr.Internal("remove cart line", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("cart item")
	}
	return nil
}

// View returns the customer's cart lines and total
func (s *Service) View(customerID uint) (*View, error) {
	var lines []CartItem
	if err := s.db.Where("customer_id = ?", customerID).Order("id ASC").Find(&lines).Error; err != nil {
		return nil, apperr.Internal("load cart", err)
	}

	view := &View{Lines: lines}
	for i := range view.Lines {
		if view.Lines[i].Image == "" {
			if d, ok := s.catalog.Flash().ByName(view.Lines[i].ItemName); ok {
				view.Lines[i].Image = d.Image
			}
		}
		view.TotalQuantity += view.Lines[i].Quantity
	}
	view.Total = Total(view.Lines)

	return view, nil
}

// increment bumps quantity by one in SQL
func (s *Service) increment(customerID uint, line *CartItem) (*CartItem, error) {
	result := s.db.Model(&CartItem{}).
		Where("id = ? AND customer_id = ?", line.ID, customerID).
		UpdateColumn("quantity", gorm.Expr("quantity + 1"))
	if result.Error != nil {
		return nil, apperr.Internal("increase cart line", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, apperr.NotFound("cart item")
	}

	line.Quantity++
	return line, nil
}

func (s *Service) ownedLine(customerID, lineID uint) (*CartItem, error) {
	var line CartItem
	if err := s.db.Where("id = ? AND customer_id = ?", lineID, customerID).First(&line).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("cart item")
		}
		return nil, apperr.Internal("load cart line", err)
	}
	return &line, nil
}
