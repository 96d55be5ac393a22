// internal/domain/wishlist/service.go
package wishlist

import (
	"errors"

	"github.com/your-org/storefront/internal/domain/catalog"
	"github.com/your-org/storefront/internal/pkg/apperr"
	"gorm.io/gorm"
)

// Service handles wishlist business logic
type Service struct {
	db      *gorm.DB
	catalog *catalog.Service
}

// NewService creates a new wishlist service
func NewService(db *gorm.DB, catalogService *catalog.Service) *Service {
	return &Service{
		db:      db,
		catalog: catalogService,
	}
}

// Toggle saves the item when absent and removes it when present
func (s *Service) Toggle(customerID, itemID uint) (ToggleResult, error) {
	if err := s.checkWishable(itemID); err != nil {
		return "", err
	}

	result := s.db.Where("customer_id = ? AND item_id = ?", customerID, itemID).Delete(&Wishlist{})
	if result.Error != nil {
		return "", apperr.Internal("remove wishlist entry", result.Error)
	}
	if result.RowsAffected > 0 {
		return Removed, nil
	}

	if _, err := s.insert(customerID, itemID); err != nil {
		return "", err
	}
	return Added, nil
}

// Add saves the item. It reports false when the item was already saved.
func (s *Service) Add(customerID, itemID uint) (bool, error) {
	if err := s.checkWishable(itemID); err != nil {
		return false, err
	}

	saved, err := s.IsSaved(customerID, itemID)
	if err != nil {
		return false, err
	}
	if saved {
		return false, nil
	}

	return s.insert(customerID, itemID)
}

// Remove deletes a saved item
func (s *Service) Remove(customerID, itemID uint) error {
	result := s.db.Where("customer_id = ? AND item_id = ?", customerID, itemID).Delete(&Wishlist{})
	if result.Error != nil {
		return apperr.Internal("remove wishlist entry", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("wishlist item")
	}
	return nil
}

// List returns the saved items, skipping entries whose item no longer exists
func (s *Service) List(customerID uint) ([]catalog.Item, error) {
	var entries []Wishlist
	if err := s.db.Where("customer_id = ?", customerID).Order("created_at ASC, id ASC").Find(&entries).Error; err != nil {
		return nil, apperr.Internal("load wishlist", err)
	}

	items := make([]catalog.Item, 0, len(entries))
	if len(entries) == 0 {
		return items, nil
	}

	ids := make([]uint, len(entries))
	for i, e := range entries {
		ids[i] = e.ItemID
	}

	var rows []catalog.Item
	if err := s.db.Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, apperr.Internal("load wishlist items", err)
	}
	byID := make(map[uint]catalog.Item, len(rows))
	for _, row := range rows {
		byID[row.ID] = row
	}

	for _, e := range entries {
		if item, ok := byID[e.ItemID]; ok {
			item.Image = item.DisplayImage()
			items = append(items, item)
		}
	}
	return items, nil
}

// IsSaved reports whether the customer saved the item
func (s *Service) IsSaved(customerID, itemID uint) (bool, error) {
	var count int64
	if err := s.db.Model(&Wishlist{}).Where("customer_id = ? AND item_id = ?", customerID, itemID).Count(&count).Error; err != nil {
		return false, apperr.Internal("check wishlist", err)
	}
	return count > 0, nil
}

func (s *Service) insert(customerID, itemID uint) (bool, error) {
	entry := Wishlist{CustomerID: customerID, ItemID: itemID}
	if err := s.db.Create(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return false, nil
		}
		return false, apperr.Internal("create wishlist entry", err)
	}
	return true, nil
}

func (s *Service) checkWishable(itemID uint) error {
	entry, err := s.catalog.Lookup(itemID)
	if err != nil {
		return err
	}
	if entry.IsFlash() {
		return apperr.NotAllowed("Flash sale items cannot be added to the wishlist")
	}
	return nil
}
