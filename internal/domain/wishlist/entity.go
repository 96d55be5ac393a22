// internal/domain/wishlist/entity.go
package wishlist

import (
	"time"

	"github.com/your-org/storefront/internal/domain/catalog"
	"github.com/your-org/storefront/internal/domain/customer"
)

// Wishlist is one item saved by a customer
type Wishlist struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CustomerID uint      `gorm:"not null;uniqueIndex:idx_wishlist_customer_item" json:"customer_id"`
	ItemID     uint      `gorm:"not null;uniqueIndex:idx_wishlist_customer_item;index" json:"item_id"`
	CreatedAt  time.Time `json:"created_at"`

	Customer *customer.Customer `gorm:"foreignKey:CustomerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Item     *catalog.Item      `gorm:"foreignKey:ItemID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

// TableName overrides the table name
func (Wishlist) TableName() string {
	return "wishlist"
}

// ToggleResult reports what a toggle did
type ToggleResult string

const (
	Added   ToggleResult = "added"
	Removed ToggleResult = "removed"
)
