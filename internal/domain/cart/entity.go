// internal/domain/cart/entity.go
package cart

import (
	"time"

	"github.com/your-org/storefront/internal/domain/catalog"
	"github.com/your-org/storefront/internal/domain/customer"
)

// CartItem is one line of a customer's cart. Name, price and image are
// snapshots taken when the line was created.
type CartItem struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CustomerID uint      `gorm:"not null;uniqueIndex:idx_cart_customer_item" json:"customer_id"`
	ItemID     uint      `gorm:"not null;uniqueIndex:idx_cart_customer_item;index" json:"item_id"`
	ItemName   string    `gorm:"not null;size:200" json:"item_name"`
	Price      int64     `gorm:"not null" json:"price"` // unit price at time of adding
	Image      string    `gorm:"size:500" json:"image"`
	Quantity   int       `gorm:"not null;default:1" json:"quantity"`
	Flash      bool      `gorm:"not null;default:false" json:"flash"` // added through a flash catalog id
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Relationships
	Customer *customer.Customer `gorm:"foreignKey:CustomerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Item     *catalog.Item      `gorm:"foreignKey:ItemID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

// TableName overrides the table name
func (CartItem) TableName() string {
	return "cart_item"
}

// LineTotal returns price times quantity
func (c CartItem) LineTotal() int64 {
	return c.Price * int64(c.Quantity)
}

// View is a cart with its computed totals
type View struct {
	Lines         []CartItem `json:"lines"`
	TotalQuantity int        `json:"total_quantity"`
	Total         int64      `json:"total"`
}

// IsEmpty reports whether the cart has no lines
func (v *View) IsEmpty() bool {
	return len(v.Lines) == 0
}

// Total sums price times quantity over lines
func Total(lines []CartItem) int64 {
	var total int64
	for _, line := range lines {
		total += line.LineTotal()
	}
	return total
}

// UpdateQuantityRequest represents the explicit quantity form
type UpdateQuantityRequest struct {
	Quantity int `form:"quantity" json:"quantity"`
}
