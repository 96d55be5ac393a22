// internal/domain/catalog/entity.go
package catalog

import (
	"time"

	"github.com/your-org/storefront/internal/domain/customer"
)

// DefaultImage is shown for items without an image
const DefaultImage = "images/default.png"

// Item represents a persisted catalog item
type Item struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"not null;size:200;index" json:"name"`
	CurrentPrice  int64     `gorm:"not null;default:0" json:"current_price"`
	PreviousPrice int64     `gorm:"not null;default:0" json:"previous_price"`
	Remaining     int       `gorm:"not null;default:0" json:"remaining"`
	Image         string    `gorm:"size:500" json:"image"`
	DateAdded     time.Time `gorm:"autoCreateTime;index" json:"date_added"`
}

// TableName overrides the table name
func (Item) TableName() string {
	return "item"
}

// DisplayImage returns the image path, falling back to DefaultImage
func (i Item) DisplayImage() string {
	if i.Image == "" {
		return DefaultImage
	}
	return i.Image
}

// Review represents a customer rating of an item
type Review struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CustomerID uint      `gorm:"not null;index" json:"customer_id"`
	ItemID     uint      `gorm:"not null;index" json:"item_id"`
	Rating     int       `gorm:"not null" json:"rating"`
	Comment    string    `gorm:"type:text" json:"comment"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`

	Customer *customer.Customer `gorm:"foreignKey:CustomerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Item     *Item              `gorm:"foreignKey:ItemID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

// TableName overrides the table name
func (Review) TableName() string {
	return "review"
}

// EntryKind tells where a catalog entry comes from
type EntryKind int

const (
	KindPersisted EntryKind = iota
	KindSeeded
)

func (k EntryKind) String() string {
	if k == KindSeeded {
		return "flash"
	}
	return "item"
}

// Entry is the result of a catalog lookup. Seeded entries carry the flash
// descriptor they came from plus the item row reconciled for it.
type Entry struct {
	Kind  EntryKind        `json:"kind"`
	ID    uint             `json:"id"`
	Item  Item             `json:"item"`
	Flash *FlashDescriptor `json:"flash,omitempty"`
}

// IsFlash reports whether the entry comes from the flash catalog
func (e *Entry) IsFlash() bool {
	return e.Kind == KindSeeded
}

// ItemID returns the id of the backing item row
func (e *Entry) ItemID() uint {
	return e.Item.ID
}

// Name returns the display name
func (e *Entry) Name() string {
	if e.Flash != nil {
		return e.Flash.Name
	}
	return e.Item.Name
}

// Price returns the current unit price
func (e *Entry) Price() int64 {
	if e.Flash != nil {
		return e.Flash.Price
	}
	return e.Item.CurrentPrice
}

// Image returns the display image
func (e *Entry) Image() string {
	if e.Flash != nil && e.Flash.Image != "" {
		return e.Flash.Image
	}
	return e.Item.DisplayImage()
}

// Remaining returns the stock left on the backing row
func (e *Entry) Remaining() int {
	return e.Item.Remaining
}

// CreateItemRequest represents the admin item form
type CreateItemRequest struct {
	Name          string `form:"name" json:"name"`
	CurrentPrice  int64  `form:"current_price" json:"current_price"`
	PreviousPrice int64  `form:"previous_price" json:"previous_price"`
	Remaining     int    `form:"remaining" json:"remaining"`
	Image         string `form:"image" json:"image"`
}

// SearchResult holds persisted and flash matches for a query
type SearchResult struct {
	Query      string            `json:"query"`
	Items      []Item            `json:"items"`
	FlashItems []FlashDescriptor `json:"flash_items"`
}

// ItemDetail is the product page view
type ItemDetail struct {
	Entry         *Entry   `json:"entry"`
	Reviews       []Review `json:"reviews"`
	AverageRating *float64 `json:"average_rating"`
	Similar       []Item   `json:"similar"`
}
