// internal/domain/catalog/service.go
package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/pkg/apperr"
	"gorm.io/gorm"
)

const similarItemsLimit = 6

// ImageStore persists uploaded item images and returns the path to show
type ImageStore interface {
	Save(ctx context.Context, filename, contentType string, r io.Reader) (string, error)
}

// ImageUpload is an image attached to the item form
type ImageUpload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// Service handles catalog lookups, search and item administration
type Service struct {
	db     *gorm.DB
	flash  *FlashCatalog
	images ImageStore
	logger logrus.FieldLogger

	mu    sync.RWMutex
	links map[uint]uint // flash id -> item id
}

// NewService creates a new catalog service. images may be nil when uploads are disabled.
func NewService(db *gorm.DB, flash *FlashCatalog, images ImageStore, logger logrus.FieldLogger) *Service {
	return &Service{
		db:     db,
		flash:  flash,
		images: images,
		logger: logger,
		links:  make(map[uint]uint),
	}
}

// Flash returns the flash catalog
func (s *Service) Flash() *FlashCatalog {
	return s.flash
}

// Reconcile makes sure every flash product has a backing item row, matched by name
func (s *Service) Reconcile() error {
	created := 0
	for _, d := range s.flash.All() {
		_, isNew, err := s.linkFor(d)
		if err != nil {
			return err
		}
		if isNew {
			created++
		}
	}

	s.logger.WithFields(logrus.Fields{
		"flash_products": len(s.flash.All()),
		"created":        created,
	}).Info("flash catalog reconciled")
	return nil
}

// linkFor returns the item row backing d, creating it when missing
func (s *Service) linkFor(d FlashDescriptor) (Item, bool, error) {
	s.mu.RLock()
	itemID, linked := s.links[d.ID]
	s.mu.RUnlock()

	var item Item
	if linked {
		err := s.db.First(&item, itemID).Error
		if err == nil {
			return item, false, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return Item{}, false, fmt.Errorf("failed to load flash item %d: %w", d.ID, err)
		}
	}

	isNew := false
	err := s.db.Where("name = ?", d.Name).Order("id").First(&item).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		item = Item{
			Name:          d.Name,
			CurrentPrice:  d.Price,
			PreviousPrice: d.Price,
			Remaining:     d.Stock,
			Image:         d.Image,
		}
		if err := s.db.Create(&item).Error; err != nil {
			return Item{}, false, fmt.Errorf("failed to seed flash item %q: %w", d.Name, err)
		}
		isNew = true
	case err != nil:
		return Item{}, false, fmt.Errorf("failed to find flash item %q: %w", d.Name, err)
	}

	s.mu.Lock()
	s.links[d.ID] = item.ID
	s.mu.Unlock()

	return item, isNew, nil
}

// Lookup resolves a catalog id. Flash ids win over item ids.
func (s *Service) Lookup(id uint) (*Entry, error) {
	if d, ok := s.flash.Get(id); ok {
		item, _, err := s.linkFor(d)
		if err != nil {
			return nil, apperr.Internal("resolve flash item", err)
		}
		return &Entry{Kind: KindSeeded, ID: id, Item: item, Flash: &d}, nil
	}

	var item Item
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("item")
		}
		return nil, apperr.Internal("load item", err)
	}

	// A reconciled row reached by its own id still behaves as the flash product
	d, backs, err := s.backingFlash(item)
	if err != nil {
		return nil, apperr.Internal("resolve flash item", err)
	}
	if backs {
		return &Entry{Kind: KindSeeded, ID: d.ID, Item: item, Flash: &d}, nil
	}

	return &Entry{Kind: KindPersisted, ID: item.ID, Item: item}, nil
}

// backingFlash reports whether item is the row linked to a flash product.
// Other rows that merely share a flash name are ordinary items.
func (s *Service) backingFlash(item Item) (FlashDescriptor, bool, error) {
	d, ok := s.flash.ByName(item.Name)
	if !ok {
		return FlashDescriptor{}, false, nil
	}
	backing, _, err := s.linkFor(d)
	if err != nil {
		return FlashDescriptor{}, false, err
	}
	return d, backing.ID == item.ID, nil
}

// ListItems returns every persisted item in the order it was added
func (s *Service) ListItems() ([]Item, error) {
	var items []Item
	if err := s.db.Order("date_added ASC, id ASC").Find(&items).Error; err != nil {
		return nil, apperr.Internal("list items", err)
	}
	return items, nil
}

// AddItem validates and stores a new item
func (s *Service) AddItem(ctx context.Context, req *CreateItemRequest, upload *ImageUpload) (*Item, error) {
	name := strings.TrimSpace(req.Name)
	switch {
	case name == "":
		return nil, apperr.Validation("Item name is required")
	case req.CurrentPrice < 0 || req.PreviousPrice < 0:
		return nil, apperr.Validation("Prices cannot be negative")
	case req.Remaining < 0:
		return nil, apperr.Validation("Remaining stock cannot be negative")
	}

	image := strings.TrimSpace(req.Image)
	if upload != nil {
		if s.images == nil {
			return nil, apperr.NotAllowed("Image uploads are not configured")
		}
		path, err := s.images.Save(ctx, upload.Filename, upload.ContentType, upload.Body)
		if err != nil {
			return nil, apperr.Internal("store item image", err)
		}
		image = path
	}

	item := Item{
		Name:          name,
		CurrentPrice:  req.CurrentPrice,
		PreviousPrice: req.PreviousPrice,
		Remaining:     req.Remaining,
		Image:         image,
	}
	if err := s.db.Create(&item).Error; err != nil {
		return nil, apperr.Internal("create item", err)
	}

	s.logger.WithFields(logrus.Fields{"item_id": item.ID, "name": item.Name}).Info("item created")
	return &item, nil
}

// Search matches item and flash names case-insensitively. Rows linked to flash
// products are only reported as flash items.
func (s *Service) Search(query string) (*SearchResult, error) {
	query = strings.TrimSpace(query)
	pattern := "%" + escapeLike(strings.ToLower(query)) + "%"

	var rows []Item
	err := s.db.Where(`LOWER(name) LIKE ? ESCAPE '\'`, pattern).
		Order("date_added ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, apperr.Internal("search items", err)
	}

	items := make([]Item, 0, len(rows))
	for _, item := range rows {
		_, backs, err := s.backingFlash(item)
		if err != nil {
			return nil, apperr.Internal("resolve flash item", err)
		}
		if backs {
			continue
		}
		items = append(items, item)
	}

	return &SearchResult{
		Query:      query,
		Items:      items,
		FlashItems: s.flash.Search(query),
	}, nil
}

// ItemDetail builds the product page for a catalog id
func (s *Service) ItemDetail(id uint) (*ItemDetail, error) {
	entry, err := s.Lookup(id)
	if err != nil {
		return nil, err
	}

	detail := &ItemDetail{
		Entry:   entry,
		Reviews: []Review{},
		Similar: []Item{},
	}
	if entry.IsFlash() {
		return detail, nil
	}

	entry.Item.Image = entry.Item.DisplayImage()

	reviews, avg, err := s.ItemReviews(entry.ItemID())
	if err != nil {
		return nil, err
	}
	detail.Reviews = reviews
	detail.AverageRating = avg

	if err := s.db.Where("id <> ?", entry.ItemID()).
		Order("date_added ASC, id ASC").
		Limit(similarItemsLimit).
		Find(&detail.Similar).Error; err != nil {
		return nil, apperr.Internal("load similar items", err)
	}
	for i := range detail.Similar {
		detail.Similar[i].Image = detail.Similar[i].DisplayImage()
	}

	return detail, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
