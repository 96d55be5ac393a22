// internal/interfaces/http/handlers/catalog.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/domain/catalog"
	"github.com/your-org/storefront/internal/domain/wishlist"
	"github.com/your-org/storefront/internal/pkg/apperr"
)

// CatalogHandler handles item listing, search and the product page
type CatalogHandler struct {
	catalogService  *catalog.Service
	wishlistService *wishlist.Service
	logger          logrus.FieldLogger
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *catalog.Service, wishlistService *wishlist.Service, logger logrus.FieldLogger) *CatalogHandler {
	return &CatalogHandler{
		catalogService:  catalogService,
		wishlistService: wishlistService,
		logger:          logger,
	}
}

// Storefront handles GET /amazon/
func (h *CatalogHandler) Storefront(c *gin.Context) {
	items, err := h.catalogService.ListItems()
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	for i := range items {
		items[i].Image = items[i].DisplayImage()
	}

	respondOK(c, http.StatusOK, "Items retrieved successfully", gin.H{
		"items":       items,
		"flash_items": h.catalogService.Flash().All(),
	})
}

// ListItems handles GET /shopitems/
func (h *CatalogHandler) ListItems(c *gin.Context) {
	items, err := h.catalogService.ListItems()
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondOK(c, http.StatusOK, "Items retrieved successfully", items)
}

// CreateItem handles POST /shopitems/ with an optional "image" file
func (h *CatalogHandler) CreateItem(c *gin.Context) {
	var req catalog.CreateItemRequest
	if !bind(c, &req) {
		return
	}

	var upload *catalog.ImageUpload
	if fh, err := c.FormFile("image"); err == nil {
		f, err := fh.Open()
		if err != nil {
			respondError(c, h.logger, apperr.Validation("Could not read uploaded image"))
			return
		}
		defer f.Close()

		upload = &catalog.ImageUpload{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Body:        f,
		}
		req.Image = ""
	}

	item, err := h.catalogService.AddItem(c.Request.Context(), &req, upload)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondOK(c, http.StatusCreated, "Item created successfully", item)
}

// ProductDetail handles GET /product/:id
func (h *CatalogHandler) ProductDetail(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	detail, err := h.catalogService.ItemDetail(id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	saved := false
	if !detail.Entry.IsFlash() {
		saved, err = h.wishlistService.IsSaved(currentCustomerID(c), detail.Entry.ItemID())
		if err != nil {
			respondError(c, h.logger, err)
			return
		}
	}

	respondOK(c, http.StatusOK, "Item retrieved successfully", gin.H{
		"detail": detail,
		"saved":  saved,
	})
}

// Search handles GET /search?query=
func (h *CatalogHandler) Search(c *gin.Context) {
	result, err := h.catalogService.Search(c.Query("query"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondOK(c, http.StatusOK, "Search completed", result)
}
