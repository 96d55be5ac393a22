// internal/interfaces/http/handlers/wishlist.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/domain/wishlist"
)

// WishlistHandler handles wishlist endpoints
type WishlistHandler struct {
	wishlistService *wishlist.Service
	logger          logrus.FieldLogger
}

// NewWishlistHandler creates a new wishlist handler
func NewWishlistHandler(wishlistService *wishlist.Service, logger logrus.FieldLogger) *WishlistHandler {
	return &WishlistHandler{
		wishlistService: wishlistService,
		logger:          logger,
	}
}

// GetWishlist handles GET /wishlist
func (h *WishlistHandler) GetWishlist(c *gin.Context) {
	items, err := h.wishlistService.List(currentCustomerID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondOK(c, http.StatusOK, "Wishlist retrieved successfully", items)
}

// Toggle handles POST /wishlist/toggle/:id
func (h *WishlistHandler) Toggle(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	result, err := h.wishlistService.Toggle(currentCustomerID(c), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondOK(c, http.StatusOK, "Wishlist updated", gin.H{"status": result})
}

// AddToWishlist handles GET /add_to_wishlist/:id
func (h *WishlistHandler) AddToWishlist(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	added, err := h.wishlistService.Add(currentCustomerID(c), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	message := "Item already in wishlist"
	if added {
		message = "Item added to wishlist"
	}
	respondOK(c, http.StatusOK, message, gin.H{"added": added})
}

// RemoveFromWishlist handles GET /remove_wishlist/:id
func (h *WishlistHandler) RemoveFromWishlist(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.wishlistService.Remove(currentCustomerID(c), id); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item removed from wishlist",
	})
}
