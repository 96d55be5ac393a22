// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/domain/cart"
)

// CartHandler handles cart endpoints
type CartHandler struct {
	cartService *cart.Service
	logger      logrus.FieldLogger
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *cart.Service, logger logrus.FieldLogger) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		logger:      logger,
	}
}

// GetCart handles GET /cart/
func (h *CartHandler) GetCart(c *gin.Context) {
	view, err := h.cartService.View(currentCustomerID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondOK(c, http.StatusOK, "Cart retrieved successfully", view)
}

// AddToCart handles GET /add_to_cart/:id where id is a catalog id
func (h *CartHandler) AddToCart(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	line, err := h.cartService.Add(currentCustomerID(c), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondOK(c, http.StatusOK, "Item added to cart successfully", line)
}

// IncreaseQuantity handles GET /increase_qty/:id where id is a cart line id
func (h *CartHandler) IncreaseQuantity(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	line, err := h.cartService.Increase(currentCustomerID(c), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondOK(c, http.StatusOK, "Cart item updated successfully", line)
}

// DecreaseQuantity handles GET /decrease_qty/:id. The line is removed when it reaches zero.
func (h *CartHandler) DecreaseQuantity(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	line, err := h.cartService.Decrease(currentCustomerID(c), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	if line == nil {
		respondOK(c, http.StatusOK, "Item removed from cart", nil)
		return
	}
	respondOK(c, http.StatusOK, "Cart item updated successfully", line)
}

// UpdateCartItem handles POST /updatecart/:id
func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req cart.UpdateQuantityRequest
	if !bind(c, &req) {
		return
	}

	line, err := h.cartService.SetQuantity(currentCustomerID(c), id, req.Quantity)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondOK(c, http.StatusOK, "Cart item updated successfully", line)
}

// RemoveFromCart handles POST /remove/:id
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.cartService.Remove(currentCustomerID(c), id); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item removed from cart",
	})
}
