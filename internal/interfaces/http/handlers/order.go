// internal/interfaces/http/handlers/order.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/domain/order"
	"github.com/your-org/storefront/internal/interfaces/http/middleware"
)

// OrderHandler handles checkout and order endpoints
type OrderHandler struct {
	orderService *order.Service
	logger       logrus.FieldLogger
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *order.Service, logger logrus.FieldLogger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		logger:       logger,
	}
}

// Checkout handles GET /success: the cart becomes an order
func (h *OrderHandler) Checkout(c *gin.Context) {
	o, err := h.orderService.Checkout(currentCustomerID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondOK(c, http.StatusCreated, "Order placed successfully", o)
}

// GetUserOrders handles GET /myorders and /orders
func (h *OrderHandler) GetUserOrders(c *gin.Context) {
	orders, err := h.orderService.ListOrders(currentCustomerID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondOK(c, http.StatusOK, "Orders retrieved successfully", orders)
}

// GetOrder handles GET /orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	o, err := h.orderService.GetOrder(currentCustomerID(c), id, middleware.IsAdminFromContext(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondOK(c, http.StatusOK, "Order retrieved successfully", o)
}

// GetAllOrders handles GET /admin_orders
func (h *OrderHandler) GetAllOrders(c *gin.Context) {
	orders, err := h.orderService.ListAllOrders()
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondOK(c, http.StatusOK, "Orders retrieved successfully", gin.H{
		"orders":   orders,
		"statuses": order.Statuses,
	})
}

// UpdateOrderStatus handles POST /update_order_status/:id
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req order.UpdateStatusRequest
	if !bind(c, &req) {
		return
	}

	o, err := h.orderService.SetStatus(c.Request.Context(), id, req.Status, currentCustomerID(c), req.Comment)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondOK(c, http.StatusOK, "Order status updated successfully", o)
}
