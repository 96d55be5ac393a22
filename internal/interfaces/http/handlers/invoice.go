// internal/interfaces/http/handlers/invoice.go
package handlers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/domain/customer"
	"github.com/your-org/storefront/internal/domain/order"
	"github.com/your-org/storefront/internal/interfaces/http/middleware"
	"github.com/your-org/storefront/internal/pkg/apperr"
	"github.com/your-org/storefront/internal/pkg/pdf"
)

// InvoiceRenderer renders order invoices
type InvoiceRenderer interface {
	GenerateInvoice(o *order.Order, customer pdf.CustomerInfo) (*bytes.Buffer, error)
	RenderInvoiceHTML(o *order.Order, customer pdf.CustomerInfo) ([]byte, error)
}

// InvoiceHandler handles invoice-related endpoints
type InvoiceHandler struct {
	orderService    *order.Service
	customerService *customer.Service
	renderer        InvoiceRenderer
	logger          logrus.FieldLogger
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(orderService *order.Service, customerService *customer.Service, renderer InvoiceRenderer, logger logrus.FieldLogger) *InvoiceHandler {
	return &InvoiceHandler{
		orderService:    orderService,
		customerService: customerService,
		renderer:        renderer,
		logger:          logger,
	}
}

// GenerateInvoice handles GET /orders/:id/invoice. ?format=html returns the page without PDF conversion.
func (h *InvoiceHandler) GenerateInvoice(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	o, err := h.orderService.GetOrder(currentCustomerID(c), id, middleware.IsAdminFromContext(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	owner, err := h.customerService.GetByID(o.CustomerID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	billTo := pdf.CustomerInfo{Name: owner.Username, Email: owner.Email}

	if c.Query("format") == "html" {
		page, err := h.renderer.RenderInvoiceHTML(o, billTo)
		if err != nil {
			respondError(c, h.logger, apperr.Internal("render invoice", err))
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", page)
		return
	}

	buf, err := h.renderer.GenerateInvoice(o, billTo)
	if err != nil {
		respondError(c, h.logger, apperr.Internal("generate invoice", err))
		return
	}

	filename := fmt.Sprintf("%s.pdf", pdf.InvoiceNumber(o))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
