// internal/interfaces/http/handlers/payment.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/domain/payment"
)

// PaymentHandler handles the payment page and payment intents
type PaymentHandler struct {
	paymentService *payment.Service
	logger         logrus.FieldLogger
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService *payment.Service, logger logrus.FieldLogger) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		logger:         logger,
	}
}

// PaymentPage handles GET/POST /payment
func (h *PaymentHandler) PaymentPage(c *gin.Context) {
	summary, err := h.paymentService.Summary(currentCustomerID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondOK(c, http.StatusOK, "Payment summary", summary)
}

// CreateCardIntent handles POST /create-card-intent
func (h *PaymentHandler) CreateCardIntent(c *gin.Context) {
	intent, err := h.paymentService.CreateCardIntent(c.Request.Context(), currentCustomerID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondOK(c, http.StatusOK, "Payment intent created", intent)
}

// FakeUPI handles POST /fake-upi
func (h *PaymentHandler) FakeUPI(c *gin.Context) {
	respondOK(c, http.StatusOK, "Payment successful", h.paymentService.Simulate(payment.MethodUPI))
}

// FakeGPay handles POST /fake-gpay
func (h *PaymentHandler) FakeGPay(c *gin.Context) {
	respondOK(c, http.StatusOK, "Payment successful", h.paymentService.Simulate(payment.MethodGPay))
}
