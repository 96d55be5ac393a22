// internal/interfaces/http/handlers/review.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/domain/catalog"
)

// ReviewHandler handles review submission
type ReviewHandler struct {
	catalogService *catalog.Service
	logger         logrus.FieldLogger
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(catalogService *catalog.Service, logger logrus.FieldLogger) *ReviewHandler {
	return &ReviewHandler{
		catalogService: catalogService,
		logger:         logger,
	}
}

// CreateReview handles POST /product/:id/review
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req catalog.ReviewRequest
	if !bind(c, &req) {
		return
	}

	review, err := h.catalogService.AddReview(currentCustomerID(c), id, &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondOK(c, http.StatusCreated, "Review submitted successfully", review)
}
