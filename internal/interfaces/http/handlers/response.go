// internal/interfaces/http/handlers/response.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/interfaces/http/middleware"
	"github.com/your-org/storefront/internal/pkg/apperr"
)

// respondError translates a domain error into the JSON error envelope
func respondError(c *gin.Context, logger logrus.FieldLogger, err error) {
	status := apperr.HTTPStatus(err)
	message := apperr.PublicMessage(err)

	if apperr.Is(err, apperr.KindEmpty) {
		c.JSON(http.StatusOK, gin.H{
			"message": message,
			"data":    nil,
		})
		return
	}

	if status >= http.StatusInternalServerError {
		logger.WithError(err).WithFields(logrus.Fields{
			"path":       c.FullPath(),
			"request_id": c.GetString("request_id"),
		}).Error("request failed")
	}
	_ = c.Error(err)

	c.JSON(status, gin.H{
		"error": message,
	})
}

// respondOK writes the success envelope
func respondOK(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, gin.H{
		"message": message,
		"data":    data,
	})
}

// idParam parses a positive numeric path parameter
func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid " + name,
		})
		return 0, false
	}
	return uint(id), true
}

// bind decodes a JSON, urlencoded or multipart body into req
func bind(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBind(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return false
	}
	return true
}

// currentCustomerID returns the authenticated customer id set by the auth middleware
func currentCustomerID(c *gin.Context) uint {
	id, _ := middleware.GetCustomerIDFromContext(c)
	return id
}
