// internal/interfaces/http/middleware/auth.go
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/domain/customer"
	"github.com/your-org/storefront/internal/pkg/auth"
)

const (
	customerIDKey = "customer_id"
	customerKey   = "customer"
	isAdminKey    = "is_admin"
	sessionIDKey  = "session_id"
)

// LoginPath is where unauthenticated browsers are sent
const LoginPath = "/"

// CustomerLoader resolves a customer id to its account
type CustomerLoader interface {
	GetByID(id uint) (*customer.Customer, error)
}

// Authenticator resolves the session token on each request to a customer
type Authenticator struct {
	sessions  auth.SessionRegistry
	cookies   *auth.CookieStore
	jwt       *auth.JWTManager
	customers CustomerLoader
	logger    logrus.FieldLogger
}

// NewAuthenticator creates the session authenticator
func NewAuthenticator(sessions auth.SessionRegistry, cookies *auth.CookieStore, jwt *auth.JWTManager, customers CustomerLoader, logger logrus.FieldLogger) *Authenticator {
	return &Authenticator{
		sessions:  sessions,
		cookies:   cookies,
		jwt:       jwt,
		customers: customers,
		logger:    logger,
	}
}

// sessionID reads the session id from a bearer token, falling back to the session cookie
func (a *Authenticator) sessionID(c *gin.Context) string {
	if token := auth.ExtractTokenFromHeader(c.GetHeader("Authorization")); token != "" {
		claims, err := a.jwt.ValidateAccessToken(token)
		if err != nil {
			return ""
		}
		return claims.SessionID
	}
	return a.cookies.Load(c.Request)
}

// RequireAuth rejects requests without a live session
func (a *Authenticator) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := a.sessionID(c)
		if sid == "" {
			unauthenticated(c)
			return
		}

		customerID, err := a.sessions.Resolve(c.Request.Context(), sid)
		if err != nil {
			if !errors.Is(err, auth.ErrSessionNotFound) {
				a.logger.WithError(err).Error("failed to resolve session")
			}
			unauthenticated(c)
			return
		}

		account, err := a.customers.GetByID(customerID)
		if err != nil {
			unauthenticated(c)
			return
		}

		c.Set(customerIDKey, account.ID)
		c.Set(customerKey, account)
		c.Set(isAdminKey, account.IsAdmin)
		c.Set(sessionIDKey, sid)

		c.Next()
	}
}

// unauthenticated redirects browsers to the login page and answers API clients with 401
func unauthenticated(c *gin.Context) {
	if c.Request.Method == http.MethodGet && strings.Contains(c.GetHeader("Accept"), "text/html") {
		c.Redirect(http.StatusFound, LoginPath)
		c.Abort()
		return
	}

	c.JSON(http.StatusUnauthorized, gin.H{
		"error": "Authentication required",
	})
	c.Abort()
}

// AdminMiddleware ensures the customer is an admin. Must run after RequireAuth.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(customerIDKey); !exists {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
			})
			c.Abort()
			return
		}

		if !IsAdminFromContext(c) {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Admin access required",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetCustomerIDFromContext extracts the customer id from gin context
func GetCustomerIDFromContext(c *gin.Context) (uint, bool) {
	id, exists := c.Get(customerIDKey)
	if !exists {
		return 0, false
	}
	return id.(uint), true
}

// GetCustomerFromContext extracts the authenticated customer from gin context
func GetCustomerFromContext(c *gin.Context) (*customer.Customer, bool) {
	v, exists := c.Get(customerKey)
	if !exists {
		return nil, false
	}
	return v.(*customer.Customer), true
}

// GetSessionIDFromContext extracts the session id from gin context
func GetSessionIDFromContext(c *gin.Context) string {
	return c.GetString(sessionIDKey)
}

// IsAdminFromContext checks if the customer is an admin
func IsAdminFromContext(c *gin.Context) bool {
	return c.GetBool(isAdminKey)
}
