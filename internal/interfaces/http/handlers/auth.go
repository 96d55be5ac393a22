// internal/interfaces/http/handlers/auth.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/domain/customer"
	"github.com/your-org/storefront/internal/interfaces/http/middleware"
	"github.com/your-org/storefront/internal/pkg/apperr"
	"github.com/your-org/storefront/internal/pkg/auth"
)

// AuthHandler handles signup, login and logout
type AuthHandler struct {
	customerService *customer.Service
	sessions        auth.SessionRegistry
	cookies         *auth.CookieStore
	jwtManager      *auth.JWTManager
	config          *config.Config
	logger          logrus.FieldLogger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(customerService *customer.Service, sessions auth.SessionRegistry, cookies *auth.CookieStore, jwtManager *auth.JWTManager, cfg *config.Config, logger logrus.FieldLogger) *AuthHandler {
	return &AuthHandler{
		customerService: customerService,
		sessions:        sessions,
		cookies:         cookies,
		jwtManager:      jwtManager,
		config:          cfg,
		logger:          logger,
	}
}

// LoginPage handles GET /
func (h *AuthHandler) LoginPage(c *gin.Context) {
	respondOK(c, http.StatusOK, "Please log in", gin.H{
		"fields": []string{"email", "password"},
		"signup": "/signup/",
	})
}

// Login handles POST /
func (h *AuthHandler) Login(c *gin.Context) {
	var req customer.LoginRequest
	if !bind(c, &req) {
		return
	}

	account, err := h.customerService.Authenticate(req.Email, req.Password)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	token, err := h.startSession(c, account)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondOK(c, http.StatusOK, "Login successful", gin.H{
		"customer":     account,
		"access_token": token,
		"token_type":   "Bearer",
		"expires_in":   int(h.config.JWT.AccessTokenExpiry.Seconds()),
	})
}

// SignupPage handles GET /signup/
func (h *AuthHandler) SignupPage(c *gin.Context) {
	respondOK(c, http.StatusOK, "Create an account", gin.H{
		"fields": []string{"username", "email", "password1", "password2"},
	})
}

// Signup handles POST /signup/
func (h *AuthHandler) Signup(c *gin.Context) {
	var req customer.RegisterRequest
	if !bind(c, &req) {
		return
	}

	account, err := h.customerService.Register(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondOK(c, http.StatusCreated, "Account created successfully", account)
}

// Logout handles GET /logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if sid := middleware.GetSessionIDFromContext(c); sid != "" {
		if err := h.sessions.Revoke(c.Request.Context(), sid); err != nil {
			respondError(c, h.logger, apperr.Internal("revoke session", err))
			return
		}
	}
	if err := h.cookies.Clear(c.Writer, c.Request); err != nil {
		h.logger.WithError(err).Warn("failed to clear session cookie")
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}

// GetProfile handles GET /profile
func (h *AuthHandler) GetProfile(c *gin.Context) {
	account, ok := middleware.GetCustomerFromContext(c)
	if !ok {
		respondError(c, h.logger, apperr.Auth("Authentication required"))
		return
	}

	respondOK(c, http.StatusOK, "Profile retrieved successfully", account)
}

// startSession registers a session, sets the cookie and returns a bearer token for the same session
func (h *AuthHandler) startSession(c *gin.Context, account *customer.Customer) (string, error) {
	sid, err := h.sessions.Create(c.Request.Context(), account.ID, h.config.Session.MaxAge)
	if err != nil {
		return "", apperr.Internal("create session", err)
	}

	if err := h.cookies.Save(c.Writer, c.Request, sid); err != nil {
		return "", apperr.Internal("save session cookie", err)
	}

	token, err := h.jwtManager.GenerateAccessToken(account.ID, account.Email, account.IsAdmin, sid)
	if err != nil {
		return "", apperr.Internal("sign access token", err)
	}
	return token, nil
}
