// internal/domain/customer/service.go
package customer

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/pkg/apperr"
	"github.com/your-org/storefront/internal/pkg/auth"
	"gorm.io/gorm"
)

const (
	minUsernameLength = 3
	minEmailLength    = 4
)

// WelcomeMailer delivers the signup welcome message
type WelcomeMailer interface {
	SendWelcomeEmail(ctx context.Context, userEmail, userName string) error
}

// Service handles customer accounts and credentials
type Service struct {
	db              *gorm.DB
	passwordManager *auth.PasswordManager
	mailer          WelcomeMailer
	logger          logrus.FieldLogger
}

// NewService creates a new customer service. mailer may be nil.
func NewService(db *gorm.DB, passwordManager *auth.PasswordManager, mailer WelcomeMailer, logger logrus.FieldLogger) *Service {
	return &Service{
		db:              db,
		passwordManager: passwordManager,
		mailer:          mailer,
		logger:          logger,
	}
}

// Register creates a new customer after validating the signup form
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*Customer, error) {
	username := strings.TrimSpace(req.Username)
	email := normalizeEmail(req.Email)

	if err := validateSignup(username, email, req.Password, req.ConfirmPassword); err != nil {
		return nil, err
	}
	if err := s.passwordManager.ValidatePassword(req.Password); err != nil {
		return nil, apperr.Validation("%s", capitalize(err.Error()))
	}

	var count int64
	if err := s.db.Model(&Customer{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, apperr.Internal("check existing email", err)
	}
	if count > 0 {
		return nil, apperr.Validation("Account with this email already exists")
	}

	hashedPassword, err := s.passwordManager.HashPassword(req.Password)
	if err != nil {
		return nil, apperr.Internal("hash password", err)
	}

	customer := Customer{
		Username: username,
		Email:    email,
		Password: hashedPassword,
	}

	if err := s.db.Create(&customer).Error; err != nil {
		// The unique index catches a concurrent signup that passed the count check
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Validation("Account with this email already exists")
		}
		return nil, apperr.Internal("create customer", err)
	}

	if s.mailer != nil {
		if err := s.mailer.SendWelcomeEmail(ctx, customer.Email, customer.Username); err != nil {
			s.logger.WithError(err).WithField("customer_id", customer.ID).Warn("failed to send welcome email")
		}
	}

	s.logger.WithField("customer_id", customer.ID).Info("customer registered")
	return &customer, nil
}

// Authenticate verifies credentials and records the login time
func (s *Service) Authenticate(email, password string) (*Customer, error) {
	var customer Customer
	err := s.db.Where("email = ?", normalizeEmail(email)).First(&customer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Auth("Wrong email or password")
		}
		return nil, apperr.Internal("load customer", err)
	}

	if !s.passwordManager.VerifyPassword(customer.Password, password) {
		return nil, apperr.Auth("Wrong email or password")
	}

	now := time.Now().UTC()
	if err := s.db.Model(&customer).Update("last_login_at", now).Error; err != nil {
		s.logger.WithError(err).WithField("customer_id", customer.ID).Warn("failed to update last login")
	}
	customer.LastLoginAt = &now

	return &customer, nil
}

// GetByID loads a customer
func (s *Service) GetByID(id uint) (*Customer, error) {
	var customer Customer
	if err := s.db.First(&customer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("customer")
		}
		return nil, apperr.Internal("load customer", err)
	}
	return &customer, nil
}

// EnsureAdmin creates an admin account, or promotes the existing account with that email
func (s *Service) EnsureAdmin(username, email, password string) (*Customer, error) {
	email = normalizeEmail(email)

	var customer Customer
	err := s.db.Where("email = ?", email).First(&customer).Error
	switch {
	case err == nil:
		if customer.IsAdmin {
			return &customer, nil
		}
		if err := s.db.Model(&customer).Update("is_admin", true).Error; err != nil {
			return nil, fmt.Errorf("failed to promote customer: %w", err)
		}
		customer.IsAdmin = true
		return &customer, nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("failed to look up customer: %w", err)
	}

	if err := validateSignup(username, email, password, password); err != nil {
		return nil, err
	}

	hashedPassword, err := s.passwordManager.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	customer = Customer{
		Username: username,
		Email:    email,
		Password: hashedPassword,
		IsAdmin:  true,
	}
	if err := s.db.Create(&customer).Error; err != nil {
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}

	return &customer, nil
}

func validateSignup(username, email, password, confirm string) error {
	if len(username) < minUsernameLength {
		return apperr.Validation("Username must be at least %d characters", minUsernameLength)
	}
	if len(email) < minEmailLength {
		return apperr.Validation("Email must be at least %d characters", minEmailLength)
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return apperr.Validation("Email address is not valid")
	}
	if password != confirm {
		return apperr.Validation("Passwords do not match")
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
