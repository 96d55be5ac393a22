// internal/pkg/email/service.go
package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/config"
)

// EmailService handles all email operations
type EmailService struct {
	config    *config.Config
	logger    logrus.FieldLogger
	templates map[string]*template.Template
}

// NewEmailService creates a new email service
func NewEmailService(cfg *config.Config, logger logrus.FieldLogger) (*EmailService, error) {
	service := &EmailService{
		config:    cfg,
		logger:    logger,
		templates: make(map[string]*template.Template),
	}

	for name, source := range templateSources {
		tmpl, err := template.New(name).Parse(source)
		if err != nil {
			return nil, fmt.Errorf("failed to parse email template %s: %w", name, err)
		}
		service.templates[name] = tmpl
	}

	return service, nil
}

// SendEmail sends an email using the configured provider
func (s *EmailService) SendEmail(ctx context.Context, email *Email) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	switch s.config.External.Email.Provider {
	case "smtp":
		return s.sendSMTPEmail(email)
	case "log":
		s.logger.WithFields(logrus.Fields{
			"to":      email.To,
			"subject": email.Subject,
			"type":    email.Type,
		}).Info("email delivery skipped, log provider configured")
		return nil
	default:
		return fmt.Errorf("unsupported email provider: %s", s.config.External.Email.Provider)
	}
}

// SendWelcomeEmail sends a welcome email to new customers
func (s *EmailService) SendWelcomeEmail(ctx context.Context, userEmail, userName string) error {
	data := GetBaseTemplateData(s.config.External.Email.FromName, userName, userEmail)

	htmlContent, err := s.renderTemplate("welcome", data)
	if err != nil {
		return fmt.Errorf("failed to render welcome email template: %w", err)
	}

	return s.SendEmail(ctx, &Email{
		To:          []string{userEmail},
		Subject:     fmt.Sprintf("Welcome to %s!", s.config.External.Email.FromName),
		HTMLContent: htmlContent,
		Type:        EmailTypeWelcome,
	})
}

// SendOrderStatusUpdateEmail notifies a customer that their order moved
func (s *EmailService) SendOrderStatusUpdateEmail(ctx context.Context, userEmail, userName string, orderID uint, status, comment string) error {
	data := OrderStatusUpdateData{
		EmailTemplateData: GetBaseTemplateData(s.config.External.Email.FromName, userName, userEmail),
		OrderID:           orderID,
		Status:            status,
		Comment:           comment,
	}

	htmlContent, err := s.renderTemplate("order_status_update", data)
	if err != nil {
		return fmt.Errorf("failed to render order status update template: %w", err)
	}

	return s.SendEmail(ctx, &Email{
		To:          []string{userEmail},
		Subject:     fmt.Sprintf("Order #%d - %s", orderID, status),
		HTMLContent: htmlContent,
		Type:        EmailTypeOrderStatusUpdate,
	})
}

// SendTestEmail sends a configuration check message
func (s *EmailService) SendTestEmail(ctx context.Context, to string) error {
	data := GetBaseTemplateData(s.config.External.Email.FromName, to, to)

	htmlContent, err := s.renderTemplate("test", data)
	if err != nil {
		return fmt.Errorf("failed to render test email template: %w", err)
	}

	return s.SendEmail(ctx, &Email{
		To:          []string{to},
		Subject:     fmt.Sprintf("%s test email", s.config.External.Email.FromName),
		HTMLContent: htmlContent,
		Type:        EmailTypeTest,
	})
}

// renderTemplate renders an email template with data
func (s *EmailService) renderTemplate(templateName string, data interface{}) (string, error) {
	tmpl, exists := s.templates[templateName]
	if !exists {
		return "", fmt.Errorf("template %s not found", templateName)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", templateName, err)
	}

	return buf.String(), nil
}
