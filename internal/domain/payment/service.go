// internal/domain/payment/service.go
package payment

import (
	"context"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/pkg/apperr"
)

// Method is a way to pay offered on the payment page
type Method string

const (
	MethodCard Method = "card"
	MethodUPI  Method = "upi"
	MethodGPay Method = "gpay"
)

// minorUnitsPerRupee converts whole rupee prices to paise
const minorUnitsPerRupee = 100

// Summary is the payment page view
type Summary struct {
	Cart           *cart.View `json:"cart"`
	Currency       string     `json:"currency"`
	PublishableKey string     `json:"publishable_key,omitempty"`
	Methods        []Method   `json:"methods"`
}

// CardIntent is returned to the browser to confirm a card payment
type CardIntent struct {
	ClientSecret string `json:"client_secret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
}

// SimulatedResult is the outcome of a simulated wallet payment
type SimulatedResult struct {
	Status string `json:"status"`
	Method Method `json:"method"`
}

// Service handles the payment page and payment intents
type Service struct {
	cart    *cart.Service
	intents IntentCreator
	config  *config.Config
	logger  logrus.FieldLogger
}

// NewService creates a new payment service. intents may be nil when card payments are not configured.
func NewService(cartService *cart.Service, intents IntentCreator, cfg *config.Config, logger logrus.FieldLogger) *Service {
	return &Service{
		cart:    cartService,
		intents: intents,
		config:  cfg,
		logger:  logger,
	}
}

// Summary returns the cart and the methods available to pay for it
func (s *Service) Summary(customerID uint) (*Summary, error) {
	view, err := s.cart.View(customerID)
	if err != nil {
		return nil, err
	}

	methods := []Method{MethodUPI, MethodGPay}
	if s.intents != nil {
		methods = append([]Method{MethodCard}, methods...)
	}

	return &Summary{
		Cart:           view,
		Currency:       s.config.External.Stripe.Currency,
		PublishableKey: s.config.External.Stripe.PublishableKey,
		Methods:        methods,
	}, nil
}

// CreateCardIntent creates a card payment intent for the cart total
func (s *Service) CreateCardIntent(ctx context.Context, customerID uint) (*CardIntent, error) {
	if s.intents == nil {
		return nil, apperr.NotAllowed("Card payments are not configured")
	}

	view, err := s.cart.View(customerID)
	if err != nil {
		return nil, err
	}
	if view.IsEmpty() {
		return nil, apperr.Empty("Your cart is empty")
	}

	amount := view.Total * minorUnitsPerRupee
	currency := s.config.External.Stripe.Currency

	secret, err := s.intents.CreateIntent(ctx, amount, currency, map[string]string{
		"customer_id": strconv.FormatUint(uint64(customerID), 10),
	})
	if err != nil {
		return nil, apperr.Internal("create payment intent", err)
	}

	s.logger.WithFields(logrus.Fields{
		"customer_id": customerID,
		"amount":      amount,
		"currency":    currency,
	}).Info("card payment intent created")

	return &CardIntent{ClientSecret: secret, Amount: amount, Currency: currency}, nil
}

// Simulate reports success for a simulated wallet payment
func (s *Service) Simulate(method Method) *SimulatedResult {
	s.logger.WithField("method", method).Info("simulated payment accepted")
	return &SimulatedResult{Status: "success", Method: method}
}
