// internal/domain/payment/stripe.go
package payment

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v80"
	"github.com/stripe/stripe-go/v80/client"
)

// IntentCreator creates a remote card payment intent and returns its client secret
type IntentCreator interface {
	CreateIntent(ctx context.Context, amount int64, currency string, metadata map[string]string) (string, error)
}

// StripeIntents creates payment intents through the Stripe API
type StripeIntents struct {
	api *client.API
}

// NewStripeIntents creates a Stripe client for the given secret key
func NewStripeIntents(secretKey string) *StripeIntents {
	return &StripeIntents{api: client.New(secretKey, nil)}
}

// CreateIntent creates a payment intent. amount is in the currency's minor unit.
func (s *StripeIntents) CreateIntent(ctx context.Context, amount int64, currency string, metadata map[string]string) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	intent, err := s.api.PaymentIntents.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create stripe payment intent: %w", err)
	}
	return intent.ClientSecret, nil
}
