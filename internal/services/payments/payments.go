// Package payments creates payment intents through the payment
// processor.
package payments

import (
	"context"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
)

// CreateIntentParams are the inputs for a new payment intent.
type CreateIntentParams struct {
	Amount   int64
	Currency string
	Metadata map[string]string
}

// Intent is the subset of the processor's payment intent the handlers
// need: the client secret goes back to the front end, the ID is logged.
type Intent struct {
	ID           string
	ClientSecret string
}

// IntentCreator creates a payment intent.
type IntentCreator interface {
	CreateIntent(ctx context.Context, params CreateIntentParams) (*Intent, error)
}

// StripeClient creates payment intents through Stripe.
type StripeClient struct {
	api *client.API
}

// NewStripeClient creates a Stripe-backed intent creator.
func NewStripeClient(secretKey string) *StripeClient {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeClient{api: api}
}

// CreateIntent creates a payment intent with automatic payment methods
// enabled and the booking metadata attached.
func (s *StripeClient) CreateIntent(ctx context.Context, params CreateIntentParams) (*Intent, error) {
	piParams := &stripe.PaymentIntentParams{
		Params: stripe.Params{
			Context:  ctx,
			Metadata: params.Metadata,
		},
		Amount:   stripe.Int64(params.Amount),
		Currency: stripe.String(params.Currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}

	pi, err := s.api.PaymentIntents.New(piParams)
	if err != nil {
		return nil, err
	}

	return &Intent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
	}, nil
}
