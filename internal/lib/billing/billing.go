// Package billing wraps the Stripe PaymentIntent API used to capture salary payments.
package billing

import (
	"context"
	"errors"
	"fmt"

	"github.com/employetica/server/internal/config"
	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/paymentintent"
	"github.com/stripe/stripe-go/v75/webhook"
)

// ErrInvalidAmount is returned for non-positive amounts.
var ErrInvalidAmount = errors.New("amount must be positive")

// IntentRequest describes a PaymentIntent to create.
type IntentRequest struct {
	// Amount is in the currency's smallest unit (cents for usd).
	Amount         int64
	Currency       string
	Metadata       map[string]string
	IdempotencyKey string
}

// Client creates PaymentIntents and verifies webhook payloads.
type Client struct {
	apiKey        string
	webhookSecret string
	currency      string
}

// NewClient builds a Stripe client from the integration config.
func NewClient(cfg *config.IntegrationConfig) *Client {
	stripe.Key = cfg.StripeSecretKey
	return &Client{
		apiKey:        cfg.StripeSecretKey,
		webhookSecret: cfg.StripeWebhookSecret,
		currency:      cfg.Currency,
	}
}

// Currency is the default currency for new intents.
func (c *Client) Currency() string {
	return c.currency
}

// CreatePaymentIntent creates a PaymentIntent and returns it.
func (c *Client) CreatePaymentIntent(ctx context.Context, req IntentRequest) (*stripe.PaymentIntent, error) {
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	currency := req.Currency
	if currency == "" {
		currency = c.currency
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(req.Amount),
		Currency: stripe.String(currency),
	}
	params.Context = ctx
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}
	if req.IdempotencyKey != "" {
		params.SetIdempotencyKey(req.IdempotencyKey)
	}

	intent, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	return intent, nil
}

// ConstructEvent verifies the Stripe-Signature header and decodes the event.
// Events sent with an endpoint API version other than the library's are
// accepted; only the payment intent id and amount are read from them.
func (c *Client) ConstructEvent(payload []byte, signature string) (stripe.Event, error) {
	return webhook.ConstructEventWithOptions(payload, signature, c.webhookSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
}

// WebhookEnabled reports whether a webhook signing secret is configured.
func (c *Client) WebhookEnabled() bool {
	return c.webhookSecret != ""
}

// ToMinorUnits converts a decimal amount (e.g. dollars) to the smallest
// currency unit, rounding half away from zero.
func ToMinorUnits(amount float64) (int64, error) {
	d := decimal.NewFromFloat(amount)
	if !d.IsPositive() {
		return 0, ErrInvalidAmount
	}
	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart(), nil
}

// FromMinorUnits converts cents back into a decimal amount.
func FromMinorUnits(amount int64) float64 {
	f, _ := decimal.New(amount, -2).Float64()
	return f
}
