package stripe

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v84"

	"github.com/fitgear/storefront-backend/pkg/config"
	pkgerrors "github.com/fitgear/storefront-backend/pkg/errors"
	"github.com/fitgear/storefront-backend/pkg/logger"
)

const (
	testEnv = "test"
	liveEnv = "live"
)

var (
	errAPIKeyRequired   = errors.New("stripe api key is required")
	errInvalidStripeEnv = fmt.Errorf("stripe environment must be %q or %q", testEnv, liveEnv)
)

// ChargeRequest carries the server-computed amount and the client's one-time
// payment source token.
type ChargeRequest struct {
	AmountCents int
	Currency    string
	SourceToken string
	Description string
}

// ChargeResult reports what the gateway actually captured.
type ChargeResult struct {
	ID          string
	AmountCents int
}

// Client wraps Stripe's API client plus env-specific metadata.
type Client struct {
	api         *stripe.Client
	environment string
	currency    string
}

// NewClient initializes Stripe once with the configured secrets and env.
func NewClient(ctx context.Context, cfg config.StripeConfig, logg *logger.Logger) (*Client, error) {
	env, err := normalizeEnv(cfg.Environment())
	if err != nil {
		return nil, err
	}

	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errAPIKeyRequired
	}

	if err := validateAPIKey(env, apiKey); err != nil {
		return nil, err
	}

	api := stripe.NewClient(apiKey)

	if logg != nil {
		logg.Info(ctx, fmt.Sprintf("stripe client initialized (%s)", env))
	}

	return &Client{
		api:         api,
		environment: env,
		currency:    normalizeCurrency(cfg.Currency),
	}, nil
}

// Charge submits a one-time charge against the provided source token. Card
// declines map to PAYMENT_DECLINED, everything else to GATEWAY_ERROR.
func (c *Client) Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error) {
	if req.AmountCents <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "charge amount must be positive")
	}
	if strings.TrimSpace(req.SourceToken) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment token is required")
	}

	currency := normalizeCurrency(req.Currency)
	if currency == "" {
		currency = c.currency
	}

	params := &stripe.ChargeCreateParams{
		Amount:   stripe.Int64(int64(req.AmountCents)),
		Currency: stripe.String(currency),
		Source:   &stripe.PaymentSourceSourceParams{Token: stripe.String(req.SourceToken)},
	}
	if req.Description != "" {
		params.Description = stripe.String(req.Description)
	}

	charge, err := c.api.V1Charges.Create(ctx, params)
	if err != nil {
		return nil, translateChargeError(err)
	}

	return &ChargeResult{
		ID:          charge.ID,
		AmountCents: int(charge.Amount),
	}, nil
}

// Environment reports the normalized Stripe environment in use.
func (c *Client) Environment() string {
	if c == nil {
		return ""
	}
	return c.environment
}

func translateChargeError(err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		if stripeErr.Type == stripe.ErrorTypeCard {
			declined := pkgerrors.Wrap(pkgerrors.CodePaymentDeclined, err, "payment was declined")
			if stripeErr.DeclineCode != "" {
				declined = declined.WithDetails(map[string]any{"decline_code": string(stripeErr.DeclineCode)})
			}
			return declined
		}
		return pkgerrors.Wrap(pkgerrors.CodeGateway, err, "payment gateway rejected the charge")
	}
	return pkgerrors.Wrap(pkgerrors.CodeGateway, err, "payment gateway unreachable")
}

func normalizeEnv(raw string) (string, error) {
	env := strings.TrimSpace(strings.ToLower(raw))
	if env == "" {
		env = testEnv
	}
	switch env {
	case testEnv, liveEnv:
		return env, nil
	default:
		return "", errInvalidStripeEnv
	}
}

func normalizeCurrency(raw string) string {
	return strings.TrimSpace(strings.ToLower(raw))
}

func validateAPIKey(env, key string) error {
	switch env {
	case testEnv:
		if strings.HasPrefix(key, "sk_test") || strings.HasPrefix(key, "rk_test") {
			return nil
		}
		return fmt.Errorf("stripe environment %q requires a test secret key (sk_test/rk_test)", testEnv)
	case liveEnv:
		if strings.HasPrefix(key, "sk_live") || strings.HasPrefix(key, "rk_live") {
			return nil
		}
		return fmt.Errorf("stripe environment %q requires a live secret key (sk_live/rk_live)", liveEnv)
	default:
		return errInvalidStripeEnv
	}
}
