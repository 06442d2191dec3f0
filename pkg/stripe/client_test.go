package stripe

import (
	"context"
	"errors"
	"testing"

	"github.com/stripe/stripe-go/v84"

	"github.com/fitgear/storefront-backend/pkg/config"
	pkgerrors "github.com/fitgear/storefront-backend/pkg/errors"
)

func TestNewClientValidatesKeyAgainstEnv(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		cfg     config.StripeConfig
		wantErr bool
	}{
		{"test key in test env", config.StripeConfig{APIKey: "sk_test_123", Env: "test"}, false},
		{"live key in test env", config.StripeConfig{APIKey: "sk_live_123", Env: "test"}, true},
		{"live key in live env", config.StripeConfig{APIKey: "sk_live_123", Env: "live"}, false},
		{"missing key", config.StripeConfig{Env: "test"}, true},
		{"bogus env", config.StripeConfig{APIKey: "sk_test_123", Env: "staging"}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewClient(context.Background(), tc.cfg, nil)
			if tc.wantErr && err == nil {
				t.Fatal("expected error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestTranslateChargeError(t *testing.T) {
	t.Parallel()

	cardErr := &stripe.Error{Type: stripe.ErrorTypeCard, DeclineCode: stripe.DeclineCodeInsufficientFunds}
	if typed := pkgerrors.As(translateChargeError(cardErr)); typed == nil || typed.Code() != pkgerrors.CodePaymentDeclined {
		t.Fatalf("card error not mapped to decline: %v", typed)
	}

	apiErr := &stripe.Error{Type: stripe.ErrorTypeAPI}
	if typed := pkgerrors.As(translateChargeError(apiErr)); typed == nil || typed.Code() != pkgerrors.CodeGateway {
		t.Fatalf("api error not mapped to gateway: %v", typed)
	}

	if typed := pkgerrors.As(translateChargeError(errors.New("dial tcp: timeout"))); typed == nil || typed.Code() != pkgerrors.CodeGateway {
		t.Fatalf("transport error not mapped to gateway: %v", typed)
	}
}

func TestChargeRejectsInvalidInput(t *testing.T) {
	t.Parallel()

	client := &Client{currency: "usd"}

	_, err := client.Charge(context.Background(), ChargeRequest{AmountCents: 0, SourceToken: "tok_visa"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("zero amount not rejected: %v", err)
	}

	_, err = client.Charge(context.Background(), ChargeRequest{AmountCents: 100})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("missing token not rejected: %v", err)
	}
}
