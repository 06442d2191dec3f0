package mail

import (
	"context"
	"fmt"

	"github.com/fitgear/storefront-backend/pkg/config"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendgridSender delivers email through the SendGrid v3 API.
type SendgridSender struct {
	client      *sendgrid.Client
	defaultFrom string
}

// NewSendgridSender builds a sender from config. The API key is required.
func NewSendgridSender(cfg config.SendgridConfig) (*SendgridSender, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("sendgrid api key is required")
	}
	if cfg.DefaultFrom == "" {
		return nil, fmt.Errorf("sendgrid default from address is required")
	}
	return &SendgridSender{
		client:      sendgrid.NewSendClient(cfg.APIKey),
		defaultFrom: cfg.DefaultFrom,
	}, nil
}

func (s *SendgridSender) Send(ctx context.Context, msg Message) error {
	from := msg.From
	if from == "" {
		from = s.defaultFrom
	}
	if msg.To == "" {
		return fmt.Errorf("recipient is required")
	}

	email := sgmail.NewSingleEmail(
		sgmail.NewEmail(msg.FromName, from),
		msg.Subject,
		sgmail.NewEmail(msg.ToName, msg.To),
		msg.TextBody,
		msg.HTMLBody,
	)

	resp, err := s.client.SendWithContext(ctx, email)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send: status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}
