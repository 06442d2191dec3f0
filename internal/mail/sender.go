package mail

import "context"

// Message is a single outbound email.
type Message struct {
	From     string
	FromName string
	To       string
	ToName   string
	Subject  string
	HTMLBody string
	TextBody string
}

// Sender delivers transactional email. Delivery is best-effort; callers
// decide whether a failure is fatal for their flow.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}
