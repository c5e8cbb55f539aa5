package mailer

import (
	"context"
)

// Message is a single outbound email.
type Message struct {
	To       string
	Subject  string
	HTMLBody string
}

// Sender delivers outbound transactional email.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}
