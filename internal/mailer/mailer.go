// Package mailer delivers review-request emails. The only production
// implementation speaks SMTP; the interface exists so the fan-out can be
// tested without a mail server.
package mailer

import "context"

// Message is one outbound review-request email. Sender identity belongs
// to the transport, not the message.
type Message struct {
	To      string
	ToName  string
	Subject string
	Text    string
}

// Receipt identifies a message accepted by the transport. PreviewURL is
// set only when a preview mailbox is configured (dev environments).
type Receipt struct {
	MessageID  string
	PreviewURL string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) (Receipt, error)
}
