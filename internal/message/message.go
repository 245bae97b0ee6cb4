// internal/message/message.go
//
// Folio – outbound messages.
//
// Context
//   An accepted contact submission becomes a notification email to the site
//   owner.  Components talk to an Outbox; LogOutbox is the delivery used
//   until a mail relay is configured and writes the envelope to the log.
//   Bodies are never logged.
//
//------------------------------------------------------------------------------

package message

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// ErrNoRecipient is returned for an Email without addresses.
var ErrNoRecipient = errors.New("message: no recipient")

// Email is one outbound email job.
type Email struct {
	To      []string
	ReplyTo string
	Subject string
	Text    string
}

// Outbox accepts messages for delivery.
type Outbox interface {
	EnqueueEmail(ctx context.Context, msg Email) error
}

// LogOutbox records each message's envelope.
type LogOutbox struct {
	Log *zap.SugaredLogger
}

// EnqueueEmail implements Outbox.
func (o LogOutbox) EnqueueEmail(ctx context.Context, msg Email) error {
	if len(msg.To) == 0 {
		return ErrNoRecipient
	}
	log := o.Log
	if log == nil {
		log = zap.S()
	}
	log.Infow("email queued", "to", msg.To, "subject", msg.Subject, "bytes", len(msg.Text))
	return nil
}

// Submission formats an accepted form as a plain-text email.  Fields named
// in omit are left out; the rest are listed in name order.
func Submission(to, subject string, values map[string]string, omit ...string) Email {
	skip := make(map[string]bool, len(omit))
	for _, k := range omit {
		skip[k] = true
	}
	keys := make([]string, 0, len(values))
	for k := range values {
		if !skip[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s: %s\n", k, values[k])
	}

	msg := Email{Subject: subject, Text: b.String()}
	if to != "" {
		msg.To = []string{to}
	}
	return msg
}
