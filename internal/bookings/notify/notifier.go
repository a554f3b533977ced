package notify

import (
	"context"
	"errors"
)

// ErrSendFailed marks a delivery the downstream provider rejected.
var ErrSendFailed = errors.New("notification send failed")

type Message struct {
	From    string
	To      []string
	Subject string
	HTML    string
	ReplyTo string
}

// Notifier is the outbound email collaborator. Implementations must bound
// the send with a timeout; callers decide whether a failure is fatal.
type Notifier interface {
	Send(ctx context.Context, msg *Message) error
}
