package notify

import (
	"context"
	"fmt"
	"time"

	"bookingdesk/pkg/client"
	"bookingdesk/pkg/logger"
)

const resendBaseURL = "https://api.resend.com"

type resendPayload struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
	ReplyTo string   `json:"reply_to,omitempty"`
}

// ResendNotifier delivers email through the Resend REST API.
type ResendNotifier struct {
	api     *client.HttpClient
	apiKey  string
	timeout time.Duration
	log     *logger.Logger
}

func NewResendNotifier(apiKey string, timeout time.Duration, log *logger.Logger) *ResendNotifier {
	return &ResendNotifier{
		api:     client.NewHttpClient(resendBaseURL, timeout),
		apiKey:  apiKey,
		timeout: timeout,
		log:     log,
	}
}

func (n *ResendNotifier) Send(ctx context.Context, msg *Message) error {
	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	payload := resendPayload{
		From:    msg.From,
		To:      msg.To,
		Subject: msg.Subject,
		HTML:    msg.HTML,
		ReplyTo: msg.ReplyTo,
	}

	resp, err := n.api.POSTWithHeaders(ctx, "/emails", payload, map[string]string{
		"Authorization": "Bearer " + n.apiKey,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}

	if resp.StatusCode >= 300 {
		n.log.Error("Resend rejected email",
			"status", resp.StatusCode,
			"body", string(resp.Body),
			"subject", msg.Subject,
		)
		return fmt.Errorf("%w: resend returned %s", ErrSendFailed, resp.Status)
	}

	return nil
}

// LogNotifier stands in for a real provider when no API key is configured.
// It never fails, which keeps local intake and approval flows end-to-end.
type LogNotifier struct {
	log *logger.Logger
}

func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Send(_ context.Context, msg *Message) error {
	n.log.Info("Email send skipped (no provider configured)",
		"from", msg.From,
		"to", msg.To,
		"subject", msg.Subject,
	)
	return nil
}
