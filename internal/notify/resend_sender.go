package notify

import (
	"context"
	"net/http"
	"time"

	"github.com/resend/resend-go/v2"
)

var _ Sender = (*ResendSender)(nil)

// ResendSender sends emails through the Resend API
type ResendSender struct {
	client  *resend.Client
	timeout time.Duration
}

// NewResendSender uses the given http client (traced in production) and applies
// the timeout to each send call.
func NewResendSender(apiKey string, httpClient *http.Client, timeout time.Duration) *ResendSender {
	return &ResendSender{
		client:  resend.NewCustomClient(httpClient, apiKey),
		timeout: timeout,
	}
}

func (s *ResendSender) Send(ctx context.Context, email Email) (string, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	sent, err := s.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    email.From,
		To:      []string{email.To},
		ReplyTo: email.ReplyTo,
		Subject: email.Subject,
		Text:    email.Text,
	})
	if err != nil {
		return "", err
	}

	return sent.Id, nil
}
