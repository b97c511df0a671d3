package mail

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/resend/resend-go/v2"
)

// ErrNotConfigured is returned when the API key or the recipient list is missing.
var ErrNotConfigured = errors.New("mail sender is not configured")

// Message is a single HTML email.
type Message struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// ResendSender sends emails through the Resend SDK.
type ResendSender struct {
	client *resend.Client
	apiKey string
}

// NewResendSender builds a sender. endpoint は空なら SDK 既定の API を使う。
func NewResendSender(endpoint, apiKey string, timeout time.Duration) *ResendSender {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	apiKey = strings.TrimSpace(apiKey)
	client := resend.NewCustomClient(&http.Client{Timeout: timeout}, apiKey)
	if endpoint = strings.TrimSpace(endpoint); endpoint != "" {
		if base, err := url.Parse(strings.TrimRight(endpoint, "/") + "/"); err == nil {
			client.BaseURL = base
		}
	}
	return &ResendSender{client: client, apiKey: apiKey}
}

// Configured reports whether an API key is set.
func (s *ResendSender) Configured() bool {
	return s != nil && s.apiKey != ""
}

// Send は 1 回だけ送信する。失敗しても再送しない。
func (s *ResendSender) Send(ctx context.Context, msg Message) error {
	if !s.Configured() || len(msg.To) == 0 {
		return ErrNotConfigured
	}
	_, err := s.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    msg.From,
		To:      msg.To,
		Subject: msg.Subject,
		Html:    msg.HTML,
	})
	if err != nil {
		return fmt.Errorf("メール送信でエラーが発生: %w", err)
	}
	return nil
}
