// Package notify sends transactional email through the EmailJS HTTP API.
// Delivery is at-most-once: a failed send is reported to the caller and
// never retried or queued.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const defaultEndpoint = "https://api.emailjs.com/api/v1.0/email/send"

// ErrNotConfigured is returned when the service, template, or public key
// is missing. Callers surface it as a settings problem, not a send failure.
var ErrNotConfigured = errors.New("notify: email service not configured")

// SendError is a rejection from the email provider.
type SendError struct {
	Status int
	Body   string
}

func (e *SendError) Error() string {
	return fmt.Sprintf("notify: provider rejected send with status %d: %s", e.Status, e.Body)
}

// Message is one outbound email.
type Message struct {
	To       string
	CC       string
	Subject  string
	HTMLBody string
}

// Config carries the provider identifiers, normally loaded from settings.
type Config struct {
	ServiceID  string
	TemplateID string
	PublicKey  string
	FromName   string
	ReplyTo    string
}

// Mailer posts messages to the provider. The zero endpoint targets the
// public EmailJS API; tests point it at a local server.
type Mailer struct {
	cfg      Config
	endpoint string
	http     *http.Client
	logger   *slog.Logger
}

// Option adjusts a Mailer.
type Option func(*Mailer)

// WithEndpoint overrides the provider URL.
func WithEndpoint(url string) Option {
	return func(m *Mailer) { m.endpoint = url }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(m *Mailer) { m.http = c }
}

// NewMailer creates a mailer for the given provider credentials.
func NewMailer(cfg Config, logger *slog.Logger, opts ...Option) *Mailer {
	m := &Mailer{
		cfg:      cfg,
		endpoint: defaultEndpoint,
		http:     &http.Client{Timeout: 15 * time.Second},
		logger:   logger,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Configured reports whether the provider identifiers are all present.
func (m *Mailer) Configured() bool {
	return m.cfg.ServiceID != "" && m.cfg.TemplateID != "" && m.cfg.PublicKey != ""
}

type sendRequest struct {
	ServiceID      string         `json:"service_id"`
	TemplateID     string         `json:"template_id"`
	UserID         string         `json:"user_id"`
	TemplateParams templateParams `json:"template_params"`
}

type templateParams struct {
	ToEmail     string `json:"to_email"`
	CCEmail     string `json:"cc_email,omitempty"`
	Subject     string `json:"subject"`
	MessageHTML string `json:"message_html"`
	FromName    string `json:"from_name,omitempty"`
	ReplyTo     string `json:"reply_to,omitempty"`
}

// Send delivers one message. It returns ErrNotConfigured when credentials
// are missing, a SendError when the provider rejects the request, or a
// transport error when the provider is unreachable.
func (m *Mailer) Send(ctx context.Context, msg Message) error {
	if !m.Configured() {
		return ErrNotConfigured
	}
	if msg.To == "" {
		return fmt.Errorf("notify: message has no recipient")
	}

	body, err := json.Marshal(sendRequest{
		ServiceID:  m.cfg.ServiceID,
		TemplateID: m.cfg.TemplateID,
		UserID:     m.cfg.PublicKey,
		TemplateParams: templateParams{
			ToEmail:     msg.To,
			CCEmail:     msg.CC,
			Subject:     msg.Subject,
			MessageHTML: msg.HTMLBody,
			FromName:    m.cfg.FromName,
			ReplyTo:     m.cfg.ReplyTo,
		},
	})
	if err != nil {
		return fmt.Errorf("notify: encode send request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("notify: build send request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.http.Do(req)
	if err != nil {
		return fmt.Errorf("notify: send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return &SendError{Status: resp.StatusCode, Body: string(raw)}
	}

	m.logger.Info("Email sent",
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject),
	)
	return nil
}
