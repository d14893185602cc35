package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// Message is a single transactional email.
type Message struct {
	ToEmail string
	ToName  string
	ReplyTo string
	Subject string
	HTML    string
	Text    string
}

// Sender delivers transactional email.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

var ErrNotConfigured = errors.New("mail provider is not configured")

// ProviderError carries the message the mail provider returned.
type ProviderError struct {
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("mail provider returned %d: %s", e.StatusCode, e.Message)
}

// BrevoSender sends mail through the Brevo (Sendinblue) v3 transactional API.
type BrevoSender struct {
	apiKey      string
	senderEmail string
	senderName  string
	baseURL     string
	httpClient  *http.Client
}

func NewBrevoSender(apiKey, senderEmail, senderName, baseURL string) *BrevoSender {
	return &BrevoSender{
		apiKey:      apiKey,
		senderEmail: senderEmail,
		senderName:  senderName,
		baseURL:     strings.TrimRight(baseURL, "/"),
		httpClient:  &http.Client{Timeout: 15 * time.Second},
	}
}

// SupportAddress is the inbox help requests are delivered to.
func (s *BrevoSender) SupportAddress() string {
	return s.senderEmail
}

type brevoContact struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type brevoRequest struct {
	Sender      brevoContact   `json:"sender"`
	To          []brevoContact `json:"to"`
	ReplyTo     *brevoContact  `json:"replyTo,omitempty"`
	Subject     string         `json:"subject"`
	HTMLContent string         `json:"htmlContent"`
	TextContent string         `json:"textContent,omitempty"`
}

func (s *BrevoSender) Send(ctx context.Context, msg Message) error {
	if s.apiKey == "" || s.senderEmail == "" {
		return ErrNotConfigured
	}

	payload := brevoRequest{
		Sender:      brevoContact{Email: s.senderEmail, Name: s.senderName},
		To:          []brevoContact{{Email: msg.ToEmail, Name: msg.ToName}},
		Subject:     msg.Subject,
		HTMLContent: msg.HTML,
		TextContent: msg.Text,
	}
	if msg.ReplyTo != "" {
		payload.ReplyTo = &brevoContact{Email: msg.ReplyTo}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode brevo payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/smtp/email", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("api-key", s.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send brevo request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		providerErr := &ProviderError{StatusCode: resp.StatusCode, Message: brevoMessage(raw)}
		log.Printf("[Mailer] Brevo rejected message to %s: %v", msg.ToEmail, providerErr)
		return providerErr
	}

	log.Printf("[Mailer] Sent %q to %s", msg.Subject, msg.ToEmail)
	return nil
}

func brevoMessage(raw []byte) string {
	var body struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && body.Message != "" {
		return body.Message
	}
	if len(raw) == 0 {
		return "empty response"
	}
	return string(raw)
}
