package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"practice-backend/internal/shared/telemetry"
)

// Message is a single outbound email.
type Message struct {
	To      string
	ToName  string
	Subject string
	Text    string
	HTML    string
}

// Client sends transactional email.
type Client interface {
	Send(ctx context.Context, msg Message) error
}

// HTTPError carries a non-2xx relay response.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	msg := strings.TrimSpace(e.Body)
	if msg == "" {
		msg = "<empty body>"
	}
	if len(msg) > 4000 {
		msg = msg[:4000] + "..."
	}
	return fmt.Sprintf("mail relay http %d: %s", e.StatusCode, msg)
}

// RelayClient posts messages to an HTTP mail relay with Bearer auth.
type RelayClient struct {
	baseURL    string
	apiKey     string
	fromEmail  string
	fromName   string
	httpClient *http.Client
	maxRetries int
}

// NewRelayClient constructs a RelayClient.
func NewRelayClient(baseURL, apiKey, fromEmail, fromName string) (*RelayClient, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("mail relay url is required")
	}
	if strings.TrimSpace(fromEmail) == "" {
		return nil, fmt.Errorf("mail from address is required")
	}
	return &RelayClient{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		apiKey:     strings.TrimSpace(apiKey),
		fromEmail:  strings.TrimSpace(fromEmail),
		fromName:   strings.TrimSpace(fromName),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		maxRetries: 3,
	}, nil
}

type address struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type sendRequest struct {
	From    address   `json:"from"`
	To      []address `json:"to"`
	Subject string    `json:"subject"`
	Text    string    `json:"text,omitempty"`
	HTML    string    `json:"html,omitempty"`
}

// Send delivers the message, retrying transient relay failures with
// exponential backoff.
func (c *RelayClient) Send(ctx context.Context, msg Message) error {
	if strings.TrimSpace(msg.To) == "" {
		return fmt.Errorf("mail: recipient required")
	}
	if strings.TrimSpace(msg.Subject) == "" {
		return fmt.Errorf("mail: subject required")
	}
	if strings.TrimSpace(msg.Text) == "" && strings.TrimSpace(msg.HTML) == "" {
		return fmt.Errorf("mail: text or html content required")
	}

	wire := sendRequest{
		From:    address{Email: c.fromEmail, Name: c.fromName},
		To:      []address{{Email: msg.To, Name: msg.ToName}},
		Subject: msg.Subject,
		Text:    msg.Text,
		HTML:    msg.HTML,
	}

	backoff := 1 * time.Second
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := c.sendOnce(ctx, wire)
		if err == nil {
			return nil
		}
		lastErr = err

		if !isRetryable(err) || attempt == c.maxRetries {
			return err
		}

		telemetry.Info("mail.retry", map[string]any{
			"attempt": attempt + 1,
			"sleep":   backoff.String(),
			"error":   err.Error(),
		})
		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return ctx.Err()
		}
		backoff *= 2
	}
	return lastErr
}

func (c *RelayClient) sendOnce(ctx context.Context, wire sendRequest) error {
	payload, err := json.Marshal(wire)
	if err != nil {
		return fmt.Errorf("marshal mail: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/send", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build mail request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("mail relay call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return &HTTPError{StatusCode: resp.StatusCode, Body: string(body)}
}

func isRetryable(err error) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == http.StatusTooManyRequests || httpErr.StatusCode >= 500
	}
	// Transport errors are worth one more try.
	return true
}

// NoopClient logs instead of sending. Used when no relay is configured.
type NoopClient struct{}

// Send records the message in the log and drops it.
func (NoopClient) Send(ctx context.Context, msg Message) error {
	telemetry.Info("mail.noop", map[string]any{
		"to":      msg.To,
		"subject": msg.Subject,
	})
	return nil
}
