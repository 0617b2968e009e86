package gemini

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

	"practice-backend/internal/llm"
	"practice-backend/internal/shared/telemetry"
)

const (
	defaultModel   = "gemini-1.5-flash"
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1"
	defaultTimeout = 60 * time.Second
)

// Client calls the Gemini generateContent REST API.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a Gemini client. The API key may be empty; Generate
// reports llm.ErrMissingAPIKey so callers surface a configuration error
// instead of failing at startup.
func NewClient(apiKey, model string) *Client {
	if strings.TrimSpace(model) == "" {
		model = defaultModel
	}
	return &Client{
		apiKey:  strings.TrimSpace(apiKey),
		model:   model,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

// WithBaseURL overrides the API endpoint. Used by tests.
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = strings.TrimRight(baseURL, "/")
	return c
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopK            int     `json:"topK"`
	TopP            float64 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Generate sends the prompt and inline images and returns the first
// candidate's text. Failures come back classified through the llm
// sentinel errors.
func (c *Client) Generate(ctx context.Context, input llm.GenerateInput) (string, error) {
	if c.apiKey == "" {
		return "", llm.ErrMissingAPIKey
	}

	parts := []part{{Text: input.Prompt}}
	for _, img := range input.Images {
		parts = append(parts, part{InlineData: &inlineData{
			MimeType: img.MimeType,
			Data:     img.Data,
		}})
	}

	reqBody := generateRequest{
		Contents: []content{{Parts: parts}},
		GenerationConfig: generationConfig{
			Temperature:     0.7,
			TopK:            40,
			TopP:            0.95,
			MaxOutputTokens: 3072,
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isClientTimeout(err) {
			return "", fmt.Errorf("gemini call: %w", llm.ErrTimeout)
		}
		return "", fmt.Errorf("gemini call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		telemetry.Error("gemini.api_error", map[string]any{
			"status":      resp.StatusCode,
			"duration_ms": time.Since(start).Milliseconds(),
			"body":        string(body),
		})
		switch resp.StatusCode {
		case http.StatusUnauthorized:
			return "", fmt.Errorf("gemini status %d: %w", resp.StatusCode, llm.ErrInvalidAPIKey)
		case http.StatusForbidden:
			return "", fmt.Errorf("gemini status %d: %w", resp.StatusCode, llm.ErrAccessDenied)
		case http.StatusTooManyRequests:
			return "", fmt.Errorf("gemini status %d: %w", resp.StatusCode, llm.ErrRateLimited)
		default:
			return "", fmt.Errorf("gemini status %d: %s", resp.StatusCode, string(body))
		}
	}

	var decoded generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return "", llm.ErrNoResponse
	}

	text := decoded.Candidates[0].Content.Parts[0].Text
	if strings.TrimSpace(text) == "" {
		return "", llm.ErrNoResponse
	}

	telemetry.Info("gemini.generate", map[string]any{
		"model":       c.model,
		"duration_ms": time.Since(start).Milliseconds(),
		"chars":       len(text),
		"images":      len(input.Images),
	})
	return text, nil
}

func isClientTimeout(err error) bool {
	type timeouter interface{ Timeout() bool }
	var te timeouter
	if errors.As(err, &te) {
		return te.Timeout()
	}
	return false
}

var _ llm.Client = (*Client)(nil)
