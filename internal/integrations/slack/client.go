package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

// webhookMessage is the minimal incoming-webhook payload.
type webhookMessage struct {
	Text string `json:"text"`
}

// webhookPayload is the expected JSON shape stored in SSM for the
// webhook URL.
type webhookPayload struct {
	URL string `json:"url"`
}

type Getter interface {
	GetParameter(ctx context.Context, name string) (string, error)
}

// HTTPStatusError captures non-2xx upstream responses with status-aware context.
type HTTPStatusError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("slack: unexpected status %d from %s: %s", e.StatusCode, e.URL, e.Body)
}

func (e *HTTPStatusError) HTTPStatusCode() int {
	return e.StatusCode
}

// Client posts visitor notifications to a Slack incoming webhook.
type Client struct {
	httpClient  *http.Client
	getter      Getter
	paramPrefix string

	urlOnce    sync.Once
	webhookURL string
	urlErr     error
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithWebhookURL bypasses the SSM lookup entirely; intended for tests.
func WithWebhookURL(url string) Option {
	return func(c *Client) {
		c.webhookURL = strings.TrimSpace(url)
		c.urlOnce.Do(func() {})
	}
}

// NewClient creates a Client backed by the given paramstore Getter for
// webhook URL retrieval. The URL is fetched from SSM on the first call
// to Notify and reused for the lifetime of the process.
func NewClient(ps Getter, paramPrefix string, opts ...Option) (*Client, error) {
	if ps == nil {
		return nil, errors.New("slack: paramstore getter must not be nil")
	}
	paramPrefix = strings.TrimRight(strings.TrimSpace(paramPrefix), "/")
	if paramPrefix == "" {
		return nil, errors.New("slack: parameter prefix must not be empty")
	}
	c := &Client{
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		getter:      ps,
		paramPrefix: paramPrefix,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// resolveWebhookURL fetches the URL from SSM on the first call and
// returns the cached result on every subsequent call within the same
// process lifetime.
func (c *Client) resolveWebhookURL(ctx context.Context) (string, error) {
	c.urlOnce.Do(func() {
		c.webhookURL, c.urlErr = fetchWebhookURLFromParamStore(ctx, c.getter, c.urlParameterName())
	})
	return c.webhookURL, c.urlErr
}

func (c *Client) urlParameterName() string {
	return c.paramPrefix + "/slack-webhook-url"
}

func fetchWebhookURLFromParamStore(ctx context.Context, ps Getter, name string) (string, error) {
	raw, err := ps.GetParameter(ctx, name)
	if err != nil {
		return "", fmt.Errorf("slack: fetch webhook url: %w", err)
	}
	var payload webhookPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return "", fmt.Errorf("slack: decode webhook url payload: %w", err)
	}
	url := strings.TrimSpace(payload.URL)
	if url == "" {
		return "", errors.New("slack: webhook url payload missing url")
	}
	return url, nil
}

// resolvedHTTPClient returns the configured HTTP client, or a default
// with a 10s timeout if none was set (e.g. in tests that nil out the
// field).
func (c *Client) resolvedHTTPClient() *http.Client {
	if c.httpClient != nil {
		return c.httpClient
	}
	return &http.Client{Timeout: 10 * time.Second}
}

// Notify posts one front-desk message for the completed request. The
// caller treats delivery as fire-and-forget; the returned error is for
// logging only.
func (c *Client) Notify(ctx context.Context, recipientHandle, requesterName string) error {
	if recipientHandle == "" {
		return errors.New("slack: recipient handle must not be empty")
	}
	if requesterName == "" {
		return errors.New("slack: requester name must not be empty")
	}

	url, err := c.resolveWebhookURL(ctx)
	if err != nil {
		return err
	}

	body, err := json.Marshal(webhookMessage{
		Text: fmt.Sprintf("%s, %s is at the front desk to see you.", recipientHandle, requesterName),
	})
	if err != nil {
		return fmt.Errorf("slack: marshal message: %w", err)
	}

	req, reqErr := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if reqErr != nil {
		return fmt.Errorf("slack: create request: %w", reqErr)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.resolvedHTTPClient().Do(req)
	if err != nil {
		return fmt.Errorf("slack: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return &HTTPStatusError{
			StatusCode: resp.StatusCode,
			URL:        url,
			Body:       strings.TrimSpace(string(respBody)),
		}
	}
	return nil
}
