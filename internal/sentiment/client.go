package sentiment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	// DefaultTimeout bounds a single classification round trip.
	DefaultTimeout = 15 * time.Second
	// DialTimeout is the connection timeout.
	DialTimeout = 5 * time.Second
	// TLSHandshakeTimeout is the TLS negotiation timeout.
	TLSHandshakeTimeout = 5 * time.Second

	maxResponseBytes = 1 << 20
	previewLength    = 200
	userAgent        = "emotionlog/1.0"
)

// ClientConfig holds the provider endpoint and credential.
// It is loaded once at process start and injected into NewClient.
type ClientConfig struct {
	BaseURL   string
	ModelPath string
	Token     string
	Timeout   time.Duration
}

// Validate checks that the configuration can be used for a request.
func (c ClientConfig) Validate() error {
	if strings.TrimSpace(c.Token) == "" {
		return fmt.Errorf("%w: API token is missing, set SENTIMENT_API_TOKEN", ErrConfiguration)
	}
	if strings.TrimSpace(c.BaseURL) == "" {
		return fmt.Errorf("%w: base URL is missing, set SENTIMENT_API_BASE_URL", ErrConfiguration)
	}
	if strings.TrimSpace(c.ModelPath) == "" {
		return fmt.Errorf("%w: model path is missing, set SENTIMENT_API_MODEL_PATH", ErrConfiguration)
	}
	return nil
}

// Endpoint returns the full URL classification requests are posted to.
func (c ClientConfig) Endpoint() string {
	return strings.TrimSuffix(c.BaseURL, "/") + "/" + strings.TrimPrefix(c.ModelPath, "/")
}

// NewHTTPClient creates an HTTP client for provider calls.
// It does not follow redirects.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   DialTimeout,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			TLSHandshakeTimeout: TLSHandshakeTimeout,
			MaxIdleConns:        20,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

// Client performs single, unretried classification requests.
type Client struct {
	cfg        ClientConfig
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a provider Client. A nil httpClient gets NewHTTPClient(cfg.Timeout).
func NewClient(cfg ClientConfig, httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = NewHTTPClient(cfg.Timeout)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:        cfg,
		httpClient: httpClient,
		logger:     logger,
	}
}

type classifyRequest struct {
	Inputs string `json:"inputs"`
}

// Classify posts text to the provider and returns the raw response body.
// A missing credential fails with ErrConfiguration before any network activity.
func (c *Client) Classify(ctx context.Context, text string) ([]byte, error) {
	if err := c.cfg.Validate(); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(classifyRequest{Inputs: text})
	if err != nil {
		return nil, fmt.Errorf("encode classification request: %w", err)
	}

	endpoint := c.cfg.Endpoint()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %w", ErrTransport, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %w", ErrTransport, err)
	}

	c.logger.Debug("sentiment_request_completed",
		slog.String("endpoint", endpoint),
		slog.Int("status_code", resp.StatusCode),
		slog.Int("response_bytes", len(body)),
		slog.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d: %s", ErrTransport, resp.StatusCode, preview(body))
	}

	return body, nil
}

func preview(body []byte) string {
	raw := strings.TrimSpace(string(body))
	if len(raw) > previewLength {
		cut := previewLength
		for cut > 0 && !utf8.RuneStart(raw[cut]) {
			cut--
		}
		raw = raw[:cut] + "..."
	}
	if raw == "" {
		return "<empty body>"
	}
	return raw
}
