package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/GriffinCanCode/AuraOS/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/AuraOS/internal/shared/types"
)

// ErrNoBaseURL is returned when no relay base URL has been set
var ErrNoBaseURL = errors.New("relay base URL is not set")

// DefaultTimeout bounds a single relay call
const DefaultTimeout = 60 * time.Second

// APIError is a non-2xx relay response
type APIError struct {
	Status     int
	StatusText string
	URL        string
	Body       string
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("API %d %s at %s", e.Status, e.StatusText, e.URL)
	if e.Body != "" {
		msg += "\n" + e.Body
	}
	return msg
}

// Client talks to the Aura relay. Calls are never retried.
type Client struct {
	resty *resty.Client

	mu   sync.RWMutex
	base string
}

// Option configures a Client
type Option func(*resty.Client)

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(r *resty.Client) { r.SetTimeout(d) }
}

// WithHeader adds a default header
func WithHeader(key, value string) Option {
	return func(r *resty.Client) { r.SetHeader(key, value) }
}

// New creates a client for base; base may be empty until discovery finishes
func New(base string, opts ...Option) *Client {
	return NewWithHTTPClient(base, nil, opts...)
}

// NewWithHTTPClient is New on a caller-supplied http.Client
func NewWithHTTPClient(base string, hc *http.Client, opts ...Option) *Client {
	var r *resty.Client
	if hc != nil {
		r = resty.NewWithClient(hc)
	} else {
		r = resty.New()
	}
	r.SetTimeout(DefaultTimeout).
		SetRetryCount(0).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "AuraShell/1.0")

	for _, opt := range opts {
		opt(r)
	}

	c := &Client{resty: r}
	c.SetBaseURL(base)
	return c
}

// NormalizeBase trims whitespace and trailing slashes
func NormalizeBase(base string) string {
	return strings.TrimRight(strings.TrimSpace(base), "/")
}

// SetBaseURL swaps the relay base
func (c *Client) SetBaseURL(base string) {
	c.mu.Lock()
	c.base = NormalizeBase(base)
	c.mu.Unlock()
}

// BaseURL returns the current relay base
func (c *Client) BaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.base
}

// Health calls GET /api/health
func (c *Client) Health(ctx context.Context) (*types.HealthResponse, error) {
	var out types.HealthResponse
	if err := c.do(ctx, http.MethodGet, "/api/health", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SystemState calls GET /api/system/state
func (c *Client) SystemState(ctx context.Context) (*types.SystemState, error) {
	var out types.SystemState
	if err := c.do(ctx, http.MethodGet, "/api/system/state", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Chat calls POST /api/chat
func (c *Client) Chat(ctx context.Context, messages []types.Message, instruction string) (*types.ChatResponse, error) {
	var out types.ChatResponse
	req := types.ChatRequest{Messages: messages, Instruction: instruction}
	if err := c.do(ctx, http.MethodPost, "/api/chat", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Terminal calls POST /api/terminal and returns the simulated output
func (c *Client) Terminal(ctx context.Context, command string) (string, error) {
	var out types.TerminalResponse
	if err := c.do(ctx, http.MethodPost, "/api/terminal", types.TerminalRequest{Command: command}, &out); err != nil {
		return "", err
	}
	return out.Output, nil
}

// Maps calls POST /api/maps
func (c *Client) Maps(ctx context.Context, query string, lat, lng *float64) (*types.MapsResponse, error) {
	var out types.MapsResponse
	req := types.MapsRequest{Query: query, Lat: lat, Lng: lng}
	if err := c.do(ctx, http.MethodPost, "/api/maps", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Speak calls POST /api/speak and returns base64 audio
func (c *Client) Speak(ctx context.Context, text string) (string, error) {
	var out types.SpeakResponse
	if err := c.do(ctx, http.MethodPost, "/api/speak", types.SpeakRequest{Text: text}, &out); err != nil {
		return "", err
	}
	return out.AudioData, nil
}

// SendLogs ships client log entries to POST /api/logs
func (c *Client) SendLogs(ctx context.Context, batch types.LogBatch) error {
	return c.do(ctx, http.MethodPost, "/api/logs", batch, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	base := c.BaseURL()
	if base == "" {
		return ErrNoBaseURL
	}
	url := base + path

	headers := make(map[string]string, 2)
	tracing.InjectTraceContext(ctx, headers)

	req := c.resty.R().
		SetContext(ctx).
		SetHeaders(headers)
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}
	if out != nil {
		req.SetResult(out)
	}

	resp, err := req.Execute(method, url)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	if !resp.IsSuccess() {
		return &APIError{
			Status:     resp.StatusCode(),
			StatusText: http.StatusText(resp.StatusCode()),
			URL:        url,
			Body:       string(resp.Body()),
		}
	}
	return nil
}
