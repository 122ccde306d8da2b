// Package api is a thin JSON client for the donation backend.
//
// Calls are never retried. Network and decode failures are returned as is;
// non-2xx answers become *apperr.RequestError carrying the server's
// message field.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/alumni-network/donation-client/internal/apperr"
	"github.com/alumni-network/donation-client/internal/middleware"
	"github.com/alumni-network/donation-client/internal/model"
	"github.com/alumni-network/donation-client/internal/service/pool"
)

const (
	PathCreateOrder   = "/api/create-order"
	PathVerifyPayment = "/api/verify-payment"
	PathSendEmail     = "/admin/send-email"

	fallbackMessage = "Request failed"
)

// Client calls the backend endpoints.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	pool       *pool.Pool
	logger     *slog.Logger
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client. Its transport is used as is.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger for request and error lines.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithMaxInFlight caps concurrent requests.
func WithMaxInFlight(n int) Option {
	return func(c *Client) { c.pool = pool.New(n) }
}

// WithTimeout sets an overall per-call timeout on the default HTTP client.
// Zero leaves the transport's own limits in charge.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// New returns a Client for the backend at baseURL. An empty baseURL makes
// endpoints relative, which only works with a custom transport.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  slog.Default(),
		pool:    pool.New(4),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{
			Transport: middleware.Logging(http.DefaultTransport, c.logger),
			Timeout:   c.timeout,
		}
	}
	return c
}

// RequestOptions mirrors the knobs a caller may set on a single call.
type RequestOptions struct {
	Method  string
	Headers map[string]string
	Body    []byte
}

// Request sends body to endpoint and returns the decoded JSON document.
// Content-Type defaults to application/json; caller headers win per key.
func (c *Client) Request(ctx context.Context, endpoint string, opts RequestOptions) (json.RawMessage, error) {
	headers := map[string]string{"Content-Type": "application/json"}
	for k, v := range opts.Headers {
		headers[http.CanonicalHeaderKey(k)] = v
	}
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	var data json.RawMessage
	err := c.pool.Do(ctx, func() error {
		var err error
		data, err = c.do(ctx, method, c.baseURL+endpoint, headers, opts.Body)
		return err
	})
	if err != nil {
		c.logger.Error("api error", "endpoint", endpoint, "err", err)
		return nil, err
	}
	return data, nil
}

func (c *Client) do(ctx context.Context, method, url string, headers map[string]string, body []byte) (json.RawMessage, error) {
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, rd)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	ok := resp.StatusCode >= 200 && resp.StatusCode < 300
	var doc json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		if !ok {
			return nil, &apperr.RequestError{Status: resp.StatusCode, Message: fallbackMessage}
		}
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if !ok {
		return nil, &apperr.RequestError{Status: resp.StatusCode, Message: serverMessage(doc)}
	}
	return doc, nil
}

func serverMessage(doc json.RawMessage) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(doc, &body); err != nil || body.Message == "" {
		return fallbackMessage
	}
	return body.Message
}

func postJSON[T any](ctx context.Context, c *Client, endpoint string, in any) (T, error) {
	var out T
	body, err := json.Marshal(in)
	if err != nil {
		return out, fmt.Errorf("failed to marshal request: %w", err)
	}
	doc, err := c.Request(ctx, endpoint, RequestOptions{Method: http.MethodPost, Body: body})
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(doc, &out); err != nil {
		return out, fmt.Errorf("failed to parse response: %w", err)
	}
	return out, nil
}

// CreateOrder asks the backend for a payment order for in.
func (c *Client) CreateOrder(ctx context.Context, in model.DonationInput) (model.OrderResponse, error) {
	return postJSON[model.OrderResponse](ctx, c, PathCreateOrder, in)
}

// VerifyPayment submits the widget result merged with the donation fields.
func (c *Client) VerifyPayment(ctx context.Context, in model.VerifyRequest) (model.VerifyResponse, error) {
	return postJSON[model.VerifyResponse](ctx, c, PathVerifyPayment, in)
}

// SendBulkEmail asks the backend to mail a group of alumni.
func (c *Client) SendBulkEmail(ctx context.Context, in model.BulkEmailRequest) (model.BulkEmailResponse, error) {
	return postJSON[model.BulkEmailResponse](ctx, c, PathSendEmail, in)
}
