// Package coinbase is the upstream client for the public Coinbase API. Every
// failure it returns is a *domain.UpstreamAPIError or *domain.RateLimitError.
package coinbase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"market-bridge/internal/domain"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const (
	DefaultBaseURL         = "https://api.coinbase.com/v2"
	DefaultExchangeURL     = "https://api.exchange.coinbase.com"
	defaultHTTPTimeout     = 10 * time.Second
	defaultUserAgent       = "market-bridge/1.0"
	maxErrorBodyBytes      = 64 << 10
	errorIDMalformedBody   = "malformed_response"
	errorIDNetworkFailure  = "network_error"
	errorIDNetworkDeadline = "timeout"
)

type Client struct {
	baseURL     string
	exchangeURL string
	httpClient  *http.Client
	tracer      trace.Tracer
	budget      *Budget
	userAgent   string
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithBaseURL overrides the v2 API root (spot, historic, rates, currencies, time).
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u = strings.TrimRight(strings.TrimSpace(u), "/"); u != "" {
			c.baseURL = u
		}
	}
}

// WithExchangeURL overrides the exchange API root used for product stats.
func WithExchangeURL(u string) Option {
	return func(c *Client) {
		if u = strings.TrimRight(strings.TrimSpace(u), "/"); u != "" {
			c.exchangeURL = u
		}
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(c *Client) {
		if tracer != nil {
			c.tracer = tracer
		}
	}
}

func WithBudget(b *Budget) Option {
	return func(c *Client) {
		c.budget = b
	}
}

func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua = strings.TrimSpace(ua); ua != "" {
			c.userAgent = ua
		}
	}
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:     DefaultBaseURL,
		exchangeURL: DefaultExchangeURL,
		httpClient:  NewHTTPClient(defaultHTTPTimeout),
		tracer:      noop.NewTracerProvider().Tracer("coinbase"),
		userAgent:   defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// getJSON issues a GET against root+path and decodes a 2xx body into out.
func (c *Client) getJSON(ctx context.Context, spanName, root, path string, query url.Values, out any) error {
	ctx, span := c.tracer.Start(ctx, spanName)
	defer span.End()

	endpoint := root + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	span.SetAttributes(attribute.String("http.url", endpoint))

	if err := c.budget.Take(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "outbound budget exhausted")
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return &domain.UpstreamAPIError{StatusCode: domain.StatusNetworkFailure, ErrorID: errorIDNetworkFailure, Message: "build request: " + err.Error(), Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		upErr := networkError(err)
		span.RecordError(upErr)
		span.SetStatus(codes.Error, upErr.ErrorID)
		return upErr
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			slog.Warn("coinbase: failed to close response body", "url", endpoint, "err", cerr)
		}
	}()
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		mapped := mapErrorResponse(resp.StatusCode, resp.Header, body, time.Now())
		span.RecordError(mapped)
		span.SetStatus(codes.Error, fmt.Sprintf("upstream status %d", resp.StatusCode))
		slog.Debug("coinbase: upstream error", "url", endpoint, "status", resp.StatusCode, "err", mapped)
		return mapped
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		upErr := &domain.UpstreamAPIError{
			StatusCode: resp.StatusCode,
			ErrorID:    errorIDMalformedBody,
			Message:    "decode response: " + err.Error(),
			Err:        err,
		}
		span.RecordError(upErr)
		span.SetStatus(codes.Error, errorIDMalformedBody)
		return upErr
	}
	return nil
}

func networkError(err error) *domain.UpstreamAPIError {
	upErr := &domain.UpstreamAPIError{
		StatusCode: domain.StatusNetworkFailure,
		ErrorID:    errorIDNetworkFailure,
		Message:    err.Error(),
		Err:        err,
	}
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		upErr.ErrorID = errorIDNetworkDeadline
	}
	return upErr
}
