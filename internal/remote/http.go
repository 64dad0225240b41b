package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"stayreal/internal/domain"
	"stayreal/internal/metrics"
)

// Response bodies are read up to these caps.
const (
	maxBodyBytes  = 1 << 20
	maxImageBytes = 32 << 20
)

// Endpoint labels used in logs and metrics.
const (
	endpointToken  = "token"
	endpointMoment = "moment"
	endpointImage  = "image"
)

// HTTPClient talks to the remote service over HTTPS.
type HTTPClient struct {
	profile domain.ClientProfile
	http    *http.Client
	images  *http.Client
	limiter *rate.Limiter
	logger  *slog.Logger
	metrics metrics.Recorder
}

// Option customises an HTTPClient.
type Option func(*HTTPClient)

// WithLimiter replaces the default limiter.
func WithLimiter(l *rate.Limiter) Option { return func(c *HTTPClient) { c.limiter = l } }

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option { return func(c *HTTPClient) { c.logger = l } }

// WithImageClient sets the client used for image downloads. By default the
// API client is reused.
func WithImageClient(hc *http.Client) Option { return func(c *HTTPClient) { c.images = hc } }

// WithMetrics sets the metrics recorder.
func WithMetrics(m metrics.Recorder) Option { return func(c *HTTPClient) { c.metrics = m } }

// NewHTTP returns a client for the endpoints in profile. A nil httpClient
// selects one with a 15s timeout.
func NewHTTP(profile domain.ClientProfile, httpClient *http.Client, opts ...Option) *HTTPClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	c := &HTTPClient{
		profile: profile,
		http:    httpClient,
		limiter: rate.NewLimiter(rate.Limit(2), 4),
		logger:  slog.Default(),
		metrics: metrics.Nop{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.images == nil {
		c.images = c.http
	}
	return c
}

type response struct {
	status int
	body   []byte
}

// do sends one request and reads the bounded body. Only transport and
// limiter failures are errors here; status handling is the caller's.
func (c *HTTPClient) do(
	ctx context.Context,
	endpoint, method, url string,
	headers domain.Headers,
	in any,
) (response, error) {
	waitStart := time.Now()
	if err := c.limiter.Wait(ctx); err != nil {
		return response{}, fmt.Errorf("%w: %s: rate limiter: %w", domain.ErrNetwork, endpoint, err)
	}
	c.metrics.RecordRateLimitWait(time.Since(waitStart))

	var body io.Reader
	if in != nil {
		buf := new(bytes.Buffer)
		if err := json.NewEncoder(buf).Encode(in); err != nil {
			return response{}, err
		}
		body = buf
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return response{}, fmt.Errorf("%w: %s: %w", domain.ErrConfiguration, endpoint, err)
	}
	headers.Apply(req.Header)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	hc, limit := c.http, int64(maxBodyBytes)
	if endpoint == endpointImage {
		hc, limit = c.images, maxImageBytes
	}

	start := time.Now()
	resp, err := hc.Do(req)
	if err != nil {
		c.logger.Warn("remote request failed",
			slog.String("endpoint", endpoint),
			slog.String("error", err.Error()),
		)
		return response{}, fmt.Errorf("%w: %s %s: %w", domain.ErrNetwork, method, endpoint, err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, limit))
	elapsed := time.Since(start)
	c.metrics.RecordRequestLatency(endpoint, elapsed)
	c.metrics.RecordHTTPStatus(endpoint, resp.StatusCode)
	if err != nil {
		return response{}, fmt.Errorf("%w: %s: read body: %w", domain.ErrNetwork, endpoint, err)
	}

	c.logger.Debug("remote request",
		slog.String("endpoint", endpoint),
		slog.Int("http_status", resp.StatusCode),
		slog.Duration("elapsed", elapsed),
	)
	return response{status: resp.StatusCode, body: b}, nil
}

// snippet shortens a body for inclusion in an error.
func snippet(b []byte) string {
	const limit = 256
	if len(b) > limit {
		return string(b[:limit]) + "..."
	}
	return string(b)
}
