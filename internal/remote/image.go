package remote

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/doyensec/safeurl"

	"stayreal/internal/domain"
)

// NewImageHTTPClient returns a client for fetching post images. Image URLs
// come from post payloads, so private, loopback and link-local addresses
// are refused after DNS resolution.
func NewImageHTTPClient(timeout time.Duration) *http.Client {
	config := safeurl.GetConfigBuilder().
		SetTimeout(timeout).
		SetAllowedSchemes("http", "https").
		SetAllowedPorts(80, 443).
		Build()

	return safeurl.Client(config).Client
}

// DownloadImage fetches the bytes at rawURL. Non-2xx statuses and empty
// bodies are errors.
func (c *HTTPClient) DownloadImage(ctx context.Context, rawURL string) ([]byte, error) {
	if rawURL == "" {
		return nil, fmt.Errorf("%w: empty image url", domain.ErrProtocol)
	}
	resp, err := c.do(ctx, endpointImage, http.MethodGet, rawURL, nil, nil)
	if err != nil {
		return nil, err
	}
	if resp.status/100 != 2 {
		kind := domain.ErrProtocol
		if resp.status >= 500 || resp.status == http.StatusTooManyRequests {
			kind = domain.ErrNetwork
		}
		return nil, &domain.StatusError{
			Op:         "download image",
			StatusCode: resp.status,
			Body:       snippet(resp.body),
			Kind:       kind,
		}
	}
	if len(resp.body) == 0 {
		return nil, fmt.Errorf("%w: image at %s is empty", domain.ErrProtocol, rawURL)
	}
	return resp.body, nil
}

var _ domain.ImageClient = (*HTTPClient)(nil)
