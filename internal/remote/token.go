package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"stayreal/internal/domain"
)

const grantTypeRefresh = "refresh_token"

// refreshRequest is the JSON body of the refresh exchange.
type refreshRequest struct {
	ClientID     string `json:"client_id"`
	GrantType    string `json:"grant_type"`
	ClientSecret string `json:"client_secret"`
	RefreshToken string `json:"refresh_token"`
}

// tokenResponse is the expected 201 body. Pointers distinguish an absent
// field from an empty one.
type tokenResponse struct {
	AccessToken  *string         `json:"access_token"`
	RefreshToken *string         `json:"refresh_token"`
	ExpiresIn    json.RawMessage `json:"expires_in,omitempty"`
}

func (r tokenResponse) validate() (domain.TokenPair, error) {
	if r.AccessToken == nil || *r.AccessToken == "" {
		return domain.TokenPair{}, fmt.Errorf("%w: token response lacks access_token", domain.ErrProtocol)
	}
	if r.RefreshToken == nil || *r.RefreshToken == "" {
		return domain.TokenPair{}, fmt.Errorf("%w: token response lacks refresh_token", domain.ErrProtocol)
	}
	return domain.TokenPair{
		AccessToken:  *r.AccessToken,
		RefreshToken: *r.RefreshToken,
		ExpiresIn:    parseExpiresIn(r.ExpiresIn),
	}, nil
}

// parseExpiresIn accepts a number or a numeric string; anything else is 0.
func parseExpiresIn(raw json.RawMessage) int64 {
	if len(raw) == 0 {
		return 0
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		if v, err := n.Int64(); err == nil {
			return v
		}
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if v, err := strconv.ParseInt(s, 10, 64); err == nil {
			return v
		}
	}
	return 0
}

// ExchangeRefreshToken posts refreshToken to the token endpoint with
// headers. Only HTTP 201 is success; any other status wraps
// domain.ErrRefreshToken and is not retried.
func (c *HTTPClient) ExchangeRefreshToken(
	ctx context.Context,
	headers domain.Headers,
	refreshToken string,
) (domain.TokenPair, error) {
	body := refreshRequest{
		ClientID:     c.profile.ClientID,
		GrantType:    grantTypeRefresh,
		ClientSecret: c.profile.ClientSecret,
		RefreshToken: refreshToken,
	}
	resp, err := c.do(ctx, endpointToken, http.MethodPost, c.profile.TokenURL, headers, body)
	if err != nil {
		return domain.TokenPair{}, err
	}
	if resp.status != http.StatusCreated {
		c.logger.Warn("token endpoint rejected refresh",
			slog.Int("http_status", resp.status),
		)
		return domain.TokenPair{}, &domain.StatusError{
			Op:         "refresh token",
			StatusCode: resp.status,
			Body:       snippet(resp.body),
			Kind:       domain.ErrRefreshToken,
		}
	}

	var tr tokenResponse
	if err := json.Unmarshal(resp.body, &tr); err != nil {
		return domain.TokenPair{}, fmt.Errorf("%w: token response: %w", domain.ErrProtocol, err)
	}
	return tr.validate()
}

// Compile-time assertion that HTTPClient implements domain.AuthClient.
var _ domain.AuthClient = (*HTTPClient)(nil)
