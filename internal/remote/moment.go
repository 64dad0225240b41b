package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"stayreal/internal/domain"
)

type momentResponse struct {
	ID        *string `json:"id"`
	Region    *string `json:"region"`
	StartDate *string `json:"startDate"`
	EndDate   *string `json:"endDate"`
}

func (r momentResponse) validate() (domain.Moment, error) {
	fields := []struct {
		name string
		v    *string
	}{
		{"id", r.ID},
		{"region", r.Region},
		{"startDate", r.StartDate},
		{"endDate", r.EndDate},
	}
	for _, f := range fields {
		if f.v == nil {
			return domain.Moment{}, fmt.Errorf("%w: moment response lacks %s", domain.ErrProtocol, f.name)
		}
	}
	return domain.Moment{
		ID:        *r.ID,
		Region:    domain.Region(*r.Region),
		StartDate: *r.StartDate,
		EndDate:   *r.EndDate,
	}, nil
}

// FetchLastMoment returns the current moment of region. Server errors and
// 429 wrap domain.ErrNetwork so callers may retry; other non-2xx statuses
// wrap domain.ErrProtocol.
func (c *HTTPClient) FetchLastMoment(ctx context.Context, region domain.Region) (domain.Moment, error) {
	u := c.profile.MomentsURL + url.PathEscape(region.String())
	resp, err := c.do(ctx, endpointMoment, http.MethodGet, u, nil, nil)
	if err != nil {
		return domain.Moment{}, err
	}
	if resp.status/100 != 2 {
		kind := domain.ErrProtocol
		if resp.status >= 500 || resp.status == http.StatusTooManyRequests {
			kind = domain.ErrNetwork
		}
		return domain.Moment{}, &domain.StatusError{
			Op:         "fetch moment",
			StatusCode: resp.status,
			Body:       snippet(resp.body),
			Kind:       kind,
		}
	}

	var mr momentResponse
	if err := json.Unmarshal(resp.body, &mr); err != nil {
		return domain.Moment{}, fmt.Errorf("%w: moment response: %w", domain.ErrProtocol, err)
	}
	return mr.validate()
}

// Compile-time assertion that HTTPClient implements domain.MomentClient.
var _ domain.MomentClient = (*HTTPClient)(nil)
