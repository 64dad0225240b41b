package interfaces

import (
	"context"

	domaintypes "stayreal/internal/domain/types"
)

// AuthClient talks to the remote token endpoint.
type AuthClient interface {
	ExchangeRefreshToken(
		ctx context.Context,
		headers domaintypes.Headers,
		refreshToken string,
	) (domaintypes.TokenPair, error)
}

// MomentClient reads the current moment of a region.
type MomentClient interface {
	FetchLastMoment(ctx context.Context, region domaintypes.Region) (domaintypes.Moment, error)
}

// ImageClient downloads post images.
type ImageClient interface {
	DownloadImage(ctx context.Context, url string) ([]byte, error)
}
