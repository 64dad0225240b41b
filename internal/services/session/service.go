package session

import (
	"context"
	"errors"
	"log/slog"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/sync/singleflight"

	"stayreal/internal/crypto"
	"stayreal/internal/domain"
	"stayreal/internal/logging"
	"stayreal/internal/metrics"
)

// refreshKey is the singleflight key; there is one session per home.
const refreshKey = "refresh"

// Service refreshes and inspects the stored session.
//
// Concurrent Refresh calls in one process share a single exchange, since
// the server rotates the refresh token and a second exchange with the old
// one would be rejected.
type Service struct {
	creds   domain.CredentialsStore
	headers domain.HeaderBuilder
	auth    domain.AuthClient
	clock   domain.ClockAndLocale
	logger  *slog.Logger
	metrics metrics.Recorder

	group singleflight.Group
}

// New constructs a session Service. A nil logger or recorder disables that
// concern.
func New(
	creds domain.CredentialsStore,
	headers domain.HeaderBuilder,
	auth domain.AuthClient,
	clk domain.ClockAndLocale,
	logger *slog.Logger,
	rec metrics.Recorder,
) *Service {
	if logger == nil {
		logger = logging.Discard()
	}
	if rec == nil {
		rec = metrics.Nop{}
	}
	return &Service{
		creds:   creds,
		headers: headers,
		auth:    auth,
		clock:   clk,
		logger:  logger,
		metrics: rec,
	}
}

// SetCredentials replaces the stored session, e.g. after a login performed
// elsewhere.
func (s *Service) SetCredentials(creds domain.Credentials) error {
	if err := s.creds.SaveCredentials(creds); err != nil {
		return err
	}
	s.logger.Info("session stored",
		slog.String("device_id", creds.DeviceID.String()),
		slog.String("refresh_fp", crypto.Fingerprint(creds.RefreshToken)),
	)
	return nil
}

// GetCredentials returns the stored session.
func (s *Service) GetCredentials() (domain.Credentials, error) {
	return s.creds.LoadCredentials()
}

// ClearCredentials deletes the stored session.
func (s *Service) ClearCredentials() error {
	if err := s.creds.ClearCredentials(); err != nil {
		return err
	}
	s.logger.Info("session cleared")
	return nil
}

// Refresh exchanges the stored refresh token for a new token pair and
// persists it with the unchanged device id.
//
// Steps:
//  1. Load the credentials record.
//  2. Build freshly signed headers for its device id.
//  3. POST the refresh token to the token endpoint.
//  4. Persist the returned pair atomically.
//
// Any failure leaves the stored record as it was. A rejection by the
// server wraps domain.ErrRefreshToken and means the user must log in again.
// Callers that join an in-flight refresh share its result and its context.
func (s *Service) Refresh(ctx context.Context) error {
	_, err, _ := s.group.Do(refreshKey, func() (any, error) {
		return nil, s.refresh(ctx)
	})
	return err
}

func (s *Service) refresh(ctx context.Context) error {
	current, err := s.creds.LoadCredentials()
	if err != nil {
		return s.fail(err)
	}

	h, err := s.headers.Build(current.DeviceID)
	if err != nil {
		return s.fail(err)
	}

	pair, err := s.auth.ExchangeRefreshToken(ctx, h, current.RefreshToken)
	if err != nil {
		return s.fail(err)
	}

	next := domain.Credentials{
		DeviceID:     current.DeviceID,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}
	if err := s.creds.SaveCredentials(next); err != nil {
		return s.fail(err)
	}

	s.metrics.RecordRefreshSuccess()
	s.logger.Info("session refreshed",
		slog.String("device_id", current.DeviceID.String()),
		slog.String("old_refresh_fp", crypto.Fingerprint(current.RefreshToken)),
		slog.String("new_refresh_fp", crypto.Fingerprint(pair.RefreshToken)),
		slog.String("access_fp", crypto.Fingerprint(pair.AccessToken)),
		slog.Int64("expires_in", pair.ExpiresIn),
	)
	return nil
}

func (s *Service) fail(err error) error {
	reason := failureReason(err)
	s.metrics.RecordRefreshFailure(reason)
	s.logger.Warn("session refresh failed",
		slog.String("reason", reason),
		slog.String("error", err.Error()),
	)
	return err
}

// failureReason maps err onto a bounded metrics label.
func failureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrRefreshToken):
		return "rejected"
	case errors.Is(err, domain.ErrNetwork):
		return "network"
	case errors.Is(err, domain.ErrProtocol):
		return "protocol"
	case errors.Is(err, domain.ErrNotFound):
		return "no_session"
	case errors.Is(err, domain.ErrCorruptData):
		return "corrupt"
	case errors.Is(err, domain.ErrEnvironment):
		return "environment"
	case errors.Is(err, domain.ErrPersistence):
		return "persistence"
	case errors.Is(err, domain.ErrInvalidSignatureInput), errors.Is(err, domain.ErrInvalidHeader):
		return "headers"
	default:
		return "other"
	}
}

// Status reports the device id and, when the access token is a JWT with an
// exp claim, its expiry. The token signature is not checked; the result is
// informational only.
func (s *Service) Status() (domain.TokenStatus, error) {
	creds, err := s.creds.LoadCredentials()
	if err != nil {
		return domain.TokenStatus{}, err
	}
	st := domain.TokenStatus{DeviceID: creds.DeviceID}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(creds.AccessToken, claims); err != nil {
		return st, nil
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return st, nil
	}
	at := exp.Time
	st.ExpiresAt = &at
	st.Expired = !s.clock.Now().Before(at)
	return st, nil
}

// Compile-time assertion that Service implements domain.SessionService.
var _ domain.SessionService = (*Service)(nil)
