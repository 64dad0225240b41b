package moment

import (
	"context"
	"log/slog"

	"stayreal/internal/domain"
	"stayreal/internal/logging"
)

// Service resolves the region from preferences and asks the remote service
// for its last moment.
type Service struct {
	prefs  domain.PreferencesStore
	client domain.MomentClient
	logger *slog.Logger
}

// New constructs a moment Service.
func New(prefs domain.PreferencesStore, client domain.MomentClient, logger *slog.Logger) *Service {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Service{prefs: prefs, client: client, logger: logger}
}

// FetchLastMoment returns the moment of the stored region. An unset region
// wraps domain.ErrRegionNotSet and nothing is sent.
func (s *Service) FetchLastMoment(ctx context.Context) (domain.Moment, error) {
	prefs, err := s.prefs.LoadPreferences()
	if err != nil {
		return domain.Moment{}, err
	}
	if prefs.Region == "" {
		return domain.Moment{}, domain.ErrRegionNotSet
	}

	m, err := s.client.FetchLastMoment(ctx, prefs.Region)
	if err != nil {
		return domain.Moment{}, err
	}
	s.logger.Debug("moment fetched",
		slog.String("region", m.Region.String()),
		slog.String("moment_id", m.ID),
	)
	return m, nil
}

// Compile-time assertion that Service implements domain.MomentService.
var _ domain.MomentService = (*Service)(nil)
