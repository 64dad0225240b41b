package backup

import (
	"errors"
	"fmt"
	"log/slog"

	"stayreal/internal/domain"
	"stayreal/internal/logging"
	"stayreal/internal/store"
)

const payloadVersion = 1

// payload is the sealed content of a backup file.
type payload struct {
	Version     int                 `json:"version"`
	ExportedAt  int64               `json:"exportedAt"`
	Credentials *domain.Credentials `json:"credentials,omitempty"`
	Preferences domain.Preferences  `json:"preferences"`
}

// Service seals and restores local state.
type Service struct {
	creds  domain.CredentialsStore
	prefs  domain.PreferencesStore
	clock  domain.ClockAndLocale
	logger *slog.Logger
}

// New constructs a backup Service.
func New(
	creds domain.CredentialsStore,
	prefs domain.PreferencesStore,
	clk domain.ClockAndLocale,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Service{creds: creds, prefs: prefs, clock: clk, logger: logger}
}

// Export writes the current state to path sealed under passphrase. A
// missing session is allowed; preferences alone are exported then.
func (s *Service) Export(path, passphrase string) error {
	if passphrase == "" {
		return fmt.Errorf("%w: empty passphrase", domain.ErrWrongPassphrase)
	}

	p := payload{Version: payloadVersion, ExportedAt: s.clock.Now().Unix()}

	creds, err := s.creds.LoadCredentials()
	switch {
	case err == nil:
		p.Credentials = &creds
	case errors.Is(err, domain.ErrNotFound):
	default:
		return err
	}

	if p.Preferences, err = s.prefs.LoadPreferences(); err != nil {
		return err
	}

	if err := store.WriteSealedJSON(path, passphrase, p); err != nil {
		return err
	}
	s.logger.Info("backup exported",
		slog.String("path", path),
		slog.Bool("has_session", p.Credentials != nil),
	)
	return nil
}

// Import restores the state sealed at path. Nothing is written unless the
// file opens with passphrase and its session record is complete.
func (s *Service) Import(path, passphrase string) error {
	var p payload
	if err := store.ReadSealedJSON(path, passphrase, &p); err != nil {
		return err
	}
	if p.Version != payloadVersion {
		return fmt.Errorf("%w: backup version %d", domain.ErrCorruptData, p.Version)
	}
	if p.Credentials != nil {
		if err := p.Credentials.Validate(); err != nil {
			return fmt.Errorf("%w: backup session: %v", domain.ErrCorruptData, err)
		}
	}

	if p.Credentials != nil {
		if err := s.creds.SaveCredentials(*p.Credentials); err != nil {
			return err
		}
	}
	if err := s.prefs.SavePreferences(p.Preferences); err != nil {
		return err
	}
	s.logger.Info("backup imported",
		slog.String("path", path),
		slog.Bool("has_session", p.Credentials != nil),
	)
	return nil
}

// Compile-time assertion that Service implements domain.BackupService.
var _ domain.BackupService = (*Service)(nil)
