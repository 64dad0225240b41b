package balances

import (
	"fmt"
	"log/slog"

	"stayreal/internal/domain"
	"stayreal/internal/logging"
	"stayreal/internal/store"
)

// placeholderBalance is written for every person until real balances can
// be fetched.
const placeholderBalance = "sample"

// Service reads settings from preferences and writes records through an
// archive.
type Service struct {
	prefs   domain.PreferencesStore
	archive domain.BalancesArchive
	clock   domain.ClockAndLocale
	logger  *slog.Logger
}

// New constructs a balances Service.
func New(
	prefs domain.PreferencesStore,
	archive domain.BalancesArchive,
	clk domain.ClockAndLocale,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Service{prefs: prefs, archive: archive, clock: clk, logger: logger}
}

// GetBalancesSettings returns the folder (empty when unset) and people ids.
func (s *Service) GetBalancesSettings() (domain.BalancesSettings, error) {
	prefs, err := s.prefs.LoadPreferences()
	if err != nil {
		return domain.BalancesSettings{}, err
	}
	out := domain.BalancesSettings{PeopleIDs: prefs.BalancesPeopleIDs}
	if prefs.BalancesDownloadFolder != nil {
		out.Folder = *prefs.BalancesDownloadFolder
	}
	return out, nil
}

// SetBalancesSettings stores settings into preferences, keeping the region.
// An empty folder clears the download folder.
func (s *Service) SetBalancesSettings(settings domain.BalancesSettings) error {
	for _, id := range settings.PeopleIDs {
		if !store.ValidPersonID(id) {
			return fmt.Errorf("%w: %q", domain.ErrInvalidPersonID, id)
		}
	}

	prefs, err := s.prefs.LoadPreferences()
	if err != nil {
		return err
	}
	prefs.BalancesDownloadFolder = nil
	if settings.Folder != "" {
		folder := settings.Folder
		prefs.BalancesDownloadFolder = &folder
	}
	prefs.BalancesPeopleIDs = append([]string{}, settings.PeopleIDs...)
	return s.prefs.SavePreferences(prefs)
}

// DownloadBalances writes one record per configured person and returns the
// file names written. It fails with domain.ErrNoBalancesFolder when no
// folder is configured.
func (s *Service) DownloadBalances() ([]string, error) {
	prefs, err := s.prefs.LoadPreferences()
	if err != nil {
		return nil, err
	}
	if prefs.BalancesDownloadFolder == nil || *prefs.BalancesDownloadFolder == "" {
		return nil, domain.ErrNoBalancesFolder
	}
	folder := *prefs.BalancesDownloadFolder

	ts := s.clock.Now().Unix()
	written := make([]string, 0, len(prefs.BalancesPeopleIDs))
	for _, id := range prefs.BalancesPeopleIDs {
		name, err := s.archive.WriteRecord(folder, domain.BalanceRecord{
			PersonID:  id,
			Balance:   placeholderBalance,
			Timestamp: ts,
		})
		if err != nil {
			return written, err
		}
		written = append(written, name)
	}

	s.logger.Info("balances downloaded",
		slog.String("folder", folder),
		slog.Int("count", len(written)),
	)
	return written, nil
}

// ListBalances returns the record file names in the configured folder, or
// an empty list when no folder is configured.
func (s *Service) ListBalances() ([]string, error) {
	prefs, err := s.prefs.LoadPreferences()
	if err != nil {
		return nil, err
	}
	if prefs.BalancesDownloadFolder == nil || *prefs.BalancesDownloadFolder == "" {
		return []string{}, nil
	}
	return s.archive.ListRecords(*prefs.BalancesDownloadFolder)
}

// Compile-time assertion that Service implements domain.BalancesService.
var _ domain.BalancesService = (*Service)(nil)
