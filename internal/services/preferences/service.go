package preferences

import (
	"stayreal/internal/domain"
)

// Service edits preferences with read-modify-write semantics.
type Service struct {
	store domain.PreferencesStore
}

// New constructs a preferences Service.
func New(store domain.PreferencesStore) *Service {
	return &Service{store: store}
}

// GetPreferences returns the stored preferences, or the defaults.
func (s *Service) GetPreferences() (domain.Preferences, error) {
	return s.store.LoadPreferences()
}

// SetPreferences replaces the stored preferences.
func (s *Service) SetPreferences(prefs domain.Preferences) error {
	return s.store.SavePreferences(prefs)
}

// SetRegion changes the region and keeps every other field.
func (s *Service) SetRegion(region domain.Region) error {
	prefs, err := s.store.LoadPreferences()
	if err != nil {
		return err
	}
	prefs.Region = region
	return s.store.SavePreferences(prefs)
}

// Compile-time assertion that Service implements domain.PreferencesService.
var _ domain.PreferencesService = (*Service)(nil)
