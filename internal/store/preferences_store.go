package store

import (
	"path/filepath"
	"sync"

	"stayreal/internal/domain"
)

// PreferencesFilename is the name of the preferences file inside the data dir.
const PreferencesFilename = "preferences.json"

// PreferencesFileStore persists user preferences to disk.
type PreferencesFileStore struct {
	dir string
	mu  sync.Mutex
}

// NewPreferencesFileStore returns a PreferencesFileStore rooted at dir.
func NewPreferencesFileStore(dir string) *PreferencesFileStore {
	return &PreferencesFileStore{dir: dir}
}

// Path returns the location of the preferences file.
func (s *PreferencesFileStore) Path() string {
	return filepath.Join(s.dir, PreferencesFilename)
}

// SavePreferences replaces the stored preferences.
func (s *PreferencesFileStore) SavePreferences(prefs domain.Preferences) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return writeJSON(s.Path(), normalise(prefs))
}

// LoadPreferences returns the stored preferences, or the defaults when no
// file exists. A malformed file wraps domain.ErrCorruptData.
func (s *PreferencesFileStore) LoadPreferences() (domain.Preferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prefs := domain.DefaultPreferences()
	found, err := readJSON(s.Path(), &prefs)
	if err != nil {
		return domain.Preferences{}, err
	}
	if !found {
		return domain.DefaultPreferences(), nil
	}
	return normalise(prefs), nil
}

// normalise keeps the people list non-nil so it round-trips as [].
func normalise(p domain.Preferences) domain.Preferences {
	if p.BalancesPeopleIDs == nil {
		p.BalancesPeopleIDs = []string{}
	}
	return p
}

// Compile-time assertion that PreferencesFileStore implements domain.PreferencesStore.
var _ domain.PreferencesStore = (*PreferencesFileStore)(nil)
