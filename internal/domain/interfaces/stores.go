package interfaces

import domaintypes "stayreal/internal/domain/types"

// CredentialsStore persists the device id and session tokens.
type CredentialsStore interface {
	SaveCredentials(creds domaintypes.Credentials) error
	LoadCredentials() (domaintypes.Credentials, error)
	ClearCredentials() error
}

// PreferencesStore persists optional user preferences. Loading never fails
// on a missing file.
type PreferencesStore interface {
	SavePreferences(prefs domaintypes.Preferences) error
	LoadPreferences() (domaintypes.Preferences, error)
}

// BalancesArchive writes and lists balance records inside a folder chosen
// by the user.
type BalancesArchive interface {
	WriteRecord(folder string, rec domaintypes.BalanceRecord) (string, error)
	ListRecords(folder string) ([]string, error)
}

// PostLogStore persists the saved-post log: its settings, the index of
// saved posts and the image files the index points at.
type PostLogStore interface {
	LoadPostLogSettings() (domaintypes.PostLogSettings, error)
	SavePostLogSettings(settings domaintypes.PostLogSettings) error
	LoadSavedPosts() ([]domaintypes.SavedPost, error)
	AppendSavedPost(post domaintypes.SavedPost) error
	// RemoveSavedPost drops the entry with id from the index and returns it.
	RemoveSavedPost(id string) (domaintypes.SavedPost, error)
	WriteImage(path string, data []byte) error
	RemoveImage(path string) error
}
