package interfaces

import (
	"context"

	domaintypes "stayreal/internal/domain/types"
)

// SessionService keeps a usable access token on disk.
type SessionService interface {
	SetCredentials(creds domaintypes.Credentials) error
	GetCredentials() (domaintypes.Credentials, error)
	ClearCredentials() error
	Refresh(ctx context.Context) error
	Status() (domaintypes.TokenStatus, error)
}

// PreferencesService reads and edits stored preferences.
type PreferencesService interface {
	GetPreferences() (domaintypes.Preferences, error)
	SetPreferences(prefs domaintypes.Preferences) error
	SetRegion(region domaintypes.Region) error
}

// MomentService fetches the moment of the configured region.
type MomentService interface {
	FetchLastMoment(ctx context.Context) (domaintypes.Moment, error)
}

// BalancesService manages the balance records of the configured people.
type BalancesService interface {
	GetBalancesSettings() (domaintypes.BalancesSettings, error)
	SetBalancesSettings(settings domaintypes.BalancesSettings) error
	DownloadBalances() ([]string, error)
	ListBalances() ([]string, error)
}

// BackupService exports and restores local state under a passphrase.
type BackupService interface {
	Export(path, passphrase string) error
	Import(path, passphrase string) error
}

// PostLogService saves friends' posts to a local folder and keeps an index
// of them.
type PostLogService interface {
	GetSettings() (domaintypes.PostLogSettings, error)
	SetSettings(settings domaintypes.PostLogSettings) error
	SavePost(ctx context.Context, capture domaintypes.PostCapture) (string, error)
	SavedPosts() ([]domaintypes.SavedPost, error)
	SavedPostsByUser(userID string) ([]domaintypes.SavedPost, error)
	DeleteSavedPost(id string) error
	// Stats counts saved posts per username.
	Stats() (map[string]int, error)
}
