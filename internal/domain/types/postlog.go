package types

// PostLogSettings configures the saved-post log. It is persisted in
// bereal_logger_config.json; a missing file yields DefaultPostLogSettings.
type PostLogSettings struct {
	SaveDirectory   string   `json:"save_directory"`
	SelectedFriends []string `json:"selected_friends"`
	AutoSaveEnabled bool     `json:"auto_save_enabled"`
}

// DefaultPostLogSettings returns settings with no directory and an empty,
// non-nil friends list.
func DefaultPostLogSettings() PostLogSettings {
	return PostLogSettings{SelectedFriends: []string{}}
}

// SavedLocation is where a post was taken.
type SavedLocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// SavedPost is one entry of saved_posts_index.json.
type SavedPost struct {
	ID                 string         `json:"id"`
	UserID             string         `json:"user_id"`
	Username           string         `json:"username"`
	MomentID           string         `json:"moment_id"`
	PrimaryImagePath   string         `json:"primary_image_path"`
	SecondaryImagePath string         `json:"secondary_image_path"`
	Caption            *string        `json:"caption"`
	TakenAt            string         `json:"taken_at"`
	SavedAt            string         `json:"saved_at"`
	Location           *SavedLocation `json:"location"`
}

// PostCapture describes a post to save: who posted it and where its two
// images can be downloaded.
type PostCapture struct {
	UserID            string
	Username          string
	MomentID          string
	PrimaryImageURL   string
	SecondaryImageURL string
	Caption           *string
	TakenAt           string
	Location          *SavedLocation
}
