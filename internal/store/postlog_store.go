package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"stayreal/internal/domain"
)

// File names of the saved-post log inside the data dir.
const (
	PostLogSettingsFilename = "bereal_logger_config.json"
	SavedPostsFilename      = "saved_posts_index.json"
)

// Saved images are photos the user browses, not secrets.
const imageMode = 0o644

// PostLogFileStore keeps the saved-post log settings and index in the data
// dir. Images are written wherever the caller's paths point.
type PostLogFileStore struct {
	dir string
	mu  sync.Mutex
}

// NewPostLogFileStore returns a PostLogFileStore rooted at dir.
func NewPostLogFileStore(dir string) *PostLogFileStore {
	return &PostLogFileStore{dir: dir}
}

// SettingsPath returns the location of the settings file.
func (s *PostLogFileStore) SettingsPath() string {
	return filepath.Join(s.dir, PostLogSettingsFilename)
}

// IndexPath returns the location of the saved-post index.
func (s *PostLogFileStore) IndexPath() string {
	return filepath.Join(s.dir, SavedPostsFilename)
}

// LoadPostLogSettings returns the stored settings, or the defaults when no
// file exists.
func (s *PostLogFileStore) LoadPostLogSettings() (domain.PostLogSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings := domain.DefaultPostLogSettings()
	found, err := readJSON(s.SettingsPath(), &settings)
	if err != nil {
		return domain.PostLogSettings{}, err
	}
	if !found {
		return domain.DefaultPostLogSettings(), nil
	}
	if settings.SelectedFriends == nil {
		settings.SelectedFriends = []string{}
	}
	return settings, nil
}

// SavePostLogSettings replaces the stored settings.
func (s *PostLogFileStore) SavePostLogSettings(settings domain.PostLogSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if settings.SelectedFriends == nil {
		settings.SelectedFriends = []string{}
	}
	return writeJSON(s.SettingsPath(), settings)
}

// LoadSavedPosts returns the index in insertion order. A missing index is
// empty.
func (s *PostLogFileStore) LoadSavedPosts() ([]domain.SavedPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loadLocked()
}

// AppendSavedPost adds post to the end of the index.
func (s *PostLogFileStore) AppendSavedPost(post domain.SavedPost) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts, err := s.loadLocked()
	if err != nil {
		return err
	}
	return writeJSON(s.IndexPath(), append(posts, post))
}

// RemoveSavedPost drops the post with id from the index and returns it. A
// missing index or unknown id wraps domain.ErrNotFound.
func (s *PostLogFileStore) RemoveSavedPost(id string) (domain.SavedPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts, found, err := s.readLocked()
	if err != nil {
		return domain.SavedPost{}, err
	}
	if !found {
		return domain.SavedPost{}, fmt.Errorf("%w: no saved posts", domain.ErrNotFound)
	}
	for i, p := range posts {
		if p.ID != id {
			continue
		}
		rest := append(posts[:i:i], posts[i+1:]...)
		if err := writeJSON(s.IndexPath(), rest); err != nil {
			return domain.SavedPost{}, err
		}
		return p, nil
	}
	return domain.SavedPost{}, fmt.Errorf("%w: saved post %s", domain.ErrNotFound, id)
}

// WriteImage writes data to path, creating parent directories.
func (s *PostLogFileStore) WriteImage(path string, data []byte) error {
	if err := writeFile(path, data, imageMode); err != nil {
		return fmt.Errorf("%w: write %s: %w", domain.ErrPersistence, path, err)
	}
	return nil
}

// RemoveImage deletes the image at path. A file that is already gone is
// not an error.
func (s *PostLogFileStore) RemoveImage(path string) error {
	if path == "" {
		return nil
	}
	err := os.Remove(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: remove %s: %w", domain.ErrPersistence, path, err)
	}
	return nil
}

func (s *PostLogFileStore) loadLocked() ([]domain.SavedPost, error) {
	posts, _, err := s.readLocked()
	return posts, err
}

func (s *PostLogFileStore) readLocked() ([]domain.SavedPost, bool, error) {
	var posts []domain.SavedPost
	found, err := readJSON(s.IndexPath(), &posts)
	if err != nil {
		return nil, found, err
	}
	if posts == nil {
		posts = []domain.SavedPost{}
	}
	return posts, found, nil
}

// ValidUsername reports whether name can be used as a directory name.
func ValidUsername(name string) bool {
	return validComponent(name)
}

// Compile-time assertion that PostLogFileStore implements domain.PostLogStore.
var _ domain.PostLogStore = (*PostLogFileStore)(nil)
