package store

import (
	"fmt"
	"path/filepath"
	"sync"

	"stayreal/internal/domain"
)

// CredentialsFilename is the name of the credentials file inside the data dir.
const CredentialsFilename = "credentials.json"

// CredentialsFileStore persists the device id and tokens to disk.
type CredentialsFileStore struct {
	dir string
	mu  sync.Mutex
}

// NewCredentialsFileStore returns a CredentialsFileStore rooted at dir.
func NewCredentialsFileStore(dir string) *CredentialsFileStore {
	return &CredentialsFileStore{dir: dir}
}

// Path returns the location of the credentials file.
func (s *CredentialsFileStore) Path() string {
	return filepath.Join(s.dir, CredentialsFilename)
}

// SaveCredentials replaces the stored credentials. Records with an empty
// field are refused with domain.ErrInvalidCredentials and nothing is written.
func (s *CredentialsFileStore) SaveCredentials(creds domain.Credentials) error {
	if err := creds.Validate(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidCredentials, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return writeJSON(s.Path(), creds)
}

// LoadCredentials returns the stored credentials, domain.ErrNotFound when
// there are none and domain.ErrCorruptData when the file cannot be used.
func (s *CredentialsFileStore) LoadCredentials() (domain.Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var creds domain.Credentials
	found, err := readJSON(s.Path(), &creds)
	if err != nil {
		return domain.Credentials{}, err
	}
	if !found {
		return domain.Credentials{}, fmt.Errorf("%w: no stored credentials", domain.ErrNotFound)
	}
	if err := creds.Validate(); err != nil {
		return domain.Credentials{}, fmt.Errorf("%w: %s: %v", domain.ErrCorruptData, CredentialsFilename, err)
	}
	return creds, nil
}

// ClearCredentials deletes the credentials file. Clearing an empty store
// fails with domain.ErrNotFound.
func (s *CredentialsFileStore) ClearCredentials() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return removeFile(s.Path())
}

// Compile-time assertion that CredentialsFileStore implements domain.CredentialsStore.
var _ domain.CredentialsStore = (*CredentialsFileStore)(nil)
