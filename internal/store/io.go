package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"stayreal/internal/domain"
)

const (
	fileMode = 0o600
	dirMode  = 0o700
)

// readJSON reads path into out. found is false when the file does not exist;
// that case is not an error. Read failures wrap domain.ErrPersistence and
// decode failures wrap domain.ErrCorruptData.
func readJSON(path string, out any) (found bool, err error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: read %s: %w", domain.ErrPersistence, path, err)
	}
	if err := json.Unmarshal(b, out); err != nil {
		return true, fmt.Errorf("%w: %s: %w", domain.ErrCorruptData, filepath.Base(path), err)
	}
	return true, nil
}

// writeJSON writes JSON via a temp file then rename, creating parent
// directories as needed. Failures wrap domain.ErrPersistence.
func writeJSON(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode %s: %w", domain.ErrPersistence, filepath.Base(path), err)
	}
	if err := writeFile(path, b, fileMode); err != nil {
		return fmt.Errorf("%w: write %s: %w", domain.ErrPersistence, path, err)
	}
	return nil
}

// writeFile writes bytes via a temp file, then atomically replaces the target.
func writeFile(path string, b []byte, mode os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return err
	}

	f, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()

	// Best-effort cleanup if anything fails before rename.
	defer func() { _ = os.Remove(tmp) }()

	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Chmod(mode); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	return os.Rename(tmp, path)
}

// removeFile deletes path. A missing file wraps domain.ErrNotFound.
func removeFile(path string) error {
	err := os.Remove(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, filepath.Base(path))
	}
	if err != nil {
		return fmt.Errorf("%w: remove %s: %w", domain.ErrPersistence, path, err)
	}
	return nil
}
