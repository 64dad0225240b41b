package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"stayreal/internal/domain"
)

// BalancesDirStore keeps balance records as individual JSON files named
// <personId>_<unix>.json.
type BalancesDirStore struct{}

// NewBalancesDirStore returns a BalancesDirStore.
func NewBalancesDirStore() *BalancesDirStore { return &BalancesDirStore{} }

// RecordFilename returns the file name used for rec.
func RecordFilename(rec domain.BalanceRecord) string {
	return rec.PersonID + "_" + strconv.FormatInt(rec.Timestamp, 10) + ".json"
}

// ValidPersonID reports whether id can be used as a file name component.
func ValidPersonID(id string) bool {
	return validComponent(id)
}

func validComponent(s string) bool {
	if s == "" || s == "." || s == ".." {
		return false
	}
	return !strings.ContainsAny(s, `/\`+"\x00")
}

// WriteRecord writes rec into folder, creating it if needed, and returns
// the file name. A record for the same person and second is replaced.
func (s *BalancesDirStore) WriteRecord(folder string, rec domain.BalanceRecord) (string, error) {
	if !ValidPersonID(rec.PersonID) {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidPersonID, rec.PersonID)
	}
	name := RecordFilename(rec)
	if err := writeJSON(filepath.Join(folder, name), rec); err != nil {
		return "", err
	}
	return name, nil
}

// ListRecords returns the names of the regular files in folder, sorted.
// A folder that does not exist yet holds no records.
func (s *BalancesDirStore) ListRecords(folder string) ([]string, error) {
	entries, err := os.ReadDir(folder)
	if errors.Is(err, fs.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: list %s: %w", domain.ErrPersistence, folder, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type().IsRegular() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Compile-time assertion that BalancesDirStore implements domain.BalancesArchive.
var _ domain.BalancesArchive = (*BalancesDirStore)(nil)
