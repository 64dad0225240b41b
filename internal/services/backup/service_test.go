package backup_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"stayreal/internal/clock"
	"stayreal/internal/domain"
	"stayreal/internal/services/backup"
	"stayreal/internal/store"
)

type home struct {
	creds *store.CredentialsFileStore
	prefs *store.PreferencesFileStore
	svc   *backup.Service
}

func newHome(t *testing.T) home {
	t.Helper()
	dir := t.TempDir()
	h := home{
		creds: store.NewCredentialsFileStore(dir),
		prefs: store.NewPreferencesFileStore(dir),
	}
	h.svc = backup.New(h.creds, h.prefs, clock.Fixed{At: time.Unix(1700000000, 0), Zone: "UTC"}, nil)
	return h
}

func TestExportImportMovesState(t *testing.T) {
	src := newHome(t)
	creds := domain.Credentials{DeviceID: "D", AccessToken: "A", RefreshToken: "R"}
	if err := src.creds.SaveCredentials(creds); err != nil {
		t.Fatal(err)
	}
	if err := src.prefs.SavePreferences(domain.Preferences{Region: "europe-west"}); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "state.sealed")
	if err := src.svc.Export(path, "correct horse"); err != nil {
		t.Fatalf("Export: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(raw), "europe-west") || strings.Contains(string(raw), `"R"`) {
		t.Fatalf("backup contains plaintext")
	}

	dst := newHome(t)
	if err := dst.svc.Import(path, "wrong"); !errors.Is(err, domain.ErrWrongPassphrase) {
		t.Fatalf("err = %v, want ErrWrongPassphrase", err)
	}
	if _, err := dst.creds.LoadCredentials(); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("failed import wrote credentials")
	}

	if err := dst.svc.Import(path, "correct horse"); err != nil {
		t.Fatalf("Import: %v", err)
	}
	got, err := dst.creds.LoadCredentials()
	if err != nil || got != creds {
		t.Fatalf("credentials = %+v, %v", got, err)
	}
	prefs, err := dst.prefs.LoadPreferences()
	if err != nil || prefs.Region != "europe-west" {
		t.Fatalf("preferences = %+v, %v", prefs, err)
	}
}

func TestExportWithoutSession(t *testing.T) {
	src := newHome(t)
	path := filepath.Join(t.TempDir(), "prefs-only.sealed")
	if err := src.svc.Export(path, "pw"); err != nil {
		t.Fatalf("Export: %v", err)
	}

	dst := newHome(t)
	if err := dst.svc.Import(path, "pw"); err != nil {
		t.Fatalf("Import: %v", err)
	}
	if _, err := dst.creds.LoadCredentials(); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestExportRejectsEmptyPassphrase(t *testing.T) {
	h := newHome(t)
	if err := h.svc.Export(filepath.Join(t.TempDir(), "x"), ""); !errors.Is(err, domain.ErrWrongPassphrase) {
		t.Fatalf("err = %v, want ErrWrongPassphrase", err)
	}
}

func TestImportMissingFile(t *testing.T) {
	h := newHome(t)
	if err := h.svc.Import(filepath.Join(t.TempDir(), "nope"), "pw"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
