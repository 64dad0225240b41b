package store_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"stayreal/internal/domain"
	"stayreal/internal/store"
)

func TestCredentials_SaveLoad_RoundTrip(t *testing.T) {
	home := t.TempDir()
	var cs domain.CredentialsStore = store.NewCredentialsFileStore(home)

	want := domain.Credentials{DeviceID: "abc", AccessToken: "a", RefreshToken: "r"}
	if err := cs.SaveCredentials(want); err != nil {
		t.Fatalf("save credentials: %v", err)
	}
	got, err := cs.LoadCredentials()
	if err != nil {
		t.Fatalf("load credentials: %v", err)
	}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestCredentials_Save_CreatesParentDirs(t *testing.T) {
	home := filepath.Join(t.TempDir(), "nested", "data")
	cs := store.NewCredentialsFileStore(home)

	if err := cs.SaveCredentials(domain.Credentials{DeviceID: "d", AccessToken: "a", RefreshToken: "r"}); err != nil {
		t.Fatalf("save credentials: %v", err)
	}
	info, err := os.Stat(cs.Path())
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("mode = %v, want 0600", info.Mode().Perm())
	}
}

func TestCredentials_Save_UsesCamelCaseJSON(t *testing.T) {
	home := t.TempDir()
	cs := store.NewCredentialsFileStore(home)
	if err := cs.SaveCredentials(domain.Credentials{DeviceID: "d", AccessToken: "a", RefreshToken: "r"}); err != nil {
		t.Fatalf("save credentials: %v", err)
	}
	b, err := os.ReadFile(filepath.Join(home, store.CredentialsFilename))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	for _, key := range []string{`"deviceId"`, `"accessToken"`, `"refreshToken"`} {
		if !strings.Contains(string(b), key) {
			t.Fatalf("file %s lacks key %s", b, key)
		}
	}
}

func TestCredentials_Save_RejectsPartialRecord(t *testing.T) {
	home := t.TempDir()
	cs := store.NewCredentialsFileStore(home)

	err := cs.SaveCredentials(domain.Credentials{DeviceID: "d", AccessToken: "a"})
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
	if _, err := os.Stat(cs.Path()); !os.IsNotExist(err) {
		t.Fatalf("partial record reached disk: %v", err)
	}
}

func TestCredentials_Load_Missing_NotFound(t *testing.T) {
	cs := store.NewCredentialsFileStore(t.TempDir())
	if _, err := cs.LoadCredentials(); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestCredentials_Load_Malformed_CorruptData(t *testing.T) {
	home := t.TempDir()
	cs := store.NewCredentialsFileStore(home)
	if err := os.WriteFile(cs.Path(), []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := cs.LoadCredentials(); !errors.Is(err, domain.ErrCorruptData) {
		t.Fatalf("err = %v, want ErrCorruptData", err)
	}
}

func TestCredentials_Load_EmptyField_CorruptData(t *testing.T) {
	home := t.TempDir()
	cs := store.NewCredentialsFileStore(home)
	body := `{"deviceId":"d","accessToken":"","refreshToken":"r"}`
	if err := os.WriteFile(cs.Path(), []byte(body), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := cs.LoadCredentials(); !errors.Is(err, domain.ErrCorruptData) {
		t.Fatalf("err = %v, want ErrCorruptData", err)
	}
}

func TestCredentials_Clear_TwiceFailsNotFound(t *testing.T) {
	cs := store.NewCredentialsFileStore(t.TempDir())
	if err := cs.SaveCredentials(domain.Credentials{DeviceID: "d", AccessToken: "a", RefreshToken: "r"}); err != nil {
		t.Fatalf("save credentials: %v", err)
	}
	if err := cs.ClearCredentials(); err != nil {
		t.Fatalf("first clear: %v", err)
	}
	if err := cs.ClearCredentials(); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("second clear err = %v, want ErrNotFound", err)
	}
	if _, err := cs.LoadCredentials(); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("load after clear err = %v, want ErrNotFound", err)
	}
}

func TestCredentials_Save_Overwrites(t *testing.T) {
	cs := store.NewCredentialsFileStore(t.TempDir())
	first := domain.Credentials{DeviceID: "d", AccessToken: "a1", RefreshToken: "r1"}
	second := domain.Credentials{DeviceID: "d", AccessToken: "a2", RefreshToken: "r2"}
	if err := cs.SaveCredentials(first); err != nil {
		t.Fatalf("save first: %v", err)
	}
	if err := cs.SaveCredentials(second); err != nil {
		t.Fatalf("save second: %v", err)
	}
	got, err := cs.LoadCredentials()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != second {
		t.Fatalf("got %+v, want %+v", got, second)
	}
	entries, err := os.ReadDir(filepath.Dir(cs.Path()))
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected only credentials.json, found %d entries", len(entries))
	}
}
