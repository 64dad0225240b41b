package store_test

import (
	"errors"
	"os"
	"reflect"
	"strings"
	"testing"

	"stayreal/internal/domain"
	"stayreal/internal/store"
)

func TestPreferences_Load_Missing_ReturnsDefaults(t *testing.T) {
	ps := store.NewPreferencesFileStore(t.TempDir())

	got, err := ps.LoadPreferences()
	if err != nil {
		t.Fatalf("load preferences: %v", err)
	}
	if got.Region != "" {
		t.Fatalf("region = %q, want empty", got.Region)
	}
	if got.BalancesDownloadFolder != nil {
		t.Fatalf("folder = %v, want nil", *got.BalancesDownloadFolder)
	}
	if got.BalancesPeopleIDs == nil || len(got.BalancesPeopleIDs) != 0 {
		t.Fatalf("people ids = %#v, want empty non-nil slice", got.BalancesPeopleIDs)
	}
}

func TestPreferences_SaveLoad_RoundTrip(t *testing.T) {
	ps := store.NewPreferencesFileStore(t.TempDir())
	folder := "/tmp/balances"
	want := domain.Preferences{
		Region:                 "europe-west",
		BalancesDownloadFolder: &folder,
		BalancesPeopleIDs:      []string{"p1", "p2"},
	}
	if err := ps.SavePreferences(want); err != nil {
		t.Fatalf("save preferences: %v", err)
	}
	got, err := ps.LoadPreferences()
	if err != nil {
		t.Fatalf("load preferences: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestPreferences_Save_OmitsUnsetFolder(t *testing.T) {
	ps := store.NewPreferencesFileStore(t.TempDir())
	if err := ps.SavePreferences(domain.Preferences{Region: "us-central"}); err != nil {
		t.Fatalf("save preferences: %v", err)
	}
	b, err := os.ReadFile(ps.Path())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if strings.Contains(string(b), "balancesDownloadFolder") {
		t.Fatalf("unset folder was written: %s", b)
	}
	if !strings.Contains(string(b), `"balancesPeopleIds": []`) {
		t.Fatalf("people ids not written as []: %s", b)
	}
}

func TestPreferences_Load_ToleratesMissingPeopleIDs(t *testing.T) {
	ps := store.NewPreferencesFileStore(t.TempDir())
	if err := os.WriteFile(ps.Path(), []byte(`{"region":"asia-east"}`), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := ps.LoadPreferences()
	if err != nil {
		t.Fatalf("load preferences: %v", err)
	}
	if got.Region != "asia-east" || got.BalancesPeopleIDs == nil {
		t.Fatalf("got %+v", got)
	}
}

func TestPreferences_Load_Malformed_CorruptData(t *testing.T) {
	ps := store.NewPreferencesFileStore(t.TempDir())
	if err := os.WriteFile(ps.Path(), []byte(`[]`), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := ps.LoadPreferences(); !errors.Is(err, domain.ErrCorruptData) {
		t.Fatalf("err = %v, want ErrCorruptData", err)
	}
}
