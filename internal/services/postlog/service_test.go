package postlog_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"stayreal/internal/clock"
	"stayreal/internal/domain"
	"stayreal/internal/services/postlog"
	"stayreal/internal/store"
)

type fakeImages struct {
	data  map[string][]byte
	calls []string
}

func (f *fakeImages) DownloadImage(_ context.Context, url string) ([]byte, error) {
	f.calls = append(f.calls, url)
	b, ok := f.data[url]
	if !ok {
		return nil, &domain.StatusError{Op: "download image", StatusCode: 404, Kind: domain.ErrProtocol}
	}
	return b, nil
}

type fixture struct {
	svc    *postlog.Service
	store  *store.PostLogFileStore
	images *fakeImages
	save   string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	st := store.NewPostLogFileStore(t.TempDir())
	images := &fakeImages{data: map[string][]byte{
		"https://cdn.example/p.jpg": []byte("primary"),
		"https://cdn.example/s.jpg": []byte("secondary"),
	}}
	clk := clock.Fixed{At: time.Unix(1700000000, 0), Zone: "Europe/Paris"}
	f := fixture{
		svc:    postlog.New(st, images, clk, nil),
		store:  st,
		images: images,
		save:   t.TempDir(),
	}
	if err := f.svc.SetSettings(domain.PostLogSettings{SaveDirectory: f.save}); err != nil {
		t.Fatalf("SetSettings: %v", err)
	}
	return f
}

func capture(userID, username string) domain.PostCapture {
	caption := "hello"
	return domain.PostCapture{
		UserID:            userID,
		Username:          username,
		MomentID:          "m1",
		PrimaryImageURL:   "https://cdn.example/p.jpg",
		SecondaryImageURL: "https://cdn.example/s.jpg",
		Caption:           &caption,
		TakenAt:           "2023-11-14T22:10:00Z",
		Location:          &domain.SavedLocation{Latitude: 48.85, Longitude: 2.35},
	}
}

func TestSavePostWritesImagesAndIndex(t *testing.T) {
	f := newFixture(t)

	id, err := f.svc.SavePost(context.Background(), capture("u1", "alice"))
	if err != nil {
		t.Fatalf("SavePost: %v", err)
	}
	posts, err := f.svc.SavedPosts()
	if err != nil {
		t.Fatal(err)
	}
	if len(posts) != 1 {
		t.Fatalf("posts = %+v", posts)
	}
	p := posts[0]
	if p.ID != id || p.UserID != "u1" || p.Username != "alice" || p.MomentID != "m1" {
		t.Fatalf("post = %+v", p)
	}
	if p.SavedAt != "2023-11-14T22:13:20Z" {
		t.Fatalf("SavedAt = %q", p.SavedAt)
	}
	if p.Caption == nil || *p.Caption != "hello" || p.Location == nil || p.Location.Latitude != 48.85 {
		t.Fatalf("optional fields lost: %+v", p)
	}

	wantPrimary := filepath.Join(f.save, "alice", "20231114_221320_"+id+"_primary.jpg")
	if p.PrimaryImagePath != wantPrimary {
		t.Fatalf("primary path = %q, want %q", p.PrimaryImagePath, wantPrimary)
	}
	for path, want := range map[string]string{p.PrimaryImagePath: "primary", p.SecondaryImagePath: "secondary"} {
		b, err := os.ReadFile(path)
		if err != nil || string(b) != want {
			t.Fatalf("%s = %q, %v", path, b, err)
		}
	}
}

func TestSavePostRequiresDirectory(t *testing.T) {
	f := newFixture(t)

	if err := f.svc.SetSettings(domain.PostLogSettings{}); err != nil {
		t.Fatal(err)
	}
	if _, err := f.svc.SavePost(context.Background(), capture("u1", "alice")); !errors.Is(err, domain.ErrNoSaveDirectory) {
		t.Fatalf("unset: err = %v, want ErrNoSaveDirectory", err)
	}

	if err := f.svc.SetSettings(domain.PostLogSettings{SaveDirectory: filepath.Join(f.save, "gone")}); err != nil {
		t.Fatal(err)
	}
	if _, err := f.svc.SavePost(context.Background(), capture("u1", "alice")); !errors.Is(err, domain.ErrNoSaveDirectory) {
		t.Fatalf("missing dir: err = %v, want ErrNoSaveDirectory", err)
	}
	if len(f.images.calls) != 0 {
		t.Fatalf("downloaded before checking the directory: %v", f.images.calls)
	}
}

func TestSavePostRejectsUnsafeUsername(t *testing.T) {
	f := newFixture(t)
	for _, name := range []string{"", "..", "../etc", "a/b"} {
		if _, err := f.svc.SavePost(context.Background(), capture("u1", name)); !errors.Is(err, domain.ErrInvalidUsername) {
			t.Fatalf("%q: err = %v, want ErrInvalidUsername", name, err)
		}
	}
}

func TestSavePostDownloadFailureLeavesNothing(t *testing.T) {
	f := newFixture(t)
	c := capture("u1", "alice")
	c.SecondaryImageURL = "https://cdn.example/missing.jpg"

	_, err := f.svc.SavePost(context.Background(), c)
	if !errors.Is(err, domain.ErrProtocol) {
		t.Fatalf("err = %v, want ErrProtocol", err)
	}
	if _, err := os.Stat(filepath.Join(f.save, "alice")); !os.IsNotExist(err) {
		t.Fatalf("user dir created on failure: %v", err)
	}
	if posts, _ := f.svc.SavedPosts(); len(posts) != 0 {
		t.Fatalf("index written on failure: %+v", posts)
	}
}

func TestQueriesAndDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	var aliceIDs []string
	for _, c := range []domain.PostCapture{capture("u1", "alice"), capture("u2", "bob"), capture("u1", "alice")} {
		id, err := f.svc.SavePost(ctx, c)
		if err != nil {
			t.Fatal(err)
		}
		if c.UserID == "u1" {
			aliceIDs = append(aliceIDs, id)
		}
	}

	byUser, err := f.svc.SavedPostsByUser("u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(byUser) != 2 || byUser[0].ID != aliceIDs[0] || byUser[1].ID != aliceIDs[1] {
		t.Fatalf("by user = %+v", byUser)
	}
	if none, err := f.svc.SavedPostsByUser("nobody"); err != nil || len(none) != 0 {
		t.Fatalf("unknown user = %+v, %v", none, err)
	}

	stats, err := f.svc.Stats()
	if err != nil {
		t.Fatal(err)
	}
	if len(stats) != 2 || stats["alice"] != 2 || stats["bob"] != 1 {
		t.Fatalf("stats = %v", stats)
	}

	victim := byUser[0]
	if err := f.svc.DeleteSavedPost(victim.ID); err != nil {
		t.Fatalf("DeleteSavedPost: %v", err)
	}
	for _, p := range []string{victim.PrimaryImagePath, victim.SecondaryImagePath} {
		if _, err := os.Stat(p); !os.IsNotExist(err) {
			t.Fatalf("%s still present: %v", p, err)
		}
	}
	if err := f.svc.DeleteSavedPost(victim.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("second delete: err = %v, want ErrNotFound", err)
	}
	if stats, _ := f.svc.Stats(); stats["alice"] != 1 {
		t.Fatalf("stats after delete = %v", stats)
	}
}

func TestDeleteToleratesMissingImages(t *testing.T) {
	f := newFixture(t)
	id, err := f.svc.SavePost(context.Background(), capture("u1", "alice"))
	if err != nil {
		t.Fatal(err)
	}
	if err := os.RemoveAll(filepath.Join(f.save, "alice")); err != nil {
		t.Fatal(err)
	}
	if err := f.svc.DeleteSavedPost(id); err != nil {
		t.Fatalf("DeleteSavedPost: %v", err)
	}
}
