package postlog

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"stayreal/internal/domain"
	"stayreal/internal/logging"
	"stayreal/internal/store"
)

// filenameLayout prefixes image file names with the UTC save time.
const filenameLayout = "20060102_150405"

// Service implements domain.PostLogService.
type Service struct {
	store  domain.PostLogStore
	images domain.ImageClient
	clock  domain.ClockAndLocale
	logger *slog.Logger
}

// New constructs a post log Service.
func New(
	st domain.PostLogStore,
	images domain.ImageClient,
	clk domain.ClockAndLocale,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Service{store: st, images: images, clock: clk, logger: logger}
}

// GetSettings returns the stored settings or the defaults.
func (s *Service) GetSettings() (domain.PostLogSettings, error) {
	return s.store.LoadPostLogSettings()
}

// SetSettings replaces the stored settings.
func (s *Service) SetSettings(settings domain.PostLogSettings) error {
	if settings.SaveDirectory != "" {
		settings.SaveDirectory = filepath.Clean(settings.SaveDirectory)
	}
	settings.SelectedFriends = append([]string{}, settings.SelectedFriends...)
	if err := s.store.SavePostLogSettings(settings); err != nil {
		return err
	}
	s.logger.Info("post log settings updated",
		slog.Bool("save_directory_set", settings.SaveDirectory != ""),
		slog.Int("friends", len(settings.SelectedFriends)),
		slog.Bool("auto_save", settings.AutoSaveEnabled),
	)
	return nil
}

// SavePost downloads both images of capture, writes them under the save
// directory and records the post in the index. It returns the new post id.
//
// The save directory must be configured and exist. Nothing is left on disk
// when any step fails.
func (s *Service) SavePost(ctx context.Context, capture domain.PostCapture) (string, error) {
	settings, err := s.store.LoadPostLogSettings()
	if err != nil {
		return "", err
	}
	dir := settings.SaveDirectory
	if dir == "" {
		return "", domain.ErrNoSaveDirectory
	}
	if fi, err := os.Stat(dir); err != nil || !fi.IsDir() {
		return "", fmt.Errorf("%w: %s does not exist", domain.ErrNoSaveDirectory, dir)
	}
	if !store.ValidUsername(capture.Username) {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidUsername, capture.Username)
	}

	primary, err := s.images.DownloadImage(ctx, capture.PrimaryImageURL)
	if err != nil {
		return "", fmt.Errorf("primary image: %w", err)
	}
	secondary, err := s.images.DownloadImage(ctx, capture.SecondaryImageURL)
	if err != nil {
		return "", fmt.Errorf("secondary image: %w", err)
	}

	now := s.clock.Now().UTC()
	id := uuid.NewString()
	prefix := filepath.Join(dir, capture.Username, now.Format(filenameLayout)+"_"+id)
	post := domain.SavedPost{
		ID:                 id,
		UserID:             capture.UserID,
		Username:           capture.Username,
		MomentID:           capture.MomentID,
		PrimaryImagePath:   prefix + "_primary.jpg",
		SecondaryImagePath: prefix + "_secondary.jpg",
		Caption:            capture.Caption,
		TakenAt:            capture.TakenAt,
		SavedAt:            now.Format(time.RFC3339),
		Location:           capture.Location,
	}

	if err := s.store.WriteImage(post.PrimaryImagePath, primary); err != nil {
		return "", err
	}
	if err := s.store.WriteImage(post.SecondaryImagePath, secondary); err != nil {
		s.removeImages(post.PrimaryImagePath)
		return "", err
	}
	if err := s.store.AppendSavedPost(post); err != nil {
		s.removeImages(post.PrimaryImagePath, post.SecondaryImagePath)
		return "", err
	}

	s.logger.Info("post saved",
		slog.String("post_id", id),
		slog.String("user_id", capture.UserID),
		slog.String("moment_id", capture.MomentID),
	)
	return id, nil
}

// SavedPosts returns every saved post in save order.
func (s *Service) SavedPosts() ([]domain.SavedPost, error) {
	return s.store.LoadSavedPosts()
}

// SavedPostsByUser returns the saved posts of userID.
func (s *Service) SavedPostsByUser(userID string) ([]domain.SavedPost, error) {
	posts, err := s.store.LoadSavedPosts()
	if err != nil {
		return nil, err
	}
	out := make([]domain.SavedPost, 0, len(posts))
	for _, p := range posts {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

// DeleteSavedPost removes the post from the index, then its images. Image
// removal failures are logged, not returned.
func (s *Service) DeleteSavedPost(id string) error {
	post, err := s.store.RemoveSavedPost(id)
	if err != nil {
		return err
	}
	s.removeImages(post.PrimaryImagePath, post.SecondaryImagePath)
	s.logger.Info("saved post deleted", slog.String("post_id", id))
	return nil
}

// Stats counts saved posts per username.
func (s *Service) Stats() (map[string]int, error) {
	posts, err := s.store.LoadSavedPosts()
	if err != nil {
		return nil, err
	}
	stats := make(map[string]int)
	for _, p := range posts {
		stats[p.Username]++
	}
	return stats, nil
}

func (s *Service) removeImages(paths ...string) {
	for _, p := range paths {
		if err := s.store.RemoveImage(p); err != nil {
			s.logger.Warn("image cleanup failed",
				slog.String("path", p),
				slog.String("error", err.Error()),
			)
		}
	}
}

// Compile-time assertion that Service implements domain.PostLogService.
var _ domain.PostLogService = (*Service)(nil)
