package job

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"codetogether-api/internal/client"
	"codetogether-api/internal/repository"
)

// DefaultUploadGrace keeps fresh objects that may belong to an upload not yet confirmed
const DefaultUploadGrace = 24 * time.Hour

// AvatarStore is the slice of object storage the cleanup job needs
type AvatarStore interface {
	ListAvatarObjects(ctx context.Context) ([]client.StoredObject, error)
	DeleteFile(ctx context.Context, key string) error
	GetFileURL(key string) string
}

// AvatarCleanupJob deletes avatar objects no user points at: replaced avatars,
// avatars of deleted users and uploads that were never confirmed
type AvatarCleanupJob struct {
	userRepo repository.UserRepository
	storage  AvatarStore
	grace    time.Duration
	now      func() time.Time
	logger   *zap.Logger
}

// NewAvatarCleanupJob creates a new AvatarCleanupJob instance
func NewAvatarCleanupJob(
	userRepo repository.UserRepository,
	storage AvatarStore,
	grace time.Duration,
	logger *zap.Logger,
) *AvatarCleanupJob {
	return &AvatarCleanupJob{
		userRepo: userRepo,
		storage:  storage,
		grace:    grace,
		now:      time.Now,
		logger:   logger,
	}
}

// Schedule registers Run on a cron schedule and returns the started scheduler
func (j *AvatarCleanupJob) Schedule(schedule string) (*cron.Cron, error) {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := c.AddFunc(schedule, j.Run); err != nil {
		return nil, fmt.Errorf("invalid avatar cleanup schedule %q: %w", schedule, err)
	}
	c.Start()
	return c, nil
}

// Run executes the cleanup job
func (j *AvatarCleanupJob) Run() {
	deleted, failed, err := j.Sweep(context.Background())
	if err != nil {
		j.logger.Error("Avatar cleanup job failed", zap.Error(err))
		return
	}
	j.logger.Info("Avatar cleanup job completed",
		zap.Int("deleted", deleted),
		zap.Int("failed", failed),
	)
}

// Sweep deletes unreferenced avatar objects older than the grace period.
// It returns how many deletions succeeded and failed; a failed deletion is retried next run.
func (j *AvatarCleanupJob) Sweep(ctx context.Context) (int, int, error) {
	objects, err := j.storage.ListAvatarObjects(ctx)
	if err != nil {
		return 0, 0, err
	}
	if len(objects) == 0 {
		j.logger.Debug("No avatar objects found")
		return 0, 0, nil
	}

	cutoff := j.now().Add(-j.grace)
	current := make(map[uuid.UUID]string)
	deleted, failed := 0, 0

	for _, obj := range objects {
		if obj.LastModified.After(cutoff) {
			continue
		}

		owner, ok := client.AvatarOwner(obj.Key)
		if !ok {
			j.logger.Warn("Skipping object with unexpected avatar key", zap.String("file_key", obj.Key))
			continue
		}

		avatarURL, err := j.currentAvatar(ctx, owner, current)
		if err != nil {
			return deleted, failed, err
		}
		if avatarURL == j.storage.GetFileURL(obj.Key) {
			continue
		}

		if err := j.storage.DeleteFile(ctx, obj.Key); err != nil {
			j.logger.Error("Failed to delete avatar object",
				zap.String("user_id", owner.String()),
				zap.String("file_key", obj.Key),
				zap.Error(err),
			)
			failed++
			continue
		}
		deleted++

		j.logger.Debug("Deleted unreferenced avatar object",
			zap.String("user_id", owner.String()),
			zap.String("file_key", obj.Key),
		)
	}

	return deleted, failed, nil
}

// currentAvatar returns the user's avatar URL, or "" when the user is gone or has none
func (j *AvatarCleanupJob) currentAvatar(ctx context.Context, userID uuid.UUID, cache map[uuid.UUID]string) (string, error) {
	if url, ok := cache[userID]; ok {
		return url, nil
	}

	url := ""
	user, err := j.userRepo.FindByID(ctx, userID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
	case err != nil:
		return "", fmt.Errorf("failed to fetch user %s: %w", userID, err)
	case user.AvatarURL != nil:
		url = *user.AvatarURL
	}

	cache[userID] = url
	return url, nil
}
