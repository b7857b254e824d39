package app

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/vidtube/backend/internal/auth"
	"github.com/vidtube/backend/internal/config"
	"github.com/vidtube/backend/internal/db"
	"github.com/vidtube/backend/internal/handlers"
	"github.com/vidtube/backend/internal/media"
	"github.com/vidtube/backend/internal/middleware"
	"github.com/vidtube/backend/internal/repositories"
	"github.com/vidtube/backend/internal/storage"
)

// buildDependencies wires together concrete implementations used by the HTTP
// handlers. The returned ingestor must be shut down after the server stops so
// queued media retirements finish.
func buildDependencies(ctx context.Context, pool db.Pool, cfg config.Config, logger *slog.Logger) (handlers.Dependencies, *media.Ingestor, error) {
	var objectStore media.ObjectStorage
	if strings.TrimSpace(cfg.ObjectStore.Bucket) != "" {
		s3Store, err := storage.NewS3Storage(ctx, cfg.ObjectStore)
		if err != nil {
			return handlers.Dependencies{}, nil, err
		}
		objectStore = s3Store
	} else {
		logger.Warn("no object store bucket configured, media uploads are disabled")
	}

	prober := media.NewFFProbeProber(cfg.FFProbePath, cfg.FFProbeTimeout)
	ingestor := media.NewIngestor(objectStore, prober, media.IngestorConfig{}, logger)

	sessions := auth.NewManager(cfg.TokenSecret, cfg.AccessTTL, cfg.RefreshTTL)

	deps := handlers.Dependencies{
		Users:          repositories.NewPostgresUserRepository(pool),
		Sessions:       sessions,
		Verifier:       sessions,
		Videos:         repositories.NewPostgresVideoRepository(pool),
		Tweets:         repositories.NewPostgresTweetRepository(pool),
		Comments:       repositories.NewPostgresCommentRepository(pool),
		Replies:        repositories.NewPostgresReplyRepository(pool),
		Likes:          repositories.NewPostgresLikeRepository(pool),
		Subscriptions:  repositories.NewPostgresSubscriptionRepository(pool),
		Playlists:      repositories.NewPostgresPlaylistRepository(pool),
		History:        repositories.NewPostgresHistoryRepository(pool),
		Views:          repositories.NewPostgresViewRepository(pool),
		Media:          ingestor,
		AuthLimiter:    middleware.NewIPRateLimiter(10, time.Minute, 5, 10*time.Minute),
		UploadDir:      cfg.UploadTempDir,
		MaxUploadBytes: cfg.MaxUploadBytes,
		Logger:         logger,
	}

	return deps, ingestor, nil
}
