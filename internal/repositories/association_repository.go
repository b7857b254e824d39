package repositories

import (
	"context"

	"github.com/vidtube/backend/internal/models"
)

// ToggleResult reports which half of an idempotent-pair toggle ran.
type ToggleResult string

const (
	ToggleCreated ToggleResult = "created"
	ToggleDeleted ToggleResult = "deleted"
)

// LikeRepository manages like associations. Toggle performs exactly one of
// create/delete per call, selected by the current presence of the pair; a
// create that loses a race to a concurrent duplicate reports ToggleCreated as
// the pair is already in the desired state.
type LikeRepository interface {
	Toggle(ctx context.Context, target models.LikeTarget, targetID, userID string) (ToggleResult, error)
}

// SubscriptionRepository manages channel subscriptions with the same toggle
// semantics as likes.
type SubscriptionRepository interface {
	Toggle(ctx context.Context, channelID, subscriberID string) (ToggleResult, error)
}

// PlaylistRepository manages playlists and their ordered video memberships.
type PlaylistRepository interface {
	Create(ctx context.Context, playlist models.Playlist) error
	FindByID(ctx context.Context, id string) (models.Playlist, error)
	Update(ctx context.Context, playlist models.Playlist) error
	Delete(ctx context.Context, id string) error
	// ToggleVisibility flips the public flag and returns the new state.
	ToggleVisibility(ctx context.Context, id string) (bool, error)
	// AddVideo appends if absent; returns ErrConflict when already present.
	AddVideo(ctx context.Context, playlistID, videoID string) error
	// RemoveVideo removes if present; returns ErrNotFound otherwise.
	RemoveVideo(ctx context.Context, playlistID, videoID string) error
}

// HistoryRepository records read-path side effects on a user's watch and
// search histories. Both operations are upserts that re-timestamp existing
// entries, moving them to the front of the most-recent-first ordering.
type HistoryRepository interface {
	RecordWatch(ctx context.Context, userID, videoID string) error
	RecordSearch(ctx context.Context, userID, query string) error
}
