package handlers

import (
	"context"

	"github.com/vidtube/backend/internal/media"
	"github.com/vidtube/backend/internal/models"
	"github.com/vidtube/backend/internal/repositories"
)

// UserStore captures the persistence operations required by the account handlers.
type UserStore interface {
	Create(ctx context.Context, user models.User) error
	FindByID(ctx context.Context, id string) (models.User, error)
	FindByLogin(ctx context.Context, identifier string) (models.User, error)
	Update(ctx context.Context, user models.User) error
	SetRefreshToken(ctx context.Context, userID, token string) error
	SetPassword(ctx context.Context, userID, passwordHash string) error
}

// SessionManager issues token pairs and validates refresh tokens.
type SessionManager interface {
	Issue(userID string) (models.SessionTokens, error)
	VerifyRefresh(token string) (string, error)
}

// MediaIngestor moves spooled uploads into object storage and retires
// replaced assets in the background.
type MediaIngestor interface {
	Ingest(ctx context.Context, localPath, keyPrefix string, probeDuration bool) (media.Asset, error)
	Retire(url string)
}

// VideoStore captures persistence for video records.
type VideoStore interface {
	Create(ctx context.Context, video models.Video) error
	FindByID(ctx context.Context, id string) (models.Video, error)
	Update(ctx context.Context, video models.Video) error
	Delete(ctx context.Context, id string) error
	TogglePublish(ctx context.Context, id string) (bool, error)
	IncrementViews(ctx context.Context, id string) error
}

// TweetStore captures persistence for tweets.
type TweetStore interface {
	Create(ctx context.Context, tweet models.Tweet) error
	FindByID(ctx context.Context, id string) (models.Tweet, error)
	Update(ctx context.Context, tweet models.Tweet) error
	Delete(ctx context.Context, id string) error
}

// CommentStore captures persistence for comments.
type CommentStore interface {
	Create(ctx context.Context, comment models.Comment) error
	FindByID(ctx context.Context, id string) (models.Comment, error)
	Update(ctx context.Context, comment models.Comment) error
	Delete(ctx context.Context, id string) error
}

// ReplyStore captures persistence for replies.
type ReplyStore interface {
	Create(ctx context.Context, reply models.Reply) error
	FindByID(ctx context.Context, id string) (models.Reply, error)
	Update(ctx context.Context, reply models.Reply) error
	Delete(ctx context.Context, id string) error
}

// LikeStore toggles like pairs.
type LikeStore interface {
	Toggle(ctx context.Context, target models.LikeTarget, targetID, userID string) (repositories.ToggleResult, error)
}

// SubscriptionStore toggles subscription pairs.
type SubscriptionStore interface {
	Toggle(ctx context.Context, channelID, subscriberID string) (repositories.ToggleResult, error)
}

// PlaylistStore captures persistence for playlists and their memberships.
type PlaylistStore interface {
	Create(ctx context.Context, playlist models.Playlist) error
	FindByID(ctx context.Context, id string) (models.Playlist, error)
	Update(ctx context.Context, playlist models.Playlist) error
	Delete(ctx context.Context, id string) error
	ToggleVisibility(ctx context.Context, id string) (bool, error)
	AddVideo(ctx context.Context, playlistID, videoID string) error
	RemoveVideo(ctx context.Context, playlistID, videoID string) error
}

// HistoryStore records read-path side effects.
type HistoryStore interface {
	RecordWatch(ctx context.Context, userID, videoID string) error
	RecordSearch(ctx context.Context, userID, query string) error
}

// ViewStore composes the denormalized projections served by read endpoints.
type ViewStore interface {
	VideoByID(ctx context.Context, videoID, viewerID string) (repositories.VideoView, error)
	ListVideos(ctx context.Context, opts repositories.ListVideosOptions) ([]repositories.VideoView, error)
	TweetsByUser(ctx context.Context, userID, viewerID string) ([]repositories.TweetView, error)
	CommentsForVideo(ctx context.Context, videoID, viewerID string) ([]repositories.CommentView, error)
	CommentsForTweet(ctx context.Context, tweetID, viewerID string) ([]repositories.CommentView, error)
	RepliesForComment(ctx context.Context, commentID, viewerID string) ([]repositories.ReplyView, error)
	ChannelByUsername(ctx context.Context, username, viewerID string) (repositories.ChannelProfile, error)
	ChannelSubscribers(ctx context.Context, channelID string) ([]repositories.Creator, error)
	SubscribedChannels(ctx context.Context, subscriberID string) ([]repositories.Creator, error)
	LikedVideos(ctx context.Context, viewerID string) ([]repositories.VideoView, error)
	LikedTweets(ctx context.Context, viewerID string) ([]repositories.TweetView, error)
	WatchHistory(ctx context.Context, userID string) ([]repositories.WatchHistoryEntry, error)
	PlaylistByID(ctx context.Context, playlistID, viewerID string) (repositories.PlaylistView, error)
	PlaylistsByUser(ctx context.Context, ownerID string, includePrivate bool) ([]repositories.PlaylistView, error)
	ChannelStats(ctx context.Context, ownerID string) (repositories.ChannelStats, error)
	ChannelVideos(ctx context.Context, ownerID string) ([]repositories.VideoView, error)
}
