package repositories

import (
	"context"
	"time"
)

// Creator is the public identity projection joined onto composed views.
// Password, email and token fields are never part of it. A nil *Creator means
// the reference dangled; compositions tolerate the gap instead of failing.
type Creator struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
	Avatar   string `json:"avatar"`
}

// VideoView is the denormalized, viewer-relative projection of a video.
type VideoView struct {
	ID                  string    `json:"id"`
	FileURL             string    `json:"videoFile"`
	ThumbnailURL        string    `json:"thumbnail"`
	Title               string    `json:"title"`
	Description         string    `json:"description"`
	Tags                []string  `json:"tags"`
	Duration            float64   `json:"duration"`
	Views               int64     `json:"views"`
	IsPublished         bool      `json:"isPublished"`
	CreatedAt           time.Time `json:"createdAt"`
	CreatedBy           *Creator  `json:"createdBy"`
	NumberOfLikes       int64     `json:"numberOfLikes"`
	ViewerHasLiked      bool      `json:"hasUserLiked"`
	NumberOfSubscribers int64     `json:"numberOfSubscribers"`
	ViewerIsSubscribed  bool      `json:"hasUserSubscribed"`
}

// TweetView is the viewer-relative projection of a tweet.
type TweetView struct {
	ID             string    `json:"id"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"createdAt"`
	CreatedBy      *Creator  `json:"createdBy"`
	NumberOfLikes  int64     `json:"numberOfLikes"`
	ViewerHasLiked bool      `json:"hasUserLiked"`
}

// CommentView is the viewer-relative projection of a comment.
type CommentView struct {
	ID              string    `json:"id"`
	Content         string    `json:"content"`
	CreatedAt       time.Time `json:"createdAt"`
	CreatedBy       *Creator  `json:"createdBy"`
	NumberOfLikes   int64     `json:"numberOfLikes"`
	ViewerHasLiked  bool      `json:"hasUserLiked"`
	NumberOfReplies int64     `json:"numberOfReplies"`
}

// ReplyView is the viewer-relative projection of a reply.
type ReplyView struct {
	ID             string    `json:"id"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"createdAt"`
	CreatedBy      *Creator  `json:"createdBy"`
	NumberOfLikes  int64     `json:"numberOfLikes"`
	ViewerHasLiked bool      `json:"hasUserLiked"`
}

// ChannelProfile is the public view of a user's channel. Subscription counts
// stay public; playlist contents do not go through this view.
type ChannelProfile struct {
	ID                 string `json:"id"`
	Username           string `json:"username"`
	FullName           string `json:"fullName"`
	Email              string `json:"email"`
	Avatar             string `json:"avatar"`
	CoverImage         string `json:"coverImage"`
	SubscriberCount    int64  `json:"subscribersCount"`
	SubscribedToCount  int64  `json:"channelsSubscribedToCount"`
	ViewerIsSubscribed bool   `json:"isSubscribed"`
}

// WatchHistoryEntry pairs a hydrated video with the time it was watched.
type WatchHistoryEntry struct {
	Video     VideoView `json:"video"`
	WatchedAt time.Time `json:"watchedAt"`
}

// PlaylistView is a playlist with its creator expanded and its published
// member videos hydrated in playlist order.
type PlaylistView struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	IsPublic    bool        `json:"isPublic"`
	CreatedAt   time.Time   `json:"createdAt"`
	CreatedBy   *Creator    `json:"createdBy"`
	Videos      []VideoView `json:"videos"`
}

// ChannelStats aggregates engagement across all of a channel's videos.
type ChannelStats struct {
	TotalVideos            int64 `json:"totalVideos"`
	TotalViews             int64 `json:"totalViews"`
	TotalLikes             int64 `json:"totalLikes"`
	TotalComments          int64 `json:"totalComments"`
	TotalReplies           int64 `json:"totalReplies"`
	TotalVideosInPlaylists int64 `json:"totalVideosInPlaylists"`
}

// VideoSort names the caller-selectable sort fields for video listings.
var VideoSortFields = map[string]string{
	"createdAt": "v.created_at",
	"views":     "v.views",
	"duration":  "v.duration",
	"title":     "v.title",
}

// ListVideosOptions parameterizes video listings and searches.
type ListVideosOptions struct {
	// Query matches title (primary) and tags (secondary); empty matches all.
	Query string
	// SortBy must be a key of VideoSortFields; empty means createdAt.
	SortBy string
	// Ascending flips the default most-recent-first direction.
	Ascending bool
	// Ranked orders title matches above tag-only matches before SortBy.
	Ranked bool
	// ViewerID widens visibility to the viewer's own unpublished videos and
	// computes the viewer-relative flags. Empty means anonymous.
	ViewerID string
}

// ViewRepository builds denormalized, viewer-relative projections by joining
// entities in the store. Counts are computed from the joined sets at read
// time; only the video view counter is stored state.
type ViewRepository interface {
	// VideoByID composes a single video view without applying the publish
	// visibility gate; callers gate on IsPublished and creator identity.
	VideoByID(ctx context.Context, videoID, viewerID string) (VideoView, error)
	ListVideos(ctx context.Context, opts ListVideosOptions) ([]VideoView, error)

	TweetsByUser(ctx context.Context, userID, viewerID string) ([]TweetView, error)
	CommentsForVideo(ctx context.Context, videoID, viewerID string) ([]CommentView, error)
	CommentsForTweet(ctx context.Context, tweetID, viewerID string) ([]CommentView, error)
	RepliesForComment(ctx context.Context, commentID, viewerID string) ([]ReplyView, error)

	ChannelByUsername(ctx context.Context, username, viewerID string) (ChannelProfile, error)
	ChannelSubscribers(ctx context.Context, channelID string) ([]Creator, error)
	SubscribedChannels(ctx context.Context, subscriberID string) ([]Creator, error)

	LikedVideos(ctx context.Context, viewerID string) ([]VideoView, error)
	LikedTweets(ctx context.Context, viewerID string) ([]TweetView, error)

	WatchHistory(ctx context.Context, userID string) ([]WatchHistoryEntry, error)

	// PlaylistByID composes the playlist without applying the private
	// visibility gate; callers gate on IsPublic and creator identity.
	PlaylistByID(ctx context.Context, playlistID, viewerID string) (PlaylistView, error)
	PlaylistsByUser(ctx context.Context, ownerID string, includePrivate bool) ([]PlaylistView, error)

	ChannelStats(ctx context.Context, ownerID string) (ChannelStats, error)
	ChannelVideos(ctx context.Context, ownerID string) ([]VideoView, error)
}
