package handlers

import (
	"net/http"

	"github.com/vidtube/backend/internal/models"
	"github.com/vidtube/backend/internal/repositories"
)

// LikeHandler serves like toggles and liked-content listings.
type LikeHandler struct {
	Likes LikeStore
	Views ViewStore
}

// ToggleVideo handles POST /api/v1/likes/toggle/v/{videoId}.
func (h LikeHandler) ToggleVideo(w http.ResponseWriter, r *http.Request) {
	if id, ok := pathID(w, r, "videoId"); ok {
		h.toggle(w, r, models.LikeTargetVideo, id)
	}
}

// ToggleTweet handles POST /api/v1/likes/toggle/t/{tweetId}.
func (h LikeHandler) ToggleTweet(w http.ResponseWriter, r *http.Request) {
	if id, ok := pathID(w, r, "tweetId"); ok {
		h.toggle(w, r, models.LikeTargetTweet, id)
	}
}

// ToggleComment handles POST /api/v1/likes/toggle/c/{commentId}.
func (h LikeHandler) ToggleComment(w http.ResponseWriter, r *http.Request) {
	if id, ok := pathID(w, r, "commentId"); ok {
		h.toggle(w, r, models.LikeTargetComment, id)
	}
}

// ToggleReply handles POST /api/v1/likes/toggle/r/{replyId}.
func (h LikeHandler) ToggleReply(w http.ResponseWriter, r *http.Request) {
	if id, ok := pathID(w, r, "replyId"); ok {
		h.toggle(w, r, models.LikeTargetReply, id)
	}
}

func (h LikeHandler) toggle(w http.ResponseWriter, r *http.Request, target models.LikeTarget, targetID string) {
	ctx := r.Context()

	user, ok := sessionUser(r)
	if !ok {
		respondError(ctx, w, http.StatusUnauthorized, "authentication required")
		return
	}

	result, err := h.Likes.Toggle(ctx, target, targetID, user.ID)
	if err != nil {
		respondStoreError(ctx, w, err, string(target)+" not found", "failed to toggle like")
		return
	}

	liked := result == repositories.ToggleCreated
	message := "unliked"
	if liked {
		message = "liked"
	}
	respond(ctx, w, http.StatusOK, map[string]bool{"liked": liked}, message)
}

// Videos handles GET /api/v1/likes/videos.
func (h LikeHandler) Videos(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := sessionUser(r)
	if !ok {
		respondError(ctx, w, http.StatusUnauthorized, "authentication required")
		return
	}

	videos, err := h.Views.LikedVideos(ctx, user.ID)
	if err != nil {
		respondStoreError(ctx, w, err, "user not found", "failed to load liked videos")
		return
	}

	if videos == nil {
		videos = []repositories.VideoView{}
	}
	respond(ctx, w, http.StatusOK, videos, "liked videos")
}

// Tweets handles GET /api/v1/likes/tweets.
func (h LikeHandler) Tweets(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := sessionUser(r)
	if !ok {
		respondError(ctx, w, http.StatusUnauthorized, "authentication required")
		return
	}

	tweets, err := h.Views.LikedTweets(ctx, user.ID)
	if err != nil {
		respondStoreError(ctx, w, err, "user not found", "failed to load liked tweets")
		return
	}

	if tweets == nil {
		tweets = []repositories.TweetView{}
	}
	respond(ctx, w, http.StatusOK, tweets, "liked tweets")
}
