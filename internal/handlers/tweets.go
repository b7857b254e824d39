package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vidtube/backend/internal/models"
	"github.com/vidtube/backend/internal/repositories"
)

const maxTweetLength = 280

// TweetHandler serves the short-post endpoints.
type TweetHandler struct {
	Tweets TweetStore
	Views  ViewStore
}

// Create handles POST /api/v1/tweets.
func (h TweetHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := sessionUser(r)
	if !ok {
		respondError(ctx, w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req tweetRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(ctx, w, http.StatusBadRequest, "invalid request body")
		return
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		respondError(ctx, w, http.StatusBadRequest, "content is required")
		return
	}
	if len(content) > maxTweetLength {
		respondError(ctx, w, http.StatusBadRequest, "content exceeds 280 characters")
		return
	}

	now := time.Now().UTC()
	tweet := models.Tweet{
		ID:        uuid.NewString(),
		Content:   content,
		CreatedBy: user.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := h.Tweets.Create(ctx, tweet); err != nil {
		respondStoreError(ctx, w, err, "user not found", "failed to create tweet")
		return
	}

	respond(ctx, w, http.StatusCreated, tweet, "tweet created")
}

// Get handles GET /api/v1/tweets/{tweetId}.
func (h TweetHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tweetID, ok := pathID(w, r, "tweetId")
	if !ok {
		return
	}

	tweet, err := h.Tweets.FindByID(ctx, tweetID)
	if err != nil {
		respondStoreError(ctx, w, err, "tweet not found", "failed to load tweet")
		return
	}

	respond(ctx, w, http.StatusOK, tweet, "tweet")
}

// ByUser handles GET /api/v1/tweets/user/{userId}.
func (h TweetHandler) ByUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}
	tweets, err := h.Views.TweetsByUser(ctx, userID, viewerID(r))
	if err != nil {
		respondStoreError(ctx, w, err, "user not found", "failed to load tweets")
		return
	}

	if tweets == nil {
		tweets = []repositories.TweetView{}
	}
	respond(ctx, w, http.StatusOK, tweets, "tweets")
}

// Update handles PATCH /api/v1/tweets/{tweetId}.
func (h TweetHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tweet, ok := h.ownedTweet(w, r)
	if !ok {
		return
	}

	var req tweetRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(ctx, w, http.StatusBadRequest, "invalid request body")
		return
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		respondError(ctx, w, http.StatusBadRequest, "content is required")
		return
	}
	if len(content) > maxTweetLength {
		respondError(ctx, w, http.StatusBadRequest, "content exceeds 280 characters")
		return
	}

	tweet.Content = content
	tweet.UpdatedAt = time.Now().UTC()

	if err := h.Tweets.Update(ctx, tweet); err != nil {
		respondStoreError(ctx, w, err, "tweet not found", "failed to update tweet")
		return
	}

	respond(ctx, w, http.StatusOK, tweet, "tweet updated")
}

// Delete handles DELETE /api/v1/tweets/{tweetId}.
func (h TweetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tweet, ok := h.ownedTweet(w, r)
	if !ok {
		return
	}

	if err := h.Tweets.Delete(ctx, tweet.ID); err != nil {
		respondStoreError(ctx, w, err, "tweet not found", "failed to delete tweet")
		return
	}

	respond(ctx, w, http.StatusOK, nil, "tweet deleted")
}

func (h TweetHandler) ownedTweet(w http.ResponseWriter, r *http.Request) (models.Tweet, bool) {
	ctx := r.Context()

	user, ok := sessionUser(r)
	if !ok {
		respondError(ctx, w, http.StatusUnauthorized, "authentication required")
		return models.Tweet{}, false
	}

	tweetID, ok := pathID(w, r, "tweetId")
	if !ok {
		return models.Tweet{}, false
	}

	tweet, err := h.Tweets.FindByID(ctx, tweetID)
	if err != nil {
		respondStoreError(ctx, w, err, "tweet not found", "failed to load tweet")
		return models.Tweet{}, false
	}

	if tweet.CreatedBy != user.ID {
		respondError(ctx, w, http.StatusForbidden, "only the author can modify this tweet")
		return models.Tweet{}, false
	}

	return tweet, true
}

type tweetRequest struct {
	Content string `json:"content"`
}
