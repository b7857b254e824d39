package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vidtube/backend/internal/models"
	"github.com/vidtube/backend/internal/repositories"
)

// CommentHandler serves comments on videos and tweets.
type CommentHandler struct {
	Comments CommentStore
	Views    ViewStore
}

// ForVideo handles GET /api/v1/comments/v/{videoId}.
func (h CommentHandler) ForVideo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	videoID, ok := pathID(w, r, "videoId")
	if !ok {
		return
	}

	comments, err := h.Views.CommentsForVideo(ctx, videoID, viewerID(r))
	if err != nil {
		respondStoreError(ctx, w, err, "video not found", "failed to load comments")
		return
	}

	if comments == nil {
		comments = []repositories.CommentView{}
	}
	respond(ctx, w, http.StatusOK, comments, "comments")
}

// ForTweet handles GET /api/v1/comments/t/{tweetId}.
func (h CommentHandler) ForTweet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tweetID, ok := pathID(w, r, "tweetId")
	if !ok {
		return
	}

	comments, err := h.Views.CommentsForTweet(ctx, tweetID, viewerID(r))
	if err != nil {
		respondStoreError(ctx, w, err, "tweet not found", "failed to load comments")
		return
	}

	if comments == nil {
		comments = []repositories.CommentView{}
	}
	respond(ctx, w, http.StatusOK, comments, "comments")
}

// CreateForVideo handles POST /api/v1/comments/v/{videoId}.
func (h CommentHandler) CreateForVideo(w http.ResponseWriter, r *http.Request) {
	videoID, ok := pathID(w, r, "videoId")
	if !ok {
		return
	}
	h.create(w, r, videoID, "")
}

// CreateForTweet handles POST /api/v1/comments/t/{tweetId}.
func (h CommentHandler) CreateForTweet(w http.ResponseWriter, r *http.Request) {
	tweetID, ok := pathID(w, r, "tweetId")
	if !ok {
		return
	}
	h.create(w, r, "", tweetID)
}

func (h CommentHandler) create(w http.ResponseWriter, r *http.Request, videoID, tweetID string) {
	ctx := r.Context()

	user, ok := sessionUser(r)
	if !ok {
		respondError(ctx, w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req commentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(ctx, w, http.StatusBadRequest, "invalid request body")
		return
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		respondError(ctx, w, http.StatusBadRequest, "content is required")
		return
	}

	now := time.Now().UTC()
	comment := models.Comment{
		ID:        uuid.NewString(),
		Content:   content,
		VideoID:   videoID,
		TweetID:   tweetID,
		CreatedBy: user.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := h.Comments.Create(ctx, comment); err != nil {
		respondStoreError(ctx, w, err, "target not found", "failed to create comment")
		return
	}

	respond(ctx, w, http.StatusCreated, comment, "comment created")
}

// Update handles PATCH /api/v1/comments/{commentId}.
func (h CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	comment, ok := h.ownedComment(w, r)
	if !ok {
		return
	}

	var req commentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(ctx, w, http.StatusBadRequest, "invalid request body")
		return
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		respondError(ctx, w, http.StatusBadRequest, "content is required")
		return
	}

	comment.Content = content
	comment.UpdatedAt = time.Now().UTC()

	if err := h.Comments.Update(ctx, comment); err != nil {
		respondStoreError(ctx, w, err, "comment not found", "failed to update comment")
		return
	}

	respond(ctx, w, http.StatusOK, comment, "comment updated")
}

// Delete handles DELETE /api/v1/comments/{commentId}.
func (h CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	comment, ok := h.ownedComment(w, r)
	if !ok {
		return
	}

	if err := h.Comments.Delete(ctx, comment.ID); err != nil {
		respondStoreError(ctx, w, err, "comment not found", "failed to delete comment")
		return
	}

	respond(ctx, w, http.StatusOK, nil, "comment deleted")
}

func (h CommentHandler) ownedComment(w http.ResponseWriter, r *http.Request) (models.Comment, bool) {
	ctx := r.Context()

	user, ok := sessionUser(r)
	if !ok {
		respondError(ctx, w, http.StatusUnauthorized, "authentication required")
		return models.Comment{}, false
	}

	commentID, ok := pathID(w, r, "commentId")
	if !ok {
		return models.Comment{}, false
	}

	comment, err := h.Comments.FindByID(ctx, commentID)
	if err != nil {
		respondStoreError(ctx, w, err, "comment not found", "failed to load comment")
		return models.Comment{}, false
	}

	if comment.CreatedBy != user.ID {
		respondError(ctx, w, http.StatusForbidden, "only the author can modify this comment")
		return models.Comment{}, false
	}

	return comment, true
}

type commentRequest struct {
	Content string `json:"content"`
}
