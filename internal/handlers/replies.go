package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vidtube/backend/internal/models"
	"github.com/vidtube/backend/internal/repositories"
)

// ReplyHandler serves replies under comments.
type ReplyHandler struct {
	Replies ReplyStore
	Views   ViewStore
}

// ForComment handles GET /api/v1/replies/c/{commentId}.
func (h ReplyHandler) ForComment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	commentID, ok := pathID(w, r, "commentId")
	if !ok {
		return
	}

	replies, err := h.Views.RepliesForComment(ctx, commentID, viewerID(r))
	if err != nil {
		respondStoreError(ctx, w, err, "comment not found", "failed to load replies")
		return
	}

	if replies == nil {
		replies = []repositories.ReplyView{}
	}
	respond(ctx, w, http.StatusOK, replies, "replies")
}

// Create handles POST /api/v1/replies/c/{commentId}.
func (h ReplyHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := sessionUser(r)
	if !ok {
		respondError(ctx, w, http.StatusUnauthorized, "authentication required")
		return
	}

	commentID, ok := pathID(w, r, "commentId")
	if !ok {
		return
	}

	var req replyRequest
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
	reply := models.Reply{
		ID:        uuid.NewString(),
		Content:   content,
		CommentID: commentID,
		CreatedBy: user.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := h.Replies.Create(ctx, reply); err != nil {
		respondStoreError(ctx, w, err, "comment not found", "failed to create reply")
		return
	}

	respond(ctx, w, http.StatusCreated, reply, "reply created")
}

// Update handles PATCH /api/v1/replies/{replyId}.
func (h ReplyHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	reply, ok := h.ownedReply(w, r)
	if !ok {
		return
	}

	var req replyRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(ctx, w, http.StatusBadRequest, "invalid request body")
		return
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		respondError(ctx, w, http.StatusBadRequest, "content is required")
		return
	}

	reply.Content = content
	reply.UpdatedAt = time.Now().UTC()

	if err := h.Replies.Update(ctx, reply); err != nil {
		respondStoreError(ctx, w, err, "reply not found", "failed to update reply")
		return
	}

	respond(ctx, w, http.StatusOK, reply, "reply updated")
}

// Delete handles DELETE /api/v1/replies/{replyId}.
func (h ReplyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	reply, ok := h.ownedReply(w, r)
	if !ok {
		return
	}

	if err := h.Replies.Delete(ctx, reply.ID); err != nil {
		respondStoreError(ctx, w, err, "reply not found", "failed to delete reply")
		return
	}

	respond(ctx, w, http.StatusOK, nil, "reply deleted")
}

func (h ReplyHandler) ownedReply(w http.ResponseWriter, r *http.Request) (models.Reply, bool) {
	ctx := r.Context()

	user, ok := sessionUser(r)
	if !ok {
		respondError(ctx, w, http.StatusUnauthorized, "authentication required")
		return models.Reply{}, false
	}

	replyID, ok := pathID(w, r, "replyId")
	if !ok {
		return models.Reply{}, false
	}

	reply, err := h.Replies.FindByID(ctx, replyID)
	if err != nil {
		respondStoreError(ctx, w, err, "reply not found", "failed to load reply")
		return models.Reply{}, false
	}

	if reply.CreatedBy != user.ID {
		respondError(ctx, w, http.StatusForbidden, "only the author can modify this reply")
		return models.Reply{}, false
	}

	return reply, true
}

type replyRequest struct {
	Content string `json:"content"`
}
