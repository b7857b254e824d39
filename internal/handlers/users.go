package handlers

import (
	"errors"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vidtube/backend/internal/logging"
)

// UserHandler serves account profile and channel endpoints.
type UserHandler struct {
	Users     UserStore
	Views     ViewStore
	Media     MediaIngestor
	UploadDir string
}

// Current handles GET /api/v1/users/me.
func (h UserHandler) Current(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := sessionUser(r)
	if !ok {
		respondError(ctx, w, http.StatusUnauthorized, "authentication required")
		return
	}

	respond(ctx, w, http.StatusOK, user, "current user")
}

// UpdateAccount handles PATCH /api/v1/users/me. Only the fields
// present in the body change.
func (h UserHandler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := sessionUser(r)
	if !ok {
		respondError(ctx, w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req updateAccountRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(ctx, w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.FullName == nil && req.Email == nil {
		respondError(ctx, w, http.StatusBadRequest, "nothing to update")
		return
	}

	if req.FullName != nil {
		user.FullName = strings.TrimSpace(*req.FullName)
	}
	if req.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*req.Email))
		if _, err := mail.ParseAddress(email); err != nil {
			respondError(ctx, w, http.StatusBadRequest, "invalid email address")
			return
		}
		user.Email = email
	}
	user.UpdatedAt = time.Now().UTC()

	if err := h.Users.Update(ctx, user); err != nil {
		respondStoreError(ctx, w, err, "user not found", "email already taken")
		return
	}

	respond(ctx, w, http.StatusOK, user, "account updated")
}

// UpdateAvatar handles PATCH /api/v1/users/avatar.
func (h UserHandler) UpdateAvatar(w http.ResponseWriter, r *http.Request) {
	h.updateImage(w, r, "avatar")
}

// UpdateCover handles PATCH /api/v1/users/cover-image.
func (h UserHandler) UpdateCover(w http.ResponseWriter, r *http.Request) {
	h.updateImage(w, r, "coverImage")
}

func (h UserHandler) updateImage(w http.ResponseWriter, r *http.Request, field string) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	user, ok := sessionUser(r)
	if !ok {
		respondError(ctx, w, http.StatusUnauthorized, "authentication required")
		return
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		respondError(ctx, w, http.StatusBadRequest, "invalid multipart payload")
		return
	}

	path, err := saveUpload(r, field, h.UploadDir)
	if err != nil {
		if errors.Is(err, errNoFile) {
			respondError(ctx, w, http.StatusBadRequest, field+" file is required")
			return
		}
		logger.Error("failed to spool upload", "field", field, "error", err)
		respondError(ctx, w, http.StatusInternalServerError, "failed to read upload")
		return
	}

	asset, err := h.Media.Ingest(ctx, path, "images", false)
	if err != nil {
		logger.Error("failed to store image", "field", field, "error", err)
		respondError(ctx, w, http.StatusInternalServerError, "failed to store image")
		return
	}

	previous := user.AvatarURL
	if field == "coverImage" {
		previous = user.CoverURL
		user.CoverURL = asset.URL
	} else {
		user.AvatarURL = asset.URL
	}
	user.UpdatedAt = time.Now().UTC()

	if err := h.Users.Update(ctx, user); err != nil {
		h.Media.Retire(asset.URL)
		respondStoreError(ctx, w, err, "user not found", "failed to update image")
		return
	}

	if previous != "" {
		h.Media.Retire(previous)
	}

	respond(ctx, w, http.StatusOK, user, "image updated")
}

// Channel handles GET /api/v1/users/channel/{username}.
func (h UserHandler) Channel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	username := strings.TrimSpace(strings.ToLower(chi.URLParam(r, "username")))
	if username == "" {
		respondError(ctx, w, http.StatusBadRequest, "username is required")
		return
	}

	profile, err := h.Views.ChannelByUsername(ctx, username, viewerID(r))
	if err != nil {
		respondStoreError(ctx, w, err, "channel not found", "failed to load channel")
		return
	}

	respond(ctx, w, http.StatusOK, profile, "channel profile")
}

// WatchHistory handles GET /api/v1/users/watch-history.
func (h UserHandler) WatchHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := sessionUser(r)
	if !ok {
		respondError(ctx, w, http.StatusUnauthorized, "authentication required")
		return
	}

	entries, err := h.Views.WatchHistory(ctx, user.ID)
	if err != nil {
		respondStoreError(ctx, w, err, "history not found", "failed to load watch history")
		return
	}

	respond(ctx, w, http.StatusOK, entries, "watch history")
}

type updateAccountRequest struct {
	FullName *string `json:"fullName"`
	Email    *string `json:"email"`
}
