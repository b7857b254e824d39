package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vidtube/backend/internal/models"
	"github.com/vidtube/backend/internal/repositories"
)

// PlaylistHandler serves playlist curation endpoints.
type PlaylistHandler struct {
	Playlists PlaylistStore
	Videos    VideoStore
	Views     ViewStore
}

// Create handles POST /api/v1/playlists. New playlists start private.
func (h PlaylistHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := sessionUser(r)
	if !ok {
		respondError(ctx, w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req playlistRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(ctx, w, http.StatusBadRequest, "invalid request body")
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		respondError(ctx, w, http.StatusBadRequest, "name is required")
		return
	}

	now := time.Now().UTC()
	playlist := models.Playlist{
		ID:          uuid.NewString(),
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		CreatedBy:   user.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := h.Playlists.Create(ctx, playlist); err != nil {
		respondStoreError(ctx, w, err, "user not found", "failed to create playlist")
		return
	}

	respond(ctx, w, http.StatusCreated, playlist, "playlist created")
}

// Get handles GET /api/v1/playlists/{playlistId}. Private playlists are
// visible only to their creator and answer 404 to everyone else.
func (h PlaylistHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	viewer := viewerID(r)
	playlistID, ok := pathID(w, r, "playlistId")
	if !ok {
		return
	}

	view, err := h.Views.PlaylistByID(ctx, playlistID, viewer)
	if err != nil {
		respondStoreError(ctx, w, err, "playlist not found", "failed to load playlist")
		return
	}

	if !view.IsPublic && (view.CreatedBy == nil || view.CreatedBy.ID != viewer) {
		respondError(ctx, w, http.StatusNotFound, "playlist not found")
		return
	}

	respond(ctx, w, http.StatusOK, view, "playlist")
}

// ByUser handles GET /api/v1/playlists/user/{userId}. Owners see their
// private playlists; everyone else sees only public ones.
func (h PlaylistHandler) ByUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}
	includePrivate := userID == viewerID(r)

	playlists, err := h.Views.PlaylistsByUser(ctx, userID, includePrivate)
	if err != nil {
		respondStoreError(ctx, w, err, "user not found", "failed to load playlists")
		return
	}

	if playlists == nil {
		playlists = []repositories.PlaylistView{}
	}
	respond(ctx, w, http.StatusOK, playlists, "playlists")
}

// AddVideo handles PATCH /api/v1/playlists/add/{videoId}/{playlistId}.
func (h PlaylistHandler) AddVideo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	playlist, ok := h.ownedPlaylist(w, r)
	if !ok {
		return
	}

	videoID, ok := pathID(w, r, "videoId")
	if !ok {
		return
	}

	video, err := h.Videos.FindByID(ctx, videoID)
	if err != nil {
		respondStoreError(ctx, w, err, "video not found", "failed to load video")
		return
	}
	if !video.IsPublished {
		respondError(ctx, w, http.StatusBadRequest, "cannot add an unpublished video to a playlist")
		return
	}

	if err := h.Playlists.AddVideo(ctx, playlist.ID, video.ID); err != nil {
		respondStoreError(ctx, w, err, "video not found", "video already in playlist")
		return
	}

	respond(ctx, w, http.StatusOK, nil, "video added to playlist")
}

// RemoveVideo handles PATCH /api/v1/playlists/remove/{videoId}/{playlistId}.
func (h PlaylistHandler) RemoveVideo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	playlist, ok := h.ownedPlaylist(w, r)
	if !ok {
		return
	}

	videoID, ok := pathID(w, r, "videoId")
	if !ok {
		return
	}

	if err := h.Playlists.RemoveVideo(ctx, playlist.ID, videoID); err != nil {
		respondStoreError(ctx, w, err, "video not in playlist", "failed to remove video")
		return
	}

	respond(ctx, w, http.StatusOK, nil, "video removed from playlist")
}

// Update handles PATCH /api/v1/playlists/{playlistId}.
func (h PlaylistHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	playlist, ok := h.ownedPlaylist(w, r)
	if !ok {
		return
	}

	var req playlistRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(ctx, w, http.StatusBadRequest, "invalid request body")
		return
	}

	name := strings.TrimSpace(req.Name)
	description := strings.TrimSpace(req.Description)
	if name == "" && description == "" {
		respondError(ctx, w, http.StatusBadRequest, "nothing to update")
		return
	}
	if name != "" {
		playlist.Name = name
	}
	if description != "" {
		playlist.Description = description
	}
	playlist.UpdatedAt = time.Now().UTC()

	if err := h.Playlists.Update(ctx, playlist); err != nil {
		respondStoreError(ctx, w, err, "playlist not found", "failed to update playlist")
		return
	}

	respond(ctx, w, http.StatusOK, playlist, "playlist updated")
}

// Delete handles DELETE /api/v1/playlists/{playlistId}.
func (h PlaylistHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	playlist, ok := h.ownedPlaylist(w, r)
	if !ok {
		return
	}

	if err := h.Playlists.Delete(ctx, playlist.ID); err != nil {
		respondStoreError(ctx, w, err, "playlist not found", "failed to delete playlist")
		return
	}

	respond(ctx, w, http.StatusOK, nil, "playlist deleted")
}

// ToggleVisibility handles PATCH /api/v1/playlists/toggle/{playlistId}.
func (h PlaylistHandler) ToggleVisibility(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	playlist, ok := h.ownedPlaylist(w, r)
	if !ok {
		return
	}

	public, err := h.Playlists.ToggleVisibility(ctx, playlist.ID)
	if err != nil {
		respondStoreError(ctx, w, err, "playlist not found", "failed to toggle visibility")
		return
	}

	respond(ctx, w, http.StatusOK, map[string]bool{"isPublic": public}, "visibility toggled")
}

func (h PlaylistHandler) ownedPlaylist(w http.ResponseWriter, r *http.Request) (models.Playlist, bool) {
	ctx := r.Context()

	user, ok := sessionUser(r)
	if !ok {
		respondError(ctx, w, http.StatusUnauthorized, "authentication required")
		return models.Playlist{}, false
	}

	playlistID, ok := pathID(w, r, "playlistId")
	if !ok {
		return models.Playlist{}, false
	}

	playlist, err := h.Playlists.FindByID(ctx, playlistID)
	if err != nil {
		respondStoreError(ctx, w, err, "playlist not found", "failed to load playlist")
		return models.Playlist{}, false
	}

	if playlist.CreatedBy != user.ID {
		respondError(ctx, w, http.StatusForbidden, "only the creator can modify this playlist")
		return models.Playlist{}, false
	}

	return playlist, true
}

type playlistRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}
