package handlers

import (
	"net/http"

	"github.com/vidtube/backend/internal/repositories"
)

// DashboardHandler serves the creator dashboard.
type DashboardHandler struct {
	Views ViewStore
}

// Stats handles GET /api/v1/dashboard/stats.
func (h DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := sessionUser(r)
	if !ok {
		respondError(ctx, w, http.StatusUnauthorized, "authentication required")
		return
	}

	stats, err := h.Views.ChannelStats(ctx, user.ID)
	if err != nil {
		respondStoreError(ctx, w, err, "channel not found", "failed to load channel stats")
		return
	}

	respond(ctx, w, http.StatusOK, stats, "channel stats")
}

// Videos handles GET /api/v1/dashboard/videos. Unlike the public catalog it
// includes the owner's unpublished videos.
func (h DashboardHandler) Videos(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := sessionUser(r)
	if !ok {
		respondError(ctx, w, http.StatusUnauthorized, "authentication required")
		return
	}

	videos, err := h.Views.ChannelVideos(ctx, user.ID)
	if err != nil {
		respondStoreError(ctx, w, err, "channel not found", "failed to load channel videos")
		return
	}

	if videos == nil {
		videos = []repositories.VideoView{}
	}
	respond(ctx, w, http.StatusOK, videos, "channel videos")
}
