package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vidtube/backend/internal/logging"
	"github.com/vidtube/backend/internal/models"
	"github.com/vidtube/backend/internal/repositories"
)

// VideoHandler serves upload, catalog and playback endpoints.
type VideoHandler struct {
	Videos         VideoStore
	Views          ViewStore
	History        HistoryStore
	Media          MediaIngestor
	UploadDir      string
	MaxUploadBytes int64
}

// List handles GET /api/v1/videos. A non-empty query filters the listing with
// the same ranked matching as Search but never touches search history.
func (h VideoHandler) List(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, false)
}

// Search handles GET /api/v1/videos/search. The query is mandatory and, for
// signed-in viewers, lands in their search history.
func (h VideoHandler) Search(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if strings.TrimSpace(r.URL.Query().Get("query")) == "" {
		respondError(ctx, w, http.StatusBadRequest, "query is required")
		return
	}

	h.list(w, r, true)
}

func (h VideoHandler) list(w http.ResponseWriter, r *http.Request, recordSearch bool) {
	ctx := r.Context()

	query := strings.TrimSpace(r.URL.Query().Get("query"))
	sortBy := strings.TrimSpace(r.URL.Query().Get("sortBy"))
	ascending := strings.EqualFold(r.URL.Query().Get("sortType"), "asc")

	opts := repositories.ListVideosOptions{
		Query:     query,
		SortBy:    sortBy,
		Ascending: ascending,
		Ranked:    query != "",
		ViewerID:  viewerID(r),
	}

	videos, err := h.Views.ListVideos(ctx, opts)
	if err != nil {
		logging.FromContext(ctx).Error("failed to list videos", "error", err)
		respondError(ctx, w, http.StatusBadRequest, "failed to list videos")
		return
	}

	if recordSearch && opts.ViewerID != "" {
		if err := h.History.RecordSearch(ctx, opts.ViewerID, query); err != nil {
			logging.FromContext(ctx).Warn("failed to record search", "error", err)
		}
	}

	if videos == nil {
		videos = []repositories.VideoView{}
	}
	respond(ctx, w, http.StatusOK, videos, "videos")
}

// Upload handles POST /api/v1/videos. Both the video file and the thumbnail
// are required; the video is probed for its duration during ingestion.
func (h VideoHandler) Upload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	user, ok := sessionUser(r)
	if !ok {
		respondError(ctx, w, http.StatusUnauthorized, "authentication required")
		return
	}

	if h.MaxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.MaxUploadBytes)
	}
	if err := r.ParseMultipartForm(64 << 20); err != nil {
		respondError(ctx, w, http.StatusBadRequest, "invalid or oversized multipart payload")
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	if title == "" {
		respondError(ctx, w, http.StatusBadRequest, "title is required")
		return
	}

	videoPath, err := saveUpload(r, "videoFile", h.UploadDir)
	if err != nil {
		if errors.Is(err, errNoFile) {
			respondError(ctx, w, http.StatusBadRequest, "videoFile is required")
			return
		}
		logger.Error("failed to spool video", "error", err)
		respondError(ctx, w, http.StatusInternalServerError, "failed to read upload")
		return
	}

	thumbPath, err := saveUpload(r, "thumbnail", h.UploadDir)
	if err != nil {
		discardUpload(videoPath)
		if errors.Is(err, errNoFile) {
			respondError(ctx, w, http.StatusBadRequest, "thumbnail is required")
			return
		}
		logger.Error("failed to spool thumbnail", "error", err)
		respondError(ctx, w, http.StatusInternalServerError, "failed to read upload")
		return
	}

	videoAsset, err := h.Media.Ingest(ctx, videoPath, "videos", true)
	if err != nil {
		discardUpload(thumbPath)
		logger.Error("failed to store video", "error", err)
		respondError(ctx, w, http.StatusInternalServerError, "failed to store video")
		return
	}

	thumbAsset, err := h.Media.Ingest(ctx, thumbPath, "thumbnails", false)
	if err != nil {
		h.Media.Retire(videoAsset.URL)
		logger.Error("failed to store thumbnail", "error", err)
		respondError(ctx, w, http.StatusInternalServerError, "failed to store thumbnail")
		return
	}

	now := time.Now().UTC()
	video := models.Video{
		ID:           uuid.NewString(),
		FileURL:      videoAsset.URL,
		ThumbnailURL: thumbAsset.URL,
		Title:        title,
		Description:  strings.TrimSpace(r.FormValue("description")),
		Tags:         parseTags(r.FormValue("tags")),
		Duration:     videoAsset.Duration,
		IsPublished:  true,
		CreatedBy:    user.ID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := h.Videos.Create(ctx, video); err != nil {
		h.Media.Retire(videoAsset.URL)
		h.Media.Retire(thumbAsset.URL)
		respondStoreError(ctx, w, err, "owner not found", "failed to save video")
		return
	}

	respond(ctx, w, http.StatusCreated, video, "video uploaded")
}

// Get handles GET /api/v1/videos/{videoId}. Unpublished videos are visible
// only to their creator; a successful view bumps the counter and lands in the
// signed-in viewer's watch history.
func (h VideoHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	videoID, ok := pathID(w, r, "videoId")
	if !ok {
		return
	}
	viewer := viewerID(r)

	video, err := h.Videos.FindByID(ctx, videoID)
	if err != nil {
		respondStoreError(ctx, w, err, "video not found", "failed to load video")
		return
	}

	if !video.IsPublished && video.CreatedBy != viewer {
		respondError(ctx, w, http.StatusNotFound, "video not found")
		return
	}

	if err := h.Videos.IncrementViews(ctx, videoID); err != nil {
		logging.FromContext(ctx).Warn("failed to count view", "error", err, "video_id", videoID)
	}
	if viewer != "" {
		if err := h.History.RecordWatch(ctx, viewer, videoID); err != nil {
			logging.FromContext(ctx).Warn("failed to record watch", "error", err, "video_id", videoID)
		}
	}

	view, err := h.Views.VideoByID(ctx, videoID, viewer)
	if err != nil {
		respondStoreError(ctx, w, err, "video not found", "failed to load video")
		return
	}

	respond(ctx, w, http.StatusOK, view, "video")
}

// Update handles PATCH /api/v1/videos/{videoId}. Metadata fields are
// optional; a new thumbnail replaces and retires the old one.
func (h VideoHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	video, ok := h.ownedVideo(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		respondError(ctx, w, http.StatusBadRequest, "invalid multipart payload")
		return
	}

	changed := false
	if title := strings.TrimSpace(r.FormValue("title")); title != "" {
		video.Title = title
		changed = true
	}
	if _, ok := r.MultipartForm.Value["description"]; ok {
		video.Description = strings.TrimSpace(r.FormValue("description"))
		changed = true
	}
	if _, ok := r.MultipartForm.Value["tags"]; ok {
		video.Tags = parseTags(r.FormValue("tags"))
		changed = true
	}

	previousThumb := ""
	thumbPath, err := saveUpload(r, "thumbnail", h.UploadDir)
	switch {
	case err == nil:
		changed = true
		asset, err := h.Media.Ingest(ctx, thumbPath, "thumbnails", false)
		if err != nil {
			logger.Error("failed to store thumbnail", "error", err)
			respondError(ctx, w, http.StatusInternalServerError, "failed to store thumbnail")
			return
		}
		previousThumb = video.ThumbnailURL
		video.ThumbnailURL = asset.URL
	case errors.Is(err, errNoFile):
	default:
		logger.Error("failed to spool thumbnail", "error", err)
		respondError(ctx, w, http.StatusInternalServerError, "failed to read upload")
		return
	}

	if !changed {
		respondError(ctx, w, http.StatusBadRequest, "nothing to update")
		return
	}

	video.UpdatedAt = time.Now().UTC()
	if err := h.Videos.Update(ctx, video); err != nil {
		if video.ThumbnailURL != previousThumb && previousThumb != "" {
			h.Media.Retire(video.ThumbnailURL)
		}
		respondStoreError(ctx, w, err, "video not found", "failed to update video")
		return
	}

	if previousThumb != "" {
		h.Media.Retire(previousThumb)
	}

	respond(ctx, w, http.StatusOK, video, "video updated")
}

// Delete handles DELETE /api/v1/videos/{videoId}. The hosted media is
// retired once the record is gone.
func (h VideoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	video, ok := h.ownedVideo(w, r)
	if !ok {
		return
	}

	if err := h.Videos.Delete(ctx, video.ID); err != nil {
		respondStoreError(ctx, w, err, "video not found", "failed to delete video")
		return
	}

	h.Media.Retire(video.FileURL)
	h.Media.Retire(video.ThumbnailURL)

	respond(ctx, w, http.StatusOK, nil, "video deleted")
}

// TogglePublish handles PATCH /api/v1/videos/toggle/publish/{videoId}.
func (h VideoHandler) TogglePublish(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	video, ok := h.ownedVideo(w, r)
	if !ok {
		return
	}

	published, err := h.Videos.TogglePublish(ctx, video.ID)
	if err != nil {
		respondStoreError(ctx, w, err, "video not found", "failed to toggle publish state")
		return
	}

	respond(ctx, w, http.StatusOK, map[string]bool{"isPublished": published}, "publish state toggled")
}

// ownedVideo loads the addressed video and enforces that the session user
// created it. It writes the error response itself when the check fails.
func (h VideoHandler) ownedVideo(w http.ResponseWriter, r *http.Request) (models.Video, bool) {
	ctx := r.Context()

	user, ok := sessionUser(r)
	if !ok {
		respondError(ctx, w, http.StatusUnauthorized, "authentication required")
		return models.Video{}, false
	}

	videoID, ok := pathID(w, r, "videoId")
	if !ok {
		return models.Video{}, false
	}

	video, err := h.Videos.FindByID(ctx, videoID)
	if err != nil {
		respondStoreError(ctx, w, err, "video not found", "failed to load video")
		return models.Video{}, false
	}

	if video.CreatedBy != user.ID {
		respondError(ctx, w, http.StatusForbidden, "only the creator can modify this video")
		return models.Video{}, false
	}

	return video, true
}

func parseTags(raw string) []string {
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		if tag := strings.TrimSpace(strings.ToLower(part)); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
