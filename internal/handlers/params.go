package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// pathID extracts an id URL parameter, rejecting values that are not
// well-formed uuids before any store access happens.
func pathID(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	id := chi.URLParam(r, name)
	if _, err := uuid.Parse(id); err != nil {
		respondError(r.Context(), w, http.StatusBadRequest, "malformed identifier")
		return "", false
	}
	return id, true
}
