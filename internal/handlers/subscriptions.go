package handlers

import (
	"net/http"

	"github.com/vidtube/backend/internal/repositories"
)

// SubscriptionHandler serves subscription toggles and listings.
type SubscriptionHandler struct {
	Subscriptions SubscriptionStore
	Views         ViewStore
}

// Toggle handles POST /api/v1/subscriptions/c/{channelId}.
func (h SubscriptionHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := sessionUser(r)
	if !ok {
		respondError(ctx, w, http.StatusUnauthorized, "authentication required")
		return
	}

	channelID, ok := pathID(w, r, "channelId")
	if !ok {
		return
	}
	if channelID == user.ID {
		respondError(ctx, w, http.StatusBadRequest, "cannot subscribe to your own channel")
		return
	}

	result, err := h.Subscriptions.Toggle(ctx, channelID, user.ID)
	if err != nil {
		respondStoreError(ctx, w, err, "channel not found", "failed to toggle subscription")
		return
	}

	subscribed := result == repositories.ToggleCreated
	message := "unsubscribed"
	if subscribed {
		message = "subscribed"
	}
	respond(ctx, w, http.StatusOK, map[string]bool{"subscribed": subscribed}, message)
}

// Subscribers handles GET /api/v1/subscriptions/c/{channelId}.
func (h SubscriptionHandler) Subscribers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	channelID, ok := pathID(w, r, "channelId")
	if !ok {
		return
	}

	subscribers, err := h.Views.ChannelSubscribers(ctx, channelID)
	if err != nil {
		respondStoreError(ctx, w, err, "channel not found", "failed to load subscribers")
		return
	}

	if subscribers == nil {
		subscribers = []repositories.Creator{}
	}
	respond(ctx, w, http.StatusOK, subscribers, "subscribers")
}

// Subscribed handles GET /api/v1/subscriptions/u/{subscriberId}.
func (h SubscriptionHandler) Subscribed(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	subscriberID, ok := pathID(w, r, "subscriberId")
	if !ok {
		return
	}

	channels, err := h.Views.SubscribedChannels(ctx, subscriberID)
	if err != nil {
		respondStoreError(ctx, w, err, "user not found", "failed to load subscribed channels")
		return
	}

	if channels == nil {
		channels = []repositories.Creator{}
	}
	respond(ctx, w, http.StatusOK, channels, "subscribed channels")
}
