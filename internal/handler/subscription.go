package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vidtube/vidtube-api-go/internal/models"
	"github.com/vidtube/vidtube-api-go/internal/service"
)

// SubscriptionHandler handles channel subscription endpoints.
type SubscriptionHandler struct {
	subscriptions service.SubscriptionService
}

// NewSubscriptionHandler creates a new SubscriptionHandler.
func NewSubscriptionHandler(subscriptions service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptions: subscriptions}
}

// Toggle handles POST /subscriptions/c/:channelId.
func (h *SubscriptionHandler) Toggle(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}
	channelID, ok := pathID(c, "channelId")
	if !ok {
		return
	}

	subscribed, err := h.subscriptions.Toggle(c.Request.Context(), user, channelID)
	if err != nil {
		respondError(c, err)
		return
	}

	message := "Unsubscribed successfully!"
	if subscribed {
		message = "Subscribed successfully!"
	}
	respond(c, http.StatusOK, models.SubscriptionStatus{IsSubscribed: subscribed}, message)
}

// Subscribers handles GET /subscriptions/c/:channelId.
func (h *SubscriptionHandler) Subscribers(c *gin.Context) {
	channelID, ok := pathID(c, "channelId")
	if !ok {
		return
	}

	subs, err := h.subscriptions.Subscribers(c.Request.Context(), channelID, viewer(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, subs, "Followers list fetched successfully!")
}

// SubscribedTo handles GET /subscriptions/u/:subscriberId.
func (h *SubscriptionHandler) SubscribedTo(c *gin.Context) {
	subscriberID, ok := pathID(c, "subscriberId")
	if !ok {
		return
	}

	subs, err := h.subscriptions.SubscribedTo(c.Request.Context(), subscriberID, viewer(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, subs, "Subscribed list fetched successfully!")
}
