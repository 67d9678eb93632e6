package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/pcruz7/notebook-be/internal/auth"
	"github.com/pcruz7/notebook-be/internal/models"
	"github.com/pcruz7/notebook-be/internal/services"
	"github.com/rs/zerolog/log"
)

// EventHandler handles HTTP requests for activity events.
type EventHandler struct {
	service services.EventServiceProvider
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(service services.EventServiceProvider) *EventHandler {
	return &EventHandler{service: service}
}

// GetRecent handles the request to get the authenticated user's recent
// activity.
func (h *EventHandler) GetRecent(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "Could not retrieve user from token", http.StatusInternalServerError)
		return
	}

	limitStr := r.URL.Query().Get("limit")
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		limit = 20 // Default limit
	}

	events, err := h.service.GetRecentEventsForUser(claims.UserID, limit)
	if err != nil {
		log.Error().Err(err).Int64("user_id", claims.UserID).Msg("Failed to retrieve events")
		http.Error(w, "Failed to retrieve events", http.StatusInternalServerError)
		return
	}
	if events == nil {
		events = []models.Event{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(events)
}
