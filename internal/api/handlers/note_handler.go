package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/pcruz7/notebook-be/internal/auth"
	"github.com/pcruz7/notebook-be/internal/services"
	ws "github.com/pcruz7/notebook-be/internal/websocket"
	"github.com/rs/zerolog/log"
)

// NoteHandler handles HTTP requests for the user's notebook.
type NoteHandler struct {
	service services.NoteServiceProvider
	events  services.EventServiceProvider
	hub     *ws.Hub
}

// NewNoteHandler creates a new NoteHandler.
func NewNoteHandler(service services.NoteServiceProvider, events services.EventServiceProvider, hub *ws.Hub) *NoteHandler {
	return &NoteHandler{service: service, events: events, hub: hub}
}

// SaveNotePayload defines the structure for save requests. Content is not
// validated: an empty note is a legitimate save.
type SaveNotePayload struct {
	Content string `json:"content"`
}

// Save appends a new revision of the authenticated user's note and pushes the
// new content to their connected clients.
func (h *NoteHandler) Save(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "Could not retrieve user from token", http.StatusInternalServerError)
		return
	}

	var payload SaveNotePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	note, err := h.service.SaveNote(claims.UserID, payload.Content)
	if err != nil {
		log.Error().Err(err).Int64("user_id", claims.UserID).Msg("Failed to save note")
		http.Error(w, "Failed to save note", http.StatusInternalServerError)
		return
	}

	userID := claims.UserID
	if err := h.events.CreateEvent("note.saved", "info", "Note saved", &userID); err != nil {
		log.Error().Err(err).Msg("Failed to record event")
	}

	if msg, err := json.Marshal(ws.Message{
		Action:  "note_saved",
		Payload: map[string]string{"content": note.Content},
	}); err == nil {
		h.hub.BroadcastTo(claims.UserID, msg)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{"content": note.Content})
}

// GetCurrent returns the content of the authenticated user's latest note,
// empty when they have none.
func (h *NoteHandler) GetCurrent(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "Could not retrieve user from token", http.StatusInternalServerError)
		return
	}

	content, err := h.service.CurrentNote(claims.UserID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", claims.UserID).Msg("Failed to load note")
		http.Error(w, "Failed to load note", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"content": content})
}
