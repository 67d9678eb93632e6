package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/pcruz7/notebook-be/internal/auth"
	"github.com/pcruz7/notebook-be/internal/services"
	"github.com/rs/zerolog/log"
)

// UserHandler handles HTTP requests for registration, login and account
// management.
type UserHandler struct {
	service  services.UserServiceProvider
	events   services.EventServiceProvider
	validate *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service services.UserServiceProvider, events services.EventServiceProvider) *UserHandler {
	return &UserHandler{
		service:  service,
		events:   events,
		validate: validator.New(),
	}
}

// AuthPayload defines the structure for login and registration requests.
type AuthPayload struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ChangePasswordPayload defines the structure for password change requests.
type ChangePasswordPayload struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required"`
}

// Register handles new user registration.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload AuthPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(payload); err != nil {
		http.Error(w, "Username and password are required", http.StatusBadRequest)
		return
	}

	user, err := h.service.Register(payload.Username, payload.Password)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateUsername) {
			log.Warn().Str("username", payload.Username).Msg("Registration with taken username")
			http.Error(w, "Username already taken", http.StatusConflict)
			return
		}
		log.Error().Err(err).Str("username", payload.Username).Msg("Failed to register user")
		http.Error(w, "Failed to register user", http.StatusInternalServerError)
		return
	}

	h.logEvent("user.registered", "Account created", user.ID)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(user)
}

// Login handles user authentication and session binding.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload AuthPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(payload); err != nil {
		http.Error(w, "Username and password are required", http.StatusBadRequest)
		return
	}

	user, err := h.service.Authenticate(payload.Username, payload.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			log.Warn().Str("username", payload.Username).Msg("Failed authentication attempt")
			http.Error(w, "Invalid credentials", http.StatusUnauthorized)
			return
		}
		log.Error().Err(err).Str("username", payload.Username).Msg("Authentication lookup failed")
		http.Error(w, "Failed to log in", http.StatusInternalServerError)
		return
	}

	token, err := auth.GenerateJWT(user)
	if err != nil {
		log.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to generate session token")
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	// Set Secure flag based on environment.
	isProd := os.Getenv("APP_ENV") == "production"
	auth.SetSessionCookie(w, token, isProd)

	h.logEvent("user.login", "Logged in", user.ID)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

// Logout clears the session binding.
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	isProd := os.Getenv("APP_ENV") == "production"
	auth.ClearSessionCookie(w, isProd)
	w.WriteHeader(http.StatusNoContent)
}

// GetMe retrieves the currently authenticated user.
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.UserFromContext(r.Context())
	if !ok {
		log.Error().Msg("Could not retrieve user claims from context")
		http.Error(w, "Could not retrieve user from token", http.StatusInternalServerError)
		return
	}

	user, err := h.service.GetUserByID(claims.UserID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", claims.UserID).Msg("User from token not found in DB")
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user)
}

// ChangePassword handles changing the authenticated user's password. The user
// id comes from the session, never from the request.
func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "Could not retrieve user from token", http.StatusInternalServerError)
		return
	}

	var payload ChangePasswordPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(payload); err != nil {
		http.Error(w, "Current and new password are required", http.StatusBadRequest)
		return
	}

	if err := h.service.ChangePassword(claims.UserID, payload.CurrentPassword, payload.NewPassword); err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			log.Warn().Int64("user_id", claims.UserID).Msg("Password change with wrong current password")
			http.Error(w, "Current password is incorrect", http.StatusUnauthorized)
			return
		}
		log.Error().Err(err).Int64("user_id", claims.UserID).Msg("Failed to change password")
		http.Error(w, "Failed to change password", http.StatusInternalServerError)
		return
	}

	h.logEvent("user.password_changed", "Password changed", claims.UserID)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Password updated successfully"})
}

func (h *UserHandler) logEvent(eventType, message string, userID int64) {
	if err := h.events.CreateEvent(eventType, "info", message, &userID); err != nil {
		log.Error().Err(err).Str("type", eventType).Msg("Failed to record event")
	}
}
