package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/pcruz7/notebook-be/internal/api/handlers"
	"github.com/pcruz7/notebook-be/internal/auth"
	"github.com/pcruz7/notebook-be/internal/services"
	"github.com/pcruz7/notebook-be/internal/websocket"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(hub *websocket.Hub, userService services.UserServiceProvider, noteService services.NoteServiceProvider, eventService services.EventServiceProvider) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS configuration for development
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"}, // Adjust for your frontend URL
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService, eventService)
	noteHandler := handlers.NewNoteHandler(noteService, eventService, hub)
	eventHandler := handlers.NewEventHandler(eventService)
	wsHandler := handlers.NewWebSocketHandler(hub)

	// API versioning
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", userHandler.Register)
		r.Post("/auth/login", userHandler.Login)
		r.Post("/auth/logout", userHandler.Logout)

		// Everything below requires an authenticated session.
		r.Group(func(r chi.Router) {
			r.Use(auth.JWTMiddleware())

			r.Get("/users/me", userHandler.GetMe)
			r.Post("/users/me/password", userHandler.ChangePassword)

			r.Get("/notes/current", noteHandler.GetCurrent)
			r.Post("/notes", noteHandler.Save)

			r.Get("/events/recent", eventHandler.GetRecent)

			r.Get("/ws", wsHandler.Serve)
		})
	})

	return r
}
