package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/mindspace-app/mindspace-backend/internal/handlers"
	"github.com/mindspace-app/mindspace-backend/internal/middleware"
)

func SetupRoutes(r *chi.Mux) {
	// Auth routes
	r.Post("/api/auth/register", handlers.Register)
	r.Post("/api/auth/login", handlers.Login)

	// AI companion chat (no account needed)
	r.Post("/api/chat", handlers.Chat)

	// WebSocket endpoint for a persistent companion session
	r.Get("/ws/chat", handlers.ChatWebSocket)

	// Everything below requires a valid token
	r.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth)

		// Profile routes
		protected.Get("/api/profile", handlers.GetProfile)
		protected.Put("/api/profile", handlers.UpdateProfile)
		protected.Post("/api/profile/picture", handlers.UploadProfilePicture)
		protected.Delete("/api/profile", handlers.DeleteAccount)

		// Journaling routes
		protected.Post("/api/journal", handlers.CreateJournal)
		protected.Get("/api/journal", handlers.GetJournals)
		protected.Delete("/api/journal/{id}", handlers.DeleteJournal)
	})
}
