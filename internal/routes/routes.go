package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/moodtrail/moodtrail-backend/internal/handlers"
)

// SetupRoutes binds every endpoint once at startup.
func SetupRoutes(r *chi.Mux, h *handlers.Handler, requireAuth func(http.Handler) http.Handler) {
	// Auth routes
	r.Post("/api/register", h.Register)
	r.Post("/api/login", h.Login)
	r.Post("/api/logout", h.Logout)

	// Everything below requires a valid session
	r.Group(func(r chi.Router) {
		r.Use(requireAuth)

		r.Get("/api/user", h.CurrentUser)

		// Journaling routes
		r.Get("/api/journal-entries", h.ListEntries)
		r.Post("/api/journal-entries", h.CreateEntry)
		r.Get("/api/journal-entries/stats", h.MoodStats)
		r.Get("/api/journal-entries/range/{start}/{end}", h.ListEntriesInRange)
		r.Get("/api/journal-entries/{id}", h.GetEntry)
		r.Put("/api/journal-entries/{id}", h.UpdateEntry)
		r.Delete("/api/journal-entries/{id}", h.DeleteEntry)
	})
}
