// Package handlers composes validation, authentication, the ownership
// policy, and storage into the HTTP surface.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/moodtrail/moodtrail-backend/internal/errs"
	"github.com/moodtrail/moodtrail-backend/internal/middleware"
	"github.com/moodtrail/moodtrail-backend/internal/services"
	"github.com/moodtrail/moodtrail-backend/internal/validation"
)

// Handler carries the services the request handlers need. Constructed
// once at startup; no package-level state.
type Handler struct {
	auth          *services.Auth
	journal       *services.Journal
	logger        *zap.Logger
	secureCookies bool
}

func New(auth *services.Auth, journal *services.Journal, logger *zap.Logger, secureCookies bool) *Handler {
	return &Handler{auth: auth, journal: journal, logger: logger, secureCookies: secureCookies}
}

type messageResponse struct {
	Message string `json:"message"`
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeError maps service errors to their HTTP statuses. Anything not
// in the taxonomy is a storage failure: logged with context, returned
// as an opaque 500.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verrs validation.Errors
	switch {
	case errors.As(err, &verrs):
		h.writeJSON(w, http.StatusBadRequest, messageResponse{Message: verrs.Error()})
	case errors.Is(err, errs.ErrConflict):
		h.writeJSON(w, http.StatusBadRequest, messageResponse{Message: "Username already exists"})
	case errors.Is(err, errs.ErrInvalidCredentials):
		h.writeJSON(w, http.StatusUnauthorized, messageResponse{Message: "Invalid username or password"})
	case errors.Is(err, errs.ErrUnauthenticated):
		h.writeJSON(w, http.StatusUnauthorized, messageResponse{Message: "Authentication required"})
	case errors.Is(err, errs.ErrForbidden):
		h.writeJSON(w, http.StatusForbidden, messageResponse{Message: "Unauthorized access to this journal entry"})
	case errors.Is(err, errs.ErrNotFound):
		h.writeJSON(w, http.StatusNotFound, messageResponse{Message: "Journal entry not found"})
	case errors.Is(err, errs.ErrInvalidRange):
		h.writeJSON(w, http.StatusBadRequest, messageResponse{Message: "Invalid date format"})
	default:
		h.logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		h.writeJSON(w, http.StatusInternalServerError, messageResponse{Message: "Internal server error"})
	}
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(services.SessionDuration.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}
