package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/moodtrail/moodtrail-backend/internal/middleware"
	"github.com/moodtrail/moodtrail-backend/internal/models"
	"github.com/moodtrail/moodtrail-backend/internal/validation"
)

// entryID parses the {id} route param. An unparsable id cannot name an
// existing entry, so it reads as not found.
func entryID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil
}

func caller(r *http.Request) *models.User {
	user, _ := middleware.UserFrom(r.Context())
	return user
}

// CreateEntry handles POST /api/journal-entries. The owner is always
// the authenticated caller; no owner field is read from the body.
func (h *Handler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	var payload validation.EntryPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.writeJSON(w, http.StatusBadRequest, messageResponse{Message: "Invalid request body"})
		return
	}

	entry, err := h.journal.Create(r.Context(), caller(r).ID, payload)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, entry)
}

// GetEntry handles GET /api/journal-entries/{id}.
func (h *Handler) GetEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := entryID(r)
	if !ok {
		h.writeJSON(w, http.StatusNotFound, messageResponse{Message: "Journal entry not found"})
		return
	}

	entry, err := h.journal.Get(r.Context(), caller(r).ID, id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, entry)
}

// ListEntries handles GET /api/journal-entries, newest first.
func (h *Handler) ListEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := h.journal.List(r.Context(), caller(r).ID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, entries)
}

// ListEntriesInRange handles GET /api/journal-entries/range/{start}/{end},
// bounds inclusive.
func (h *Handler) ListEntriesInRange(w http.ResponseWriter, r *http.Request) {
	start := chi.URLParam(r, "start")
	end := chi.URLParam(r, "end")

	entries, err := h.journal.ListRange(r.Context(), caller(r).ID, start, end)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, entries)
}

// UpdateEntry handles PUT /api/journal-entries/{id}. Any subset of
// title/content/mood/date may be supplied.
func (h *Handler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := entryID(r)
	if !ok {
		h.writeJSON(w, http.StatusNotFound, messageResponse{Message: "Journal entry not found"})
		return
	}

	var payload validation.EntryPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.writeJSON(w, http.StatusBadRequest, messageResponse{Message: "Invalid request body"})
		return
	}

	entry, err := h.journal.Update(r.Context(), caller(r).ID, id, payload)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, entry)
}

// DeleteEntry handles DELETE /api/journal-entries/{id}.
func (h *Handler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := entryID(r)
	if !ok {
		h.writeJSON(w, http.StatusNotFound, messageResponse{Message: "Journal entry not found"})
		return
	}

	if err := h.journal.Delete(r.Context(), caller(r).ID, id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MoodStats handles GET /api/journal-entries/stats: per-mood counts
// for the caller's entries, feeding the mood trend chart.
func (h *Handler) MoodStats(w http.ResponseWriter, r *http.Request) {
	counts, err := h.journal.MoodCounts(r.Context(), caller(r).ID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, counts)
}
