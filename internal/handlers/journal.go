package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mindspace-app/mindspace-backend/internal/middleware"
	"github.com/mindspace-app/mindspace-backend/internal/models"
	"github.com/mindspace-app/mindspace-backend/internal/services"
)

type CreateJournalRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type JournalResponse struct {
	Success bool                 `json:"success"`
	Message string               `json:"message,omitempty"`
	Entry   *models.JournalEntry `json:"entry,omitempty"`
}

type JournalListResponse struct {
	Success bool                  `json:"success"`
	Message string                `json:"message,omitempty"`
	Entries []models.JournalEntry `json:"entries"`
}

func writeJournalError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(JournalResponse{Success: false, Message: message})
}

// ownerID resolves the authenticated caller's id from the request context.
func ownerID(r *http.Request) (primitive.ObjectID, bool) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}

// CreateJournal saves a new entry with an inferred mood score. The
// classifier is best-effort: any failure or nonsense reply falls back to the
// neutral score, and the result is clamped before it is stored, so a bad
// upstream response can never block the save or violate the 1–5 range.
func CreateJournal(w http.ResponseWriter, r *http.Request) {
	userID, ok := ownerID(r)
	if !ok {
		writeJournalError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req CreateJournalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJournalError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.Content) == "" {
		writeJournalError(w, http.StatusBadRequest, "Content is required")
		return
	}

	mood := geminiService.AnalyzeMood(r.Context(), req.Content)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	entry, err := services.CreateEntry(ctx, userID, req.Title, req.Content, mood)
	if err != nil {
		writeJournalError(w, http.StatusInternalServerError, "Failed to create journal entry")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(JournalResponse{Success: true, Entry: &entry})
}

// GetJournals returns all of the caller's entries, newest first.
func GetJournals(w http.ResponseWriter, r *http.Request) {
	userID, ok := ownerID(r)
	if !ok {
		writeJournalError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	entries, err := services.ListEntries(ctx, userID)
	if err != nil {
		writeJournalError(w, http.StatusInternalServerError, "Failed to load journal entries")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(JournalListResponse{Success: true, Entries: entries})
}

// DeleteJournal removes a single entry the caller owns. An entry that
// exists but belongs to someone else gets 401 with a different message than
// the 404 for an id that does not resolve.
func DeleteJournal(w http.ResponseWriter, r *http.Request) {
	userID, ok := ownerID(r)
	if !ok {
		writeJournalError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	entryID := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	err := services.DeleteEntry(ctx, entryID, userID)
	switch err {
	case nil:
	case services.ErrEntryNotFound:
		writeJournalError(w, http.StatusNotFound, "Entry not found")
		return
	case services.ErrNotEntryOwner:
		writeJournalError(w, http.StatusUnauthorized, "Not authorized")
		return
	default:
		writeJournalError(w, http.StatusInternalServerError, "Failed to delete journal entry")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Entry removed",
	})
}
