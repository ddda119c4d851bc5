package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/mindspace-app/mindspace-backend/internal/middleware"
	"github.com/mindspace-app/mindspace-backend/internal/models"
	"github.com/mindspace-app/mindspace-backend/internal/services"
)

type UpdateProfileRequest struct {
	Name       string `json:"name"`
	ProfilePic string `json:"profilePic"`
}

type ProfileResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message,omitempty"`
	Name       string `json:"name,omitempty"`
	Email      string `json:"email,omitempty"`
	ProfilePic string `json:"profilePic,omitempty"`
}

func writeProfile(w http.ResponseWriter, user models.User) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ProfileResponse{
		Success:    true,
		Name:       user.Name,
		Email:      user.Email,
		ProfilePic: user.ProfilePic,
	})
}

func writeProfileError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ProfileResponse{Success: false, Message: message})
}

// GetProfile returns the caller's stored profile. The lookup goes to the
// user collection, so it reflects renames even when the token's claims are
// stale.
func GetProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeProfileError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	user, err := services.FindUserByID(ctx, claims.UserID)
	if err != nil {
		if err == services.ErrUserNotFound {
			writeProfileError(w, http.StatusNotFound, "User not found")
			return
		}
		writeProfileError(w, http.StatusInternalServerError, "Server error")
		return
	}

	writeProfile(w, user)
}

// UpdateProfile changes the caller's name and/or profile picture. Omitted
// fields are left unchanged. Tokens issued before a rename keep the old name
// in their claims until the user signs in again.
func UpdateProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeProfileError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProfileError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	user, err := services.UpdateProfile(ctx, claims.UserID, req.Name, req.ProfilePic)
	if err != nil {
		if err == services.ErrUserNotFound {
			writeProfileError(w, http.StatusNotFound, "User not found")
			return
		}
		writeProfileError(w, http.StatusInternalServerError, "Server error")
		return
	}

	writeProfile(w, user)
}

// UploadProfilePicture accepts a multipart image, stores it in Cloudinary
// and saves the returned URL on the profile.
func UploadProfilePicture(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeProfileError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	if cloudinaryService == nil {
		writeProfileError(w, http.StatusInternalServerError, "File upload service not available")
		return
	}

	// Max 10MB
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		writeProfileError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	_, fileHeader, err := r.FormFile("file")
	if err != nil {
		writeProfileError(w, http.StatusBadRequest, "No file provided")
		return
	}

	url, err := cloudinaryService.UploadFileFromHeader(r.Context(), fileHeader, "mindspace/profiles")
	if err != nil {
		log.Printf("Profile picture upload error: %v", err)
		writeProfileError(w, http.StatusInternalServerError, "Failed to upload file")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	user, err := services.UpdateProfile(ctx, claims.UserID, "", url)
	if err != nil {
		if err == services.ErrUserNotFound {
			writeProfileError(w, http.StatusNotFound, "User not found")
			return
		}
		writeProfileError(w, http.StatusInternalServerError, "Server error")
		return
	}

	writeProfile(w, user)
}

// DeleteAccount removes the caller's account and every journal entry it
// owns, then revokes the presented token so it stops authenticating
// immediately. The user and entry deletes are not atomic; a crash between
// them can orphan entries.
func DeleteAccount(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeProfileError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	entriesDeleted, err := services.DeleteUserCascade(ctx, claims.UserID)
	if err != nil {
		if err == services.ErrUserNotFound {
			writeProfileError(w, http.StatusNotFound, "User not found")
			return
		}
		writeProfileError(w, http.StatusInternalServerError, "Server error")
		return
	}

	if err := services.RevokeToken(ctx, claims); err != nil {
		// The account is gone either way; the token just lingers until expiry
		log.Printf("Failed to revoke token after account deletion: %v", err)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success":         true,
		"message":         "Account and data deleted",
		"entries_deleted": entriesDeleted,
	})
}
