package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/mindspace-app/mindspace-backend/internal/services"
	"github.com/mindspace-app/mindspace-backend/pkg/utils"
)

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse carries the signed token on success.
type AuthResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Token   string `json:"token,omitempty"`
}

func writeAuthResponse(w http.ResponseWriter, status int, resp AuthResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}

// Register handles user registration and returns a signed token.
func Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAuthResponse(w, http.StatusBadRequest, AuthResponse{Success: false, Message: "Invalid request body"})
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if req.Name == "" || req.Email == "" || req.Password == "" {
		writeAuthResponse(w, http.StatusBadRequest, AuthResponse{Success: false, Message: "Name, email, and password are required"})
		return
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		writeAuthResponse(w, http.StatusInternalServerError, AuthResponse{Success: false, Message: "Server error"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	user, err := services.CreateUser(ctx, req.Name, req.Email, hashedPassword)
	if err != nil {
		if err == services.ErrEmailTaken {
			writeAuthResponse(w, http.StatusBadRequest, AuthResponse{Success: false, Message: "User already exists"})
			return
		}
		writeAuthResponse(w, http.StatusInternalServerError, AuthResponse{Success: false, Message: "Server error"})
		return
	}

	token, err := services.IssueToken(user)
	if err != nil {
		writeAuthResponse(w, http.StatusInternalServerError, AuthResponse{Success: false, Message: "Server error"})
		return
	}

	writeAuthResponse(w, http.StatusOK, AuthResponse{Success: true, Token: token})
}

// Login verifies credentials and returns a signed token. Unknown email and
// wrong password produce the same response so accounts cannot be enumerated.
func Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAuthResponse(w, http.StatusBadRequest, AuthResponse{Success: false, Message: "Invalid request body"})
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		writeAuthResponse(w, http.StatusBadRequest, AuthResponse{Success: false, Message: "Email and password are required"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	user, err := services.FindUserByEmail(ctx, req.Email)
	if err != nil {
		if err == services.ErrUserNotFound {
			writeAuthResponse(w, http.StatusBadRequest, AuthResponse{Success: false, Message: "Invalid credentials"})
			return
		}
		writeAuthResponse(w, http.StatusInternalServerError, AuthResponse{Success: false, Message: "Server error"})
		return
	}

	// Google-auth accounts have no hash; verification fails the same way as
	// a wrong password.
	valid, err := utils.VerifyPassword(req.Password, user.Password)
	if err != nil || !valid {
		writeAuthResponse(w, http.StatusBadRequest, AuthResponse{Success: false, Message: "Invalid credentials"})
		return
	}

	token, err := services.IssueToken(user)
	if err != nil {
		writeAuthResponse(w, http.StatusInternalServerError, AuthResponse{Success: false, Message: "Server error"})
		return
	}

	writeAuthResponse(w, http.StatusOK, AuthResponse{Success: true, Token: token})
}
