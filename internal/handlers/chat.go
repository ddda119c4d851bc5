package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/mindspace-app/mindspace-backend/internal/config"
	"github.com/mindspace-app/mindspace-backend/internal/middleware"
	"github.com/mindspace-app/mindspace-backend/internal/services"
)

var geminiService *services.GeminiService

// InitGeminiService wires the language-model client used by the companion
// chat and the journal mood classifier.
func InitGeminiService(cfg *config.Config) {
	geminiService = services.NewGeminiService(cfg.GeminiAPIKey, cfg.GeminiModel, "")
}

type ChatRequest struct {
	Message string `json:"message"`
}

type ChatResponse struct {
	Reply string `json:"reply"`
}

// Chat answers a single companion message. Crisis keywords are checked
// before anything is sent upstream; when the model is unreachable the
// caller still gets a comforting reply, just with a 500 status.
func Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": false,
			"message": "Invalid request body",
		})
		return
	}

	if strings.TrimSpace(req.Message) == "" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": false,
			"message": "Message is required",
		})
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if services.IsCrisisMessage(req.Message) {
		json.NewEncoder(w).Encode(ChatResponse{Reply: services.CrisisReply})
		return
	}

	reply, err := geminiService.CompanionReply(r.Context(), req.Message)
	if err != nil {
		log.Printf("Gemini error: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(ChatResponse{Reply: services.ChatFallbackReply})
		return
	}

	json.NewEncoder(w).Encode(ChatResponse{Reply: reply})
}

var chatUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// CORS for WebSocket is handled at the HTTP layer already.
		return true
	},
}

// ChatClientMessage represents messages coming from the frontend over WebSocket.
type ChatClientMessage struct {
	Type string `json:"type"` // "message", "ping"
	Text string `json:"text,omitempty"`
}

// ChatServerMessage is what the server writes back over the socket.
type ChatServerMessage struct {
	Type      string `json:"type"` // "reply", "pong", "error"
	MessageID string `json:"message_id,omitempty"`
	Reply     string `json:"reply,omitempty"`
}

// ChatWebSocket runs a persistent companion session. Authentication uses
// the regular token, with a `token` query parameter fallback for browser
// WebSocket clients that cannot set headers.
func ChatWebSocket(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimSpace(r.Header.Get(middleware.AuthHeader))
	if token == "" {
		token = r.URL.Query().Get("token")
		if token == "" {
			http.Error(w, "missing token", http.StatusUnauthorized)
			return
		}
	}

	if _, err := services.VerifyToken(token); err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	conn, err := chatUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	conn.SetReadLimit(64 * 1024)
	_ = conn.SetReadDeadline(time.Now().Add(90 * time.Second))
	conn.SetPongHandler(func(appData string) error {
		_ = conn.SetReadDeadline(time.Now().Add(90 * time.Second))
		return nil
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(90 * time.Second))

		var msg ChatClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}

		switch msg.Type {
		case "ping":
			_ = conn.WriteJSON(ChatServerMessage{Type: "pong"})
		case "message":
			if strings.TrimSpace(msg.Text) == "" {
				continue
			}

			reply := ""
			if services.IsCrisisMessage(msg.Text) {
				reply = services.CrisisReply
			} else {
				reply, err = geminiService.CompanionReply(r.Context(), msg.Text)
				if err != nil {
					log.Printf("Gemini error: %v", err)
					reply = services.ChatFallbackReply
				}
			}

			if err := conn.WriteJSON(ChatServerMessage{
				Type:      "reply",
				MessageID: uuid.New().String(),
				Reply:     reply,
			}); err != nil {
				return
			}
		}
	}
}
