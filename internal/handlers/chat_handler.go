package handlers

import (
	"net/http"

	"github.com/Adilet2047/Lingua_Connect/internal/services"
	"github.com/Adilet2047/Lingua_Connect/pkg/logger"
	"github.com/Adilet2047/Lingua_Connect/pkg/middleware"
)

// ChatHandler mints Stream chat tokens for authenticated users.
type ChatHandler struct {
	Presence services.PresenceClient
}

// NewChatHandler initializes a new ChatHandler.
func NewChatHandler(presence services.PresenceClient) *ChatHandler {
	return &ChatHandler{Presence: presence}
}

// GetStreamTokenHandler returns a chat token for the current user.
func (h *ChatHandler) GetStreamTokenHandler(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		respondJSON(w, http.StatusUnauthorized, map[string]string{"message": "Unauthorized access"})
		return
	}

	token, err := h.Presence.CreateToken(user.ID.Hex())
	if err != nil {
		logger.Log.Errorf("Failed to mint chat token for %s: %v", user.ID.Hex(), err)
		respondJSON(w, http.StatusInternalServerError, map[string]string{"message": "Internal server error"})
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"token": token})
}
