package handlers

import (
	"net/http"

	"github.com/Adilet2047/Lingua_Connect/internal/services"
	"github.com/Adilet2047/Lingua_Connect/pkg/logger"
	"github.com/Adilet2047/Lingua_Connect/pkg/middleware"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserHandler manages the directory and friend-request endpoints.
type UserHandler struct {
	Users   *services.UserService
	Friends *services.FriendService
}

// NewUserHandler initializes a new UserHandler.
func NewUserHandler(users *services.UserService, friends *services.FriendService) *UserHandler {
	return &UserHandler{
		Users:   users,
		Friends: friends,
	}
}

// GetRecommendedUsersHandler lists onboarded users the current user is
// not yet friends with.
func (h *UserHandler) GetRecommendedUsersHandler(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		respondJSON(w, http.StatusUnauthorized, map[string]string{"message": "Unauthorized access"})
		return
	}

	recommended, err := h.Users.RecommendUsers(r.Context(), user.ID)
	if err != nil {
		logger.Log.Errorf("Failed to fetch recommendations for %s: %v", user.ID.Hex(), err)
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"recommendedUsers": recommended})
}

// GetFriendsHandler lists the current user's friends as public profiles.
func (h *UserHandler) GetFriendsHandler(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		respondJSON(w, http.StatusUnauthorized, map[string]string{"message": "Unauthorized access"})
		return
	}

	friends, err := h.Users.ListFriends(r.Context(), user.ID)
	if err != nil {
		logger.Log.Errorf("Failed to fetch friends for %s: %v", user.ID.Hex(), err)
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"friends": friends})
}

// SendFriendRequestHandler sends a friend request to the user in the path.
func (h *UserHandler) SendFriendRequestHandler(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		respondJSON(w, http.StatusUnauthorized, map[string]string{"message": "Unauthorized access"})
		return
	}

	recipientID, err := primitive.ObjectIDFromHex(mux.Vars(r)["userId"])
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid user ID"})
		return
	}

	request, err := h.Friends.SendRequest(r.Context(), user.ID, recipientID)
	if err != nil {
		logger.Log.Warnf("Failed to send friend request from %s: %v", user.ID.Hex(), err)
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{"friendRequest": request})
}

// AcceptFriendRequestHandler accepts the friend request in the path. Only
// the addressed recipient may accept.
func (h *UserHandler) AcceptFriendRequestHandler(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		respondJSON(w, http.StatusUnauthorized, map[string]string{"message": "Unauthorized access"})
		return
	}

	requestID, err := primitive.ObjectIDFromHex(mux.Vars(r)["userId"])
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request ID"})
		return
	}

	request, err := h.Friends.AcceptRequest(r.Context(), user.ID, requestID)
	if err != nil {
		logger.Log.Warnf("Failed to accept friend request %s by %s: %v", requestID.Hex(), user.ID.Hex(), err)
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"friendRequest": request})
}

// GetFriendRequestsHandler lists incoming requests, split into pending
// and already accepted, each with the sender's profile.
func (h *UserHandler) GetFriendRequestsHandler(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		respondJSON(w, http.StatusUnauthorized, map[string]string{"message": "Unauthorized access"})
		return
	}

	pending, accepted, err := h.Friends.ListIncoming(r.Context(), user.ID)
	if err != nil {
		logger.Log.Errorf("Failed to fetch friend requests for %s: %v", user.ID.Hex(), err)
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"pendingRequests":  pending,
		"acceptedRequests": accepted,
	})
}

// GetOutgoingRequestsHandler lists the pending requests the current user
// sent, with each recipient's profile.
func (h *UserHandler) GetOutgoingRequestsHandler(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		respondJSON(w, http.StatusUnauthorized, map[string]string{"message": "Unauthorized access"})
		return
	}

	outgoing, err := h.Friends.ListOutgoing(r.Context(), user.ID)
	if err != nil {
		logger.Log.Errorf("Failed to fetch outgoing requests for %s: %v", user.ID.Hex(), err)
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"outgoingRequests": outgoing})
}
