package services

import (
	"context"

	"github.com/Adilet2047/Lingua_Connect/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserStore is the persistence surface the services need for users.
// Implemented by repository.UserRepository.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	UpdateUser(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (*models.User, error)
	GetUsersByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error)
	GetOnboardedUsersExcluding(ctx context.Context, exclude []primitive.ObjectID) ([]models.User, error)
	AddFriendship(ctx context.Context, userID, friendID primitive.ObjectID) error
}

// FriendRequestStore is the persistence surface for friend requests.
// Implemented by repository.FriendRepository.
type FriendRequestStore interface {
	CreateRequest(ctx context.Context, req *models.FriendRequest) (*models.FriendRequest, error)
	GetRequestByID(ctx context.Context, id primitive.ObjectID) (*models.FriendRequest, error)
	ExistsForPair(ctx context.Context, a, b primitive.ObjectID) (bool, error)
	UpdateRequestStatus(ctx context.Context, id primitive.ObjectID, status string) error
	GetRequestsByRecipient(ctx context.Context, recipientID primitive.ObjectID, status string) ([]models.FriendRequest, error)
	GetRequestsBySender(ctx context.Context, senderID primitive.ObjectID, status string) ([]models.FriendRequest, error)
}

// PresenceClient mirrors identities into the external chat provider and
// mints its tokens. Implemented by chat.StreamClient.
type PresenceClient interface {
	UpsertUser(ctx context.Context, id, name, image string) error
	CreateToken(userID string) (string, error)
}
