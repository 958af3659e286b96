package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Adilet2047/Lingua_Connect/internal/apperrors"
	"github.com/Adilet2047/Lingua_Connect/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// FriendRepository handles database operations for friend requests.
type FriendRepository struct {
	collection *mongo.Collection
}

// NewFriendRepository creates a new FriendRepository.
func NewFriendRepository(db *mongo.Database) *FriendRepository {
	return &FriendRepository{
		collection: db.Collection("friend_requests"),
	}
}

// CreateRequest inserts a new pending friend request. The unique pair_key
// index rejects a second request for the same unordered pair, including
// two concurrent sends that both passed the existence check.
func (r *FriendRepository) CreateRequest(ctx context.Context, req *models.FriendRequest) (*models.FriendRequest, error) {
	req.PairKey = models.PairKeyFor(req.SenderID, req.RecipientID)
	req.Status = models.RequestStatusPending
	req.CreatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, req)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperrors.ErrRequestExists
		}
		return nil, fmt.Errorf("failed to create friend request: %v", err)
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("failed to cast inserted ID")
	}
	req.ID = insertedID

	return req, nil
}

// GetRequestByID fetches a single friend request.
func (r *FriendRepository) GetRequestByID(ctx context.Context, id primitive.ObjectID) (*models.FriendRequest, error) {
	var request models.FriendRequest
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&request)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrRequestNotFound
		}
		return nil, fmt.Errorf("failed to find friend request: %v", err)
	}
	return &request, nil
}

// ExistsForPair reports whether any request exists between the two users,
// in either direction and regardless of status.
func (r *FriendRepository) ExistsForPair(ctx context.Context, a, b primitive.ObjectID) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"pair_key": models.PairKeyFor(a, b)})
	if err != nil {
		return false, fmt.Errorf("failed to check existing friend request: %v", err)
	}
	return count > 0, nil
}

// UpdateRequestStatus sets a request's status.
func (r *FriendRepository) UpdateRequestStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status}},
	)
	if err != nil {
		return fmt.Errorf("failed to update request status: %v", err)
	}
	return nil
}

// GetRequestsByRecipient fetches requests addressed to a user with the
// given status.
func (r *FriendRepository) GetRequestsByRecipient(ctx context.Context, recipientID primitive.ObjectID, status string) ([]models.FriendRequest, error) {
	return r.findRequests(ctx, bson.M{"recipient_id": recipientID, "status": status})
}

// GetRequestsBySender fetches requests a user sent with the given status.
func (r *FriendRepository) GetRequestsBySender(ctx context.Context, senderID primitive.ObjectID, status string) ([]models.FriendRequest, error) {
	return r.findRequests(ctx, bson.M{"sender_id": senderID, "status": status})
}

func (r *FriendRepository) findRequests(ctx context.Context, filter bson.M) ([]models.FriendRequest, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find friend requests: %v", err)
	}
	defer cursor.Close(ctx)

	requests := []models.FriendRequest{}
	for cursor.Next(ctx) {
		var req models.FriendRequest
		if err := cursor.Decode(&req); err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}

	return requests, nil
}
