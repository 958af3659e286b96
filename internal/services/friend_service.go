package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Adilet2047/Lingua_Connect/internal/apperrors"
	"github.com/Adilet2047/Lingua_Connect/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FriendService owns the friend-request lifecycle: sending, accepting and
// listing requests, and keeping the friend sets of both users symmetric.
type FriendService struct {
	requests FriendRequestStore
	users    UserStore
}

// NewFriendService creates a new FriendService.
func NewFriendService(requests FriendRequestStore, users UserStore) *FriendService {
	return &FriendService{
		requests: requests,
		users:    users,
	}
}

// SendRequest creates a pending friend request from sender to recipient.
// It rejects self-requests, unknown recipients, existing friendships and
// duplicate requests in either direction. The duplicate check is also
// enforced by the store's unique pair key, so two concurrent sends for
// the same pair cannot both succeed.
func (s *FriendService) SendRequest(ctx context.Context, senderID, recipientID primitive.ObjectID) (*models.FriendRequest, error) {
	if senderID == recipientID {
		return nil, apperrors.ErrSelfRequest
	}

	recipient, err := s.users.GetUserByID(ctx, recipientID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}

	for _, friendID := range recipient.Friends {
		if friendID == senderID {
			return nil, apperrors.ErrAlreadyFriends
		}
	}

	exists, err := s.requests.ExistsForPair(ctx, senderID, recipientID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrRequestExists
	}

	request := &models.FriendRequest{
		SenderID:    senderID,
		RecipientID: recipientID,
	}

	created, err := s.requests.CreateRequest(ctx, request)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"senderID":    senderID.Hex(),
		"recipientID": recipientID.Hex(),
	}).Info("Friend request sent")
	return created, nil
}

// AcceptRequest flips a request to accepted and adds each user to the
// other's friend set. Only the addressed recipient may accept. The dual
// friend-set write is transactional; a failure there is surfaced as a
// fatal error rather than leaving the relation half-applied silently.
func (s *FriendService) AcceptRequest(ctx context.Context, actingUserID, requestID primitive.ObjectID) (*models.FriendRequest, error) {
	request, err := s.requests.GetRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if request.RecipientID != actingUserID {
		return nil, apperrors.ErrForbidden
	}

	if err := s.requests.UpdateRequestStatus(ctx, requestID, models.RequestStatusAccepted); err != nil {
		return nil, err
	}
	request.Status = models.RequestStatusAccepted

	if err := s.users.AddFriendship(ctx, request.SenderID, request.RecipientID); err != nil {
		return nil, fmt.Errorf("failed to update friend lists: %v", err)
	}

	logrus.WithFields(logrus.Fields{
		"requestID":   requestID.Hex(),
		"recipientID": actingUserID.Hex(),
	}).Info("Friend request accepted")
	return request, nil
}

// ListIncoming returns the pending requests addressed to a user and,
// separately, the requests they already accepted, each enriched with the
// sender's public profile.
func (s *FriendService) ListIncoming(ctx context.Context, userID primitive.ObjectID) (pending, accepted []models.IncomingFriendRequest, err error) {
	pendingReqs, err := s.requests.GetRequestsByRecipient(ctx, userID, models.RequestStatusPending)
	if err != nil {
		return nil, nil, err
	}
	acceptedReqs, err := s.requests.GetRequestsByRecipient(ctx, userID, models.RequestStatusAccepted)
	if err != nil {
		return nil, nil, err
	}

	senders, err := s.profilesFor(ctx, senderIDs(append(append([]models.FriendRequest{}, pendingReqs...), acceptedReqs...)))
	if err != nil {
		return nil, nil, err
	}

	pending = enrichIncoming(pendingReqs, senders)
	accepted = enrichIncoming(acceptedReqs, senders)
	return pending, accepted, nil
}

// ListOutgoing returns the pending requests a user sent, enriched with
// the recipient's public profile.
func (s *FriendService) ListOutgoing(ctx context.Context, userID primitive.ObjectID) ([]models.OutgoingFriendRequest, error) {
	requests, err := s.requests.GetRequestsBySender(ctx, userID, models.RequestStatusPending)
	if err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(requests))
	for _, req := range requests {
		ids = append(ids, req.RecipientID)
	}

	recipients, err := s.profilesFor(ctx, ids)
	if err != nil {
		return nil, err
	}

	outgoing := make([]models.OutgoingFriendRequest, 0, len(requests))
	for _, req := range requests {
		outgoing = append(outgoing, models.OutgoingFriendRequest{
			ID:        req.ID,
			Recipient: recipients[req.RecipientID],
			Status:    req.Status,
			CreatedAt: req.CreatedAt,
		})
	}
	return outgoing, nil
}

func (s *FriendService) profilesFor(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.UserSummary, error) {
	users, err := s.users.GetUsersByIDs(ctx, dedupe(ids))
	if err != nil {
		return nil, err
	}

	profiles := make(map[primitive.ObjectID]models.UserSummary, len(users))
	for i := range users {
		profiles[users[i].ID] = users[i].Summary()
	}
	return profiles, nil
}

func senderIDs(requests []models.FriendRequest) []primitive.ObjectID {
	ids := make([]primitive.ObjectID, 0, len(requests))
	for _, req := range requests {
		ids = append(ids, req.SenderID)
	}
	return ids
}

func enrichIncoming(requests []models.FriendRequest, senders map[primitive.ObjectID]models.UserSummary) []models.IncomingFriendRequest {
	enriched := make([]models.IncomingFriendRequest, 0, len(requests))
	for _, req := range requests {
		enriched = append(enriched, models.IncomingFriendRequest{
			ID:        req.ID,
			Sender:    senders[req.SenderID],
			Status:    req.Status,
			CreatedAt: req.CreatedAt,
		})
	}
	return enriched
}

func dedupe(ids []primitive.ObjectID) []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]struct{}, len(ids))
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
