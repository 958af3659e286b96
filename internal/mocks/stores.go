// Package mocks provides in-memory stand-ins for the persistence and
// chat-provider interfaces, mirroring the repository semantics including
// the unique-key conflicts the real indexes enforce. Test-only.
package mocks

import (
	"context"
	"errors"
	"sync"

	"github.com/Adilet2047/Lingua_Connect/internal/apperrors"
	"github.com/Adilet2047/Lingua_Connect/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MemUserStore struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*models.User

	FailAddFriendship bool
	LastExclude       []primitive.ObjectID
}

func NewMemUserStore() *MemUserStore {
	return &MemUserStore{users: make(map[primitive.ObjectID]*models.User)}
}

func (s *MemUserStore) CreateUser(_ context.Context, user *models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == user.Email {
			return nil, apperrors.ErrDuplicateEmail
		}
	}
	user.ID = primitive.NewObjectID()
	clone := *user
	s.users[user.ID] = &clone
	return user, nil
}

func (s *MemUserStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (s *MemUserStore) GetUserByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (s *MemUserStore) UpdateUser(_ context.Context, id primitive.ObjectID, fields map[string]interface{}) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	for key, value := range fields {
		switch key {
		case "full_name":
			user.FullName = value.(string)
		case "bio":
			user.Bio = value.(string)
		case "native_language":
			user.NativeLanguage = value.(string)
		case "learning_language":
			user.LearningLanguage = value.(string)
		case "location":
			user.Location = value.(string)
		case "is_onboarded":
			user.IsOnboarded = value.(bool)
		}
	}
	clone := *user
	return &clone, nil
}

func (s *MemUserStore) GetUsersByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.User
	for _, id := range ids {
		if user, ok := s.users[id]; ok {
			out = append(out, *user)
		}
	}
	return out, nil
}

func (s *MemUserStore) GetOnboardedUsersExcluding(_ context.Context, exclude []primitive.ObjectID) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.LastExclude = exclude
	excluded := make(map[primitive.ObjectID]struct{}, len(exclude))
	for _, id := range exclude {
		excluded[id] = struct{}{}
	}
	out := []models.User{}
	for _, user := range s.users {
		if _, skip := excluded[user.ID]; skip || !user.IsOnboarded {
			continue
		}
		out = append(out, *user)
	}
	return out, nil
}

func (s *MemUserStore) AddFriendship(_ context.Context, userID, friendID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailAddFriendship {
		return errors.New("transaction aborted")
	}
	a, okA := s.users[userID]
	b, okB := s.users[friendID]
	if !okA || !okB {
		return errors.New("user missing")
	}
	a.Friends = addToSet(a.Friends, friendID)
	b.Friends = addToSet(b.Friends, userID)
	return nil
}

func addToSet(set []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	for _, existing := range set {
		if existing == id {
			return set
		}
	}
	return append(set, id)
}

type MemRequestStore struct {
	mu       sync.Mutex
	requests map[primitive.ObjectID]*models.FriendRequest
}

func NewMemRequestStore() *MemRequestStore {
	return &MemRequestStore{requests: make(map[primitive.ObjectID]*models.FriendRequest)}
}

func (s *MemRequestStore) CreateRequest(_ context.Context, req *models.FriendRequest) (*models.FriendRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	req.PairKey = models.PairKeyFor(req.SenderID, req.RecipientID)
	for _, existing := range s.requests {
		if existing.PairKey == req.PairKey {
			return nil, apperrors.ErrRequestExists
		}
	}
	req.ID = primitive.NewObjectID()
	req.Status = models.RequestStatusPending
	clone := *req
	s.requests[req.ID] = &clone
	return req, nil
}

func (s *MemRequestStore) GetRequestByID(_ context.Context, id primitive.ObjectID) (*models.FriendRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	req, ok := s.requests[id]
	if !ok {
		return nil, apperrors.ErrRequestNotFound
	}
	clone := *req
	return &clone, nil
}

func (s *MemRequestStore) ExistsForPair(_ context.Context, a, b primitive.ObjectID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := models.PairKeyFor(a, b)
	for _, req := range s.requests {
		if req.PairKey == key {
			return true, nil
		}
	}
	return false, nil
}

func (s *MemRequestStore) UpdateRequestStatus(_ context.Context, id primitive.ObjectID, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	req, ok := s.requests[id]
	if !ok {
		return apperrors.ErrRequestNotFound
	}
	req.Status = status
	return nil
}

func (s *MemRequestStore) GetRequestsByRecipient(_ context.Context, recipientID primitive.ObjectID, status string) ([]models.FriendRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.FriendRequest{}
	for _, req := range s.requests {
		if req.RecipientID == recipientID && req.Status == status {
			out = append(out, *req)
		}
	}
	return out, nil
}

func (s *MemRequestStore) GetRequestsBySender(_ context.Context, senderID primitive.ObjectID, status string) ([]models.FriendRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.FriendRequest{}
	for _, req := range s.requests {
		if req.SenderID == senderID && req.Status == status {
			out = append(out, *req)
		}
	}
	return out, nil
}

type FakePresence struct {
	mu         sync.Mutex
	Upserts    []string
	FailUpsert bool
	FailToken  bool
}

func (f *FakePresence) UpsertUser(_ context.Context, id, _, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailUpsert {
		return errors.New("stream unavailable")
	}
	f.Upserts = append(f.Upserts, id)
	return nil
}

func (f *FakePresence) CreateToken(userID string) (string, error) {
	if f.FailToken {
		return "", errors.New("stream unavailable")
	}
	return "token-" + userID, nil
}
