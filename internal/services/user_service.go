package services

import (
	"context"

	"github.com/Adilet2047/Lingua_Connect/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserService serves the directory queries: friend lists and partner
// recommendations.
type UserService struct {
	users UserStore
}

// NewUserService creates a new UserService.
func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

// RecommendUsers returns onboarded users who are neither the requester
// nor already their friend.
func (s *UserService) RecommendUsers(ctx context.Context, userID primitive.ObjectID) ([]models.User, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	exclude := append([]primitive.ObjectID{userID}, user.Friends...)
	return s.users.GetOnboardedUsersExcluding(ctx, exclude)
}

// ListFriends resolves a user's friend set to public profiles.
func (s *UserService) ListFriends(ctx context.Context, userID primitive.ObjectID) ([]models.UserSummary, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if len(user.Friends) == 0 {
		return []models.UserSummary{}, nil
	}

	friends, err := s.users.GetUsersByIDs(ctx, user.Friends)
	if err != nil {
		return nil, err
	}

	profiles := make([]models.UserSummary, 0, len(friends))
	for i := range friends {
		profiles = append(profiles, friends[i].Summary())
	}
	return profiles, nil
}
