package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"regexp"

	"golang.org/x/crypto/bcrypt"

	"github.com/Adilet2047/Lingua_Connect/internal/apperrors"
	"github.com/Adilet2047/Lingua_Connect/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

const avatarCatalogSize = 100

// AuthService encapsulates signup, login and onboarding.
type AuthService struct {
	users    UserStore
	presence PresenceClient
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserStore, presence PresenceClient) *AuthService {
	return &AuthService{
		users:    users,
		presence: presence,
	}
}

// OnboardingInput carries the profile fields submitted at onboarding.
type OnboardingInput struct {
	FullName         string `json:"fullName"`
	Bio              string `json:"bio"`
	NativeLanguage   string `json:"nativeLanguage"`
	LearningLanguage string `json:"learningLanguage"`
	Location         string `json:"location"`
}

// Signup validates the registration input, creates the account with an
// empty friend set and a random avatar, and mirrors the identity into the
// chat provider. The mirror is best-effort here: a failure is logged and
// the signup still succeeds.
func (s *AuthService) Signup(ctx context.Context, email, password, fullName string) (*models.User, error) {
	if email == "" || password == "" || fullName == "" {
		return nil, apperrors.NewValidationError("all fields are required")
	}
	if len(password) < 6 {
		return nil, apperrors.NewValidationError("password must be at least 6 characters long")
	}
	if !emailRegex.MatchString(email) {
		return nil, apperrors.NewValidationError("invalid email format")
	}

	existing, err := s.users.GetUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, apperrors.ErrUserNotFound) {
		return nil, err
	}
	if existing != nil {
		logrus.WithField("email", email).Warn("Email already in use")
		return nil, apperrors.ErrDuplicateEmail
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %v", err)
	}

	user := &models.User{
		FullName:       fullName,
		Email:          email,
		HashedPassword: string(hashed),
		ProfilePicture: randomAvatar(),
		IsOnboarded:    false,
		Friends:        []primitive.ObjectID{},
	}

	created, err := s.users.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}

	if err := s.presence.UpsertUser(ctx, created.ID.Hex(), created.FullName, created.ProfilePicture); err != nil {
		logrus.WithError(err).WithField("userID", created.ID.Hex()).Warn("Failed to sync new user with chat provider")
	}

	logrus.WithField("userID", created.ID.Hex()).Info("User registered successfully")
	return created, nil
}

// Login verifies credentials and returns the account. A missing email and
// a wrong password produce the same error, so callers cannot enumerate
// registered addresses.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, apperrors.NewValidationError("email and password are required")
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		logrus.WithField("email", email).Warn("Invalid credentials")
		return nil, apperrors.ErrInvalidCredentials
	}

	logrus.WithField("userID", user.ID.Hex()).Info("User authenticated successfully")
	return user, nil
}

// Onboard completes a profile and marks the account onboarded. Unlike
// signup, the chat-provider mirror is mandatory here: onboarding is the
// point at which chat must work, so a sync failure fails the call.
func (s *AuthService) Onboard(ctx context.Context, userID primitive.ObjectID, input OnboardingInput) (*models.User, error) {
	var missing []string
	if input.NativeLanguage == "" {
		missing = append(missing, "nativeLanguage")
	}
	if input.LearningLanguage == "" {
		missing = append(missing, "learningLanguage")
	}
	if input.Location == "" {
		missing = append(missing, "location")
	}
	if input.Bio == "" {
		missing = append(missing, "bio")
	}
	if len(missing) > 0 {
		return nil, apperrors.NewValidationError("all fields are required", missing...)
	}

	fields := map[string]interface{}{
		"bio":               input.Bio,
		"native_language":   input.NativeLanguage,
		"learning_language": input.LearningLanguage,
		"location":          input.Location,
		"is_onboarded":      true,
	}
	if input.FullName != "" {
		fields["full_name"] = input.FullName
	}

	updated, err := s.users.UpdateUser(ctx, userID, fields)
	if err != nil {
		return nil, err
	}

	if err := s.presence.UpsertUser(ctx, updated.ID.Hex(), updated.FullName, updated.ProfilePicture); err != nil {
		logrus.WithError(err).WithField("userID", updated.ID.Hex()).Error("Chat provider sync failed during onboarding")
		return nil, fmt.Errorf("%w: %v", apperrors.ErrPresenceSync, err)
	}

	logrus.WithField("userID", updated.ID.Hex()).Info("User onboarded successfully")
	return updated, nil
}

// GetUserByID resolves a user from the hex id embedded in a session
// token. Used by the auth middleware.
func (s *AuthService) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.ErrUserNotFound
	}
	return s.users.GetUserByID(ctx, objID)
}

func randomAvatar() string {
	idx := rand.Intn(avatarCatalogSize) + 1
	return fmt.Sprintf("https://avatar.iran.liara.run/public/%d.png", idx)
}
