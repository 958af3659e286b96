package services

import (
	"context"
	"testing"

	"github.com/Adilet2047/Lingua_Connect/internal/apperrors"
	"github.com/Adilet2047/Lingua_Connect/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthService() (*AuthService, *mocks.MemUserStore, *mocks.FakePresence) {
	users := mocks.NewMemUserStore()
	presence := &mocks.FakePresence{}
	return NewAuthService(users, presence), users, presence
}

func TestSignup_CreatesUserWithDefaults(t *testing.T) {
	svc, _, presence := newAuthService()

	user, err := svc.Signup(context.Background(), "ann@example.com", "secret1", "Ann")
	require.NoError(t, err)

	assert.False(t, user.IsOnboarded)
	assert.Empty(t, user.Friends)
	assert.NotEmpty(t, user.ProfilePicture)
	assert.NotEqual(t, "secret1", user.HashedPassword)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte("secret1")))
	assert.Equal(t, []string{user.ID.Hex()}, presence.Upserts)
}

func TestSignup_Validation(t *testing.T) {
	svc, _, _ := newAuthService()
	ctx := context.Background()

	var vErr *apperrors.ValidationError

	_, err := svc.Signup(ctx, "", "secret1", "Ann")
	require.ErrorAs(t, err, &vErr)

	_, err = svc.Signup(ctx, "ann@example.com", "short", "Ann")
	require.ErrorAs(t, err, &vErr)

	_, err = svc.Signup(ctx, "not-an-email", "secret1", "Ann")
	require.ErrorAs(t, err, &vErr)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthService()
	ctx := context.Background()

	_, err := svc.Signup(ctx, "ann@example.com", "secret1", "Ann")
	require.NoError(t, err)

	_, err = svc.Signup(ctx, "ann@example.com", "secret2", "Other Ann")
	assert.ErrorIs(t, err, apperrors.ErrDuplicateEmail)
}

func TestSignup_PresenceFailureIsNotFatal(t *testing.T) {
	svc, _, presence := newAuthService()
	presence.FailUpsert = true

	user, err := svc.Signup(context.Background(), "ann@example.com", "secret1", "Ann")
	require.NoError(t, err)
	assert.NotNil(t, user)
}

func TestLogin_WrongEmailAndWrongPasswordAreIndistinguishable(t *testing.T) {
	svc, _, _ := newAuthService()
	ctx := context.Background()

	_, err := svc.Signup(ctx, "ann@example.com", "secret1", "Ann")
	require.NoError(t, err)

	_, errNoUser := svc.Login(ctx, "nobody@example.com", "secret1")
	_, errBadPass := svc.Login(ctx, "ann@example.com", "wrong-pass")

	assert.ErrorIs(t, errNoUser, apperrors.ErrInvalidCredentials)
	assert.ErrorIs(t, errBadPass, apperrors.ErrInvalidCredentials)
	assert.Equal(t, errNoUser.Error(), errBadPass.Error())
}

func TestLogin_Success(t *testing.T) {
	svc, _, _ := newAuthService()
	ctx := context.Background()

	created, err := svc.Signup(ctx, "ann@example.com", "secret1", "Ann")
	require.NoError(t, err)

	user, err := svc.Login(ctx, "ann@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
}

func TestOnboard_NamesMissingFields(t *testing.T) {
	svc, _, _ := newAuthService()
	ctx := context.Background()

	user, err := svc.Signup(ctx, "ann@example.com", "secret1", "Ann")
	require.NoError(t, err)

	_, err = svc.Onboard(ctx, user.ID, OnboardingInput{
		NativeLanguage: "english",
		Location:       "Astana",
	})

	var vErr *apperrors.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.ElementsMatch(t, []string{"learningLanguage", "bio"}, vErr.MissingFields)
}

func TestOnboard_SetsProfileAndFlag(t *testing.T) {
	svc, _, presence := newAuthService()
	ctx := context.Background()

	user, err := svc.Signup(ctx, "ann@example.com", "secret1", "Ann")
	require.NoError(t, err)

	updated, err := svc.Onboard(ctx, user.ID, OnboardingInput{
		FullName:         "Ann K",
		Bio:              "learning spanish",
		NativeLanguage:   "english",
		LearningLanguage: "spanish",
		Location:         "Astana",
	})
	require.NoError(t, err)

	assert.True(t, updated.IsOnboarded)
	assert.Equal(t, "Ann K", updated.FullName)
	assert.Equal(t, "spanish", updated.LearningLanguage)
	// signup + onboarding both mirror to the chat provider
	assert.Len(t, presence.Upserts, 2)
}

func TestOnboard_PresenceFailureIsFatal(t *testing.T) {
	svc, users, presence := newAuthService()
	ctx := context.Background()

	user, err := svc.Signup(ctx, "ann@example.com", "secret1", "Ann")
	require.NoError(t, err)

	presence.FailUpsert = true
	_, err = svc.Onboard(ctx, user.ID, OnboardingInput{
		Bio:              "bio",
		NativeLanguage:   "english",
		LearningLanguage: "spanish",
		Location:         "Astana",
	})
	assert.ErrorIs(t, err, apperrors.ErrPresenceSync)

	// the profile write itself is not rolled back, only the call fails
	stored, err := users.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsOnboarded)
}

func TestGetUserByID_MalformedHexIsNotFound(t *testing.T) {
	svc, _, _ := newAuthService()

	_, err := svc.GetUserByID(context.Background(), "not-a-hex-id")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}
