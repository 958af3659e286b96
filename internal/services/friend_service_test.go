package services

import (
	"context"
	"testing"

	"github.com/Adilet2047/Lingua_Connect/internal/apperrors"
	"github.com/Adilet2047/Lingua_Connect/internal/mocks"
	"github.com/Adilet2047/Lingua_Connect/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func seedUser(t *testing.T, users *mocks.MemUserStore, name, email string) *models.User {
	t.Helper()
	user, err := users.CreateUser(context.Background(), &models.User{
		FullName:    name,
		Email:       email,
		IsOnboarded: true,
	})
	require.NoError(t, err)
	return user
}

func newFriendFixture(t *testing.T) (*FriendService, *mocks.MemUserStore, *models.User, *models.User) {
	users := mocks.NewMemUserStore()
	svc := NewFriendService(mocks.NewMemRequestStore(), users)
	ann := seedUser(t, users, "Ann", "ann@example.com")
	bob := seedUser(t, users, "Bob", "bob@example.com")
	return svc, users, ann, bob
}

func TestSendRequest_Self(t *testing.T) {
	svc, _, ann, _ := newFriendFixture(t)

	_, err := svc.SendRequest(context.Background(), ann.ID, ann.ID)
	assert.ErrorIs(t, err, apperrors.ErrSelfRequest)
}

func TestSendRequest_RecipientNotFound(t *testing.T) {
	svc, _, ann, _ := newFriendFixture(t)

	_, err := svc.SendRequest(context.Background(), ann.ID, primitive.NewObjectID())
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestSendRequest_CreatesPending(t *testing.T) {
	svc, _, ann, bob := newFriendFixture(t)

	request, err := svc.SendRequest(context.Background(), ann.ID, bob.ID)
	require.NoError(t, err)

	assert.Equal(t, models.RequestStatusPending, request.Status)
	assert.Equal(t, ann.ID, request.SenderID)
	assert.Equal(t, bob.ID, request.RecipientID)
	assert.False(t, request.ID.IsZero())
}

func TestSendRequest_DuplicateEitherDirection(t *testing.T) {
	svc, _, ann, bob := newFriendFixture(t)
	ctx := context.Background()

	_, err := svc.SendRequest(ctx, ann.ID, bob.ID)
	require.NoError(t, err)

	_, err = svc.SendRequest(ctx, ann.ID, bob.ID)
	assert.ErrorIs(t, err, apperrors.ErrRequestExists)

	_, err = svc.SendRequest(ctx, bob.ID, ann.ID)
	assert.ErrorIs(t, err, apperrors.ErrRequestExists)
}

func TestSendRequest_AlreadyFriends(t *testing.T) {
	svc, users, ann, bob := newFriendFixture(t)
	ctx := context.Background()

	require.NoError(t, users.AddFriendship(ctx, ann.ID, bob.ID))

	_, err := svc.SendRequest(ctx, ann.ID, bob.ID)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyFriends)
}

func TestAcceptRequest_NotFound(t *testing.T) {
	svc, _, ann, _ := newFriendFixture(t)

	_, err := svc.AcceptRequest(context.Background(), ann.ID, primitive.NewObjectID())
	assert.ErrorIs(t, err, apperrors.ErrRequestNotFound)
}

func TestAcceptRequest_OnlyRecipientMayAccept(t *testing.T) {
	svc, users, ann, bob := newFriendFixture(t)
	ctx := context.Background()

	request, err := svc.SendRequest(ctx, ann.ID, bob.ID)
	require.NoError(t, err)

	// the sender cannot self-accept
	_, err = svc.AcceptRequest(ctx, ann.ID, request.ID)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	// nor can a third party
	carl := seedUser(t, users, "Carl", "carl@example.com")
	_, err = svc.AcceptRequest(ctx, carl.ID, request.ID)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestAcceptRequest_MakesFriendshipSymmetric(t *testing.T) {
	svc, users, ann, bob := newFriendFixture(t)
	ctx := context.Background()

	request, err := svc.SendRequest(ctx, ann.ID, bob.ID)
	require.NoError(t, err)

	accepted, err := svc.AcceptRequest(ctx, bob.ID, request.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusAccepted, accepted.Status)

	annStored, err := users.GetUserByID(ctx, ann.ID)
	require.NoError(t, err)
	bobStored, err := users.GetUserByID(ctx, bob.ID)
	require.NoError(t, err)

	assert.Contains(t, annStored.Friends, bob.ID)
	assert.Contains(t, bobStored.Friends, ann.ID)
}

func TestAcceptRequest_FriendshipWriteFailureSurfaces(t *testing.T) {
	svc, users, ann, bob := newFriendFixture(t)
	ctx := context.Background()

	request, err := svc.SendRequest(ctx, ann.ID, bob.ID)
	require.NoError(t, err)

	users.FailAddFriendship = true
	_, err = svc.AcceptRequest(ctx, bob.ID, request.ID)
	require.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrForbidden)
	assert.NotErrorIs(t, err, apperrors.ErrRequestNotFound)
}

func TestListIncoming_SplitsByStatusAndEnrichesSender(t *testing.T) {
	svc, users, ann, bob := newFriendFixture(t)
	carl := seedUser(t, users, "Carl", "carl@example.com")
	ctx := context.Background()

	fromAnn, err := svc.SendRequest(ctx, ann.ID, bob.ID)
	require.NoError(t, err)
	fromCarl, err := svc.SendRequest(ctx, carl.ID, bob.ID)
	require.NoError(t, err)

	_, err = svc.AcceptRequest(ctx, bob.ID, fromCarl.ID)
	require.NoError(t, err)

	pending, accepted, err := svc.ListIncoming(ctx, bob.ID)
	require.NoError(t, err)

	require.Len(t, pending, 1)
	assert.Equal(t, fromAnn.ID, pending[0].ID)
	assert.Equal(t, "Ann", pending[0].Sender.FullName)

	require.Len(t, accepted, 1)
	assert.Equal(t, fromCarl.ID, accepted[0].ID)
	assert.Equal(t, "Carl", accepted[0].Sender.FullName)
}

func TestListOutgoing_PendingOnlyWithRecipientProfile(t *testing.T) {
	svc, users, ann, bob := newFriendFixture(t)
	carl := seedUser(t, users, "Carl", "carl@example.com")
	ctx := context.Background()

	toBob, err := svc.SendRequest(ctx, ann.ID, bob.ID)
	require.NoError(t, err)
	toCarl, err := svc.SendRequest(ctx, ann.ID, carl.ID)
	require.NoError(t, err)

	_, err = svc.AcceptRequest(ctx, carl.ID, toCarl.ID)
	require.NoError(t, err)

	outgoing, err := svc.ListOutgoing(ctx, ann.ID)
	require.NoError(t, err)

	require.Len(t, outgoing, 1)
	assert.Equal(t, toBob.ID, outgoing[0].ID)
	assert.Equal(t, "Bob", outgoing[0].Recipient.FullName)
	assert.Equal(t, models.RequestStatusPending, outgoing[0].Status)
}
