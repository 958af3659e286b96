package services

import (
	"context"
	"testing"

	"github.com/Adilet2047/Lingua_Connect/internal/mocks"
	"github.com/Adilet2047/Lingua_Connect/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecommendUsers_ExcludesSelfAndFriends(t *testing.T) {
	users := mocks.NewMemUserStore()
	svc := NewUserService(users)
	ctx := context.Background()

	ann := seedUser(t, users, "Ann", "ann@example.com")
	bob := seedUser(t, users, "Bob", "bob@example.com")
	carl := seedUser(t, users, "Carl", "carl@example.com")
	require.NoError(t, users.AddFriendship(ctx, ann.ID, bob.ID))

	recommended, err := svc.RecommendUsers(ctx, ann.ID)
	require.NoError(t, err)

	require.Len(t, recommended, 1)
	assert.Equal(t, carl.ID, recommended[0].ID)
	assert.Contains(t, users.LastExclude, ann.ID)
	assert.Contains(t, users.LastExclude, bob.ID)
}

func TestRecommendUsers_SkipsNotOnboarded(t *testing.T) {
	users := mocks.NewMemUserStore()
	svc := NewUserService(users)
	ctx := context.Background()

	ann := seedUser(t, users, "Ann", "ann@example.com")
	_, err := users.CreateUser(ctx, &models.User{
		FullName: "Newbie",
		Email:    "new@example.com",
	})
	require.NoError(t, err)

	recommended, err := svc.RecommendUsers(ctx, ann.ID)
	require.NoError(t, err)
	assert.Empty(t, recommended)
}

func TestListFriends_EmptySetIsEmptySlice(t *testing.T) {
	users := mocks.NewMemUserStore()
	svc := NewUserService(users)

	ann := seedUser(t, users, "Ann", "ann@example.com")

	friends, err := svc.ListFriends(context.Background(), ann.ID)
	require.NoError(t, err)
	assert.NotNil(t, friends)
	assert.Empty(t, friends)
}

func TestListFriends_ReturnsPublicProfiles(t *testing.T) {
	users := mocks.NewMemUserStore()
	svc := NewUserService(users)
	ctx := context.Background()

	ann := seedUser(t, users, "Ann", "ann@example.com")
	bob := seedUser(t, users, "Bob", "bob@example.com")
	require.NoError(t, users.AddFriendship(ctx, ann.ID, bob.ID))

	friends, err := svc.ListFriends(ctx, ann.ID)
	require.NoError(t, err)

	require.Len(t, friends, 1)
	assert.Equal(t, bob.ID, friends[0].ID)
	assert.Equal(t, "Bob", friends[0].FullName)
}
