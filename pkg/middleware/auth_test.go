package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Adilet2047/Lingua_Connect/internal/apperrors"
	"github.com/Adilet2047/Lingua_Connect/internal/models"
	jwtutil "github.com/Adilet2047/Lingua_Connect/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testSecret = "test-secret"

type fakeResolver struct {
	user *models.User
}

func (f *fakeResolver) GetUserByID(_ context.Context, id string) (*models.User, error) {
	if f.user == nil || f.user.ID.Hex() != id {
		return nil, apperrors.ErrUserNotFound
	}
	return f.user, nil
}

func protectedEndpoint(resolver UserResolver) http.Handler {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return AuthMiddleware(testSecret, resolver)(handler)
}

func doRequest(handler http.Handler, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/users/friends", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestAuthMiddleware_MissingCookie(t *testing.T) {
	handler := protectedEndpoint(&fakeResolver{})

	rec := doRequest(handler, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	handler := protectedEndpoint(&fakeResolver{})

	rec := doRequest(handler, &http.Cookie{Name: SessionCookieName, Value: "garbage"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	user := &models.User{ID: primitive.NewObjectID()}
	handler := protectedEndpoint(&fakeResolver{user: user})

	token, err := jwtutil.GenerateToken(user.ID.Hex(), testSecret, -time.Minute)
	require.NoError(t, err)

	rec := doRequest(handler, &http.Cookie{Name: SessionCookieName, Value: token})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_UnknownUser(t *testing.T) {
	handler := protectedEndpoint(&fakeResolver{})

	token, err := jwtutil.GenerateToken(primitive.NewObjectID().Hex(), testSecret, time.Hour)
	require.NoError(t, err)

	rec := doRequest(handler, &http.Cookie{Name: SessionCookieName, Value: token})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAuthMiddleware_AttachesSanitizedUser(t *testing.T) {
	user := &models.User{
		ID:             primitive.NewObjectID(),
		FullName:       "Ann",
		HashedPassword: "hash",
		Friends:        []primitive.ObjectID{primitive.NewObjectID()},
	}

	var attached *models.User
	handler := AuthMiddleware(testSecret, &fakeResolver{user: user})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attached = GetUserFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	token, err := jwtutil.GenerateToken(user.ID.Hex(), testSecret, time.Hour)
	require.NoError(t, err)

	rec := doRequest(handler, &http.Cookie{Name: SessionCookieName, Value: token})
	require.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, attached)
	assert.Equal(t, user.ID, attached.ID)
	assert.Empty(t, attached.HashedPassword)
	assert.Empty(t, attached.Friends)
}
