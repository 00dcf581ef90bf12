package middlewarectx_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/agrigrow/agrigrow-backend/internal/http/middlewarectx"
	customjwt "github.com/agrigrow/agrigrow-backend/internal/lib/jwt"
	"github.com/agrigrow/agrigrow-backend/internal/models"
)

type UserProviderMock struct {
	mock.Mock
}

func (m *UserProviderMock) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestJWTMiddleware(t *testing.T) {
	maker := customjwt.NewJWTMaker("test-secret", time.Hour)
	validToken, err := maker.GenerateToken("uid-1", "farmer")
	if err != nil {
		t.Fatal(err)
	}
	expiredMaker := customjwt.NewJWTMaker("test-secret", -time.Hour)
	expiredToken, err := expiredMaker.GenerateToken("uid-1", "farmer")
	if err != nil {
		t.Fatal(err)
	}

	user := &models.User{UID: "uid-1", Name: "John", Role: models.RoleFarmer}

	handlerCalled := false
	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		got, ok := middlewarectx.UserFromContext(r.Context())
		assert.True(t, ok)
		assert.Equal(t, "uid-1", got.UID)
		assert.Equal(t, models.RoleFarmer, got.Role)
		assert.Equal(t, "John", got.Name)
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name           string
		authHeader     string
		mockUser       *models.User
		mockErr        error
		wantStatusCode int
		wantCalled     bool
	}{
		{
			name:           "missing Authorization header",
			authHeader:     "",
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:           "invalid Authorization header prefix",
			authHeader:     "Basic sometoken",
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:           "garbage token",
			authHeader:     "Bearer not-a-jwt",
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:           "expired token",
			authHeader:     "Bearer " + expiredToken,
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:           "token of deleted user",
			authHeader:     "Bearer " + validToken,
			mockErr:        models.ErrNotFound,
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:           "user lookup error",
			authHeader:     "Bearer " + validToken,
			mockErr:        errors.New("db down"),
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:           "valid token",
			authHeader:     "Bearer " + validToken,
			mockUser:       user,
			wantStatusCode: http.StatusOK,
			wantCalled:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handlerCalled = false
			users := new(UserProviderMock)
			if tt.mockUser != nil || tt.mockErr != nil {
				users.On("GetUser", mock.Anything, "uid-1").
					Return(tt.mockUser, tt.mockErr).Once()
			}

			mw := middlewarectx.JWTMiddleware(maker, users, newNoopLogger())(nextHandler)

			req := httptest.NewRequest(http.MethodGet, "/somepath", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			rec := httptest.NewRecorder()
			mw.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			assert.Equal(t, tt.wantCalled, handlerCalled)
			users.AssertExpectations(t)
		})
	}
}

func TestUserFromContext(t *testing.T) {
	t.Run("empty context", func(t *testing.T) {
		_, ok := middlewarectx.UserFromContext(context.Background())
		assert.False(t, ok)
	})

	t.Run("populated context", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), middlewarectx.UserUID, "uid-1")
		ctx = context.WithValue(ctx, middlewarectx.Role, "industry")
		ctx = context.WithValue(ctx, middlewarectx.UserName, "Green Industries")

		user, ok := middlewarectx.UserFromContext(ctx)
		assert.True(t, ok)
		assert.Equal(t, "uid-1", user.UID)
		assert.Equal(t, models.RoleIndustry, user.Role)
		assert.Equal(t, "Green Industries", user.Name)
	})
}
