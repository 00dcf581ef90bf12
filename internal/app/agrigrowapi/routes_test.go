package agrigrowapi

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/agrigrow/agrigrow-backend/internal/config"
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

// setupRouter собирает реальный роутер с настоящим JWT и моком
// пользователей. Сервисы не нужны: проверяются только регистрация
// маршрутов и ролевые барьеры, до обработчиков запросы не доходят.
func setupRouter(t *testing.T, user *models.User) (chi.Router, string) {
	maker := customjwt.NewJWTMaker("test-secret", time.Hour)
	token, err := maker.GenerateToken(user.UID, string(user.Role))
	if err != nil {
		t.Fatal(err)
	}

	users := new(UserProviderMock)
	users.On("GetUser", mock.Anything, user.UID).Return(user, nil)

	r := chi.NewRouter()
	cfg := &config.Config{VerificationKey: "verifier-secret"}
	RegisterRoutes(r, newNoopLogger(), cfg, RouteServices{
		JWTMaker: maker,
		Users:    users,
	})
	return r, token
}

func doRequest(router chi.Router, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRegisterRoutes_IndustryOnlyRoutes(t *testing.T) {
	farmer := &models.User{UID: "farmer-1", Name: "John", Role: models.RoleFarmer}
	router, token := setupRouter(t, farmer)

	tests := []struct {
		name   string
		method string
		path   string
	}{
		{"available listing", http.MethodGet, "/api/v1/carbon-credits/available"},
		{"profiles directory", http.MethodGet, "/api/v1/industry-profiles"},
		{"profile by uid", http.MethodGet, "/api/v1/industry-profiles/profile-1"},
		{"own profile", http.MethodGet, "/api/v1/industry-profiles/me"},
		{"profile upsert", http.MethodPost, "/api/v1/industry-profiles/me"},
		{"purchase", http.MethodPost, "/api/v1/carbon-credits/credit-1/purchase"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(router, tt.method, tt.path, token)
			assert.Equal(t, http.StatusForbidden, rec.Code)
		})
	}
}

func TestRegisterRoutes_FarmerOnlyRoutes(t *testing.T) {
	industry := &models.User{UID: "industry-1", Name: "Green Industries", Role: models.RoleIndustry}
	router, token := setupRouter(t, industry)

	tests := []struct {
		name   string
		method string
		path   string
	}{
		{"farms", http.MethodGet, "/api/v1/farms"},
		{"crops", http.MethodGet, "/api/v1/crops"},
		{"crops by farm", http.MethodGet, "/api/v1/crops/farm/farm-1"},
		{"credit create", http.MethodPost, "/api/v1/carbon-credits"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(router, tt.method, tt.path, token)
			// 403, а не 404: маршрут зарегистрирован, но закрыт ролью
			assert.Equal(t, http.StatusForbidden, rec.Code)
		})
	}
}

func TestRegisterRoutes_VerifyRequiresKey(t *testing.T) {
	farmer := &models.User{UID: "farmer-1", Name: "John", Role: models.RoleFarmer}
	router, _ := setupRouter(t, farmer)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/carbon-credits/credit-1/verify", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
