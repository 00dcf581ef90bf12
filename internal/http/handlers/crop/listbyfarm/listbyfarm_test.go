package listbyfarm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/agrigrow/agrigrow-backend/internal/http/middlewarectx"
	"github.com/agrigrow/agrigrow-backend/internal/models"
)

type CropServiceMock struct {
	mock.Mock
}

func (m *CropServiceMock) ListByFarm(ctx context.Context, farmUID, ownerUID string) ([]*models.Crop, error) {
	args := m.Called(ctx, farmUID, ownerUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Crop), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func newRequest(withUser bool) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/crops/farm/farm-1", nil)

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("uid", "farm-1")

	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	ctx = context.WithValue(ctx, middleware.RequestIDKey, "reqid123")
	if withUser {
		ctx = context.WithValue(ctx, middlewarectx.UserUID, "farmer-1")
	}
	return req.WithContext(ctx)
}

func TestCropListByFarmHandler_ServeHTTP(t *testing.T) {
	crops := []*models.Crop{
		{UID: "crop-1", Name: "Organic Wheat", Type: models.CropWheat, FarmUID: "farm-1"},
		{UID: "crop-2", Name: "Sweet Corn", Type: models.CropCorn, FarmUID: "farm-1"},
	}

	tests := []struct {
		name           string
		withUser       bool
		mockCrops      []*models.Crop
		mockErr        error
		wantStatusCode int
		wantError      string
		wantCount      float64
	}{
		{
			name:           "success list",
			withUser:       true,
			mockCrops:      crops,
			wantStatusCode: http.StatusOK,
			wantCount:      2,
		},
		{
			name:           "missing user in context",
			withUser:       false,
			wantStatusCode: http.StatusUnauthorized,
			wantError:      "unauthorized",
		},
		{
			name:           "foreign farm looks missing",
			withUser:       true,
			mockErr:        models.ErrNotFound,
			wantStatusCode: http.StatusNotFound,
			wantError:      "farm not found",
		},
		{
			name:           "service error",
			withUser:       true,
			mockErr:        errors.New("db down"),
			wantStatusCode: http.StatusInternalServerError,
			wantError:      "failed to list crops",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(CropServiceMock)
			handler := New(newNoopLogger(), svc)

			if tt.mockCrops != nil || tt.mockErr != nil {
				svc.On("ListByFarm", mock.Anything, "farm-1", "farmer-1").
					Return(tt.mockCrops, tt.mockErr).Once()
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, newRequest(tt.withUser))

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var got map[string]any
			err := json.NewDecoder(rec.Body).Decode(&got)
			assert.NoError(t, err)

			if tt.wantError != "" {
				assert.Equal(t, "Error", got["status"])
				assert.Equal(t, tt.wantError, got["error"])
			} else {
				assert.Equal(t, "OK", got["status"])
				data, ok := got["data"].(map[string]any)
				assert.True(t, ok)
				assert.Equal(t, tt.wantCount, data["count"])
			}

			svc.AssertExpectations(t)
		})
	}
}
