package create

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/agrigrow/agrigrow-backend/internal/http/middlewarectx"
	"github.com/agrigrow/agrigrow-backend/internal/models"
)

type CropServiceMock struct {
	mock.Mock
}

func (m *CropServiceMock) Create(ctx context.Context, ownerUID string, req models.CreateCropRequest) (string, error) {
	args := m.Called(ctx, ownerUID, req)
	return args.String(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestCropCreateHandler_ServeHTTP(t *testing.T) {
	validReq := models.CreateCropRequest{
		Name:         "Organic Wheat",
		Type:         "wheat",
		Variety:      "Winter Wheat",
		PlantingDate: "2024-10-15",
		HarvestDate:  "2025-06-20",
		FarmUID:      "a9f4c3d2-1b2e-4f5a-8c7d-6e5f4a3b2c1d",
	}

	tests := []struct {
		name           string
		requestBody    any
		mockUID        string
		mockErr        error
		wantStatusCode int
		wantError      string
	}{
		{
			name:           "success create",
			requestBody:    validReq,
			mockUID:        "crop-1",
			wantStatusCode: http.StatusCreated,
		},
		{
			name:           "invalid json body",
			requestBody:    "not a json",
			wantStatusCode: http.StatusBadRequest,
			wantError:      "invalid request body",
		},
		{
			name: "validation error - bad date format",
			requestBody: models.CreateCropRequest{
				Name:         "Organic Wheat",
				Type:         "wheat",
				PlantingDate: "15.10.2024",
				FarmUID:      "a9f4c3d2-1b2e-4f5a-8c7d-6e5f4a3b2c1d",
			},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantError:      "validation failed",
		},
		{
			name: "validation error - farm uid is not uuid",
			requestBody: models.CreateCropRequest{
				Name:         "Organic Wheat",
				Type:         "wheat",
				PlantingDate: "2024-10-15",
				FarmUID:      "not-a-uuid",
			},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantError:      "validation failed",
		},
		{
			name:           "semantic error - harvest before planting",
			requestBody:    validReq,
			mockErr:        models.ErrInvalidInput,
			wantStatusCode: http.StatusBadRequest,
			wantError:      "invalid crop data",
		},
		{
			name:           "foreign farm looks missing",
			requestBody:    validReq,
			mockErr:        models.ErrNotFound,
			wantStatusCode: http.StatusNotFound,
			wantError:      "farm not found",
		},
		{
			name:           "service error",
			requestBody:    validReq,
			mockErr:        errors.New("db down"),
			wantStatusCode: http.StatusInternalServerError,
			wantError:      "failed to create crop",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(CropServiceMock)
			handler := New(newNoopLogger(), svc)

			if tt.mockUID != "" || tt.mockErr != nil {
				svc.On("Create", mock.Anything, "farmer-1", validReq).
					Return(tt.mockUID, tt.mockErr).Once()
			}

			var bodyBytes []byte
			var err error
			switch v := tt.requestBody.(type) {
			case string:
				bodyBytes = []byte(v)
			default:
				bodyBytes, err = json.Marshal(tt.requestBody)
				if err != nil {
					t.Fatal(err)
				}
			}

			req := httptest.NewRequest(http.MethodPost, "/crops", bytes.NewReader(bodyBytes))
			ctx := context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123")
			ctx = context.WithValue(ctx, middlewarectx.UserUID, "farmer-1")

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req.WithContext(ctx))

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var got map[string]any
			err = json.NewDecoder(rec.Body).Decode(&got)
			assert.NoError(t, err)

			if tt.wantError != "" {
				assert.Equal(t, "Error", got["status"])
				assert.Equal(t, tt.wantError, got["error"])
			} else {
				assert.Equal(t, "OK", got["status"])
				data, ok := got["data"].(map[string]any)
				assert.True(t, ok)
				assert.Equal(t, "crop-1", data["uid"])
			}

			svc.AssertExpectations(t)
		})
	}
}
