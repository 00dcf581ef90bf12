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

type FarmServiceMock struct {
	mock.Mock
}

func (m *FarmServiceMock) Create(ctx context.Context, ownerUID string, req models.CreateFarmRequest) (string, error) {
	args := m.Called(ctx, ownerUID, req)
	return args.String(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestFarmCreateHandler_ServeHTTP(t *testing.T) {
	validReq := models.CreateFarmRequest{
		Name:     "Green Valley Farm",
		Location: "California, USA",
		Size:     150.5,
	}

	tests := []struct {
		name           string
		requestBody    any
		withUser       bool
		mockUID        string
		mockErr        error
		wantStatusCode int
		wantError      string
	}{
		{
			name:           "success create",
			requestBody:    validReq,
			withUser:       true,
			mockUID:        "farm-1",
			wantStatusCode: http.StatusCreated,
		},
		{
			name:           "missing user in context",
			requestBody:    validReq,
			withUser:       false,
			wantStatusCode: http.StatusUnauthorized,
			wantError:      "unauthorized",
		},
		{
			name:           "invalid json body",
			requestBody:    "not a json",
			withUser:       true,
			wantStatusCode: http.StatusBadRequest,
			wantError:      "invalid request body",
		},
		{
			name:           "validation error - zero size",
			requestBody:    models.CreateFarmRequest{Name: "Green Valley Farm", Location: "California, USA"},
			withUser:       true,
			wantStatusCode: http.StatusUnprocessableEntity,
			wantError:      "validation failed",
		},
		{
			name:           "service error",
			requestBody:    validReq,
			withUser:       true,
			mockErr:        errors.New("db down"),
			wantStatusCode: http.StatusInternalServerError,
			wantError:      "failed to create farm",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(FarmServiceMock)
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

			req := httptest.NewRequest(http.MethodPost, "/farms", bytes.NewReader(bodyBytes))
			ctx := context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123")
			if tt.withUser {
				ctx = context.WithValue(ctx, middlewarectx.UserUID, "farmer-1")
			}

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
				assert.Equal(t, "farm-1", data["uid"])
			}

			svc.AssertExpectations(t)
		})
	}
}
