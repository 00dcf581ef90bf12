package status

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

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/agrigrow/agrigrow-backend/internal/http/middlewarectx"
	"github.com/agrigrow/agrigrow-backend/internal/models"
)

type CreditServiceMock struct {
	mock.Mock
}

func (m *CreditServiceMock) UpdateStatus(ctx context.Context, creditUID, ownerUID, status string) (*models.CarbonCredit, error) {
	args := m.Called(ctx, creditUID, ownerUID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CarbonCredit), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func newRequest(t *testing.T, body any, withUser bool) *http.Request {
	t.Helper()

	var reader *bytes.Reader
	switch v := body.(type) {
	case string:
		reader = bytes.NewReader([]byte(v))
	default:
		b, err := json.Marshal(v)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(http.MethodPatch, "/carbon-credits/credit-1/status", reader)

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("uid", "credit-1")
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	ctx = context.WithValue(ctx, middleware.RequestIDKey, "reqid123")
	if withUser {
		ctx = context.WithValue(ctx, middlewarectx.UserUID, "farmer-1")
	}
	return req.WithContext(ctx)
}

func TestStatusHandler_ServeHTTP(t *testing.T) {
	cancelled := &models.CarbonCredit{UID: "credit-1", OwnerUID: "farmer-1", Status: models.CreditCancelled}

	tests := []struct {
		name           string
		requestBody    any
		withUser       bool
		mockCredit     *models.CarbonCredit
		mockErr        error
		wantStatusCode int
		wantError      string
	}{
		{
			name:           "owner cancels pending credit",
			requestBody:    models.UpdateCreditStatusRequest{Status: "cancelled"},
			withUser:       true,
			mockCredit:     cancelled,
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "missing user in context",
			requestBody:    models.UpdateCreditStatusRequest{Status: "cancelled"},
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
			name:           "validation error - empty status",
			requestBody:    models.UpdateCreditStatusRequest{},
			withUser:       true,
			wantStatusCode: http.StatusUnprocessableEntity,
			wantError:      "validation failed",
		},
		{
			name:           "unknown status",
			requestBody:    models.UpdateCreditStatusRequest{Status: "archived"},
			withUser:       true,
			mockErr:        models.ErrInvalidInput,
			wantStatusCode: http.StatusBadRequest,
			wantError:      "unknown credit status",
		},
		{
			name:           "credit not found",
			requestBody:    models.UpdateCreditStatusRequest{Status: "cancelled"},
			withUser:       true,
			mockErr:        models.ErrNotFound,
			wantStatusCode: http.StatusNotFound,
			wantError:      "credit not found",
		},
		{
			name:           "forbidden transition",
			requestBody:    models.UpdateCreditStatusRequest{Status: "sold"},
			withUser:       true,
			mockErr:        models.ErrInvalidTransition,
			wantStatusCode: http.StatusConflict,
			wantError:      "invalid status transition",
		},
		{
			name:           "service error",
			requestBody:    models.UpdateCreditStatusRequest{Status: "cancelled"},
			withUser:       true,
			mockErr:        errors.New("db down"),
			wantStatusCode: http.StatusInternalServerError,
			wantError:      "failed to update credit status",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(CreditServiceMock)
			handler := New(newNoopLogger(), svc)

			if tt.mockCredit != nil || tt.mockErr != nil {
				svc.On("UpdateStatus", mock.Anything, "credit-1", "farmer-1", mock.Anything).
					Return(tt.mockCredit, tt.mockErr).Once()
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, newRequest(t, tt.requestBody, tt.withUser))

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
				assert.Equal(t, "cancelled", data["status"])
			}

			svc.AssertExpectations(t)
		})
	}
}
