package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/agrigrow/agrigrow-backend/internal/models"
)

type ProfileRepoMock struct{ mock.Mock }

func (m *ProfileRepoMock) UpsertProfile(ctx context.Context, profile models.IndustryProfile) (*models.IndustryProfile, error) {
	args := m.Called(ctx, profile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.IndustryProfile), args.Error(1)
}

func (m *ProfileRepoMock) GetProfile(ctx context.Context, profileUID string) (*models.IndustryProfile, error) {
	args := m.Called(ctx, profileUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.IndustryProfile), args.Error(1)
}

func (m *ProfileRepoMock) GetProfileByOwner(ctx context.Context, ownerUID string) (*models.IndustryProfile, error) {
	args := m.Called(ctx, ownerUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.IndustryProfile), args.Error(1)
}

func (m *ProfileRepoMock) ListProfiles(ctx context.Context) ([]*models.IndustryProfile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.IndustryProfile), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestProfileService_UpsertMe(t *testing.T) {
	stored := &models.IndustryProfile{
		UID:          "profile-1",
		Name:         "Green Industries Corp",
		IndustryType: models.IndustryManufacturing,
		OwnerUID:     "buyer-1",
	}

	tests := []struct {
		name       string
		req        models.UpsertProfileRequest
		setupMocks func(r *ProfileRepoMock)
		wantErr    error
	}{
		{
			name: "success upsert",
			req: models.UpsertProfileRequest{
				Name:         "Green Industries Corp",
				IndustryType: "manufacturing",
			},
			setupMocks: func(r *ProfileRepoMock) {
				r.On("UpsertProfile", mock.Anything, mock.MatchedBy(func(p models.IndustryProfile) bool {
					return p.Name == "Green Industries Corp" &&
						p.IndustryType == models.IndustryManufacturing &&
						p.OwnerUID == "buyer-1"
				})).Return(stored, nil).Once()
			},
		},
		{
			name: "unknown industry type",
			req: models.UpsertProfileRequest{
				Name:         "Green Industries Corp",
				IndustryType: "blockchain",
			},
			setupMocks: func(_ *ProfileRepoMock) {},
			wantErr:    models.ErrInvalidInput,
		},
		{
			name: "repo error",
			req: models.UpsertProfileRequest{
				Name:         "Green Industries Corp",
				IndustryType: "manufacturing",
			},
			setupMocks: func(r *ProfileRepoMock) {
				r.On("UpsertProfile", mock.Anything, mock.Anything).
					Return(nil, errors.New("db error")).Once()
			},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(ProfileRepoMock)
			svc := NewProfileService(repo, newNoopLogger())

			tt.setupMocks(repo)

			got, err := svc.UpsertMe(context.Background(), "buyer-1", tt.req)
			switch tt.name {
			case "success upsert":
				assert.NoError(t, err)
				assert.Equal(t, stored, got)
			default:
				assert.Error(t, err)
				if tt.wantErr != nil {
					assert.ErrorIs(t, err, tt.wantErr)
				}
			}

			repo.AssertExpectations(t)
		})
	}
}

func TestProfileService_GetMe(t *testing.T) {
	t.Run("no profile yet", func(t *testing.T) {
		repo := new(ProfileRepoMock)
		svc := NewProfileService(repo, newNoopLogger())

		repo.On("GetProfileByOwner", mock.Anything, "buyer-1").
			Return(nil, models.ErrNotFound).Once()

		_, err := svc.GetMe(context.Background(), "buyer-1")
		assert.ErrorIs(t, err, models.ErrNotFound)
	})
}
