package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/agrigrow/agrigrow-backend/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CreateCredit(ctx context.Context, credit models.CarbonCredit) (string, error) {
	args := m.Called(ctx, credit)
	return args.String(0), args.Error(1)
}

func (m *RepoMock) GetCredit(ctx context.Context, creditUID string) (*models.CarbonCredit, error) {
	args := m.Called(ctx, creditUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CarbonCredit), args.Error(1)
}

func (m *RepoMock) ListCredits(ctx context.Context, ownerUID string) ([]*models.CarbonCredit, error) {
	args := m.Called(ctx, ownerUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.CarbonCredit), args.Error(1)
}

func (m *RepoMock) ListCreditsByIndustry(ctx context.Context, industryUID string) ([]*models.CarbonCredit, error) {
	args := m.Called(ctx, industryUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.CarbonCredit), args.Error(1)
}

func (m *RepoMock) ListAvailableCredits(ctx context.Context) ([]*models.CarbonCredit, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.CarbonCredit), args.Error(1)
}

func (m *RepoMock) UpdateCreditStatus(ctx context.Context, creditUID, ownerUID string, status models.CreditStatus) (int, error) {
	args := m.Called(ctx, creditUID, ownerUID, status)
	return args.Int(0), args.Error(1)
}

func (m *RepoMock) VerifyCredit(ctx context.Context, creditUID string) (*models.CarbonCredit, error) {
	args := m.Called(ctx, creditUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CarbonCredit), args.Error(1)
}

func (m *RepoMock) PurchaseCredit(ctx context.Context, creditUID, buyerUID, buyerName string) (*models.CarbonCredit, *models.IndustryProfile, error) {
	args := m.Called(ctx, creditUID, buyerUID, buyerName)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*models.CarbonCredit), args.Get(1).(*models.IndustryProfile), args.Error(2)
}

func (m *RepoMock) RemoveCredit(ctx context.Context, creditUID, ownerUID string) (int, error) {
	args := m.Called(ctx, creditUID, ownerUID)
	return args.Int(0), args.Error(1)
}

func (m *RepoMock) GetProfileByOwner(ctx context.Context, ownerUID string) (*models.IndustryProfile, error) {
	args := m.Called(ctx, ownerUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.IndustryProfile), args.Error(1)
}

func (m *RepoMock) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *RepoMock) GetFarm(ctx context.Context, farmUID, ownerUID string) (*models.Farm, error) {
	args := m.Called(ctx, farmUID, ownerUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Farm), args.Error(1)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}

func (m *CacheMock) Set(key string, value any, expiration time.Duration) error {
	return m.Called(key, value, expiration).Error(0)
}

func (m *CacheMock) Invalidate(key string) error {
	return m.Called(key).Error(0)
}

type PublisherMock struct{ mock.Mock }

func (m *PublisherMock) Publish(exchange, routingKey string, message any) error {
	return m.Called(exchange, routingKey, message).Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func newService(r *RepoMock, c *CacheMock, p *PublisherMock) *CarbonCreditService {
	return NewCarbonCreditService(r, c, p, newNoopLogger())
}

func TestCarbonCreditService_Create(t *testing.T) {
	farmUID := "farm-1"

	tests := []struct {
		name       string
		req        models.CreateCreditRequest
		setupMocks func(r *RepoMock)
		wantUID    string
		wantErr    error
	}{
		{
			name: "success without farm",
			req:  models.CreateCreditRequest{Amount: 25.5, Price: 45},
			setupMocks: func(r *RepoMock) {
				r.On("CreateCredit", mock.Anything, mock.MatchedBy(func(c models.CarbonCredit) bool {
					return c.Amount == 25.5 && c.Price == 45 &&
						c.Status == models.CreditPending &&
						c.FarmUID == nil && c.OwnerUID == "farmer-1"
				})).Return("credit-1", nil).Once()
			},
			wantUID: "credit-1",
		},
		{
			name: "success with owned farm",
			req:  models.CreateCreditRequest{Amount: 10, Price: 40, FarmUID: farmUID},
			setupMocks: func(r *RepoMock) {
				r.On("GetFarm", mock.Anything, farmUID, "farmer-1").
					Return(&models.Farm{UID: farmUID, OwnerUID: "farmer-1"}, nil).Once()
				r.On("CreateCredit", mock.Anything, mock.MatchedBy(func(c models.CarbonCredit) bool {
					return c.FarmUID != nil && *c.FarmUID == farmUID
				})).Return("credit-2", nil).Once()
			},
			wantUID: "credit-2",
		},
		{
			name: "foreign farm looks missing",
			req:  models.CreateCreditRequest{Amount: 10, Price: 40, FarmUID: farmUID},
			setupMocks: func(r *RepoMock) {
				r.On("GetFarm", mock.Anything, farmUID, "farmer-1").
					Return(nil, models.ErrNotFound).Once()
			},
			wantErr: models.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			svc := newService(repo, new(CacheMock), new(PublisherMock))

			tt.setupMocks(repo)

			uid, err := svc.Create(context.Background(), "farmer-1", tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantUID, uid)
			}

			repo.AssertExpectations(t)
		})
	}
}

func TestCarbonCreditService_List(t *testing.T) {
	credits := []*models.CarbonCredit{{UID: "credit-1"}, {UID: "credit-2"}}

	tests := []struct {
		name       string
		user       *models.User
		setupMocks func(r *RepoMock)
		want       []*models.CarbonCredit
		wantErr    bool
	}{
		{
			name: "farmer lists own credits",
			user: &models.User{UID: "farmer-1", Role: models.RoleFarmer},
			setupMocks: func(r *RepoMock) {
				r.On("ListCredits", mock.Anything, "farmer-1").Return(credits, nil).Once()
			},
			want: credits,
		},
		{
			name: "industry lists purchased credits",
			user: &models.User{UID: "buyer-1", Role: models.RoleIndustry},
			setupMocks: func(r *RepoMock) {
				r.On("GetProfileByOwner", mock.Anything, "buyer-1").
					Return(&models.IndustryProfile{UID: "profile-1"}, nil).Once()
				r.On("ListCreditsByIndustry", mock.Anything, "profile-1").Return(credits, nil).Once()
			},
			want: credits,
		},
		{
			name: "industry without profile gets empty list",
			user: &models.User{UID: "buyer-2", Role: models.RoleIndustry},
			setupMocks: func(r *RepoMock) {
				r.On("GetProfileByOwner", mock.Anything, "buyer-2").
					Return(nil, models.ErrNotFound).Once()
			},
			want: []*models.CarbonCredit{},
		},
		{
			name: "repo error",
			user: &models.User{UID: "farmer-1", Role: models.RoleFarmer},
			setupMocks: func(r *RepoMock) {
				r.On("ListCredits", mock.Anything, "farmer-1").
					Return(nil, errors.New("db error")).Once()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			svc := newService(repo, new(CacheMock), new(PublisherMock))

			tt.setupMocks(repo)

			got, err := svc.List(context.Background(), tt.user)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}

			repo.AssertExpectations(t)
		})
	}
}

func TestCarbonCreditService_Available(t *testing.T) {
	credits := []*models.CarbonCredit{{UID: "credit-1", Status: models.CreditVerified}}

	tests := []struct {
		name       string
		setupMocks func(r *RepoMock, c *CacheMock)
		want       []*models.CarbonCredit
		wantErr    bool
	}{
		{
			name: "cache hit skips repo",
			setupMocks: func(_ *RepoMock, c *CacheMock) {
				c.On("Get", "credits:available", mock.Anything).Return(true, nil).
					Run(func(args mock.Arguments) {
						ptr := args.Get(1).(*[]*models.CarbonCredit)
						*ptr = credits
					}).Once()
			},
			want: credits,
		},
		{
			name: "cache miss falls back to repo and caches",
			setupMocks: func(r *RepoMock, c *CacheMock) {
				c.On("Get", "credits:available", mock.Anything).Return(false, nil).Once()
				r.On("ListAvailableCredits", mock.Anything).Return(credits, nil).Once()
				c.On("Set", "credits:available", credits, time.Minute).Return(nil).Once()
			},
			want: credits,
		},
		{
			name: "cache errors are warnings only",
			setupMocks: func(r *RepoMock, c *CacheMock) {
				c.On("Get", "credits:available", mock.Anything).
					Return(false, errors.New("redis down")).Once()
				r.On("ListAvailableCredits", mock.Anything).Return(credits, nil).Once()
				c.On("Set", "credits:available", credits, time.Minute).
					Return(errors.New("redis down")).Once()
			},
			want: credits,
		},
		{
			name: "repo error",
			setupMocks: func(r *RepoMock, c *CacheMock) {
				c.On("Get", "credits:available", mock.Anything).Return(false, nil).Once()
				r.On("ListAvailableCredits", mock.Anything).
					Return(nil, errors.New("db error")).Once()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			cache := new(CacheMock)
			svc := newService(repo, cache, new(PublisherMock))

			tt.setupMocks(repo, cache)

			got, err := svc.Available(context.Background())
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}

			repo.AssertExpectations(t)
			cache.AssertExpectations(t)
		})
	}
}

func TestCarbonCreditService_Read(t *testing.T) {
	profileUID := "profile-1"
	ownCredit := &models.CarbonCredit{UID: "credit-1", OwnerUID: "farmer-1", Status: models.CreditPending}
	availableCredit := &models.CarbonCredit{UID: "credit-2", OwnerUID: "farmer-1", Status: models.CreditVerified}
	soldCredit := &models.CarbonCredit{UID: "credit-3", OwnerUID: "farmer-1", Status: models.CreditSold, IndustryUID: &profileUID}

	tests := []struct {
		name       string
		user       *models.User
		credit     *models.CarbonCredit
		setupMocks func(r *RepoMock)
		want       *models.CarbonCredit
		wantErr    error
	}{
		{
			name:   "farmer reads own credit",
			user:   &models.User{UID: "farmer-1", Role: models.RoleFarmer},
			credit: ownCredit,
			want:   ownCredit,
		},
		{
			name:    "foreign farmer credit hidden as missing",
			user:    &models.User{UID: "farmer-2", Role: models.RoleFarmer},
			credit:  ownCredit,
			wantErr: models.ErrNotFound,
		},
		{
			name:   "industry sees available credit",
			user:   &models.User{UID: "buyer-1", Role: models.RoleIndustry},
			credit: availableCredit,
			want:   availableCredit,
		},
		{
			name:   "industry sees own purchase",
			user:   &models.User{UID: "buyer-1", Role: models.RoleIndustry},
			credit: soldCredit,
			setupMocks: func(r *RepoMock) {
				r.On("GetProfileByOwner", mock.Anything, "buyer-1").
					Return(&models.IndustryProfile{UID: profileUID}, nil).Once()
			},
			want: soldCredit,
		},
		{
			name:   "foreign purchase hidden from other industry",
			user:   &models.User{UID: "buyer-2", Role: models.RoleIndustry},
			credit: soldCredit,
			setupMocks: func(r *RepoMock) {
				r.On("GetProfileByOwner", mock.Anything, "buyer-2").
					Return(&models.IndustryProfile{UID: "profile-2"}, nil).Once()
			},
			wantErr: models.ErrNotFound,
		},
		{
			name:    "pending credit hidden from industry",
			user:    &models.User{UID: "buyer-1", Role: models.RoleIndustry},
			credit:  ownCredit,
			wantErr: models.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			svc := newService(repo, new(CacheMock), new(PublisherMock))

			repo.On("GetCredit", mock.Anything, tt.credit.UID).Return(tt.credit, nil).Once()
			if tt.setupMocks != nil {
				tt.setupMocks(repo)
			}

			got, err := svc.Read(context.Background(), tt.credit.UID, tt.user)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}

			repo.AssertExpectations(t)
		})
	}
}

func TestCarbonCreditService_UpdateStatus(t *testing.T) {
	pendingCredit := &models.CarbonCredit{UID: "credit-1", OwnerUID: "farmer-1", Status: models.CreditPending}
	verifiedCredit := &models.CarbonCredit{UID: "credit-2", OwnerUID: "farmer-1", Status: models.CreditVerified}
	cancelledCredit := &models.CarbonCredit{UID: "credit-3", OwnerUID: "farmer-1", Status: models.CreditCancelled}

	tests := []struct {
		name       string
		creditUID  string
		ownerUID   string
		status     string
		setupMocks func(r *RepoMock)
		wantStatus models.CreditStatus
		wantErr    error
	}{
		{
			name:      "owner cancels pending credit",
			creditUID: "credit-1",
			ownerUID:  "farmer-1",
			status:    "cancelled",
			setupMocks: func(r *RepoMock) {
				r.On("GetCredit", mock.Anything, "credit-1").Return(pendingCredit, nil).Once()
				r.On("UpdateCreditStatus", mock.Anything, "credit-1", "farmer-1", models.CreditCancelled).
					Return(1, nil).Once()
				cancelled := *pendingCredit
				cancelled.Status = models.CreditCancelled
				r.On("GetCredit", mock.Anything, "credit-1").Return(&cancelled, nil).Once()
			},
			wantStatus: models.CreditCancelled,
		},
		{
			name:      "owner reactivates cancelled credit",
			creditUID: "credit-3",
			ownerUID:  "farmer-1",
			status:    "pending",
			setupMocks: func(r *RepoMock) {
				r.On("GetCredit", mock.Anything, "credit-3").Return(cancelledCredit, nil).Once()
				r.On("UpdateCreditStatus", mock.Anything, "credit-3", "farmer-1", models.CreditPending).
					Return(1, nil).Once()
				reactivated := *cancelledCredit
				reactivated.Status = models.CreditPending
				r.On("GetCredit", mock.Anything, "credit-3").Return(&reactivated, nil).Once()
			},
			wantStatus: models.CreditPending,
		},
		{
			name:       "unknown status",
			creditUID:  "credit-1",
			ownerUID:   "farmer-1",
			status:     "archived",
			setupMocks: func(_ *RepoMock) {},
			wantErr:    models.ErrInvalidInput,
		},
		{
			name:      "owner cannot verify own credit",
			creditUID: "credit-1",
			ownerUID:  "farmer-1",
			status:    "verified",
			setupMocks: func(r *RepoMock) {
				r.On("GetCredit", mock.Anything, "credit-1").Return(pendingCredit, nil).Once()
			},
			wantErr: models.ErrInvalidTransition,
		},
		{
			name:      "verified credit cannot be cancelled",
			creditUID: "credit-2",
			ownerUID:  "farmer-1",
			status:    "cancelled",
			setupMocks: func(r *RepoMock) {
				r.On("GetCredit", mock.Anything, "credit-2").Return(verifiedCredit, nil).Once()
			},
			wantErr: models.ErrInvalidTransition,
		},
		{
			name:      "foreign credit hidden as missing",
			creditUID: "credit-1",
			ownerUID:  "farmer-2",
			status:    "cancelled",
			setupMocks: func(r *RepoMock) {
				r.On("GetCredit", mock.Anything, "credit-1").Return(pendingCredit, nil).Once()
			},
			wantErr: models.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			svc := newService(repo, new(CacheMock), new(PublisherMock))

			tt.setupMocks(repo)

			got, err := svc.UpdateStatus(context.Background(), tt.creditUID, tt.ownerUID, tt.status)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantStatus, got.Status)
			}

			repo.AssertExpectations(t)
		})
	}
}

func TestCarbonCreditService_Verify(t *testing.T) {
	verified := &models.CarbonCredit{UID: "credit-1", Amount: 25.5, Status: models.CreditVerified}

	t.Run("success publishes event and drops cache", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		publisher := new(PublisherMock)
		svc := newService(repo, cache, publisher)

		repo.On("VerifyCredit", mock.Anything, "credit-1").Return(verified, nil).Once()
		cache.On("Invalidate", "credits:available").Return(nil).Once()
		publisher.On("Publish", "credit.events", "credit.verified",
			models.CreditVerifiedEvent{CreditUID: "credit-1", Amount: 25.5}).Return(nil).Once()

		got, err := svc.Verify(context.Background(), "credit-1")
		assert.NoError(t, err)
		assert.Equal(t, verified, got)

		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
		publisher.AssertExpectations(t)
	})

	t.Run("already verified credit is a conflict", func(t *testing.T) {
		repo := new(RepoMock)
		svc := newService(repo, new(CacheMock), new(PublisherMock))

		repo.On("VerifyCredit", mock.Anything, "credit-1").
			Return(nil, models.ErrInvalidTransition).Once()

		_, err := svc.Verify(context.Background(), "credit-1")
		assert.ErrorIs(t, err, models.ErrInvalidTransition)

		repo.AssertExpectations(t)
	})

	t.Run("cache and publish errors do not fail verification", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		publisher := new(PublisherMock)
		svc := newService(repo, cache, publisher)

		repo.On("VerifyCredit", mock.Anything, "credit-1").Return(verified, nil).Once()
		cache.On("Invalidate", "credits:available").Return(errors.New("redis down")).Once()
		publisher.On("Publish", mock.Anything, mock.Anything, mock.Anything).
			Return(errors.New("broker down")).Once()

		got, err := svc.Verify(context.Background(), "credit-1")
		assert.NoError(t, err)
		assert.Equal(t, verified, got)
	})
}

func TestCarbonCreditService_Purchase(t *testing.T) {
	buyer := &models.User{UID: "buyer-1", Name: "Green Industries", Role: models.RoleIndustry}
	profile := &models.IndustryProfile{UID: "profile-1", Name: "Green Industries Corp"}
	profileUID := "profile-1"
	sold := &models.CarbonCredit{
		UID: "credit-1", Amount: 25.5, Price: 45,
		Status: models.CreditSold, OwnerUID: "farmer-1", IndustryUID: &profileUID,
	}
	owner := &models.User{UID: "farmer-1", Name: "John", Email: "john@farmer.com"}

	t.Run("success publishes sold event", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		publisher := new(PublisherMock)
		svc := newService(repo, cache, publisher)

		repo.On("PurchaseCredit", mock.Anything, "credit-1", "buyer-1", "Green Industries").
			Return(sold, profile, nil).Once()
		cache.On("Invalidate", "credits:available").Return(nil).Once()
		repo.On("GetUser", mock.Anything, "farmer-1").Return(owner, nil).Once()
		publisher.On("Publish", "credit.events", "credit.sold", models.CreditSoldEvent{
			CreditUID:  "credit-1",
			Amount:     25.5,
			Price:      45,
			OwnerName:  "John",
			OwnerEmail: "john@farmer.com",
			BuyerName:  "Green Industries Corp",
		}).Return(nil).Once()

		got, err := svc.Purchase(context.Background(), "credit-1", buyer)
		assert.NoError(t, err)
		assert.Equal(t, sold, got)

		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
		publisher.AssertExpectations(t)
	})

	t.Run("already sold maps to conflict", func(t *testing.T) {
		repo := new(RepoMock)
		svc := newService(repo, new(CacheMock), new(PublisherMock))

		repo.On("PurchaseCredit", mock.Anything, "credit-1", "buyer-1", "Green Industries").
			Return(nil, nil, models.ErrAlreadySold).Once()

		_, err := svc.Purchase(context.Background(), "credit-1", buyer)
		assert.ErrorIs(t, err, models.ErrAlreadySold)

		repo.AssertExpectations(t)
	})

	t.Run("owner lookup failure skips notification but keeps purchase", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		publisher := new(PublisherMock)
		svc := newService(repo, cache, publisher)

		repo.On("PurchaseCredit", mock.Anything, "credit-1", "buyer-1", "Green Industries").
			Return(sold, profile, nil).Once()
		cache.On("Invalidate", "credits:available").Return(nil).Once()
		repo.On("GetUser", mock.Anything, "farmer-1").
			Return(nil, errors.New("db error")).Once()

		got, err := svc.Purchase(context.Background(), "credit-1", buyer)
		assert.NoError(t, err)
		assert.Equal(t, sold, got)

		publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestCarbonCreditService_Remove(t *testing.T) {
	tests := []struct {
		name       string
		setupMocks func(r *RepoMock)
		wantErr    error
	}{
		{
			name: "success remove pending",
			setupMocks: func(r *RepoMock) {
				r.On("RemoveCredit", mock.Anything, "credit-1", "farmer-1").Return(1, nil).Once()
			},
		},
		{
			name: "verified credit cannot be removed",
			setupMocks: func(r *RepoMock) {
				r.On("RemoveCredit", mock.Anything, "credit-1", "farmer-1").Return(0, nil).Once()
				r.On("GetCredit", mock.Anything, "credit-1").
					Return(&models.CarbonCredit{UID: "credit-1", OwnerUID: "farmer-1", Status: models.CreditVerified}, nil).Once()
			},
			wantErr: models.ErrInvalidState,
		},
		{
			name: "foreign credit hidden as missing",
			setupMocks: func(r *RepoMock) {
				r.On("RemoveCredit", mock.Anything, "credit-1", "farmer-1").Return(0, nil).Once()
				r.On("GetCredit", mock.Anything, "credit-1").
					Return(&models.CarbonCredit{UID: "credit-1", OwnerUID: "farmer-2", Status: models.CreditPending}, nil).Once()
			},
			wantErr: models.ErrNotFound,
		},
		{
			name: "missing credit",
			setupMocks: func(r *RepoMock) {
				r.On("RemoveCredit", mock.Anything, "credit-1", "farmer-1").Return(0, nil).Once()
				r.On("GetCredit", mock.Anything, "credit-1").Return(nil, models.ErrNotFound).Once()
			},
			wantErr: models.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			svc := newService(repo, new(CacheMock), new(PublisherMock))

			tt.setupMocks(repo)

			err := svc.Remove(context.Background(), "credit-1", "farmer-1")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}

			repo.AssertExpectations(t)
		})
	}
}
