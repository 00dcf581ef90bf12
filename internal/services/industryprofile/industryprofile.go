// Package services содержит бизнес-логику профилей предприятий.
// У пользователя с ролью industry может быть ровно один профиль,
// он создаётся и обновляется идемпотентным upsert.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/agrigrow/agrigrow-backend/internal/models"
)

// ProfileRepository определяет методы для работы с профилями в хранилище.
type ProfileRepository interface {
	// UpsertProfile создаёт профиль или обновляет существующий профиль владельца.
	UpsertProfile(ctx context.Context, profile models.IndustryProfile) (*models.IndustryProfile, error)
	// GetProfile возвращает профиль по UID.
	GetProfile(ctx context.Context, profileUID string) (*models.IndustryProfile, error)
	// GetProfileByOwner возвращает профиль по владельцу или models.ErrNotFound.
	GetProfileByOwner(ctx context.Context, ownerUID string) (*models.IndustryProfile, error)
	// ListProfiles возвращает все профили предприятий.
	ListProfiles(ctx context.Context) ([]*models.IndustryProfile, error)
}

// ProfileService реализует бизнес-логику работы с профилями предприятий.
type ProfileService struct {
	repo ProfileRepository
	log  *slog.Logger
}

// NewProfileService создает новый экземпляр ProfileService.
func NewProfileService(repo ProfileRepository, log *slog.Logger) *ProfileService {
	return &ProfileService{
		repo: repo,
		log:  log,
	}
}

// UpsertMe создаёт или обновляет профиль текущего предприятия.
func (s *ProfileService) UpsertMe(ctx context.Context, ownerUID string, req models.UpsertProfileRequest) (*models.IndustryProfile, error) {
	const op = "services.industryprofile.UpsertMe"

	industryType, ok := models.ParseIndustryType(req.IndustryType)
	if !ok {
		return nil, fmt.Errorf("%s: unknown industry type %q: %w", op, req.IndustryType, models.ErrInvalidInput)
	}

	profile := models.IndustryProfile{
		Name:         req.Name,
		IndustryType: industryType,
		Description:  req.Description,
		OwnerUID:     ownerUID,
	}
	result, err := s.repo.UpsertProfile(ctx, profile)
	if err != nil {
		return nil, err
	}
	s.log.Info("upserted industry profile", slog.String("uid", result.UID))
	return result, nil
}

// GetMe возвращает профиль текущего предприятия.
func (s *ProfileService) GetMe(ctx context.Context, ownerUID string) (*models.IndustryProfile, error) {
	return s.repo.GetProfileByOwner(ctx, ownerUID)
}

// Read возвращает профиль по UID. Профили предприятий публичны
// внутри маркетплейса.
func (s *ProfileService) Read(ctx context.Context, profileUID string) (*models.IndustryProfile, error) {
	return s.repo.GetProfile(ctx, profileUID)
}

// List возвращает каталог профилей предприятий.
func (s *ProfileService) List(ctx context.Context) ([]*models.IndustryProfile, error) {
	return s.repo.ListProfiles(ctx)
}
