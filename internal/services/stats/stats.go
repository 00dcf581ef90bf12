// Package services содержит бизнес-логику сводной статистики
// для панели мониторинга.
package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/agrigrow/agrigrow-backend/internal/models"
)

// StatsRepository определяет методы для чтения агрегатов из хранилища.
type StatsRepository interface {
	// GetFarmerStats возвращает сводку по хозяйству фермера.
	GetFarmerStats(ctx context.Context, ownerUID string) (*models.FarmerStats, error)
	// GetIndustryStats возвращает сводку по покупкам профиля предприятия.
	GetIndustryStats(ctx context.Context, industryUID string) (*models.IndustryStats, error)
	// GetProfileByOwner возвращает профиль по владельцу или models.ErrNotFound.
	GetProfileByOwner(ctx context.Context, ownerUID string) (*models.IndustryProfile, error)
}

// StatsService реализует бизнес-логику панели мониторинга.
type StatsService struct {
	repo StatsRepository
	log  *slog.Logger
}

// NewStatsService создает новый экземпляр StatsService.
func NewStatsService(repo StatsRepository, log *slog.Logger) *StatsService {
	return &StatsService{
		repo: repo,
		log:  log,
	}
}

// Dashboard возвращает сводку в зависимости от роли пользователя.
// Предприятие без профиля получает нулевую сводку.
func (s *StatsService) Dashboard(ctx context.Context, user *models.User) (any, error) {
	if user.Role == models.RoleIndustry {
		profile, err := s.repo.GetProfileByOwner(ctx, user.UID)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				return &models.IndustryStats{}, nil
			}
			return nil, err
		}
		return s.repo.GetIndustryStats(ctx, profile.UID)
	}
	return s.repo.GetFarmerStats(ctx, user.UID)
}
