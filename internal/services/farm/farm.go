// Package services содержит бизнес-логику для управления фермами.
// Все операции выполняются от имени владельца: чужая ферма неотличима
// от несуществующей.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/agrigrow/agrigrow-backend/internal/models"
)

// FarmRepository определяет методы для работы с фермами в хранилище.
type FarmRepository interface {
	// CreateFarm добавляет новую ферму и возвращает её UID.
	CreateFarm(ctx context.Context, farm models.Farm) (string, error)
	// GetFarm возвращает ферму владельца или models.ErrNotFound.
	GetFarm(ctx context.Context, farmUID, ownerUID string) (*models.Farm, error)
	// ListFarms возвращает список ферм владельца.
	ListFarms(ctx context.Context, ownerUID string) ([]*models.Farm, error)
	// UpdateFarm обновляет поля фермы владельца и возвращает количество
	// изменённых записей.
	UpdateFarm(ctx context.Context, farmUID, ownerUID string, req models.UpdateFarmRequest) (int, error)
	// RemoveFarm удаляет ферму владельца и возвращает количество удалённых записей.
	RemoveFarm(ctx context.Context, farmUID, ownerUID string) (int, error)
}

// FarmService реализует бизнес-логику работы с фермами.
type FarmService struct {
	repo FarmRepository
	log  *slog.Logger
}

// NewFarmService создает новый экземпляр FarmService.
func NewFarmService(repo FarmRepository, log *slog.Logger) *FarmService {
	return &FarmService{
		repo: repo,
		log:  log,
	}
}

// Create создает новую ферму для владельца и возвращает её UID.
func (s *FarmService) Create(ctx context.Context, ownerUID string, req models.CreateFarmRequest) (string, error) {
	farm := models.Farm{
		Name:        req.Name,
		Location:    req.Location,
		Size:        req.Size,
		Description: req.Description,
		OwnerUID:    ownerUID,
	}
	uid, err := s.repo.CreateFarm(ctx, farm)
	if err != nil {
		return "", err
	}
	s.log.Info("created new farm", slog.String("uid", uid))
	return uid, nil
}

// Read возвращает ферму владельца.
func (s *FarmService) Read(ctx context.Context, farmUID, ownerUID string) (*models.Farm, error) {
	return s.repo.GetFarm(ctx, farmUID, ownerUID)
}

// List возвращает все фермы владельца.
func (s *FarmService) List(ctx context.Context, ownerUID string) ([]*models.Farm, error) {
	return s.repo.ListFarms(ctx, ownerUID)
}

// Update обновляет переданные поля фермы владельца и возвращает
// её актуальное состояние.
func (s *FarmService) Update(ctx context.Context, farmUID, ownerUID string, req models.UpdateFarmRequest) (*models.Farm, error) {
	const op = "services.farm.Update"

	count, err := s.repo.UpdateFarm(ctx, farmUID, ownerUID, req)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}
	return s.repo.GetFarm(ctx, farmUID, ownerUID)
}

// Remove удаляет ферму владельца. Культуры фермы удаляются каскадно,
// привязка кредитов к ферме обнуляется на уровне базы данных.
func (s *FarmService) Remove(ctx context.Context, farmUID, ownerUID string) error {
	const op = "services.farm.Remove"

	count, err := s.repo.RemoveFarm(ctx, farmUID, ownerUID)
	if err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}
	s.log.Info("removed farm", slog.String("uid", farmUID))
	return nil
}
