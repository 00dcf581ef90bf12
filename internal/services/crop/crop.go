// Package services содержит бизнес-логику для управления культурами.
// Владение культурой транзитивно: культура принадлежит тому, кому
// принадлежит её ферма.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/agrigrow/agrigrow-backend/internal/models"
)

const dateLayout = "2006-01-02"

// CropRepository определяет методы для работы с культурами в хранилище.
type CropRepository interface {
	// CreateCrop добавляет новую культуру и возвращает её UID.
	CreateCrop(ctx context.Context, crop models.Crop) (string, error)
	// GetCrop возвращает культуру и UID владельца её фермы.
	GetCrop(ctx context.Context, cropUID string) (*models.Crop, string, error)
	// ListCrops возвращает культуры на всех фермах владельца.
	ListCrops(ctx context.Context, ownerUID string) ([]*models.Crop, error)
	// ListCropsByFarm возвращает культуры конкретной фермы.
	ListCropsByFarm(ctx context.Context, farmUID string) ([]*models.Crop, error)
	// UpdateCrop обновляет переданные поля культуры и возвращает
	// количество изменённых записей.
	UpdateCrop(ctx context.Context, cropUID string, patch models.CropPatch) (int, error)
	// RemoveCrop удаляет культуру и возвращает количество удалённых записей.
	RemoveCrop(ctx context.Context, cropUID string) (int, error)
}

// FarmReader проверяет принадлежность фермы вызывающему.
type FarmReader interface {
	// GetFarm возвращает ферму владельца или models.ErrNotFound.
	GetFarm(ctx context.Context, farmUID, ownerUID string) (*models.Farm, error)
}

// CropService реализует бизнес-логику работы с культурами.
type CropService struct {
	repo  CropRepository
	farms FarmReader
	log   *slog.Logger
}

// NewCropService создает новый экземпляр CropService.
func NewCropService(repo CropRepository, farms FarmReader, log *slog.Logger) *CropService {
	return &CropService{
		repo:  repo,
		farms: farms,
		log:   log,
	}
}

// Create создает культуру на ферме владельца и возвращает её UID.
// Ферма должна принадлежать вызывающему, дата сбора не может быть
// раньше даты посадки.
func (s *CropService) Create(ctx context.Context, ownerUID string, req models.CreateCropRequest) (string, error) {
	const op = "services.crop.Create"

	cropType, ok := models.ParseCropType(req.Type)
	if !ok {
		return "", fmt.Errorf("%s: unknown crop type %q: %w", op, req.Type, models.ErrInvalidInput)
	}
	plantingDate, err := time.Parse(dateLayout, req.PlantingDate)
	if err != nil {
		return "", fmt.Errorf("%s: invalid planting date: %w", op, models.ErrInvalidInput)
	}
	var harvestDate *time.Time
	if req.HarvestDate != "" {
		parsed, err := time.Parse(dateLayout, req.HarvestDate)
		if err != nil {
			return "", fmt.Errorf("%s: invalid harvest date: %w", op, models.ErrInvalidInput)
		}
		if parsed.Before(plantingDate) {
			return "", fmt.Errorf("%s: harvest date before planting date: %w", op, models.ErrInvalidInput)
		}
		harvestDate = &parsed
	}

	if _, err := s.farms.GetFarm(ctx, req.FarmUID, ownerUID); err != nil {
		return "", err
	}

	crop := models.Crop{
		Name:         req.Name,
		Type:         cropType,
		Variety:      req.Variety,
		PlantingDate: plantingDate,
		HarvestDate:  harvestDate,
		Yield:        req.Yield,
		FarmUID:      req.FarmUID,
	}
	uid, err := s.repo.CreateCrop(ctx, crop)
	if err != nil {
		return "", err
	}
	s.log.Info("created new crop", slog.String("uid", uid), slog.String("farm_uid", req.FarmUID))
	return uid, nil
}

// Read возвращает культуру, если цепочка владения заканчивается
// на вызывающем.
func (s *CropService) Read(ctx context.Context, cropUID, ownerUID string) (*models.Crop, error) {
	const op = "services.crop.Read"

	crop, farmOwnerUID, err := s.repo.GetCrop(ctx, cropUID)
	if err != nil {
		return nil, err
	}
	if farmOwnerUID != ownerUID {
		return nil, fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}
	return crop, nil
}

// List возвращает культуры на всех фермах владельца.
func (s *CropService) List(ctx context.Context, ownerUID string) ([]*models.Crop, error) {
	return s.repo.ListCrops(ctx, ownerUID)
}

// ListByFarm возвращает культуры конкретной фермы владельца.
func (s *CropService) ListByFarm(ctx context.Context, farmUID, ownerUID string) ([]*models.Crop, error) {
	if _, err := s.farms.GetFarm(ctx, farmUID, ownerUID); err != nil {
		return nil, err
	}
	return s.repo.ListCropsByFarm(ctx, farmUID)
}

// Update обновляет переданные поля культуры владельца и возвращает
// её актуальное состояние. Итоговая пара дат проверяется после
// слияния с сохранёнными значениями.
func (s *CropService) Update(ctx context.Context, cropUID, ownerUID string, req models.UpdateCropRequest) (*models.Crop, error) {
	const op = "services.crop.Update"

	current, farmOwnerUID, err := s.repo.GetCrop(ctx, cropUID)
	if err != nil {
		return nil, err
	}
	if farmOwnerUID != ownerUID {
		return nil, fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}

	patch := models.CropPatch{
		Name:    req.Name,
		Variety: req.Variety,
		Yield:   req.Yield,
	}
	if req.Type != nil {
		cropType, ok := models.ParseCropType(*req.Type)
		if !ok {
			return nil, fmt.Errorf("%s: unknown crop type %q: %w", op, *req.Type, models.ErrInvalidInput)
		}
		patch.Type = &cropType
	}
	if req.PlantingDate != nil {
		parsed, err := time.Parse(dateLayout, *req.PlantingDate)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid planting date: %w", op, models.ErrInvalidInput)
		}
		patch.PlantingDate = &parsed
	}
	if req.HarvestDate != nil {
		parsed, err := time.Parse(dateLayout, *req.HarvestDate)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid harvest date: %w", op, models.ErrInvalidInput)
		}
		patch.HarvestDate = &parsed
	}

	planting := current.PlantingDate
	if patch.PlantingDate != nil {
		planting = *patch.PlantingDate
	}
	harvest := current.HarvestDate
	if patch.HarvestDate != nil {
		harvest = patch.HarvestDate
	}
	if harvest != nil && harvest.Before(planting) {
		return nil, fmt.Errorf("%s: harvest date before planting date: %w", op, models.ErrInvalidInput)
	}

	count, err := s.repo.UpdateCrop(ctx, cropUID, patch)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}

	updated, _, err := s.repo.GetCrop(ctx, cropUID)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Remove удаляет культуру владельца.
func (s *CropService) Remove(ctx context.Context, cropUID, ownerUID string) error {
	const op = "services.crop.Remove"

	_, farmOwnerUID, err := s.repo.GetCrop(ctx, cropUID)
	if err != nil {
		return err
	}
	if farmOwnerUID != ownerUID {
		return fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}

	count, err := s.repo.RemoveCrop(ctx, cropUID)
	if err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}
	s.log.Info("removed crop", slog.String("uid", cropUID))
	return nil
}
