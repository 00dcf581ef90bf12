package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/agrigrow/agrigrow-backend/internal/models"
)

// CreateCrop вставляет новую культуру и возвращает её UID.
// Принадлежность фермы вызывающему проверяется на уровне сервиса
// до вставки.
func (s *Storage) CreateCrop(ctx context.Context, crop models.Crop) (string, error) {
	const op = "storage.CreateCrop"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO crops (name, type, variety, planting_date, harvest_date, yield, farm_uid)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING uid`
	var newUID string
	err := s.DB.QueryRowContext(ctx, query,
		crop.Name, crop.Type, crop.Variety, crop.PlantingDate, crop.HarvestDate,
		crop.Yield, crop.FarmUID).Scan(&newUID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newUID, nil
}

// GetCrop возвращает культуру по UID вместе с UID владельца её фермы,
// чтобы сервис мог проверить транзитивную цепочку владения.
func (s *Storage) GetCrop(ctx context.Context, cropUID string) (*models.Crop, string, error) {
	const op = "storage.GetCrop"
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT c.uid, c.name, c.type, c.variety, c.planting_date, c.harvest_date,
			      c.yield, c.farm_uid, c.created_at, c.updated_at, f.owner_uid
			  FROM crops c
			  JOIN farms f ON f.uid = c.farm_uid
			  WHERE c.uid = $1`
	var result models.Crop
	var ownerUID string
	var harvestDate sql.NullTime
	var cropYield sql.NullFloat64
	row := s.DB.QueryRowContext(ctx, query, cropUID)
	if err := row.Scan(&result.UID, &result.Name, &result.Type, &result.Variety,
		&result.PlantingDate, &harvestDate, &cropYield, &result.FarmUID,
		&result.CreatedAt, &result.UpdatedAt, &ownerUID); err != nil {
		return nil, "", mapRowError(op, err)
	}
	if harvestDate.Valid {
		result.HarvestDate = &harvestDate.Time
	}
	if cropYield.Valid {
		result.Yield = &cropYield.Float64
	}
	return &result, ownerUID, nil
}

// ListCrops возвращает все культуры на фермах владельца.
// Ограничение по владельцу выполняется в самом запросе через JOIN,
// а не фильтрацией результата в памяти.
func (s *Storage) ListCrops(ctx context.Context, ownerUID string) ([]*models.Crop, error) {
	const op = "storage.ListCrops"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT c.uid, c.name, c.type, c.variety, c.planting_date, c.harvest_date,
			      c.yield, c.farm_uid, c.created_at, c.updated_at
			  FROM crops c
			  JOIN farms f ON f.uid = c.farm_uid
			  WHERE f.owner_uid = $1
			  ORDER BY c.created_at DESC`
	return s.queryCrops(ctx, op, query, ownerUID)
}

// ListCropsByFarm возвращает культуры конкретной фермы.
// Принадлежность фермы вызывающему проверяется на уровне сервиса.
func (s *Storage) ListCropsByFarm(ctx context.Context, farmUID string) ([]*models.Crop, error) {
	const op = "storage.ListCropsByFarm"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, name, type, variety, planting_date, harvest_date,
			      yield, farm_uid, created_at, updated_at
			  FROM crops
			  WHERE farm_uid = $1
			  ORDER BY created_at DESC`
	return s.queryCrops(ctx, op, query, farmUID)
}

func (s *Storage) queryCrops(ctx context.Context, op, query string, arg any) ([]*models.Crop, error) {
	rows, err := s.DB.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Crop
	for rows.Next() {
		var item models.Crop
		var harvestDate sql.NullTime
		var cropYield sql.NullFloat64
		if err := rows.Scan(&item.UID, &item.Name, &item.Type, &item.Variety,
			&item.PlantingDate, &harvestDate, &cropYield, &item.FarmUID,
			&item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if harvestDate.Valid {
			item.HarvestDate = &harvestDate.Time
		}
		if cropYield.Valid {
			item.Yield = &cropYield.Float64
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateCrop обновляет только переданные поля культуры и возвращает
// количество изменённых строк.
func (s *Storage) UpdateCrop(ctx context.Context, cropUID string, patch models.CropPatch) (int, error) {
	const op = "storage.UpdateCrop"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE crops
			  SET name = COALESCE($1, name),
			      type = COALESCE($2, type),
			      variety = COALESCE($3, variety),
			      planting_date = COALESCE($4, planting_date),
			      harvest_date = COALESCE($5, harvest_date),
			      yield = COALESCE($6, yield),
			      updated_at = now()
			  WHERE uid = $7`
	result, err := s.DB.ExecContext(ctx, query,
		patch.Name, patch.Type, patch.Variety, patch.PlantingDate,
		patch.HarvestDate, patch.Yield, cropUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RemoveCrop удаляет культуру и возвращает количество удалённых строк.
func (s *Storage) RemoveCrop(ctx context.Context, cropUID string) (int, error) {
	const op = "storage.RemoveCrop"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM crops WHERE uid = $1`
	result, err := s.DB.ExecContext(ctx, query, cropUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
