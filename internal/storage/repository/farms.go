package repository

import (
	"context"
	"fmt"

	"github.com/agrigrow/agrigrow-backend/internal/models"
)

// CreateFarm вставляет новую ферму и возвращает её UID.
func (s *Storage) CreateFarm(ctx context.Context, farm models.Farm) (string, error) {
	const op = "storage.CreateFarm"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO farms (name, location, size, description, owner_uid)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING uid`
	var newUID string
	err := s.DB.QueryRowContext(ctx, query,
		farm.Name, farm.Location, farm.Size, farm.Description, farm.OwnerUID).Scan(&newUID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newUID, nil
}

// GetFarm возвращает ферму по UID, ограничивая выборку владельцем.
// Чужая или несуществующая ферма — models.ErrNotFound.
func (s *Storage) GetFarm(ctx context.Context, farmUID, ownerUID string) (*models.Farm, error) {
	const op = "storage.GetFarm"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, name, location, size, description, owner_uid, created_at, updated_at
			  FROM farms
			  WHERE uid = $1 AND owner_uid = $2`
	var result models.Farm
	row := s.DB.QueryRowContext(ctx, query, farmUID, ownerUID)
	if err := row.Scan(&result.UID, &result.Name, &result.Location, &result.Size,
		&result.Description, &result.OwnerUID, &result.CreatedAt, &result.UpdatedAt); err != nil {
		return nil, mapRowError(op, err)
	}
	return &result, nil
}

// ListFarms возвращает список ферм владельца.
func (s *Storage) ListFarms(ctx context.Context, ownerUID string) ([]*models.Farm, error) {
	const op = "storage.ListFarms"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, name, location, size, description, owner_uid, created_at, updated_at
			  FROM farms
			  WHERE owner_uid = $1
			  ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, ownerUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Farm
	for rows.Next() {
		var item models.Farm
		if err := rows.Scan(&item.UID, &item.Name, &item.Location, &item.Size,
			&item.Description, &item.OwnerUID, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateFarm обновляет только переданные поля фермы владельца
// и возвращает количество изменённых строк. Нулевые указатели
// оставляют текущее значение (COALESCE на уровне SQL).
func (s *Storage) UpdateFarm(ctx context.Context, farmUID, ownerUID string, req models.UpdateFarmRequest) (int, error) {
	const op = "storage.UpdateFarm"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE farms
			  SET name = COALESCE($1, name),
			      location = COALESCE($2, location),
			      size = COALESCE($3, size),
			      description = COALESCE($4, description),
			      updated_at = now()
			  WHERE uid = $5 AND owner_uid = $6`
	result, err := s.DB.ExecContext(ctx, query,
		req.Name, req.Location, req.Size, req.Description, farmUID, ownerUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RemoveFarm удаляет ферму владельца и возвращает количество удалённых строк.
func (s *Storage) RemoveFarm(ctx context.Context, farmUID, ownerUID string) (int, error) {
	const op = "storage.RemoveFarm"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM farms WHERE uid = $1 AND owner_uid = $2`
	result, err := s.DB.ExecContext(ctx, query, farmUID, ownerUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
