package repository

import (
	"context"
	"fmt"

	"github.com/agrigrow/agrigrow-backend/internal/models"
)

const profileColumns = `uid, name, industry_type, description, owner_uid, created_at, updated_at`

// UpsertProfile создаёт профиль предприятия или обновляет существующий
// профиль того же владельца и возвращает итоговую строку.
func (s *Storage) UpsertProfile(ctx context.Context, profile models.IndustryProfile) (*models.IndustryProfile, error) {
	const op = "storage.UpsertProfile"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO industry_profiles (name, industry_type, description, owner_uid)
			  VALUES ($1, $2, $3, $4)
			  ON CONFLICT (owner_uid) DO UPDATE
			  SET name = EXCLUDED.name,
			      industry_type = EXCLUDED.industry_type,
			      description = EXCLUDED.description,
			      updated_at = now()
			  RETURNING ` + profileColumns
	var result models.IndustryProfile
	row := s.DB.QueryRowContext(ctx, query,
		profile.Name, profile.IndustryType, profile.Description, profile.OwnerUID)
	if err := row.Scan(&result.UID, &result.Name, &result.IndustryType, &result.Description,
		&result.OwnerUID, &result.CreatedAt, &result.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// GetProfile возвращает профиль предприятия по UID.
func (s *Storage) GetProfile(ctx context.Context, profileUID string) (*models.IndustryProfile, error) {
	const op = "storage.GetProfile"
	query := `SELECT ` + profileColumns + ` FROM industry_profiles WHERE uid = $1`
	return s.queryProfile(ctx, op, query, profileUID)
}

// GetProfileByOwner возвращает профиль по UID пользователя-владельца.
func (s *Storage) GetProfileByOwner(ctx context.Context, ownerUID string) (*models.IndustryProfile, error) {
	const op = "storage.GetProfileByOwner"
	query := `SELECT ` + profileColumns + ` FROM industry_profiles WHERE owner_uid = $1`
	return s.queryProfile(ctx, op, query, ownerUID)
}

func (s *Storage) queryProfile(ctx context.Context, op, query, arg string) (*models.IndustryProfile, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var result models.IndustryProfile
	row := s.DB.QueryRowContext(ctx, query, arg)
	if err := row.Scan(&result.UID, &result.Name, &result.IndustryType, &result.Description,
		&result.OwnerUID, &result.CreatedAt, &result.UpdatedAt); err != nil {
		return nil, mapRowError(op, err)
	}
	return &result, nil
}

// ListProfiles возвращает все профили предприятий — публичный каталог
// покупателей маркетплейса.
func (s *Storage) ListProfiles(ctx context.Context) ([]*models.IndustryProfile, error) {
	const op = "storage.ListProfiles"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + profileColumns + `
			  FROM industry_profiles
			  ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.IndustryProfile
	for rows.Next() {
		var item models.IndustryProfile
		if err := rows.Scan(&item.UID, &item.Name, &item.IndustryType, &item.Description,
			&item.OwnerUID, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
