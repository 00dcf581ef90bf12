package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/agrigrow/agrigrow-backend/internal/models"
)

const creditColumns = `uid, amount, price, status, farm_uid, owner_uid, industry_uid, created_at, updated_at`

func scanCredit(row interface{ Scan(...any) error }) (*models.CarbonCredit, error) {
	var result models.CarbonCredit
	var farmUID, industryUID sql.NullString
	if err := row.Scan(&result.UID, &result.Amount, &result.Price, &result.Status,
		&farmUID, &result.OwnerUID, &industryUID, &result.CreatedAt, &result.UpdatedAt); err != nil {
		return nil, err
	}
	if farmUID.Valid {
		result.FarmUID = &farmUID.String
	}
	if industryUID.Valid {
		result.IndustryUID = &industryUID.String
	}
	return &result, nil
}

// CreateCredit вставляет новый углеродный кредит со статусом pending
// и возвращает его UID.
func (s *Storage) CreateCredit(ctx context.Context, credit models.CarbonCredit) (string, error) {
	const op = "storage.CreateCredit"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO carbon_credits (amount, price, status, farm_uid, owner_uid)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING uid`
	var newUID string
	err := s.DB.QueryRowContext(ctx, query,
		credit.Amount, credit.Price, credit.Status, credit.FarmUID, credit.OwnerUID).Scan(&newUID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newUID, nil
}

// GetCredit возвращает кредит по UID без фильтра владения:
// решение о доступе принимает сервис по роли и владельцу.
func (s *Storage) GetCredit(ctx context.Context, creditUID string) (*models.CarbonCredit, error) {
	const op = "storage.GetCredit"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + creditColumns + ` FROM carbon_credits WHERE uid = $1`
	result, err := scanCredit(s.DB.QueryRowContext(ctx, query, creditUID))
	if err != nil {
		return nil, mapRowError(op, err)
	}
	return result, nil
}

// ListCredits возвращает кредиты владельца.
func (s *Storage) ListCredits(ctx context.Context, ownerUID string) ([]*models.CarbonCredit, error) {
	const op = "storage.ListCredits"
	query := `SELECT ` + creditColumns + `
			  FROM carbon_credits
			  WHERE owner_uid = $1
			  ORDER BY created_at DESC`
	return s.queryCredits(ctx, op, query, ownerUID)
}

// ListCreditsByIndustry возвращает кредиты, купленные профилем предприятия.
func (s *Storage) ListCreditsByIndustry(ctx context.Context, industryUID string) ([]*models.CarbonCredit, error) {
	const op = "storage.ListCreditsByIndustry"
	query := `SELECT ` + creditColumns + `
			  FROM carbon_credits
			  WHERE industry_uid = $1
			  ORDER BY created_at DESC`
	return s.queryCredits(ctx, op, query, industryUID)
}

// ListAvailableCredits возвращает верифицированные непроданные кредиты —
// публичную витрину для предприятий.
func (s *Storage) ListAvailableCredits(ctx context.Context) ([]*models.CarbonCredit, error) {
	const op = "storage.ListAvailableCredits"
	query := `SELECT ` + creditColumns + `
			  FROM carbon_credits
			  WHERE status = 'verified' AND industry_uid IS NULL
			  ORDER BY created_at DESC`
	return s.queryCredits(ctx, op, query)
}

func (s *Storage) queryCredits(ctx context.Context, op, query string, args ...any) ([]*models.CarbonCredit, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.CarbonCredit
	for rows.Next() {
		item, err := scanCredit(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateCreditStatus переводит кредит владельца в новый статус и
// возвращает количество изменённых строк. Допустимость перехода
// проверяет сервис до вызова.
func (s *Storage) UpdateCreditStatus(ctx context.Context, creditUID, ownerUID string, status models.CreditStatus) (int, error) {
	const op = "storage.UpdateCreditStatus"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE carbon_credits
			  SET status = $1, updated_at = now()
			  WHERE uid = $2 AND owner_uid = $3`
	result, err := s.DB.ExecContext(ctx, query, status, creditUID, ownerUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// VerifyCredit переводит кредит pending -> verified условным UPDATE.
// Ноль изменённых строк означает, что кредита нет либо он не в pending;
// какой из случаев — различается дополнительной выборкой.
func (s *Storage) VerifyCredit(ctx context.Context, creditUID string) (*models.CarbonCredit, error) {
	const op = "storage.VerifyCredit"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE carbon_credits
			  SET status = 'verified', updated_at = now()
			  WHERE uid = $1 AND status = 'pending'
			  RETURNING ` + creditColumns
	result, err := scanCredit(s.DB.QueryRowContext(ctx, query, creditUID))
	if err == nil {
		return result, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if _, err := s.GetCredit(ctx, creditUID); err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("%s: %w", op, models.ErrInvalidTransition)
}

// PurchaseCredit атомарно продаёт кредит предприятию: в одной транзакции
// лениво создаётся (или находится) профиль покупателя и выполняется
// условный UPDATE "продать, только если всё ещё verified и не продан".
// Проигравшая гонку покупка получает models.ErrAlreadySold, попытка
// купить неверифицированный кредит — models.ErrNotPurchasable.
func (s *Storage) PurchaseCredit(ctx context.Context, creditUID, buyerUID, buyerName string) (*models.CarbonCredit, *models.IndustryProfile, error) {
	const op = "storage.PurchaseCredit"
	select {
	case <-ctx.Done():
		return nil, nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Ленивое создание профиля: при конфликте по owner_uid DO UPDATE
	// нужен только ради RETURNING существующей строки.
	profileQuery := `INSERT INTO industry_profiles (name, industry_type, owner_uid)
			  VALUES ($1, 'other', $2)
			  ON CONFLICT (owner_uid) DO UPDATE SET updated_at = industry_profiles.updated_at
			  RETURNING uid, name, industry_type, description, owner_uid, created_at, updated_at`
	var profile models.IndustryProfile
	if err := tx.QueryRowContext(ctx, profileQuery, buyerName, buyerUID).Scan(
		&profile.UID, &profile.Name, &profile.IndustryType, &profile.Description,
		&profile.OwnerUID, &profile.CreatedAt, &profile.UpdatedAt); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	// Compare-and-set: продажа проходит только если кредит всё ещё
	// verified и не имеет покупателя.
	creditQuery := `UPDATE carbon_credits
			  SET industry_uid = $1, status = 'sold', updated_at = now()
			  WHERE uid = $2 AND status = 'verified' AND industry_uid IS NULL
			  RETURNING ` + creditColumns
	credit, err := scanCredit(tx.QueryRowContext(ctx, creditQuery, profile.UID, creditUID))
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, nil, fmt.Errorf("%s: %w", op, err)
		}
		return nil, nil, s.classifyPurchaseFailure(ctx, op, creditUID)
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	return credit, &profile, nil
}

// classifyPurchaseFailure выясняет, почему условная продажа не затронула
// ни одной строки: кредита нет, он уже продан или ещё не верифицирован.
func (s *Storage) classifyPurchaseFailure(ctx context.Context, op, creditUID string) error {
	current, err := s.GetCredit(ctx, creditUID)
	if err != nil {
		return err
	}
	if current.IndustryUID != nil || current.Status == models.CreditSold {
		return fmt.Errorf("%s: %w", op, models.ErrAlreadySold)
	}
	return fmt.Errorf("%s: %w", op, models.ErrNotPurchasable)
}

// RemoveCredit удаляет кредит владельца, находящийся в pending,
// и возвращает количество удалённых строк.
func (s *Storage) RemoveCredit(ctx context.Context, creditUID, ownerUID string) (int, error) {
	const op = "storage.RemoveCredit"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM carbon_credits
			  WHERE uid = $1 AND owner_uid = $2 AND status = 'pending'`
	result, err := s.DB.ExecContext(ctx, query, creditUID, ownerUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
