package repository

import (
	"context"
	"fmt"

	"github.com/agrigrow/agrigrow-backend/internal/models"
)

// GetFarmerStats собирает сводку по хозяйству фермера одним запросом:
// количество ферм, культур и кредитов плюс выручка по проданным.
func (s *Storage) GetFarmerStats(ctx context.Context, ownerUID string) (*models.FarmerStats, error) {
	const op = "storage.GetFarmerStats"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT
			      (SELECT count(*) FROM farms WHERE owner_uid = $1),
			      (SELECT count(*) FROM crops c JOIN farms f ON f.uid = c.farm_uid WHERE f.owner_uid = $1),
			      (SELECT count(*) FROM carbon_credits WHERE owner_uid = $1),
			      (SELECT count(*) FROM carbon_credits WHERE owner_uid = $1 AND status = 'sold'),
			      (SELECT COALESCE(sum(amount * price), 0) FROM carbon_credits WHERE owner_uid = $1 AND status = 'sold'),
			      (SELECT COALESCE(sum(amount), 0) FROM carbon_credits WHERE owner_uid = $1)`
	var result models.FarmerStats
	row := s.DB.QueryRowContext(ctx, query, ownerUID)
	if err := row.Scan(&result.TotalFarms, &result.TotalCrops, &result.TotalCredits,
		&result.TotalCreditsSold, &result.TotalRevenue, &result.TotalCarbonAmount); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// GetIndustryStats собирает сводку по покупкам профиля предприятия.
func (s *Storage) GetIndustryStats(ctx context.Context, industryUID string) (*models.IndustryStats, error) {
	const op = "storage.GetIndustryStats"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT count(*),
			      COALESCE(sum(amount), 0),
			      COALESCE(sum(amount * price), 0)
			  FROM carbon_credits
			  WHERE industry_uid = $1`
	var result models.IndustryStats
	row := s.DB.QueryRowContext(ctx, query, industryUID)
	if err := row.Scan(&result.TotalPurchased, &result.TotalCarbonOffset, &result.TotalSpent); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}
