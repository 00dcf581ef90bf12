// Команда seed наполняет базу данных демонстрационными данными:
// два фермера, два предприятия, фермы, культуры и кредиты во всех
// статусах. Существующие данные предварительно удаляются.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/agrigrow/agrigrow-backend/internal/config"
	"github.com/agrigrow/agrigrow-backend/internal/lib/password"
	"github.com/agrigrow/agrigrow-backend/internal/migrations"
	"github.com/agrigrow/agrigrow-backend/internal/models"
	"github.com/agrigrow/agrigrow-backend/internal/storage/repository"
)

const seedPassword = "password123"

func main() {
	cfg := config.MustLoad()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx := context.Background()

	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		logger.Error("failed to connect to storage", slog.Any("err", err))
		os.Exit(1)
	}
	defer func() {
		_ = db.DB.Close()
	}()

	if err := migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		logger.Error("failed to run migrations", slog.Any("err", err))
		os.Exit(1)
	}

	if err := run(ctx, db, logger); err != nil {
		logger.Error("seeding failed", slog.Any("err", err))
		os.Exit(1)
	}
	logger.Info("database seeding completed successfully")
}

func run(ctx context.Context, db *repository.Storage, logger *slog.Logger) error {
	if _, err := db.DB.ExecContext(ctx,
		`TRUNCATE users, farms, crops, industry_profiles, carbon_credits CASCADE`); err != nil {
		return err
	}
	logger.Info("cleared existing data")

	hash, err := password.GetHash(seedPassword)
	if err != nil {
		return err
	}

	farmer1, err := db.RegisterUser(ctx, models.User{
		Name: "John Farmer", Email: "john@farmer.com", PasswordHash: hash, Role: models.RoleFarmer,
	})
	if err != nil {
		return err
	}
	farmer2, err := db.RegisterUser(ctx, models.User{
		Name: "Sarah Farmer", Email: "sarah@farmer.com", PasswordHash: hash, Role: models.RoleFarmer,
	})
	if err != nil {
		return err
	}
	industry1, err := db.RegisterUser(ctx, models.User{
		Name: "Green Industries", Email: "contact@greenindustries.com", PasswordHash: hash, Role: models.RoleIndustry,
	})
	if err != nil {
		return err
	}
	industry2, err := db.RegisterUser(ctx, models.User{
		Name: "Eco Manufacturing", Email: "info@ecomanufacturing.com", PasswordHash: hash, Role: models.RoleIndustry,
	})
	if err != nil {
		return err
	}
	logger.Info("created sample users", slog.Int("count", 4))

	farm1, err := db.CreateFarm(ctx, models.Farm{
		Name: "Green Valley Farm", Location: "California, USA", Size: 150.5,
		Description: "Organic vegetable and grain farm", OwnerUID: farmer1,
	})
	if err != nil {
		return err
	}
	farm2, err := db.CreateFarm(ctx, models.Farm{
		Name: "Sunset Ranch", Location: "Texas, USA", Size: 300.0,
		Description: "Cattle and crop farm", OwnerUID: farmer1,
	})
	if err != nil {
		return err
	}
	farm3, err := db.CreateFarm(ctx, models.Farm{
		Name: "Meadow Brook Farm", Location: "Iowa, USA", Size: 200.0,
		Description: "Corn and soybean farm", OwnerUID: farmer2,
	})
	if err != nil {
		return err
	}
	logger.Info("created sample farms", slog.Int("count", 3))

	crops := []models.Crop{
		{Name: "Organic Wheat", Type: models.CropWheat, Variety: "Winter Wheat",
			PlantingDate: date(2024, 10, 15), HarvestDate: datePtr(2025, 6, 20), Yield: f(45.5), FarmUID: farm1},
		{Name: "Sweet Corn", Type: models.CropCorn, Variety: "Golden Sweet",
			PlantingDate: date(2024, 4, 1), HarvestDate: datePtr(2024, 8, 15), Yield: f(120.0), FarmUID: farm1},
		{Name: "Soybeans", Type: models.CropSoybeans, Variety: "Roundup Ready",
			PlantingDate: date(2024, 5, 1), HarvestDate: datePtr(2024, 10, 15), Yield: f(85.0), FarmUID: farm2},
		{Name: "Field Corn", Type: models.CropCorn, Variety: "Dent Corn",
			PlantingDate: date(2024, 4, 15), HarvestDate: datePtr(2024, 9, 30), Yield: f(200.0), FarmUID: farm3},
	}
	for _, crop := range crops {
		if _, err := db.CreateCrop(ctx, crop); err != nil {
			return err
		}
	}
	logger.Info("created sample crops", slog.Int("count", len(crops)))

	if _, err := db.UpsertProfile(ctx, models.IndustryProfile{
		Name: "Green Industries Corp", IndustryType: models.IndustryManufacturing,
		Description: "Sustainable manufacturing company focused on green technologies",
		OwnerUID:    industry1,
	}); err != nil {
		return err
	}
	if _, err := db.UpsertProfile(ctx, models.IndustryProfile{
		Name: "Eco Manufacturing Solutions", IndustryType: models.IndustryFoodProcessing,
		Description: "Food processing company with focus on organic and sustainable practices",
		OwnerUID:    industry2,
	}); err != nil {
		return err
	}
	logger.Info("created sample industry profiles", slog.Int("count", 2))

	credits := []models.CarbonCredit{
		{Amount: 25.5, Price: 45.0, Status: models.CreditPending, FarmUID: &farm1, OwnerUID: farmer1},
		{Amount: 18.0, Price: 42.0, Status: models.CreditPending, FarmUID: &farm2, OwnerUID: farmer1},
		{Amount: 30.0, Price: 48.0, Status: models.CreditPending, FarmUID: &farm3, OwnerUID: farmer2},
		{Amount: 22.5, Price: 44.0, Status: models.CreditPending, FarmUID: &farm1, OwnerUID: farmer1},
	}
	uids := make([]string, 0, len(credits))
	for _, credit := range credits {
		uid, err := db.CreateCredit(ctx, credit)
		if err != nil {
			return err
		}
		uids = append(uids, uid)
	}

	// Жизненный цикл прогоняется через те же операции, что и API:
	// первый и четвертый кредиты верифицируются, третий покупается.
	for _, uid := range []string{uids[0], uids[2], uids[3]} {
		if _, err := db.VerifyCredit(ctx, uid); err != nil {
			return err
		}
	}
	buyer, err := db.GetUser(ctx, industry1)
	if err != nil {
		return err
	}
	if _, _, err := db.PurchaseCredit(ctx, uids[2], buyer.UID, buyer.Name); err != nil {
		return err
	}
	logger.Info("created sample carbon credits", slog.Int("count", len(credits)))

	logger.Info("test credentials",
		slog.String("farmer", "john@farmer.com / "+seedPassword),
		slog.String("industry", "contact@greenindustries.com / "+seedPassword))
	return nil
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func datePtr(year int, month time.Month, day int) *time.Time {
	d := date(year, month, day)
	return &d
}

func f(v float64) *float64 {
	return &v
}
