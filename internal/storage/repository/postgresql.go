// Package repository реализует хранилище данных на основе PostgreSQL
// для маркетплейса: пользователи, фермы, культуры, углеродные кредиты
// и профили предприятий. Все выборки списков заранее ограничены
// владельцем на уровне SQL, постфильтрация в памяти не используется.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/agrigrow/agrigrow-backend/internal/models"
)

// Storage инкапсулирует соединение с базой данных PostgreSQL
// и реализует методы работы с доменными сущностями.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL и проверяет его доступность.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// CheckDatabaseReady проверяет готовность базы данных.
func CheckDatabaseReady(storage *Storage) error {
	var exists bool
	err := storage.DB.QueryRow(`SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_name = 'carbon_credits'
    )`).Scan(&exists)
	if err != nil || !exists {
		return fmt.Errorf("required table carbon_credits missing or query error: %w", err)
	}
	return nil
}

// mapRowError переводит ошибки уровня database/sql в доменные:
// отсутствие строки — models.ErrNotFound, нарушение уникальности —
// models.ErrDuplicateEmail.
func mapRowError(op string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return fmt.Errorf("%s: %w", op, models.ErrDuplicateEmail)
	}
	return fmt.Errorf("%s: %w", op, err)
}
