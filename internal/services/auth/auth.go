// Package services содержит логику бизнес-уровня для регистрации
// и аутентификации пользователей маркетплейса.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/agrigrow/agrigrow-backend/internal/lib/jwt"
	"github.com/agrigrow/agrigrow-backend/internal/lib/password"
	"github.com/agrigrow/agrigrow-backend/internal/models"
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя и возвращает его UID.
	RegisterUser(ctx context.Context, user models.User) (string, error)

	// GetUserByEmail возвращает пользователя по email или models.ErrNotFound.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// AuthService отвечает за регистрацию и вход пользователей с выдачей JWT.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
	log      *slog.Logger
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker, log *slog.Logger) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
		log:      log,
	}
}

// Register создает нового пользователя с хэшированием пароля.
// Роль фиксируется при регистрации и дальше не меняется.
func (s *AuthService) Register(ctx context.Context, name, email, rawPassword, role string) (string, error) {
	const op = "services.auth.Register"

	parsedRole, ok := models.ParseRole(role)
	if !ok {
		return "", fmt.Errorf("%s: unknown role %q: %w", op, role, models.ErrInvalidInput)
	}
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hashed,
		Role:         parsedRole,
	}
	uid, err := s.users.RegisterUser(ctx, user)
	if err != nil {
		return "", err
	}
	s.log.Info("registered new user", slog.String("uid", uid), slog.String("role", role))
	return uid, nil
}

// Login проверяет email, пароль и заявленную роль пользователя
// и генерирует JWT. Несовпадение роли с сохранённой неотличимо
// для клиента от неверного пароля.
func (s *AuthService) Login(ctx context.Context, email, rawPassword, role string) (string, *models.User, error) {
	const op = "services.auth.Login"

	parsedRole, ok := models.ParseRole(role)
	if !ok {
		return "", nil, fmt.Errorf("%s: unknown role %q: %w", op, role, models.ErrInvalidInput)
	}
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return "", nil, fmt.Errorf("%s: %w", op, models.ErrInvalidCredentials)
		}
		return "", nil, err
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, models.ErrInvalidCredentials)
	}
	if user.Role != parsedRole {
		return "", nil, fmt.Errorf("%s: %w", op, models.ErrInvalidCredentials)
	}

	token, err := s.jwtMaker.GenerateToken(user.UID, string(user.Role))
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	return token, user, nil
}
