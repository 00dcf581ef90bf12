// Package middlewarectx содержит HTTP middleware для обработки и проверки JWT токенов.
//
// JWTMiddleware проверяет наличие и валидность JWT токена в заголовке Authorization,
// загружает пользователя из хранилища и в случае успеха добавляет в контекст
// UID, роль и имя пользователя для дальнейшего использования в обработчиках.
//
// В случае ошибки проверки возвращает HTTP 401 Unauthorized с сообщением об ошибке.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/agrigrow/agrigrow-backend/internal/http/response"
	customjwt "github.com/agrigrow/agrigrow-backend/internal/lib/jwt"
	"github.com/agrigrow/agrigrow-backend/internal/lib/sl"
	"github.com/agrigrow/agrigrow-backend/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

const (
	// UserUID — ключ для UID пользователя в контексте
	UserUID Key = "user_uid"
	// Role — ключ для роли пользователя в контексте
	Role Key = "role"
	// UserName — ключ для имени пользователя в контексте
	UserName Key = "user_name"
)

// UserFromContext собирает пользователя из значений, положенных
// в контекст JWTMiddleware. Возвращает false вне защищённых маршрутов.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	uid, ok := ctx.Value(UserUID).(string)
	if !ok {
		return nil, false
	}
	role, ok := ctx.Value(Role).(string)
	if !ok {
		return nil, false
	}
	name, _ := ctx.Value(UserName).(string)
	return &models.User{
		UID:  uid,
		Name: name,
		Role: models.Role(role),
	}, true
}

// UserProvider описывает интерфейс загрузки пользователя по UID.
type UserProvider interface {
	GetUser(ctx context.Context, userUID string) (*models.User, error)
}

// JWTMiddleware возвращает HTTP middleware, который проверяет JWT в заголовке Authorization.
//
// Токен парсится локально, затем пользователь загружается из хранилища:
// токен с UID удалённого или несуществующего пользователя не проходит.
// Если токен валиден, добавляет UID, роль и имя пользователя в контекст запроса,
// иначе возвращает ошибку с HTTP статусом 401 Unauthorized.
func JWTMiddleware(maker customjwt.Maker, users UserProvider, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			const op = "middlewarectx.JWTMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			if !strings.HasPrefix(authHeader, "Bearer ") {
				log.Error("missing or invalid authorization header")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("missing or invalid authorization header"))
				return
			}
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			claims, err := maker.ParseToken(tokenStr)
			if err != nil {
				log.Error("invalid or expired token", sl.Err(err))
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid or expired token"))
				return
			}

			user, err := users.GetUser(r.Context(), claims.UserUID)
			if err != nil {
				log.Error("token user not found", sl.Err(err))
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid or expired token"))
				return
			}

			ctx := context.WithValue(r.Context(), UserUID, user.UID)
			ctx = context.WithValue(ctx, Role, string(user.Role))
			ctx = context.WithValue(ctx, UserName, user.Name)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
