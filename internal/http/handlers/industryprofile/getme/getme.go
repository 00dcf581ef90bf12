// Package getme реализует HTTP-обработчик чтения профиля текущего предприятия.
package getme

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/agrigrow/agrigrow-backend/internal/http/middlewarectx"
	"github.com/agrigrow/agrigrow-backend/internal/http/response"
	"github.com/agrigrow/agrigrow-backend/internal/lib/sl"
	"github.com/agrigrow/agrigrow-backend/internal/models"
)

// ProfileService определяет методы бизнес-логики для чтения своего профиля.
type ProfileService interface {
	GetMe(ctx context.Context, ownerUID string) (*models.IndustryProfile, error)
}

// Handler обрабатывает HTTP-запросы чтения своего профиля.
type Handler struct {
	log     *slog.Logger
	service ProfileService
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service ProfileService) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Профиль текущего предприятия
// @Description Возвращает профиль текущего предприятия
// @Tags IndustryProfiles
// @Security BearerAuth
// @Produce  json
// @Success 200 {object} response.Response "Профиль"
// @Failure 401 {object} response.ErrorResponse "Не авторизован"
// @Failure 404 {object} response.ErrorResponse "Профиль ещё не создан"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /industry-profiles/me [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.industryprofile.getme"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	ownerUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok {
		log.Error("missing user uid in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	profile, err := h.service.GetMe(r.Context(), ownerUID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			log.Info("profile not found", slog.String("owner_uid", ownerUID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("profile not found"))
			return
		}
		log.Error("failed to read profile", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to read profile"))
		return
	}

	render.JSON(w, r, response.OKWithData(profile))
}
