// Package read реализует HTTP-обработчик чтения профиля предприятия по UID.
package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/agrigrow/agrigrow-backend/internal/http/response"
	"github.com/agrigrow/agrigrow-backend/internal/lib/sl"
	"github.com/agrigrow/agrigrow-backend/internal/models"
)

// ProfileService определяет методы бизнес-логики для чтения профиля.
type ProfileService interface {
	Read(ctx context.Context, profileUID string) (*models.IndustryProfile, error)
}

// Handler обрабатывает HTTP-запросы чтения профиля.
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
// @Summary Чтение профиля предприятия
// @Description Возвращает публичный профиль предприятия по UID
// @Tags IndustryProfiles
// @Security BearerAuth
// @Produce  json
// @Param uid path string true "UID профиля"
// @Success 200 {object} response.Response "Профиль"
// @Failure 401 {object} response.ErrorResponse "Не авторизован"
// @Failure 404 {object} response.ErrorResponse "Профиль не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /industry-profiles/{uid} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.industryprofile.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	profileUID := chi.URLParam(r, "uid")

	profile, err := h.service.Read(r.Context(), profileUID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			log.Info("profile not found", slog.String("uid", profileUID))
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
