// Package list реализует HTTP-обработчик каталога профилей предприятий.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/agrigrow/agrigrow-backend/internal/http/response"
	"github.com/agrigrow/agrigrow-backend/internal/lib/sl"
	"github.com/agrigrow/agrigrow-backend/internal/models"
)

// ProfileService определяет методы бизнес-логики для каталога профилей.
type ProfileService interface {
	List(ctx context.Context) ([]*models.IndustryProfile, error)
}

// Handler обрабатывает HTTP-запросы каталога профилей.
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
// @Summary Каталог профилей предприятий
// @Description Возвращает все профили предприятий маркетплейса
// @Tags IndustryProfiles
// @Security BearerAuth
// @Produce  json
// @Success 200 {object} response.Response "Список профилей"
// @Failure 401 {object} response.ErrorResponse "Не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /industry-profiles [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.industryprofile.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	profiles, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list profiles", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list profiles"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"profiles": profiles,
		"count":    len(profiles),
	}))
}
