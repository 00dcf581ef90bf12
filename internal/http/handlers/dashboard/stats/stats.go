// Package stats реализует HTTP-обработчик сводной статистики
// для панели мониторинга.
package stats

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/agrigrow/agrigrow-backend/internal/http/middlewarectx"
	"github.com/agrigrow/agrigrow-backend/internal/http/response"
	"github.com/agrigrow/agrigrow-backend/internal/lib/sl"
	"github.com/agrigrow/agrigrow-backend/internal/models"
)

// StatsService определяет методы бизнес-логики панели мониторинга.
type StatsService interface {
	Dashboard(ctx context.Context, user *models.User) (any, error)
}

// Handler обрабатывает HTTP-запросы сводной статистики.
type Handler struct {
	log     *slog.Logger
	service StatsService
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service StatsService) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Сводная статистика
// @Description Фермеру — сводка по хозяйству, предприятию — по покупкам
// @Tags Dashboard
// @Security BearerAuth
// @Produce  json
// @Success 200 {object} response.Response "Сводка"
// @Failure 401 {object} response.ErrorResponse "Не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /dashboard/stats [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.dashboard.stats"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	user, ok := middlewarectx.UserFromContext(r.Context())
	if !ok {
		log.Error("missing user in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	summary, err := h.service.Dashboard(r.Context(), user)
	if err != nil {
		log.Error("failed to build dashboard stats", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to build dashboard stats"))
		return
	}

	render.JSON(w, r, response.OKWithData(summary))
}
