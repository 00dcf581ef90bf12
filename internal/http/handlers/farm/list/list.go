// Package list реализует HTTP-обработчик списка ферм владельца.
package list

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

// FarmService определяет методы бизнес-логики для списка ферм.
type FarmService interface {
	List(ctx context.Context, ownerUID string) ([]*models.Farm, error)
}

// Handler обрабатывает HTTP-запросы списка ферм.
type Handler struct {
	log     *slog.Logger
	service FarmService
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service FarmService) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список ферм
// @Description Возвращает фермы текущего фермера
// @Tags Farms
// @Security BearerAuth
// @Produce  json
// @Success 200 {object} response.Response "Список ферм"
// @Failure 401 {object} response.ErrorResponse "Не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /farms [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.farm.list"

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

	farms, err := h.service.List(r.Context(), ownerUID)
	if err != nil {
		log.Error("failed to list farms", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list farms"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"farms": farms,
		"count": len(farms),
	}))
}
