// Package read реализует HTTP-обработчик чтения фермы по UID.
package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/agrigrow/agrigrow-backend/internal/http/middlewarectx"
	"github.com/agrigrow/agrigrow-backend/internal/http/response"
	"github.com/agrigrow/agrigrow-backend/internal/lib/sl"
	"github.com/agrigrow/agrigrow-backend/internal/models"
)

// FarmService определяет методы бизнес-логики для чтения фермы.
type FarmService interface {
	Read(ctx context.Context, farmUID, ownerUID string) (*models.Farm, error)
}

// Handler обрабатывает HTTP-запросы чтения фермы.
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
// @Summary Чтение фермы
// @Description Возвращает ферму текущего фермера по UID
// @Tags Farms
// @Security BearerAuth
// @Produce  json
// @Param uid path string true "UID фермы"
// @Success 200 {object} response.Response "Ферма"
// @Failure 401 {object} response.ErrorResponse "Не авторизован"
// @Failure 404 {object} response.ErrorResponse "Ферма не найдена"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /farms/{uid} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.farm.read"

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
	farmUID := chi.URLParam(r, "uid")

	farm, err := h.service.Read(r.Context(), farmUID, ownerUID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			log.Info("farm not found", slog.String("uid", farmUID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("farm not found"))
			return
		}
		log.Error("failed to read farm", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to read farm"))
		return
	}

	render.JSON(w, r, response.OKWithData(farm))
}
