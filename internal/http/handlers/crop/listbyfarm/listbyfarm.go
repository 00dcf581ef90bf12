// Package listbyfarm реализует HTTP-обработчик списка культур
// конкретной фермы текущего фермера.
package listbyfarm

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

// CropService определяет методы бизнес-логики для списка культур фермы.
type CropService interface {
	ListByFarm(ctx context.Context, farmUID, ownerUID string) ([]*models.Crop, error)
}

// Handler обрабатывает HTTP-запросы списка культур фермы.
type Handler struct {
	log     *slog.Logger
	service CropService
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service CropService) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список культур фермы
// @Description Возвращает культуры конкретной фермы текущего фермера
// @Tags Crops
// @Security BearerAuth
// @Produce  json
// @Param uid path string true "UID фермы"
// @Success 200 {object} response.Response "Список культур"
// @Failure 401 {object} response.ErrorResponse "Не авторизован"
// @Failure 404 {object} response.ErrorResponse "Ферма не найдена"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /crops/farm/{uid} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.crop.listbyfarm"

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

	crops, err := h.service.ListByFarm(r.Context(), farmUID, ownerUID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			log.Info("farm not found", slog.String("uid", farmUID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("farm not found"))
			return
		}
		log.Error("failed to list crops", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list crops"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"crops": crops,
		"count": len(crops),
	}))
}
