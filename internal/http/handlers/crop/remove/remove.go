// Package remove реализует HTTP-обработчик удаления культуры.
package remove

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

// CropService определяет методы бизнес-логики для удаления культуры.
type CropService interface {
	Remove(ctx context.Context, cropUID, ownerUID string) error
}

// Handler обрабатывает HTTP-запросы удаления культуры.
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
// @Summary Удаление культуры
// @Description Удаляет культуру с фермы текущего фермера
// @Tags Crops
// @Security BearerAuth
// @Produce  json
// @Param uid path string true "UID культуры"
// @Success 200 {object} response.Response "Культура удалена"
// @Failure 401 {object} response.ErrorResponse "Не авторизован"
// @Failure 404 {object} response.ErrorResponse "Культура не найдена"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /crops/{uid} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.crop.remove"

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
	cropUID := chi.URLParam(r, "uid")

	if err := h.service.Remove(r.Context(), cropUID, ownerUID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			log.Info("crop not found", slog.String("uid", cropUID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("crop not found"))
			return
		}
		log.Error("failed to remove crop", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to remove crop"))
		return
	}

	log.Info("crop removed", slog.String("uid", cropUID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"message": "crop deleted successfully",
	}))
}
