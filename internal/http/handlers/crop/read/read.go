// Package read реализует HTTP-обработчик чтения культуры по UID.
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

// CropService определяет методы бизнес-логики для чтения культуры.
type CropService interface {
	Read(ctx context.Context, cropUID, ownerUID string) (*models.Crop, error)
}

// Handler обрабатывает HTTP-запросы чтения культуры.
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
// @Summary Чтение культуры
// @Description Возвращает культуру с фермы текущего фермера
// @Tags Crops
// @Security BearerAuth
// @Produce  json
// @Param uid path string true "UID культуры"
// @Success 200 {object} response.Response "Культура"
// @Failure 401 {object} response.ErrorResponse "Не авторизован"
// @Failure 404 {object} response.ErrorResponse "Культура не найдена"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /crops/{uid} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.crop.read"

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

	crop, err := h.service.Read(r.Context(), cropUID, ownerUID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			log.Info("crop not found", slog.String("uid", cropUID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("crop not found"))
			return
		}
		log.Error("failed to read crop", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to read crop"))
		return
	}

	render.JSON(w, r, response.OKWithData(crop))
}
