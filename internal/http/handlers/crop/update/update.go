// Package update реализует HTTP-обработчик частичного обновления культуры.
package update

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/agrigrow/agrigrow-backend/internal/http/middlewarectx"
	"github.com/agrigrow/agrigrow-backend/internal/http/response"
	"github.com/agrigrow/agrigrow-backend/internal/lib/sl"
	"github.com/agrigrow/agrigrow-backend/internal/models"
)

// CropService определяет методы бизнес-логики для обновления культуры.
type CropService interface {
	Update(ctx context.Context, cropUID, ownerUID string, req models.UpdateCropRequest) (*models.Crop, error)
}

// Handler обрабатывает HTTP-запросы обновления культуры.
type Handler struct {
	log      *slog.Logger
	service  CropService
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service CropService) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Обновление культуры
// @Description Обновляет переданные поля культуры текущего фермера
// @Tags Crops
// @Security BearerAuth
// @Accept  json
// @Produce  json
// @Param uid path string true "UID культуры"
// @Param request body models.UpdateCropRequest true "Изменяемые поля"
// @Success 200 {object} response.Response "Обновленная культура"
// @Failure 400 {object} response.ErrorResponse "Некорректные данные"
// @Failure 401 {object} response.ErrorResponse "Не авторизован"
// @Failure 404 {object} response.ErrorResponse "Культура не найдена"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации данных"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /crops/{uid} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.crop.update"

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

	var req models.UpdateCropRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	crop, err := h.service.Update(r.Context(), cropUID, ownerUID, req)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrInvalidInput):
			log.Info("invalid crop data", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid crop data"))
		case errors.Is(err, models.ErrNotFound):
			log.Info("crop not found", slog.String("uid", cropUID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("crop not found"))
		default:
			log.Error("failed to update crop", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to update crop"))
		}
		return
	}

	log.Info("crop updated", slog.String("uid", cropUID))
	render.JSON(w, r, response.OKWithData(crop))
}
