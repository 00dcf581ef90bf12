// Package create реализует HTTP-обработчик создания культуры.
package create

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/agrigrow/agrigrow-backend/internal/http/middlewarectx"
	"github.com/agrigrow/agrigrow-backend/internal/http/response"
	"github.com/agrigrow/agrigrow-backend/internal/lib/sl"
	"github.com/agrigrow/agrigrow-backend/internal/models"
)

// CropService определяет методы бизнес-логики для создания культуры.
type CropService interface {
	Create(ctx context.Context, ownerUID string, req models.CreateCropRequest) (string, error)
}

// Handler обрабатывает HTTP-запросы создания культуры.
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
// @Summary Создание культуры
// @Description Создает культуру на ферме текущего фермера
// @Tags Crops
// @Security BearerAuth
// @Accept  json
// @Produce  json
// @Param request body models.CreateCropRequest true "Данные культуры"
// @Success 201 {object} response.Response "UID созданной культуры"
// @Failure 400 {object} response.ErrorResponse "Некорректные данные"
// @Failure 401 {object} response.ErrorResponse "Не авторизован"
// @Failure 404 {object} response.ErrorResponse "Ферма не найдена"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации данных"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /crops [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.crop.create"

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

	var req models.CreateCropRequest
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

	cropUID, err := h.service.Create(r.Context(), ownerUID, req)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrInvalidInput):
			log.Info("invalid crop data", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid crop data"))
		case errors.Is(err, models.ErrNotFound):
			log.Info("farm not found", slog.String("farm_uid", req.FarmUID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("farm not found"))
		default:
			log.Error("failed to create crop", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to create crop"))
		}
		return
	}

	log.Info("crop created", slog.String("uid", cropUID))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.OKWithData(map[string]any{
		"uid": cropUID,
	}))
}
