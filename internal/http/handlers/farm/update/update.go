// Package update реализует HTTP-обработчик частичного обновления фермы.
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

// FarmService определяет методы бизнес-логики для обновления фермы.
type FarmService interface {
	Update(ctx context.Context, farmUID, ownerUID string, req models.UpdateFarmRequest) (*models.Farm, error)
}

// Handler обрабатывает HTTP-запросы обновления фермы.
type Handler struct {
	log      *slog.Logger
	service  FarmService
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service FarmService) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Обновление фермы
// @Description Обновляет переданные поля фермы текущего фермера
// @Tags Farms
// @Security BearerAuth
// @Accept  json
// @Produce  json
// @Param uid path string true "UID фермы"
// @Param request body models.UpdateFarmRequest true "Изменяемые поля"
// @Success 200 {object} response.Response "Обновленная ферма"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Не авторизован"
// @Failure 404 {object} response.ErrorResponse "Ферма не найдена"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации данных"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /farms/{uid} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.farm.update"

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

	var req models.UpdateFarmRequest
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

	farm, err := h.service.Update(r.Context(), farmUID, ownerUID, req)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			log.Info("farm not found", slog.String("uid", farmUID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("farm not found"))
			return
		}
		log.Error("failed to update farm", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to update farm"))
		return
	}

	log.Info("farm updated", slog.String("uid", farmUID))
	render.JSON(w, r, response.OKWithData(farm))
}
