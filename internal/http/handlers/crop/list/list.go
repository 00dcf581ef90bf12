// Package list реализует HTTP-обработчик списка культур.
// Без параметров возвращаются культуры со всех ферм владельца,
// с параметром farm_uid — культуры конкретной фермы.
package list

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/agrigrow/agrigrow-backend/internal/http/middlewarectx"
	"github.com/agrigrow/agrigrow-backend/internal/http/response"
	"github.com/agrigrow/agrigrow-backend/internal/lib/sl"
	"github.com/agrigrow/agrigrow-backend/internal/models"
)

// CropService определяет методы бизнес-логики для списков культур.
type CropService interface {
	List(ctx context.Context, ownerUID string) ([]*models.Crop, error)
	ListByFarm(ctx context.Context, farmUID, ownerUID string) ([]*models.Crop, error)
}

// Handler обрабатывает HTTP-запросы списка культур.
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
// @Summary Список культур
// @Description Возвращает культуры текущего фермера, опционально по ферме
// @Tags Crops
// @Security BearerAuth
// @Produce  json
// @Param farm_uid query string false "UID фермы"
// @Success 200 {object} response.Response "Список культур"
// @Failure 401 {object} response.ErrorResponse "Не авторизован"
// @Failure 404 {object} response.ErrorResponse "Ферма не найдена"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /crops [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.crop.list"

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

	var crops []*models.Crop
	var err error
	if farmUID := r.URL.Query().Get("farm_uid"); farmUID != "" {
		crops, err = h.service.ListByFarm(r.Context(), farmUID, ownerUID)
	} else {
		crops, err = h.service.List(r.Context(), ownerUID)
	}
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			log.Info("farm not found")
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
