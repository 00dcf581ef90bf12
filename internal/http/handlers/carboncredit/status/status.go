// Package status реализует HTTP-обработчик смены статуса кредита
// его владельцем.
package status

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

// CreditService определяет методы бизнес-логики для смены статуса кредита.
type CreditService interface {
	UpdateStatus(ctx context.Context, creditUID, ownerUID, status string) (*models.CarbonCredit, error)
}

// Handler обрабатывает HTTP-запросы смены статуса кредита.
type Handler struct {
	log      *slog.Logger
	service  CreditService
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service CreditService) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Смена статуса кредита
// @Description Владельцу доступны отмена неверифицированного кредита и возврат отменённого в pending
// @Tags CarbonCredits
// @Security BearerAuth
// @Accept  json
// @Produce  json
// @Param uid path string true "UID кредита"
// @Param request body models.UpdateCreditStatusRequest true "Новый статус"
// @Success 200 {object} response.Response "Кредит с новым статусом"
// @Failure 400 {object} response.ErrorResponse "Некорректные данные"
// @Failure 401 {object} response.ErrorResponse "Не авторизован"
// @Failure 404 {object} response.ErrorResponse "Кредит не найден"
// @Failure 409 {object} response.ErrorResponse "Недопустимый переход"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации данных"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /carbon-credits/{uid}/status [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.carboncredit.status"

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
	creditUID := chi.URLParam(r, "uid")

	var req models.UpdateCreditStatusRequest
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

	credit, err := h.service.UpdateStatus(r.Context(), creditUID, ownerUID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrInvalidInput):
			log.Info("unknown credit status", slog.String("status", req.Status))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("unknown credit status"))
		case errors.Is(err, models.ErrNotFound):
			log.Info("credit not found", slog.String("uid", creditUID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("credit not found"))
		case errors.Is(err, models.ErrInvalidTransition):
			log.Info("invalid status transition", slog.String("status", req.Status))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("invalid status transition"))
		default:
			log.Error("failed to update credit status", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to update credit status"))
		}
		return
	}

	log.Info("credit status updated",
		slog.String("uid", creditUID), slog.String("status", string(credit.Status)))
	render.JSON(w, r, response.OKWithData(credit))
}
