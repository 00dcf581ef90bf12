// Package create реализует HTTP-обработчик создания углеродного кредита.
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

// CreditService определяет методы бизнес-логики для создания кредита.
type CreditService interface {
	Create(ctx context.Context, ownerUID string, req models.CreateCreditRequest) (string, error)
}

// Handler обрабатывает HTTP-запросы создания кредита.
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
// @Summary Создание углеродного кредита
// @Description Создает кредит текущего фермера в статусе pending
// @Tags CarbonCredits
// @Security BearerAuth
// @Accept  json
// @Produce  json
// @Param request body models.CreateCreditRequest true "Данные кредита"
// @Success 201 {object} response.Response "UID созданного кредита"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Не авторизован"
// @Failure 404 {object} response.ErrorResponse "Ферма не найдена"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации данных"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /carbon-credits [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.carboncredit.create"

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

	var req models.CreateCreditRequest
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

	creditUID, err := h.service.Create(r.Context(), ownerUID, req)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			log.Info("farm not found", slog.String("farm_uid", req.FarmUID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("farm not found"))
			return
		}
		log.Error("failed to create credit", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to create credit"))
		return
	}

	log.Info("credit created", slog.String("uid", creditUID))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.OKWithData(map[string]any{
		"uid":    creditUID,
		"status": models.CreditPending,
	}))
}
