// Package read реализует HTTP-обработчик чтения кредита по UID
// с учётом правил видимости для роли.
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

// CreditService определяет методы бизнес-логики для чтения кредита.
type CreditService interface {
	Read(ctx context.Context, creditUID string, user *models.User) (*models.CarbonCredit, error)
}

// Handler обрабатывает HTTP-запросы чтения кредита.
type Handler struct {
	log     *slog.Logger
	service CreditService
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service CreditService) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Чтение кредита
// @Description Возвращает кредит, если он видим текущему пользователю
// @Tags CarbonCredits
// @Security BearerAuth
// @Produce  json
// @Param uid path string true "UID кредита"
// @Success 200 {object} response.Response "Кредит"
// @Failure 401 {object} response.ErrorResponse "Не авторизован"
// @Failure 404 {object} response.ErrorResponse "Кредит не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /carbon-credits/{uid} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.carboncredit.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	user, ok := middlewarectx.UserFromContext(r.Context())
	if !ok {
		log.Error("missing user in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}
	creditUID := chi.URLParam(r, "uid")

	credit, err := h.service.Read(r.Context(), creditUID, user)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			log.Info("credit not found", slog.String("uid", creditUID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("credit not found"))
			return
		}
		log.Error("failed to read credit", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to read credit"))
		return
	}

	render.JSON(w, r, response.OKWithData(credit))
}
