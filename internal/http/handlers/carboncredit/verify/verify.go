// Package verify реализует HTTP-обработчик верификации кредита.
// Маршрут защищён ключом верификатора, а не JWT: подтверждение
// выполняет внешняя система, а не владелец.
package verify

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/agrigrow/agrigrow-backend/internal/http/response"
	"github.com/agrigrow/agrigrow-backend/internal/lib/sl"
	"github.com/agrigrow/agrigrow-backend/internal/models"
)

// CreditService определяет методы бизнес-логики для верификации кредита.
type CreditService interface {
	Verify(ctx context.Context, creditUID string) (*models.CarbonCredit, error)
}

// Handler обрабатывает HTTP-запросы верификации кредита.
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
// @Summary Верификация кредита
// @Description Переводит кредит pending -> verified по ключу верификатора
// @Tags CarbonCredits
// @Produce  json
// @Param uid path string true "UID кредита"
// @Param X-Verification-Key header string true "Ключ верификатора"
// @Success 200 {object} response.Response "Верифицированный кредит"
// @Failure 403 {object} response.ErrorResponse "Неверный ключ"
// @Failure 404 {object} response.ErrorResponse "Кредит не найден"
// @Failure 409 {object} response.ErrorResponse "Кредит не в статусе pending"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /carbon-credits/{uid}/verify [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.carboncredit.verify"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	creditUID := chi.URLParam(r, "uid")

	credit, err := h.service.Verify(r.Context(), creditUID)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNotFound):
			log.Info("credit not found", slog.String("uid", creditUID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("credit not found"))
		case errors.Is(err, models.ErrInvalidTransition):
			log.Info("credit is not pending", slog.String("uid", creditUID))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("credit is not pending verification"))
		default:
			log.Error("failed to verify credit", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to verify credit"))
		}
		return
	}

	log.Info("credit verified", slog.String("uid", creditUID))
	render.JSON(w, r, response.OKWithData(credit))
}
