// Package purchase реализует HTTP-обработчик покупки кредита предприятием.
package purchase

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

// CreditService определяет методы бизнес-логики для покупки кредита.
type CreditService interface {
	Purchase(ctx context.Context, creditUID string, buyer *models.User) (*models.CarbonCredit, error)
}

// Handler обрабатывает HTTP-запросы покупки кредита.
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
// @Summary Покупка кредита
// @Description Атомарно покупает верифицированный кредит от имени предприятия
// @Tags CarbonCredits
// @Security BearerAuth
// @Produce  json
// @Param uid path string true "UID кредита"
// @Success 200 {object} response.Response "Купленный кредит"
// @Failure 401 {object} response.ErrorResponse "Не авторизован"
// @Failure 403 {object} response.ErrorResponse "Доступно только предприятиям"
// @Failure 404 {object} response.ErrorResponse "Кредит не найден"
// @Failure 409 {object} response.ErrorResponse "Кредит уже продан или не верифицирован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /carbon-credits/{uid}/purchase [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.carboncredit.purchase"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	buyer, ok := middlewarectx.UserFromContext(r.Context())
	if !ok {
		log.Error("missing user in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}
	creditUID := chi.URLParam(r, "uid")

	credit, err := h.service.Purchase(r.Context(), creditUID, buyer)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNotFound):
			log.Info("credit not found", slog.String("uid", creditUID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("credit not found"))
		case errors.Is(err, models.ErrAlreadySold):
			log.Info("credit already sold", slog.String("uid", creditUID))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("credit has already been purchased"))
		case errors.Is(err, models.ErrNotPurchasable):
			log.Info("credit is not purchasable", slog.String("uid", creditUID))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("credit is not available for purchase"))
		default:
			log.Error("failed to purchase credit", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to purchase credit"))
		}
		return
	}

	log.Info("credit purchased", slog.String("uid", creditUID))
	render.JSON(w, r, response.OKWithData(credit))
}
