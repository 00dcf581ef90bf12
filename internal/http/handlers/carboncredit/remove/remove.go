// Package remove реализует HTTP-обработчик удаления кредита.
// Удалять можно только кредит в статусе pending.
package remove

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

// CreditService определяет методы бизнес-логики для удаления кредита.
type CreditService interface {
	Remove(ctx context.Context, creditUID, ownerUID string) error
}

// Handler обрабатывает HTTP-запросы удаления кредита.
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
// @Summary Удаление кредита
// @Description Удаляет кредит текущего фермера в статусе pending
// @Tags CarbonCredits
// @Security BearerAuth
// @Produce  json
// @Param uid path string true "UID кредита"
// @Success 200 {object} response.Response "Кредит удален"
// @Failure 401 {object} response.ErrorResponse "Не авторизован"
// @Failure 404 {object} response.ErrorResponse "Кредит не найден"
// @Failure 409 {object} response.ErrorResponse "Кредит не в статусе pending"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /carbon-credits/{uid} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.carboncredit.remove"

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

	if err := h.service.Remove(r.Context(), creditUID, ownerUID); err != nil {
		switch {
		case errors.Is(err, models.ErrNotFound):
			log.Info("credit not found", slog.String("uid", creditUID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("credit not found"))
		case errors.Is(err, models.ErrInvalidState):
			log.Info("credit is not pending", slog.String("uid", creditUID))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("only pending credits can be deleted"))
		default:
			log.Error("failed to remove credit", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to remove credit"))
		}
		return
	}

	log.Info("credit removed", slog.String("uid", creditUID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"message": "credit deleted successfully",
	}))
}
