// Package list реализует HTTP-обработчик списка кредитов пользователя.
// Фермер видит выставленные им кредиты, предприятие — купленные.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/agrigrow/agrigrow-backend/internal/http/middlewarectx"
	"github.com/agrigrow/agrigrow-backend/internal/http/response"
	"github.com/agrigrow/agrigrow-backend/internal/lib/sl"
	"github.com/agrigrow/agrigrow-backend/internal/models"
)

// CreditService определяет методы бизнес-логики для списка кредитов.
type CreditService interface {
	List(ctx context.Context, user *models.User) ([]*models.CarbonCredit, error)
}

// Handler обрабатывает HTTP-запросы списка кредитов.
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
// @Summary Список кредитов пользователя
// @Description Фермеру — его кредиты, предприятию — купленные
// @Tags CarbonCredits
// @Security BearerAuth
// @Produce  json
// @Success 200 {object} response.Response "Список кредитов"
// @Failure 401 {object} response.ErrorResponse "Не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /carbon-credits [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.carboncredit.list"

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

	credits, err := h.service.List(r.Context(), user)
	if err != nil {
		log.Error("failed to list credits", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list credits"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"credits": credits,
		"count":   len(credits),
	}))
}
