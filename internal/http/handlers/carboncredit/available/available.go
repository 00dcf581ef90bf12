// Package available реализует HTTP-обработчик витрины доступных
// к покупке кредитов.
package available

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/agrigrow/agrigrow-backend/internal/http/response"
	"github.com/agrigrow/agrigrow-backend/internal/lib/sl"
	"github.com/agrigrow/agrigrow-backend/internal/models"
)

// CreditService определяет методы бизнес-логики для витрины кредитов.
type CreditService interface {
	Available(ctx context.Context) ([]*models.CarbonCredit, error)
}

// Handler обрабатывает HTTP-запросы витрины кредитов.
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
// @Summary Витрина доступных кредитов
// @Description Возвращает верифицированные непроданные кредиты
// @Tags CarbonCredits
// @Security BearerAuth
// @Produce  json
// @Success 200 {object} response.Response "Список кредитов"
// @Failure 401 {object} response.ErrorResponse "Не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /carbon-credits/available [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.carboncredit.available"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	credits, err := h.service.Available(r.Context())
	if err != nil {
		log.Error("failed to list available credits", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list available credits"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"credits": credits,
		"count":   len(credits),
	}))
}
