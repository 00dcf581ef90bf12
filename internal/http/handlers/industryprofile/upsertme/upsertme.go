// Package upsertme реализует HTTP-обработчик создания и обновления
// профиля текущего предприятия.
package upsertme

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

// ProfileService определяет методы бизнес-логики для upsert профиля.
type ProfileService interface {
	UpsertMe(ctx context.Context, ownerUID string, req models.UpsertProfileRequest) (*models.IndustryProfile, error)
}

// Handler обрабатывает HTTP-запросы создания и обновления профиля.
type Handler struct {
	log      *slog.Logger
	service  ProfileService
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service ProfileService) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Создание или обновление профиля предприятия
// @Description Идемпотентный upsert профиля текущего предприятия
// @Tags IndustryProfiles
// @Security BearerAuth
// @Accept  json
// @Produce  json
// @Param request body models.UpsertProfileRequest true "Данные профиля"
// @Success 200 {object} response.Response "Профиль"
// @Failure 400 {object} response.ErrorResponse "Некорректные данные"
// @Failure 401 {object} response.ErrorResponse "Не авторизован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации данных"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /industry-profiles/me [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.industryprofile.upsertme"

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

	var req models.UpsertProfileRequest
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

	profile, err := h.service.UpsertMe(r.Context(), ownerUID, req)
	if err != nil {
		if errors.Is(err, models.ErrInvalidInput) {
			log.Info("unknown industry type", slog.String("industry_type", req.IndustryType))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("unknown industry type"))
			return
		}
		log.Error("failed to upsert profile", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to save profile"))
		return
	}

	log.Info("profile upserted", slog.String("uid", profile.UID))
	render.JSON(w, r, response.OKWithData(profile))
}
