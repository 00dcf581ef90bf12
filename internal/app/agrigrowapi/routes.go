// Package agrigrowapi предоставляет маршруты основного приложения.
package agrigrowapi

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/streadway/amqp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/agrigrow/agrigrow-backend/internal/cache"
	"github.com/agrigrow/agrigrow-backend/internal/config"
	"github.com/agrigrow/agrigrow-backend/internal/http/handlers/auth/login"
	"github.com/agrigrow/agrigrow-backend/internal/http/handlers/auth/register"
	creditavailable "github.com/agrigrow/agrigrow-backend/internal/http/handlers/carboncredit/available"
	creditcreate "github.com/agrigrow/agrigrow-backend/internal/http/handlers/carboncredit/create"
	creditlist "github.com/agrigrow/agrigrow-backend/internal/http/handlers/carboncredit/list"
	creditpurchase "github.com/agrigrow/agrigrow-backend/internal/http/handlers/carboncredit/purchase"
	creditread "github.com/agrigrow/agrigrow-backend/internal/http/handlers/carboncredit/read"
	creditremove "github.com/agrigrow/agrigrow-backend/internal/http/handlers/carboncredit/remove"
	creditstatus "github.com/agrigrow/agrigrow-backend/internal/http/handlers/carboncredit/status"
	creditverify "github.com/agrigrow/agrigrow-backend/internal/http/handlers/carboncredit/verify"
	cropcreate "github.com/agrigrow/agrigrow-backend/internal/http/handlers/crop/create"
	croplist "github.com/agrigrow/agrigrow-backend/internal/http/handlers/crop/list"
	croplistbyfarm "github.com/agrigrow/agrigrow-backend/internal/http/handlers/crop/listbyfarm"
	cropread "github.com/agrigrow/agrigrow-backend/internal/http/handlers/crop/read"
	cropremove "github.com/agrigrow/agrigrow-backend/internal/http/handlers/crop/remove"
	cropupdate "github.com/agrigrow/agrigrow-backend/internal/http/handlers/crop/update"
	dashboardstats "github.com/agrigrow/agrigrow-backend/internal/http/handlers/dashboard/stats"
	farmcreate "github.com/agrigrow/agrigrow-backend/internal/http/handlers/farm/create"
	farmlist "github.com/agrigrow/agrigrow-backend/internal/http/handlers/farm/list"
	farmread "github.com/agrigrow/agrigrow-backend/internal/http/handlers/farm/read"
	farmremove "github.com/agrigrow/agrigrow-backend/internal/http/handlers/farm/remove"
	farmupdate "github.com/agrigrow/agrigrow-backend/internal/http/handlers/farm/update"
	"github.com/agrigrow/agrigrow-backend/internal/http/handlers/health"
	profilegetme "github.com/agrigrow/agrigrow-backend/internal/http/handlers/industryprofile/getme"
	profilelist "github.com/agrigrow/agrigrow-backend/internal/http/handlers/industryprofile/list"
	profileread "github.com/agrigrow/agrigrow-backend/internal/http/handlers/industryprofile/read"
	profileupsertme "github.com/agrigrow/agrigrow-backend/internal/http/handlers/industryprofile/upsertme"
	"github.com/agrigrow/agrigrow-backend/internal/http/middlewarectx"
	customjwt "github.com/agrigrow/agrigrow-backend/internal/lib/jwt"
	"github.com/agrigrow/agrigrow-backend/internal/models"
	authservice "github.com/agrigrow/agrigrow-backend/internal/services/auth"
	creditservice "github.com/agrigrow/agrigrow-backend/internal/services/carboncredit"
	cropservice "github.com/agrigrow/agrigrow-backend/internal/services/crop"
	farmservice "github.com/agrigrow/agrigrow-backend/internal/services/farm"
	profileservice "github.com/agrigrow/agrigrow-backend/internal/services/industryprofile"
	statsservice "github.com/agrigrow/agrigrow-backend/internal/services/stats"
	"github.com/agrigrow/agrigrow-backend/internal/storage/repository"
)

// RouteServices — зависимости маршрутов приложения.
type RouteServices struct {
	JWTMaker customjwt.Maker
	Users    middlewarectx.UserProvider
	Storage  *repository.Storage
	Cache    *cache.Cache
	Rabbit   *amqp.Connection
	Auth     *authservice.AuthService
	Farms    *farmservice.FarmService
	Crops    *cropservice.CropService
	Credits  *creditservice.CarbonCreditService
	Profiles *profileservice.ProfileService
	Stats    *statsservice.StatsService
}

// RegisterRoutes регистрирует все маршруты приложения.
//
// Ресурсы фермера (фермы, культуры, выставление кредитов) закрыты ролью
// farmer, покупка — ролью industry. Верификация кредита стоит вне JWT:
// её выполняет внешний верификатор по ключу.
func RegisterRoutes(r chi.Router, logger *slog.Logger, cfg *config.Config, s RouteServices) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/auth/signup", register.New(logger, s.Auth).ServeHTTP)
		r.Post("/auth/login", login.New(logger, s.Auth).ServeHTTP)
		r.Get("/health", health.New(logger, s.Storage, s.Rabbit, s.Cache).ServeHTTP)

		// Верификация кредитов: доступ по ключу внешнего верификатора
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.VerificationKeyMiddleware(cfg.VerificationKey, logger))
			r.Post("/carbon-credits/{uid}/verify", creditverify.New(logger, s.Credits).ServeHTTP)
		})

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(s.JWTMaker, s.Users, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			// Ресурсы фермера
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequireRole(logger, models.RoleFarmer))

				r.Post("/farms", farmcreate.New(logger, s.Farms).ServeHTTP)
				r.Get("/farms", farmlist.New(logger, s.Farms).ServeHTTP)
				r.Get("/farms/{uid}", farmread.New(logger, s.Farms).ServeHTTP)
				r.Put("/farms/{uid}", farmupdate.New(logger, s.Farms).ServeHTTP)
				r.Delete("/farms/{uid}", farmremove.New(logger, s.Farms).ServeHTTP)

				r.Post("/crops", cropcreate.New(logger, s.Crops).ServeHTTP)
				r.Get("/crops", croplist.New(logger, s.Crops).ServeHTTP)
				r.Get("/crops/farm/{uid}", croplistbyfarm.New(logger, s.Crops).ServeHTTP)
				r.Get("/crops/{uid}", cropread.New(logger, s.Crops).ServeHTTP)
				r.Put("/crops/{uid}", cropupdate.New(logger, s.Crops).ServeHTTP)
				r.Delete("/crops/{uid}", cropremove.New(logger, s.Crops).ServeHTTP)

				r.Post("/carbon-credits", creditcreate.New(logger, s.Credits).ServeHTTP)
				r.Patch("/carbon-credits/{uid}/status", creditstatus.New(logger, s.Credits).ServeHTTP)
				r.Delete("/carbon-credits/{uid}", creditremove.New(logger, s.Credits).ServeHTTP)
			})

			// Ресурсы предприятия
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequireRole(logger, models.RoleIndustry))

				r.Get("/industry-profiles/me", profilegetme.New(logger, s.Profiles).ServeHTTP)
				r.Post("/industry-profiles/me", profileupsertme.New(logger, s.Profiles).ServeHTTP)
				r.Put("/industry-profiles/me", profileupsertme.New(logger, s.Profiles).ServeHTTP)
				r.Get("/industry-profiles", profilelist.New(logger, s.Profiles).ServeHTTP)
				r.Get("/industry-profiles/{uid}", profileread.New(logger, s.Profiles).ServeHTTP)
				r.Get("/carbon-credits/available", creditavailable.New(logger, s.Credits).ServeHTTP)
				r.Post("/carbon-credits/{uid}/purchase", creditpurchase.New(logger, s.Credits).ServeHTTP)
			})

			// Общие ресурсы обеих ролей
			r.Get("/carbon-credits", creditlist.New(logger, s.Credits).ServeHTTP)
			r.Get("/carbon-credits/{uid}", creditread.New(logger, s.Credits).ServeHTTP)
			r.Get("/dashboard/stats", dashboardstats.New(logger, s.Stats).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
