// Package agrigrowapi собирает HTTP-приложение маркетплейса:
// хранилище, кеш, брокер событий, сервисы и маршруты.
package agrigrowapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/agrigrow/agrigrow-backend/internal/cache"
	"github.com/agrigrow/agrigrow-backend/internal/config"
	customjwt "github.com/agrigrow/agrigrow-backend/internal/lib/jwt"
	"github.com/agrigrow/agrigrow-backend/internal/lib/rabbitmq"
	"github.com/agrigrow/agrigrow-backend/internal/migrations"
	authservice "github.com/agrigrow/agrigrow-backend/internal/services/auth"
	creditservice "github.com/agrigrow/agrigrow-backend/internal/services/carboncredit"
	cropservice "github.com/agrigrow/agrigrow-backend/internal/services/crop"
	farmservice "github.com/agrigrow/agrigrow-backend/internal/services/farm"
	profileservice "github.com/agrigrow/agrigrow-backend/internal/services/industryprofile"
	statsservice "github.com/agrigrow/agrigrow-backend/internal/services/stats"
	"github.com/agrigrow/agrigrow-backend/internal/storage/repository"
)

// App инкапсулирует HTTP-сервер и внешние соединения приложения.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	cache  *cache.Cache
	rabbit *amqp.Connection
	ch     *amqp.Channel
}

// New создает приложение: подключает PostgreSQL, прогоняет миграции,
// поднимает Redis и RabbitMQ, собирает сервисы и маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	rabbitConn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, err
	}
	ch, err := rabbitmq.SetupChannel(rabbitConn, rabbitmq.GetCreditQueues())
	if err != nil {
		_ = rabbitConn.Close()
		return nil, err
	}
	publisher := &rabbitmq.Publisher{Ch: ch}

	jwtMaker := customjwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	authService := authservice.NewAuthService(db, jwtMaker, logger)
	farmService := farmservice.NewFarmService(db, logger)
	cropService := cropservice.NewCropService(db, db, logger)
	creditService := creditservice.NewCarbonCreditService(db, cacheRedis, publisher, logger)
	profileService := profileservice.NewProfileService(db, logger)
	statsService := statsservice.NewStatsService(db, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg, RouteServices{
		JWTMaker: jwtMaker,
		Users:    db,
		Storage:  db,
		Cache:    cacheRedis,
		Rabbit:   rabbitConn,
		Auth:     authService,
		Farms:    farmService,
		Crops:    cropService,
		Credits:  creditService,
		Profiles: profileService,
		Stats:    statsService,
	})

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		cache:  cacheRedis,
		rabbit: rabbitConn,
		ch:     ch,
	}, nil
}

// Run запускает HTTP-сервер и блокируется до отмены контекста,
// после чего останавливает сервер и закрывает соединения.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if cerr := a.ch.Close(); cerr != nil {
			a.logger.Error("failed to close rabbitmq channel", slog.Any("err", cerr))
		}
		if cerr := a.rabbit.Close(); cerr != nil {
			a.logger.Error("failed to close rabbitmq connection", slog.Any("err", cerr))
		}
		if cerr := a.cache.Db.Close(); cerr != nil {
			a.logger.Error("failed to close redis client", slog.Any("err", cerr))
		}
		if cerr := a.db.DB.Close(); cerr != nil {
			a.logger.Error("failed to close database", slog.Any("err", cerr))
		}
		return err
	}
}
