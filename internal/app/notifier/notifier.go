// Package notifier собирает воркер почтовых уведомлений: подключается
// к RabbitMQ и раздаёт события сервису отправки писем.
package notifier

import (
	"context"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/agrigrow/agrigrow-backend/internal/config"
	"github.com/agrigrow/agrigrow-backend/internal/lib/rabbitmq"
	"github.com/agrigrow/agrigrow-backend/internal/lib/smtp"
	notifierservice "github.com/agrigrow/agrigrow-backend/internal/services/notifier"
)

// App инкапсулирует соединение с брокером и сервис уведомлений.
type App struct {
	conn            *amqp.Connection
	ch              *amqp.Channel
	notifierService *notifierservice.NotifierService
	logger          *slog.Logger
}

// New создает приложение-воркер уведомлений.
func New(_ context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, err
	}

	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetCreditQueues())
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	transport := smtp.NewTransport(cfg, logger)
	notifierService := notifierservice.NewNotifierService(transport, logger)

	return &App{
		conn:            conn,
		ch:              ch,
		notifierService: notifierService,
		logger:          logger,
	}, nil
}

// Run запускает потребителя событий продажи и блокируется до отмены контекста.
func (a *App) Run(ctx context.Context) error {
	err := rabbitmq.ConsumerMessage(ctx, a.ch, "credit.sold.queue", a.notifierService.SendCreditSoldNotification)
	if err != nil {
		a.logger.Error("failed to start credit.sold.queue consumer", slog.Any("err", err))
		return err
	}

	<-ctx.Done()
	a.logger.Info("notifier service shutting down gracefully")

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", slog.Any("err", err))
	}
	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", slog.Any("err", err))
	}
	return nil
}
