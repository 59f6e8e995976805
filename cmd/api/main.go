package main

import (
	"context"
	"time"

	"github.com/IvanCastroRuizdevitech/demo-nequi-push/internal/api"
	v1 "github.com/IvanCastroRuizdevitech/demo-nequi-push/internal/api/v1"
	"github.com/IvanCastroRuizdevitech/demo-nequi-push/internal/api/validator"
	"github.com/IvanCastroRuizdevitech/demo-nequi-push/internal/auth"
	"github.com/IvanCastroRuizdevitech/demo-nequi-push/internal/config"
	"github.com/IvanCastroRuizdevitech/demo-nequi-push/internal/database"
	apperrors "github.com/IvanCastroRuizdevitech/demo-nequi-push/internal/errors"
	"github.com/IvanCastroRuizdevitech/demo-nequi-push/internal/headers"
	"github.com/IvanCastroRuizdevitech/demo-nequi-push/internal/metrics"
	"github.com/IvanCastroRuizdevitech/demo-nequi-push/internal/msgid"
	"github.com/IvanCastroRuizdevitech/demo-nequi-push/internal/params"
	"github.com/IvanCastroRuizdevitech/demo-nequi-push/internal/publishers"
	"github.com/IvanCastroRuizdevitech/demo-nequi-push/internal/repository"
	"github.com/IvanCastroRuizdevitech/demo-nequi-push/internal/service"
	"github.com/IvanCastroRuizdevitech/demo-nequi-push/pkg/httpclient"
	"github.com/IvanCastroRuizdevitech/demo-nequi-push/pkg/mq"
	"github.com/IvanCastroRuizdevitech/demo-nequi-push/pkg/nequi"
	govalidator "github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const httpClientTimeout = 90 * time.Second

func main() {
	fx.New(
		fx.Provide(
			config.Load,
			zap.NewProduction,
			database.NewConnection,
			metrics.NewMetrics,

			NewHTTPClient,
			NewTokenProvider,
			params.NewResolver,
			headers.NewBuilder,
			msgid.NewGenerator,
			nequi.NewClient,

			repository.NewTransactionLogRepository,
			NewEventPublisher,
			service.NewPaymentService,
			service.NewTransactionLogService,

			NewValidator,
			v1.NewHandler,
			NewFiberApp,
		),
		fx.Invoke(startServer),
	).Run()
}

func startServer(app *fiber.App, handler *v1.Handler, m *metrics.Metrics,
	cfg *config.Config, logger *zap.Logger, lc fx.Lifecycle) {
	api.SetupRoutes(app, handler, m, logger)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("Starting API server", zap.String("port", cfg.API.Port))
			go func() {
				if err := app.Listen(cfg.API.Port); err != nil {
					logger.Error("Server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.ShutdownWithContext(ctx)
		},
	})
}

func NewFiberApp() *fiber.App {
	return fiber.New(fiber.Config{
		ErrorHandler: apperrors.ErrorHandler(),
	})
}

func NewHTTPClient() httpclient.HTTPClient {
	return httpclient.NewHTTPClient(httpClientTimeout)
}

func NewTokenProvider(cfg *config.Config, client httpclient.HTTPClient, logger *zap.Logger) auth.TokenProvider {
	return auth.NewTokenProvider(cfg.Auth, client, logger)
}

func NewValidator() validator.XValidator {
	return validator.NewXValidator(govalidator.New())
}

// NewEventPublisher connects to the broker when enabled and falls back to a
// no-op publisher otherwise. Event delivery is best-effort either way.
func NewEventPublisher(cfg *config.Config, logger *zap.Logger) (publishers.EventPublisher, error) {
	if !cfg.RabbitMQ.Enable {
		logger.Info("Transaction events disabled")
		return publishers.NopPublisher{}, nil
	}

	rabbit, err := mq.NewConnection(cfg.RabbitMQ, logger)
	if err != nil {
		return nil, err
	}

	if err := rabbit.DeclareTopology([]string{publishers.TransactionsQueue}); err != nil {
		return nil, err
	}

	publisher, err := rabbit.CreatePublisher()
	if err != nil {
		return nil, err
	}

	return publishers.NewTransactionPublisher(publisher, logger), nil
}
