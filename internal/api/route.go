package api

import (
	v1 "github.com/IvanCastroRuizdevitech/demo-nequi-push/internal/api/v1"
	"github.com/IvanCastroRuizdevitech/demo-nequi-push/internal/metrics"
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func SetupRoutes(app *fiber.App, handler *v1.Handler, m *metrics.Metrics, logger *zap.Logger) {
	app.Use(RequestID())
	app.Use(metrics.HTTPMetricsMiddleware(m, logger))

	app.Get("/ping", handler.Pong)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	payments := app.Group("/v1/payments")
	payments.Post("/push", handler.SendPush)
	payments.Post("/push/cancel", handler.CancelPush)
	payments.Get("/push/:transactionId/status", handler.GetStatus)
	payments.Post("/reverse", handler.Reverse)
	payments.Post("/qr", handler.CreateQr)
	payments.Get("/qr/:qrId/status", handler.GetQrStatus)
	payments.Post("/qr/reverse", handler.ReverseQr)

	transactions := app.Group("/v1/transactions")
	transactions.Get("/", handler.ListTransactions)
	transactions.Get("/stats", handler.TransactionStats)
	transactions.Get("/message/:messageId", handler.GetTransactionByMessageID)
	transactions.Get("/:id", handler.GetTransaction)
	transactions.Post("/:id/timeout", handler.ExpireTransaction)
}
