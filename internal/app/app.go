package app

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/viper"

	"github.com/workhub/workplace-backend/internal/dal/postgres"
	"github.com/workhub/workplace-backend/internal/dal/rabbitmq"
	"github.com/workhub/workplace-backend/internal/notify"
	"github.com/workhub/workplace-backend/internal/otel"
	"github.com/workhub/workplace-backend/internal/service/services/bookingsvc"
	"github.com/workhub/workplace-backend/internal/service/services/catalogsvc"
	"github.com/workhub/workplace-backend/internal/service/services/configsvc"
	"github.com/workhub/workplace-backend/internal/service/services/favoritesvc"
	"github.com/workhub/workplace-backend/internal/service/services/ordersvc"
	httptransport "github.com/workhub/workplace-backend/internal/transport/http"
)

// App represents the application.
type App struct {
	transport      *httptransport.HTTPTransport
	postgresClient *postgres.Client
	rabbitClient   *rabbitmq.Client
	otelController *otel.OtelController
}

// MustNewApp creates a new application.
func MustNewApp() *App {
	otelController := otel.MustInitOtel()

	postgresClient := postgres.MustNewClient()

	rabbitClient, err := rabbitmq.NewClient()
	if err != nil {
		panic(err)
	}

	dispatcher := notify.NewDispatcher(newChannels(rabbitClient)...)

	orderSvc := ordersvc.MustNewOrderService(
		ordersvc.WithPostgresClient(postgresClient),
		ordersvc.WithNotifier(dispatcher),
	)
	catalogSvc := catalogsvc.NewCatalogService(postgresClient)
	bookingSvc := bookingsvc.NewBookingService(postgresClient)
	favoriteSvc := favoritesvc.NewFavoriteService(postgresClient)
	configSvc := configsvc.NewConfigService(postgresClient)

	transport := httptransport.NewHTTPTransport(orderSvc, catalogSvc, bookingSvc, favoriteSvc, configSvc)
	transport.RegisterRoutes()

	return &App{
		transport:      transport,
		postgresClient: postgresClient,
		rabbitClient:   rabbitClient,
		otelController: otelController,
	}
}

// newChannels assembles the configured notification channels. Unconfigured
// channels come back as typed nil pointers, so each one is checked before it
// is added to the slice.
func newChannels(rabbitClient *rabbitmq.Client) []notify.Channel {
	var channels []notify.Channel

	if webhook := notify.NewWebhookChannel(viper.GetString("notifications.webhook_url")); webhook != nil {
		channels = append(channels, webhook)
	}

	telegram, err := notify.NewTelegramChannel(
		os.Getenv("WORKPLACE_TELEGRAM_TOKEN"),
		viper.GetInt64("notifications.telegram_chat_id"),
	)
	if err != nil {
		slog.Error("Telegram channel disabled", "error", err)
	} else if telegram != nil {
		channels = append(channels, telegram)
	}

	events, err := notify.NewEventsChannel(rabbitClient)
	if err != nil {
		slog.Error("Events channel disabled", "error", err)
	} else if events != nil {
		channels = append(channels, events)
	}

	return channels
}

// Run starts the application.
// Tracks interrupt signal to gracefully shut down the application.
func (a *App) Run() {
	// Create a channel to receive OS signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("Starting HTTP server")
		if err := a.transport.Run(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	<-stop
	slog.Info("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.transport.Shutdown(ctx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped gracefully")
	}

	if a.rabbitClient != nil {
		if err := a.rabbitClient.Close(); err != nil {
			slog.Error("RabbitMQ connection close error", "error", err)
		} else {
			slog.Info("RabbitMQ connection closed gracefully")
		}
	}

	a.postgresClient.Close()
	slog.Info("Database connection closed gracefully")

	if err := a.otelController.Shutdown(); err != nil {
		slog.Error("Trace provider shutdown error", "error", err)
	}

	slog.Info("Application shutdown complete")
}
