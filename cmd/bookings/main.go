package main

import (
	"context"

	"bookingdesk/internal/bookings/handler"
	"bookingdesk/internal/bookings/notify"
	"bookingdesk/internal/bookings/render"
	"bookingdesk/internal/bookings/service"
	"bookingdesk/internal/bookings/store"
	"bookingdesk/internal/bookings/validator"
	"bookingdesk/pkg/app"
	"bookingdesk/pkg/config"
)

const ServiceName = "bookings"

func main() {
	cfg := config.Load(ServiceName)

	cfg.Log.Info("Starting Bookings service")
	bookingStore := initStore(cfg)
	defer cfg.GracefulShutdown()

	intakeService, approvalService, renderer := initServices(cfg, bookingStore)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(bookingStore,
		handler.NewBookingHandler(intakeService, cfg.PublicBaseURL, cfg.Log),
		handler.NewApprovalHandler(approvalService, renderer, cfg.Log),
	)
	serverApp.Run()
}

func initStore(cfg *config.Config) store.BookingStore {
	switch cfg.StoreBackend {
	case config.StoreBackendMongo:
		cfg.SetMongo()
		mongoStore := store.NewMongoBookingStore(
			cfg.Client.Mongo,
			cfg.MongoDatabaseName,
			cfg.StoreReadTimeout,
			cfg.StoreWriteTimeout,
		)

		ctx, cancel := context.WithTimeout(context.Background(), cfg.MongoConnTimeout)
		defer cancel()
		if err := mongoStore.EnsureIndexes(ctx); err != nil {
			cfg.Log.Fatal("Failed to create booking TTL index", "error", err)
		}

		cfg.Log.Info("Booking store initialized", "backend", cfg.StoreBackend, "database", cfg.MongoDatabaseName)
		return mongoStore

	default:
		cfg.SetRedis()
		redisStore := store.NewRedisBookingStore(
			cfg.Client.Redis,
			cfg.StoreReadTimeout,
			cfg.StoreWriteTimeout,
		)

		cfg.Log.Info("Booking store initialized", "backend", cfg.StoreBackend, "addr", cfg.RedisAddr)
		return redisStore
	}
}

func initServices(cfg *config.Config, bookingStore store.BookingStore) (service.IntakeService, service.ApprovalService, render.Renderer) {
	bookingValidator := validator.NewBookingValidator(cfg.Log)
	renderer := render.NewHTMLRenderer(cfg.OrgName, cfg.ContactEmail)
	notifier := initNotifier(cfg)

	intakeService := service.NewIntakeService(
		bookingStore,
		notifier,
		renderer,
		bookingValidator,
		cfg,
	)
	approvalService := service.NewApprovalService(
		bookingStore,
		notifier,
		renderer,
		cfg,
	)

	cfg.Log.Info("Booking services initialized")
	return intakeService, approvalService, renderer
}

func initNotifier(cfg *config.Config) notify.Notifier {
	if cfg.ResendAPIKey == "" {
		cfg.Log.Warn("RESEND_API_KEY not set; outgoing email will only be logged")
		return notify.NewLogNotifier(cfg.Log)
	}
	return notify.NewResendNotifier(cfg.ResendAPIKey, cfg.NotifyTimeout, cfg.Log)
}
