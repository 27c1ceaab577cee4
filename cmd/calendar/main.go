package main

import (
	"guestcal/internal/bookings/handler"
	"guestcal/internal/bookings/notifier"
	"guestcal/internal/bookings/repository"
	"guestcal/internal/bookings/service"
	"guestcal/internal/bookings/validator"
	"guestcal/pkg/app"
	"guestcal/pkg/config"
	"guestcal/pkg/kafka"
)

const ServiceName = "calendar"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Calendar service")

	producer, err := kafka.NewProducer(kafka.ProducerConfig{
		Brokers:      cfg.KafkaBrokers,
		Topic:        cfg.KafkaChangeTopic,
		MaxAttempts:  cfg.KafkaMaxAttempts,
		BatchTimeout: cfg.KafkaBatchTimeout,
	}, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}

	hub := notifier.NewHub(cfg.Log)
	bridge, err := notifier.NewBridge(cfg, hub)
	if err != nil {
		cfg.Log.Fatal("Failed to create change-signal bridge", "error", err)
	}

	changeNotifier := notifier.NewKafkaNotifier(producer, ServiceName, cfg.Log)
	bookingService, sweeper := initServices(cfg, changeNotifier)

	serverApp := app.NewApplication()
	serverApp.SetApp(cfg,
		handler.NewBookingHandler(bookingService, cfg.Log),
	)
	serverApp.SetWS(handler.NewWSHandler(hub, cfg.Log))
	serverApp.AddWorker(sweeper.Run)
	serverApp.AddWorker(bridge.Run)
	serverApp.AddCloser(producer.Close)
	serverApp.AddCloser(bridge.Close)
	serverApp.AddCloser(func() error {
		hub.Shutdown()
		return nil
	})
	serverApp.AddCloser(func() error {
		cfg.GracefulShutdown()
		return nil
	})

	serverApp.Run()
}

func initServices(cfg *config.Config, changeNotifier service.ChangeNotifier) (service.BookingService, *service.ExpirationSweeper) {
	bookingValidator := validator.NewBookingValidator(cfg.Log)
	holdRepo := repository.NewMongoHoldRepository(cfg)
	roomRepo := repository.NewMongoRoomRepository(cfg)
	lockRepo := repository.NewMongoRoomLockRepository(cfg)

	pricing := service.NewPricingEngine(cfg)
	sweeper := service.NewExpirationSweeper(holdRepo, changeNotifier, cfg)

	bookingService := service.NewBookingService(
		holdRepo,
		roomRepo,
		lockRepo,
		bookingValidator,
		pricing,
		sweeper,
		changeNotifier,
		cfg,
	)

	cfg.Log.Info("Booking service initialized", "database", cfg.MongoDatabaseName)
	return bookingService, sweeper
}
