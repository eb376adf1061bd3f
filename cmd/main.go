package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/courtflow/CF-BookingEngine/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/courtflow/CF-BookingEngine/internal/api/handlers/create_booking"
	getAvailabilityHandler "github.com/courtflow/CF-BookingEngine/internal/api/handlers/get_availability"
	getBookingsHandler "github.com/courtflow/CF-BookingEngine/internal/api/handlers/get_bookings"
	getFacilityHandler "github.com/courtflow/CF-BookingEngine/internal/api/handlers/get_facility"
	getWaitlistHandler "github.com/courtflow/CF-BookingEngine/internal/api/handlers/get_waitlist"
	joinWaitlistHandler "github.com/courtflow/CF-BookingEngine/internal/api/handlers/join_waitlist"
	listNotificationsHandler "github.com/courtflow/CF-BookingEngine/internal/api/handlers/list_notifications"
	quotePriceHandler "github.com/courtflow/CF-BookingEngine/internal/api/handlers/quote_price"
	"github.com/courtflow/CF-BookingEngine/internal/api/middleware"
	"github.com/courtflow/CF-BookingEngine/internal/config"
	bookingRepo "github.com/courtflow/CF-BookingEngine/internal/infra/storage/booking"
	catalogRepo "github.com/courtflow/CF-BookingEngine/internal/infra/storage/catalog"
	notificationRepo "github.com/courtflow/CF-BookingEngine/internal/infra/storage/notification"
	waitlistRepo "github.com/courtflow/CF-BookingEngine/internal/infra/storage/waitlist"
	bookingsService "github.com/courtflow/CF-BookingEngine/internal/service/bookings"
	catalogService "github.com/courtflow/CF-BookingEngine/internal/service/catalog"
	notificationsService "github.com/courtflow/CF-BookingEngine/internal/service/notifications"
	waitlistService "github.com/courtflow/CF-BookingEngine/internal/service/waitlist"
	cancelBookingUC "github.com/courtflow/CF-BookingEngine/internal/usecase/cancel_booking"
	createBookingUC "github.com/courtflow/CF-BookingEngine/internal/usecase/create_booking"
	getAvailabilityUC "github.com/courtflow/CF-BookingEngine/internal/usecase/get_availability"
	joinWaitlistUC "github.com/courtflow/CF-BookingEngine/internal/usecase/join_waitlist"
	quotePriceUC "github.com/courtflow/CF-BookingEngine/internal/usecase/quote_price"
	"github.com/courtflow/CF-BookingEngine/migrations"
	"github.com/courtflow/CF-BookingEngine/pkg/dbmetrics"
	"github.com/courtflow/CF-BookingEngine/pkg/logger"
	"github.com/courtflow/CF-BookingEngine/pkg/metrics"
	"github.com/courtflow/CF-BookingEngine/pkg/simpletxmanager"
	"github.com/courtflow/CF-BookingEngine/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting CF-BookingEngine...")

	// Метрики создаём всегда: счётчик конфликтов нужен хендлерам.
	// Endpoint и middleware включаются конфигурацией.
	metricsCollector := metrics.New(cfg.Metrics.ServiceName)
	stopMetricsCh := make(chan struct{})

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Применяем миграции
	if err := migrations.Up(context.Background(), db); err != nil {
		log.Fatal("Failed to apply migrations: %v", err)
	}
	log.Info("Migrations applied")

	// Инициализируем репозитории и transaction manager (с метриками или без)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}

	var (
		dbExecutor dbmetrics.DBExecutor
		txMgr      TxManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		dbExecutor = wrappedDB
		txMgr = txmanager.NewTransactionManager(wrappedDB)
		log.Info("Database metrics collection started")
	} else {
		dbExecutor = db
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	catalogRepository := catalogRepo.NewRepository(dbExecutor)
	bookingRepository := bookingRepo.NewRepository(dbExecutor)
	waitlistRepository := waitlistRepo.NewRepository(dbExecutor)
	notificationRepository := notificationRepo.NewRepository(dbExecutor)

	// Инициализируем сервисы
	bookingsSvc := bookingsService.NewService(bookingRepository, log)
	waitlistSvc := waitlistService.NewService(waitlistRepository, log)
	notificationsSvc := notificationsService.NewService(notificationRepository, log)
	catalogSvc := catalogService.NewService(catalogRepository, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(catalogRepository, bookingRepository, txMgr, log)
	cancelBookingUseCase := cancelBookingUC.NewUseCase(
		bookingRepository,
		catalogRepository,
		waitlistRepository,
		notificationRepository,
		txMgr,
		log,
	)
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(catalogRepository, bookingRepository, log)
	quotePriceUseCase := quotePriceUC.NewUseCase(catalogRepository, log)
	joinWaitlistUseCase := joinWaitlistUC.NewUseCase(waitlistRepository, txMgr, log)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, metricsCollector, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	quotePrice := quotePriceHandler.NewHandler(quotePriceUseCase, log)
	getBookings := getBookingsHandler.NewHandler(bookingsSvc, log)
	joinWaitlist := joinWaitlistHandler.NewHandler(joinWaitlistUseCase, log)
	getWaitlist := getWaitlistHandler.NewHandler(waitlistSvc, log)
	listNotifications := listNotificationsHandler.NewHandler(notificationsSvc, log)
	getFacility := getFacilityHandler.NewHandler(catalogSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// Проекция доступности на день
	api.HandleFunc("/availability", getAvailability.Handle).Methods(http.MethodGet)

	// Котировка без резервирования
	api.HandleFunc("/quotes", quotePrice.Handle).Methods(http.MethodPost)

	// Бронирования
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings", getBookings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// Лист ожидания
	api.HandleFunc("/waitlist", joinWaitlist.Handle).Methods(http.MethodPost)
	api.HandleFunc("/waitlist", getWaitlist.Handle).Methods(http.MethodGet)

	// Уведомления
	api.HandleFunc("/notifications", listNotifications.Handle).Methods(http.MethodGet)

	// Сводка площадки
	api.HandleFunc("/facility", getFacility.Handle).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
