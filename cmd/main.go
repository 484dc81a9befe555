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

	blockSlotHandler "github.com/wipeandshine/scheduling-service/internal/api/handlers/block_slot"
	cancelBookingHandler "github.com/wipeandshine/scheduling-service/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/wipeandshine/scheduling-service/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/wipeandshine/scheduling-service/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/wipeandshine/scheduling-service/internal/api/handlers/get_booking"
	getSchedulingConfigHandler "github.com/wipeandshine/scheduling-service/internal/api/handlers/get_scheduling_config"
	getTimeSlotsHandler "github.com/wipeandshine/scheduling-service/internal/api/handlers/get_time_slots"
	getUserBookingsHandler "github.com/wipeandshine/scheduling-service/internal/api/handlers/get_user_bookings"
	unblockSlotHandler "github.com/wipeandshine/scheduling-service/internal/api/handlers/unblock_slot"
	updateBookingStatusHandler "github.com/wipeandshine/scheduling-service/internal/api/handlers/update_booking_status"
	updateSchedulingConfigHandler "github.com/wipeandshine/scheduling-service/internal/api/handlers/update_scheduling_config"
	"github.com/wipeandshine/scheduling-service/internal/api/middleware"
	"github.com/wipeandshine/scheduling-service/internal/config"
	"github.com/wipeandshine/scheduling-service/internal/cron"
	auditRepo "github.com/wipeandshine/scheduling-service/internal/infra/storage/audit"
	bookingRepo "github.com/wipeandshine/scheduling-service/internal/infra/storage/booking"
	settingsRepo "github.com/wipeandshine/scheduling-service/internal/infra/storage/settings"
	slotRepo "github.com/wipeandshine/scheduling-service/internal/infra/storage/slot"
	subscriptionRepo "github.com/wipeandshine/scheduling-service/internal/infra/storage/subscription"
	bookingsService "github.com/wipeandshine/scheduling-service/internal/service/bookings"
	configService "github.com/wipeandshine/scheduling-service/internal/service/config"
	slotsService "github.com/wipeandshine/scheduling-service/internal/service/slots"
	subscriptionsService "github.com/wipeandshine/scheduling-service/internal/service/subscriptions"
	createBookingUC "github.com/wipeandshine/scheduling-service/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/wipeandshine/scheduling-service/internal/usecase/get_available_slots"
	"github.com/wipeandshine/scheduling-service/pkg/dbmetrics"
	"github.com/wipeandshine/scheduling-service/pkg/logger"
	"github.com/wipeandshine/scheduling-service/pkg/metrics"
	"github.com/wipeandshine/scheduling-service/pkg/simpletxmanager"
	"github.com/wipeandshine/scheduling-service/pkg/txmanager"
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

	log.Info("Starting scheduling-service...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем репозитории (с метриками или без)
	var (
		slotRepository         *slotRepo.Repository
		settingsRepository     *settingsRepo.Repository
		bookingRepository      *bookingRepo.Repository
		subscriptionRepository *subscriptionRepo.Repository
		auditRepository        *auditRepo.Repository
	)

	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		slotRepository = slotRepo.NewRepository(wrappedDB)
		settingsRepository = settingsRepo.NewRepository(wrappedDB)
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		subscriptionRepository = subscriptionRepo.NewRepository(wrappedDB)
		auditRepository = auditRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		slotRepository = slotRepo.NewRepository(db)
		settingsRepository = settingsRepo.NewRepository(db)
		bookingRepository = bookingRepo.NewRepository(db)
		subscriptionRepository = subscriptionRepo.NewRepository(db)
		auditRepository = auditRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, slotRepository, txMgr, log)
	slotSvc := slotsService.NewService(slotRepository, settingsRepository, auditRepository, txMgr, log)
	configSvc := configService.NewService(settingsRepository, auditRepository, txMgr, log)
	subscriptionSvc := subscriptionsService.NewService(subscriptionRepository, settingsRepository, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		slotRepository,
		settingsRepository,
		txMgr,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		slotRepository,
		settingsRepository,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	getTimeSlots := getTimeSlotsHandler.NewHandler(slotSvc, log)
	blockSlot := blockSlotHandler.NewHandler(slotSvc, log)
	unblockSlot := unblockSlotHandler.NewHandler(slotSvc, log)
	getSchedulingConfig := getSchedulingConfigHandler.NewHandler(configSvc, log)
	updateSchedulingConfig := updateSchedulingConfigHandler.NewHandler(configSvc, log)

	// Запускаем воркер периодических задач (если включен)
	var cronWorker *cron.Worker
	if cfg.Jobs.Enabled {
		cronWorker, err = cron.NewWorker(cfg.Redis, cfg.Jobs, subscriptionSvc, log)
		if err != nil {
			log.Fatal("Failed to create cron worker: %v", err)
		}
		if err := cronWorker.Start(); err != nil {
			log.Fatal("Failed to start cron worker: %v", err)
		}
	}

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// Доступные слоты на дату
	protected.HandleFunc("/slots/available", getAvailableSlots.Handle).Methods(http.MethodGet)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings", getUserBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// ============================================================
	// ADMIN ROUTES (требуют X-User-Role: admin)
	// ============================================================

	admin := protected.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.RequireAdmin)

	// --- Управление бронированиями ---
	admin.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPut)

	// --- Управление слотами ---
	admin.HandleFunc("/time-slots", getTimeSlots.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/time-slots/block", blockSlot.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/time-slots/{slotId}/unblock", unblockSlot.Handle).Methods(http.MethodPatch)

	// --- Конфигурация расписания ---
	admin.HandleFunc("/config/scheduling", getSchedulingConfig.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/config/scheduling", updateSchedulingConfig.Handle).Methods(http.MethodPut)

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

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	if cronWorker != nil {
		cronWorker.Stop()
	}

	// Останавливаем сбор метрик connection pool
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
