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

	cancelBookingHandler "github.com/heitorfr/barber-booking-service/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/heitorfr/barber-booking-service/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/heitorfr/barber-booking-service/internal/api/handlers/get_available_slots"
	getBarberBookingsHandler "github.com/heitorfr/barber-booking-service/internal/api/handlers/get_barber_bookings"
	getBarberScheduleHandler "github.com/heitorfr/barber-booking-service/internal/api/handlers/get_barber_schedule"
	getBookableDatesHandler "github.com/heitorfr/barber-booking-service/internal/api/handlers/get_bookable_dates"
	getBookingHandler "github.com/heitorfr/barber-booking-service/internal/api/handlers/get_booking"
	getClientBookingsHandler "github.com/heitorfr/barber-booking-service/internal/api/handlers/get_client_bookings"
	updateBarberScheduleHandler "github.com/heitorfr/barber-booking-service/internal/api/handlers/update_barber_schedule"
	"github.com/heitorfr/barber-booking-service/internal/api/middleware"
	"github.com/heitorfr/barber-booking-service/internal/availability"
	"github.com/heitorfr/barber-booking-service/internal/config"
	bookingRepo "github.com/heitorfr/barber-booking-service/internal/infra/storage/booking"
	staffRepo "github.com/heitorfr/barber-booking-service/internal/infra/storage/staff"
	bookingsService "github.com/heitorfr/barber-booking-service/internal/service/bookings"
	scheduleService "github.com/heitorfr/barber-booking-service/internal/service/schedule"
	createBookingUC "github.com/heitorfr/barber-booking-service/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/heitorfr/barber-booking-service/internal/usecase/get_available_slots"
	getBookableDatesUC "github.com/heitorfr/barber-booking-service/internal/usecase/get_bookable_dates"
	"github.com/heitorfr/barber-booking-service/pkg/dbmetrics"
	"github.com/heitorfr/barber-booking-service/pkg/logger"
	"github.com/heitorfr/barber-booking-service/pkg/metrics"
	"github.com/heitorfr/barber-booking-service/pkg/simpletxmanager"
	"github.com/heitorfr/barber-booking-service/pkg/txmanager"
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

	log.Info("Starting barber-booking-service...")
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
		bookingRepository *bookingRepo.Repository
		staffRepository   *staffRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		staffRepository = staffRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		staffRepository = staffRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Движок доступности: общий для всех use cases
	engine := availability.NewEngine(log, cfg.Availability.SlotStepMinutes)
	log.Info("Availability engine initialized (step=%d min, horizon=%d days, workers=%d)",
		engine.StepMinutes(), cfg.Availability.HorizonDays, cfg.Availability.ScanWorkers)

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, log)
	scheduleSvc := scheduleService.NewService(staffRepository, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		engine,
		bookingRepository,
		staffRepository,
		txMgr,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		engine,
		bookingRepository,
		staffRepository,
		log,
	)

	getBookableDatesUseCase := getBookableDatesUC.NewUseCase(
		engine,
		bookingRepository,
		staffRepository,
		cfg.Availability.ScanWorkers,
		cfg.Availability.HorizonDays,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getBookableDates := getBookableDatesHandler.NewHandler(getBookableDatesUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getClientBookings := getClientBookingsHandler.NewHandler(bookingSvc, log)
	getBarberBookings := getBarberBookingsHandler.NewHandler(bookingSvc, log)
	getBarberSchedule := getBarberScheduleHandler.NewHandler(scheduleSvc, log)
	updateBarberSchedule := updateBarberScheduleHandler.NewHandler(scheduleSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")

		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Слоты барбера на день
	api.HandleFunc("/barbers/{barberId}/slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Даты горизонта с хотя бы одним свободным слотом
	api.HandleFunc("/barbers/{barberId}/bookable-dates",
		getBookableDates.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// История бронирований клиента
	protected.HandleFunc("/clients/{clientId}/bookings", getClientBookings.Handle).Methods(http.MethodGet)

	// --- Кабинет барбера ---
	protected.HandleFunc("/barbers/{barberId}/bookings", getBarberBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/barbers/{barberId}/schedule", getBarberSchedule.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/barbers/{barberId}/schedule", updateBarberSchedule.Handle).Methods(http.MethodPut)

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

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server exited")
}
