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
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"

	cancelBookingHandler "github.com/fleetbright/FB-SchedulingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/fleetbright/FB-SchedulingService/internal/api/handlers/create_booking"
	createSpecialDayHandler "github.com/fleetbright/FB-SchedulingService/internal/api/handlers/create_special_day"
	getAvailableSlotsHandler "github.com/fleetbright/FB-SchedulingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/fleetbright/FB-SchedulingService/internal/api/handlers/get_booking"
	getScheduleConfigHandler "github.com/fleetbright/FB-SchedulingService/internal/api/handlers/get_schedule_config"
	getWeekScheduleHandler "github.com/fleetbright/FB-SchedulingService/internal/api/handlers/get_week_schedule"
	holdSlotHandler "github.com/fleetbright/FB-SchedulingService/internal/api/handlers/hold_slot"
	listBookingsHandler "github.com/fleetbright/FB-SchedulingService/internal/api/handlers/list_bookings"
	listSpecialDaysHandler "github.com/fleetbright/FB-SchedulingService/internal/api/handlers/list_special_days"
	releaseSlotHandler "github.com/fleetbright/FB-SchedulingService/internal/api/handlers/release_slot"
	reopenSpecialDayHandler "github.com/fleetbright/FB-SchedulingService/internal/api/handlers/reopen_special_day"
	updateBookingStatusHandler "github.com/fleetbright/FB-SchedulingService/internal/api/handlers/update_booking_status"
	updateDayHoursHandler "github.com/fleetbright/FB-SchedulingService/internal/api/handlers/update_day_hours"
	updateScheduleConfigHandler "github.com/fleetbright/FB-SchedulingService/internal/api/handlers/update_schedule_config"
	"github.com/fleetbright/FB-SchedulingService/internal/api/middleware"
	"github.com/fleetbright/FB-SchedulingService/internal/config"
	bookingRepo "github.com/fleetbright/FB-SchedulingService/internal/infra/storage/booking"
	holdRepo "github.com/fleetbright/FB-SchedulingService/internal/infra/storage/hold"
	resourceRepo "github.com/fleetbright/FB-SchedulingService/internal/infra/storage/resource"
	scheduleRepo "github.com/fleetbright/FB-SchedulingService/internal/infra/storage/schedule"
	catalogServiceClient "github.com/fleetbright/FB-SchedulingService/internal/integrations/catalogservice"
	bookingsService "github.com/fleetbright/FB-SchedulingService/internal/service/bookings"
	holdsService "github.com/fleetbright/FB-SchedulingService/internal/service/holds"
	scheduleService "github.com/fleetbright/FB-SchedulingService/internal/service/schedule"
	createBookingUC "github.com/fleetbright/FB-SchedulingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/fleetbright/FB-SchedulingService/internal/usecase/get_available_slots"
	placeHoldUC "github.com/fleetbright/FB-SchedulingService/internal/usecase/place_hold"
	"github.com/fleetbright/FB-SchedulingService/pkg/dbmetrics"
	"github.com/fleetbright/FB-SchedulingService/pkg/logger"
	"github.com/fleetbright/FB-SchedulingService/pkg/metrics"
	"github.com/fleetbright/FB-SchedulingService/pkg/simpletxmanager"
	"github.com/fleetbright/FB-SchedulingService/pkg/txmanager"
)

func main() {
	// Подхватываем .env (DB_PASSWORD, ADMIN_KEY), отсутствие файла не ошибка
	_ = godotenv.Load()

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

	log.Info("Starting FB-SchedulingService...")
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

	// Инициализируем интеграционного клиента
	catalogClient := catalogServiceClient.NewClient(
		cfg.CatalogService.URL,
		time.Duration(cfg.CatalogService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration client initialized (CatalogService=%s timeout=%ds)",
		cfg.CatalogService.URL, cfg.CatalogService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository  *bookingRepo.Repository
		holdRepository     *holdRepo.Repository
		resourceRepository *resourceRepo.Repository
		scheduleRepository *scheduleRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		holdRepository = holdRepo.NewRepository(wrappedDB)
		resourceRepository = resourceRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		holdRepository = holdRepo.NewRepository(db)
		resourceRepository = resourceRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, log)
	holdSvc := holdsService.NewService(holdRepository, log)
	scheduleSvc := scheduleService.NewService(scheduleRepository, log)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		holdRepository,
		resourceRepository,
		scheduleRepository,
		log,
	)

	placeHoldUseCase := placeHoldUC.NewUseCase(
		bookingRepository,
		holdRepository,
		resourceRepository,
		scheduleRepository,
		txMgr,
		log,
	)

	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		holdRepository,
		resourceRepository,
		scheduleRepository,
		catalogClient,
		txMgr,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	holdSlot := holdSlotHandler.NewHandler(placeHoldUseCase, log)
	releaseSlot := releaseSlotHandler.NewHandler(holdSvc, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	getWeekSchedule := getWeekScheduleHandler.NewHandler(scheduleSvc, log)
	updateDayHours := updateDayHoursHandler.NewHandler(scheduleSvc, log)
	createSpecialDay := createSpecialDayHandler.NewHandler(scheduleSvc, log)
	listSpecialDays := listSpecialDaysHandler.NewHandler(scheduleSvc, log)
	reopenSpecialDay := reopenSpecialDayHandler.NewHandler(scheduleSvc, log)
	getScheduleConfig := getScheduleConfigHandler.NewHandler(scheduleSvc, log)
	updateScheduleConfig := updateScheduleConfigHandler.NewHandler(scheduleSvc, log)

	// Фоновая очистка истекших удержаний
	sweeper := cron.New()
	if _, err := sweeper.AddFunc(cfg.Scheduler.HoldSweepSchedule, func() {
		if _, err := holdSvc.SweepExpired(context.Background()); err != nil {
			log.Error("Hold sweep failed: %v", err)
		}
	}); err != nil {
		log.Fatal("Failed to schedule hold sweep: %v", err)
	}
	sweeper.Start()
	log.Info("Hold sweep scheduled: %s", cfg.Scheduler.HoldSweepSchedule)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступные слоты на дату
	api.HandleFunc("/slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Удержание слота на время оформления
	api.HandleFunc("/holds", holdSlot.Handle).Methods(http.MethodPost)
	api.HandleFunc("/holds/{token}", releaseSlot.Handle).Methods(http.MethodDelete)

	// Подтверждение бронирования и доступ по номеру
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{reference}", getBooking.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-Admin-Key header)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminAuth(cfg.Auth.AdminKey))

	// --- Бронирования ---
	admin.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{id}/cancel", cancelBooking.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/bookings/{id}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// --- Календарь ---
	admin.HandleFunc("/schedule", getWeekSchedule.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/schedule/{weekday}", updateDayHours.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/special-days", createSpecialDay.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/special-days", listSpecialDays.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/special-days/{id}", reopenSpecialDay.Handle).Methods(http.MethodDelete)

	// --- Параметры планировщика ---
	admin.HandleFunc("/config", getScheduleConfig.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/config", updateScheduleConfig.Handle).Methods(http.MethodPut)

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

	// Останавливаем фоновую очистку и сбор метрик connection pool
	sweeperCtx := sweeper.Stop()
	<-sweeperCtx.Done()
	log.Info("Hold sweep stopped")

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
