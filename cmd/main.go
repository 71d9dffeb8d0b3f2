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
	_ "time/tzdata"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"

	"github.com/m04kA/SMC-AssignmentService/internal/api/handlers"
	assignMedicHandler "github.com/m04kA/SMC-AssignmentService/internal/api/handlers/assign_medic"
	autoAssignHandler "github.com/m04kA/SMC-AssignmentService/internal/api/handlers/auto_assign"
	checkConflictsHandler "github.com/m04kA/SMC-AssignmentService/internal/api/handlers/check_conflicts"
	getScheduleWeekHandler "github.com/m04kA/SMC-AssignmentService/internal/api/handlers/get_schedule_week"
	"github.com/m04kA/SMC-AssignmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AssignmentService/internal/config"
	bookingRepo "github.com/m04kA/SMC-AssignmentService/internal/infra/storage/booking"
	medicRepo "github.com/m04kA/SMC-AssignmentService/internal/infra/storage/medic"
	territoryRepo "github.com/m04kA/SMC-AssignmentService/internal/infra/storage/territory"
	timeOffRepo "github.com/m04kA/SMC-AssignmentService/internal/infra/storage/timeoff"
	travelCacheRepo "github.com/m04kA/SMC-AssignmentService/internal/infra/storage/traveltime"
	"github.com/m04kA/SMC-AssignmentService/internal/integrations/googlecalendar"
	"github.com/m04kA/SMC-AssignmentService/internal/integrations/traveltime"
	"github.com/m04kA/SMC-AssignmentService/internal/service/compliance"
	"github.com/m04kA/SMC-AssignmentService/internal/service/matching"
	scheduleService "github.com/m04kA/SMC-AssignmentService/internal/service/schedule"
	assignMedicUC "github.com/m04kA/SMC-AssignmentService/internal/usecase/assign_medic"
	autoAssignUC "github.com/m04kA/SMC-AssignmentService/internal/usecase/auto_assign"
	checkConflictsUC "github.com/m04kA/SMC-AssignmentService/internal/usecase/check_conflicts"
	"github.com/m04kA/SMC-AssignmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AssignmentService/pkg/logger"
	"github.com/m04kA/SMC-AssignmentService/pkg/metrics"
	"github.com/m04kA/SMC-AssignmentService/pkg/txmanager"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.toml"
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
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

	log.Info("Starting SMC-AssignmentService...")
	log.Info("Configuration loaded from %s", configPath)

	location, err := cfg.Schedule.Location()
	if err != nil {
		log.Fatal("Invalid schedule timezone: %v", err)
	}

	// Инициализируем метрики (если включены).
	// Получатели метрик объявлены интерфейсами: при выключенных метриках остаются nil.
	var (
		metricsCollector *metrics.Metrics
		conflictMetrics  checkConflictsUC.MetricsRecorder
		outcomeMetrics   autoAssignUC.MetricsRecorder
		travelMetrics    traveltime.MetricsRecorder
		calendarMetrics  googlecalendar.MetricsRecorder
	)
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		conflictMetrics = metricsCollector
		outcomeMetrics = metricsCollector
		travelMetrics = metricsCollector
		calendarMetrics = metricsCollector
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

	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	medicRepository := medicRepo.NewRepository(wrappedDB)
	territoryRepository := territoryRepo.NewRepository(wrappedDB)
	timeOffRepository := timeOffRepo.NewRepository(wrappedDB)
	travelCacheRepository := travelCacheRepo.NewRepository(wrappedDB)

	// Инициализируем интеграционных клиентов
	travelClient := traveltime.NewClient(
		cfg.TravelTime.URL,
		time.Duration(cfg.TravelTime.Timeout)*time.Second,
		log,
	)
	travelEstimator := traveltime.NewCachedEstimator(
		travelClient,
		travelCacheRepository,
		time.Duration(cfg.TravelTime.CacheTTL)*time.Second,
		traveltime.RealTimeProvider{},
		travelMetrics,
		log,
	).WithMaxEntries(cfg.TravelTime.CacheEntries)
	log.Info("Travel time client initialized (url=%s timeout=%ds cache_ttl=%ds cache_entries=%d)",
		cfg.TravelTime.URL, cfg.TravelTime.Timeout, cfg.TravelTime.CacheTTL, cfg.TravelTime.CacheEntries)

	var calendarChecker checkConflictsUC.CalendarChecker
	if cfg.GoogleCalendar.Enabled {
		calendarChecker = googlecalendar.NewClient(
			googlecalendar.Config{
				ClientID:      cfg.GoogleCalendar.ClientID,
				ClientSecret:  cfg.GoogleCalendar.ClientSecret,
				Timeout:       time.Duration(cfg.GoogleCalendar.Timeout) * time.Second,
				RefreshWindow: time.Duration(cfg.GoogleCalendar.RefreshWindow) * time.Second,
				Endpoint:      cfg.GoogleCalendar.Endpoint,
				TokenURL:      cfg.GoogleCalendar.TokenURL,
			},
			medicRepository,
			nil,
			calendarMetrics,
			log,
		)
		log.Info("Google Calendar free/busy checks enabled")
	} else {
		log.Warn("Google Calendar integration disabled, calendar conflicts will not be checked")
	}

	// Инициализируем сервисы
	rules := compliance.Rules{
		MaxWeeklyHours: cfg.Compliance.MaxWeeklyHours,
		MinRestHours:   cfg.Compliance.MinRestHours,
		Location:       location,
	}

	matchingSvc := matching.NewService(medicRepository, bookingRepository, log)
	scorer := matching.NewScorer(
		bookingRepository,
		territoryRepository,
		travelEstimator,
		log,
		matching.WithTravelFallback(matching.TravelFallback{
			Minutes: cfg.TravelTime.FallbackMinutes,
			Miles:   cfg.TravelTime.FallbackMiles,
		}),
		matching.WithWorkers(cfg.Matching.ScoringWorkers),
	)
	scheduleSvc := scheduleService.NewService(bookingRepository, medicRepository, log)

	// Инициализируем use cases
	checkConflictsUseCase := checkConflictsUC.NewUseCase(
		bookingRepository,
		medicRepository,
		timeOffRepository,
		travelEstimator,
		calendarChecker,
		conflictMetrics,
		rules,
		log,
	)

	autoAssignUseCase := autoAssignUC.NewUseCase(
		bookingRepository,
		matchingSvc,
		scorer,
		txMgr,
		outcomeMetrics,
		autoAssignUC.Settings{
			Threshold:     cfg.Matching.AutoAssignThreshold,
			TopCandidates: cfg.Matching.TopCandidates,
		},
		log,
	)

	assignMedicUseCase := assignMedicUC.NewUseCase(
		bookingRepository,
		checkConflictsUseCase,
		txMgr,
		log,
	)

	// Инициализируем handlers
	autoAssign := autoAssignHandler.NewHandler(autoAssignUseCase, log)
	assignMedic := assignMedicHandler.NewHandler(assignMedicUseCase, log)
	checkConflicts := checkConflictsHandler.NewHandler(checkConflictsUseCase, log)
	getScheduleWeek := getScheduleWeekHandler.NewHandler(scheduleSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			log.Error("Health check failed: %v", err)
			handlers.RespondError(w, http.StatusServiceUnavailable, "база данных недоступна")
			return
		}
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// --- Назначение медиков ---
	// Автоматический подбор медика
	api.HandleFunc("/bookings/{bookingId}/auto-assign", autoAssign.Handle).Methods(http.MethodPost)

	// Ручное назначение медика администратором
	api.HandleFunc("/bookings/{bookingId}/assign", assignMedic.Handle).Methods(http.MethodPost)

	// --- Конфликты ---
	// Проверка конфликтов пары (бронирование, медик)
	api.HandleFunc("/conflicts/check", checkConflicts.Handle).Methods(http.MethodPost)

	// --- Расписание ---
	// Недельная доска расписания
	api.HandleFunc("/schedule-board", getScheduleWeek.Handle).Methods(http.MethodGet)

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
