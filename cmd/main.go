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

	approveAppointmentHandler "github.com/m04kA/BMP-ScheduleService/internal/api/handlers/approve_appointment"
	cancelAppointmentHandler "github.com/m04kA/BMP-ScheduleService/internal/api/handlers/cancel_appointment"
	completeAppointmentHandler "github.com/m04kA/BMP-ScheduleService/internal/api/handlers/complete_appointment"
	createAppointmentHandler "github.com/m04kA/BMP-ScheduleService/internal/api/handlers/create_appointment"
	createBlockedSlotHandler "github.com/m04kA/BMP-ScheduleService/internal/api/handlers/create_blocked_slot"
	deleteBlockedSlotHandler "github.com/m04kA/BMP-ScheduleService/internal/api/handlers/delete_blocked_slot"
	getAppointmentHandler "github.com/m04kA/BMP-ScheduleService/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/m04kA/BMP-ScheduleService/internal/api/handlers/get_available_slots"
	getCalendarHandler "github.com/m04kA/BMP-ScheduleService/internal/api/handlers/get_calendar"
	getClientAppointmentsHandler "github.com/m04kA/BMP-ScheduleService/internal/api/handlers/get_client_appointments"
	getProfessionalAppointmentsHandler "github.com/m04kA/BMP-ScheduleService/internal/api/handlers/get_professional_appointments"
	getScheduleHandler "github.com/m04kA/BMP-ScheduleService/internal/api/handlers/get_schedule"
	rescheduleAppointmentHandler "github.com/m04kA/BMP-ScheduleService/internal/api/handlers/reschedule_appointment"
	updateBlockedSlotHandler "github.com/m04kA/BMP-ScheduleService/internal/api/handlers/update_blocked_slot"
	updateCustomHoursHandler "github.com/m04kA/BMP-ScheduleService/internal/api/handlers/update_custom_hours"
	updateWorkingHoursHandler "github.com/m04kA/BMP-ScheduleService/internal/api/handlers/update_working_hours"
	"github.com/m04kA/BMP-ScheduleService/internal/api/middleware"
	"github.com/m04kA/BMP-ScheduleService/internal/config"
	appointmentRepo "github.com/m04kA/BMP-ScheduleService/internal/infra/storage/appointment"
	blockedRepo "github.com/m04kA/BMP-ScheduleService/internal/infra/storage/blocked"
	scheduleRepo "github.com/m04kA/BMP-ScheduleService/internal/infra/storage/schedule"
	notifyServiceClient "github.com/m04kA/BMP-ScheduleService/internal/integrations/notifyservice"
	appointmentsService "github.com/m04kA/BMP-ScheduleService/internal/service/appointments"
	scheduleService "github.com/m04kA/BMP-ScheduleService/internal/service/schedule"
	createAppointmentUC "github.com/m04kA/BMP-ScheduleService/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/m04kA/BMP-ScheduleService/internal/usecase/get_available_slots"
	getCalendarUC "github.com/m04kA/BMP-ScheduleService/internal/usecase/get_calendar"
	"github.com/m04kA/BMP-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/BMP-ScheduleService/pkg/logger"
	"github.com/m04kA/BMP-ScheduleService/pkg/metrics"
	"github.com/m04kA/BMP-ScheduleService/pkg/simpletxmanager"
	"github.com/m04kA/BMP-ScheduleService/pkg/txmanager"
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

	log.Info("Starting BMP-ScheduleService...")
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

	// Инициализируем клиент сервиса уведомлений
	notifyClient := notifyServiceClient.NewClient(
		cfg.NotifyService.URL,
		cfg.NotifyService.PushURL,
		time.Duration(cfg.NotifyService.Timeout)*time.Second,
		log,
	)
	log.Info("NotifyService client initialized (url=%s, push_url=%s, timeout=%ds)",
		cfg.NotifyService.URL, cfg.NotifyService.PushURL, cfg.NotifyService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		appointmentRepository *appointmentRepo.Repository
		scheduleRepository    *scheduleRepo.Repository
		blockedRepository     *blockedRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases и сервисах)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		blockedRepository = blockedRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		blockedRepository = blockedRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	appointmentsSvc := appointmentsService.NewService(
		appointmentRepository,
		notifyClient,
		log,
	)
	scheduleSvc := scheduleService.NewService(
		scheduleRepository,
		blockedRepository,
		txMgr,
		log,
	)

	// Инициализируем use cases
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		scheduleRepository,
		blockedRepository,
		notifyClient,
		txMgr,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		scheduleRepository,
		blockedRepository,
		appointmentRepository,
		log,
	)

	getCalendarUseCase := getCalendarUC.NewUseCase(
		blockedRepository,
		appointmentRepository,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getSchedule := getScheduleHandler.NewHandler(scheduleSvc, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	getClientAppointments := getClientAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getProfessionalAppointments := getProfessionalAppointmentsHandler.NewHandler(appointmentsSvc, log)
	approveAppointment := approveAppointmentHandler.NewHandler(appointmentsSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentsSvc, log)
	rescheduleAppointment := rescheduleAppointmentHandler.NewHandler(appointmentsSvc, log)
	completeAppointment := completeAppointmentHandler.NewHandler(appointmentsSvc, log)
	getCalendar := getCalendarHandler.NewHandler(getCalendarUseCase, log)
	updateWorkingHours := updateWorkingHoursHandler.NewHandler(scheduleSvc, log)
	updateCustomHours := updateCustomHoursHandler.NewHandler(scheduleSvc, log)
	createBlockedSlot := createBlockedSlotHandler.NewHandler(scheduleSvc, log)
	updateBlockedSlot := updateBlockedSlotHandler.NewHandler(scheduleSvc, log)
	deleteBlockedSlot := deleteBlockedSlotHandler.NewHandler(scheduleSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Каждому запросу присваивается request id для трассировки в логах
	r.Use(middleware.RequestID)

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

	// Доступные слоты профессионала на дату (клиентский флоу бронирования)
	api.HandleFunc("/professionals/{professionalId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Полное расписание профессионала
	api.HandleFunc("/professionals/{professionalId}/schedule",
		getSchedule.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи ---
	// Создание заявки на запись
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// История записей текущего клиента
	protected.HandleFunc("/appointments", getClientAppointments.Handle).Methods(http.MethodGet)

	// Получение записи по ID
	protected.HandleFunc("/appointments/{id}", getAppointment.Handle).Methods(http.MethodGet)

	// Переходы статусов
	protected.HandleFunc("/appointments/{id}/approve", approveAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{id}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{id}/reschedule", rescheduleAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{id}/complete", completeAppointment.Handle).Methods(http.MethodPatch)

	// --- Кабинет профессионала ---
	// Записи профессионала с фильтрацией
	protected.HandleFunc("/professionals/{professionalId}/appointments",
		getProfessionalAppointments.Handle).Methods(http.MethodGet)

	// Календарь профессионала за период
	protected.HandleFunc("/professionals/{professionalId}/calendar",
		getCalendar.Handle).Methods(http.MethodGet)

	// Управление расписанием
	protected.HandleFunc("/professionals/{professionalId}/working-hours",
		updateWorkingHours.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/professionals/{professionalId}/custom-hours",
		updateCustomHours.Handle).Methods(http.MethodPut)

	// Блокировки времени
	protected.HandleFunc("/professionals/{professionalId}/blocked-slots",
		createBlockedSlot.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/blocked-slots/{id}", updateBlockedSlot.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/blocked-slots/{id}", deleteBlockedSlot.Handle).Methods(http.MethodDelete)

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
