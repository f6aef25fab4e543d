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

	"github.com/go-chi/cors"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	addSlotsHandler "github.com/m04kA/SMC-TurfService/internal/api/handlers/add_slots"
	cancelReservationHandler "github.com/m04kA/SMC-TurfService/internal/api/handlers/cancel_reservation"
	createFacilityHandler "github.com/m04kA/SMC-TurfService/internal/api/handlers/create_facility"
	createReservationHandler "github.com/m04kA/SMC-TurfService/internal/api/handlers/create_reservation"
	deleteFacilityHandler "github.com/m04kA/SMC-TurfService/internal/api/handlers/delete_facility"
	deleteSlotHandler "github.com/m04kA/SMC-TurfService/internal/api/handlers/delete_slot"
	getAllReservationsHandler "github.com/m04kA/SMC-TurfService/internal/api/handlers/get_all_reservations"
	getBookedLabelsHandler "github.com/m04kA/SMC-TurfService/internal/api/handlers/get_booked_labels"
	getFacilitiesHandler "github.com/m04kA/SMC-TurfService/internal/api/handlers/get_facilities"
	getFacilityHandler "github.com/m04kA/SMC-TurfService/internal/api/handlers/get_facility"
	getFacilityAvailabilityHandler "github.com/m04kA/SMC-TurfService/internal/api/handlers/get_facility_availability"
	getFacilityStatsHandler "github.com/m04kA/SMC-TurfService/internal/api/handlers/get_facility_stats"
	getMyReservationsHandler "github.com/m04kA/SMC-TurfService/internal/api/handlers/get_my_reservations"
	getNearbyFacilitiesHandler "github.com/m04kA/SMC-TurfService/internal/api/handlers/get_nearby_facilities"
	replaceSlotsHandler "github.com/m04kA/SMC-TurfService/internal/api/handlers/replace_slots"
	updateFacilityHandler "github.com/m04kA/SMC-TurfService/internal/api/handlers/update_facility"
	"github.com/m04kA/SMC-TurfService/internal/api/middleware"
	"github.com/m04kA/SMC-TurfService/internal/config"
	facilityRepo "github.com/m04kA/SMC-TurfService/internal/infra/storage/facility"
	reservationRepo "github.com/m04kA/SMC-TurfService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-TurfService/internal/infra/storage/schema"
	"github.com/m04kA/SMC-TurfService/internal/integrations/eventbus"
	facilitiesService "github.com/m04kA/SMC-TurfService/internal/service/facilities"
	reservationsService "github.com/m04kA/SMC-TurfService/internal/service/reservations"
	statsService "github.com/m04kA/SMC-TurfService/internal/service/stats"
	createReservationUC "github.com/m04kA/SMC-TurfService/internal/usecase/create_reservation"
	getFacilityAvailabilityUC "github.com/m04kA/SMC-TurfService/internal/usecase/get_facility_availability"
	"github.com/m04kA/SMC-TurfService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TurfService/pkg/jwt"
	"github.com/m04kA/SMC-TurfService/pkg/keylock"
	"github.com/m04kA/SMC-TurfService/pkg/logger"
	"github.com/m04kA/SMC-TurfService/pkg/metrics"
	"github.com/m04kA/SMC-TurfService/pkg/mq"
	"github.com/m04kA/SMC-TurfService/pkg/txmanager"
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

	log.Info("Starting SMC-TurfService...")

	// Метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	sqlDB, err := sql.Open(cfg.Database.Driver, cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to open database: %v", err)
	}
	defer sqlDB.Close()

	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)
	if cfg.Database.Driver == config.DriverSQLite {
		// sqlite допускает одного писателя
		sqlDB.SetMaxOpenConns(1)
	}

	if err := sqlDB.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Connected to database (driver=%s)", cfg.Database.Driver)

	var db *dbmetrics.DB
	if cfg.Metrics.Enabled {
		db = dbmetrics.WrapWithDefault(sqlDB, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		db = dbmetrics.Wrap(sqlDB, nil, cfg.Metrics.ServiceName)
	}

	if cfg.Database.AutoMigrate {
		if err := schema.Apply(context.Background(), db); err != nil {
			log.Fatal("Failed to apply schema: %v", err)
		}
		log.Info("Database schema applied")
	}

	// События бронирований (RabbitMQ)
	var publisher eventbus.Publisher
	if cfg.Events.Enabled {
		p, err := mq.NewPublisher(cfg.Events.URL, cfg.Events.Exchange)
		if err != nil {
			// Бронирование работает и без брокера
			log.Error("Failed to connect to event broker, events disabled: %v", err)
		} else {
			defer p.Close()
			publisher = p
			log.Info("Event publishing enabled (exchange=%s)", cfg.Events.Exchange)
		}
	}
	events := eventbus.NewClient(publisher, time.Duration(cfg.Events.Timeout)*time.Second, log)

	// Репозитории, транзакции, блокировки слотов
	facilityRepository := facilityRepo.NewRepository(db)
	reservationRepository := reservationRepo.NewRepository(db)
	txMgr := txmanager.NewTransactionManager(db)
	slotLocks := keylock.New()

	// Сервисы и use cases
	facilitySvc := facilitiesService.NewService(
		facilityRepository,
		txMgr,
		cfg.Booking.NearbyRadiusMeters,
		log,
	)
	reservationSvc := reservationsService.NewService(
		reservationRepository,
		slotLocks,
		events,
		metricsCollector,
		log,
	)
	statsSvc := statsService.NewService(reservationRepository, log)

	createReservationUseCase := createReservationUC.NewUseCase(
		facilityRepository,
		reservationRepository,
		txMgr,
		slotLocks,
		events,
		metricsCollector,
		time.Duration(cfg.Booking.LockTimeoutMs)*time.Millisecond,
		log,
	)

	getFacilityAvailabilityUseCase := getFacilityAvailabilityUC.NewUseCase(
		facilityRepository,
		reservationRepository,
		log,
	)

	// Handlers
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationSvc, log)
	getMyReservations := getMyReservationsHandler.NewHandler(reservationSvc, log)
	getAllReservations := getAllReservationsHandler.NewHandler(reservationSvc, log)
	getBookedLabels := getBookedLabelsHandler.NewHandler(reservationSvc, log)
	getFacilityStats := getFacilityStatsHandler.NewHandler(statsSvc, log)

	getFacilities := getFacilitiesHandler.NewHandler(facilitySvc, log)
	getNearbyFacilities := getNearbyFacilitiesHandler.NewHandler(facilitySvc, log)
	getFacility := getFacilityHandler.NewHandler(facilitySvc, log)
	getFacilityAvailability := getFacilityAvailabilityHandler.NewHandler(getFacilityAvailabilityUseCase, log)
	createFacility := createFacilityHandler.NewHandler(facilitySvc, log)
	updateFacility := updateFacilityHandler.NewHandler(facilitySvc, log)
	deleteFacility := deleteFacilityHandler.NewHandler(facilitySvc, log)
	addSlots := addSlotsHandler.NewHandler(facilitySvc, log)
	replaceSlots := replaceSlotsHandler.NewHandler(facilitySvc, log)
	deleteSlot := deleteSlotHandler.NewHandler(facilitySvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	api.HandleFunc("/facilities", getFacilities.Handle).Methods(http.MethodGet)
	// /nearby регистрируется раньше /{facilityId}
	api.HandleFunc("/facilities/nearby", getNearbyFacilities.Handle).Methods(http.MethodGet)
	api.HandleFunc("/facilities/{facilityId}", getFacility.Handle).Methods(http.MethodGet)
	api.HandleFunc("/facilities/{facilityId}/availability", getFacilityAvailability.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (Authorization: Bearer <JWT>)
	// ============================================================

	tokens := jwt.New(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLMin)*time.Minute, cfg.Auth.JWTIssuer)

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(tokens, log))

	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reservations/my", getMyReservations.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/booked-labels", getBookedLabels.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId}", cancelReservation.Handle).Methods(http.MethodDelete)

	// --- Администрирование ---
	admin := protected.PathPrefix("").Subrouter()
	admin.Use(middleware.RequireAdmin(log))

	admin.HandleFunc("/reservations", getAllReservations.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/stats/facilities", getFacilityStats.Handle).Methods(http.MethodGet)

	admin.HandleFunc("/facilities", createFacility.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/facilities/{facilityId}", updateFacility.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/facilities/{facilityId}", deleteFacility.Handle).Methods(http.MethodDelete)
	admin.HandleFunc("/facilities/{facilityId}/slots", addSlots.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/facilities/{facilityId}/slots", replaceSlots.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/facilities/{facilityId}/slots/{slotId}", deleteSlot.Handle).Methods(http.MethodDelete)

	// CORS оборачивает весь роутер, чтобы preflight OPTIONS не упирался в 405
	corsHandler := cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      corsHandler(r),
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
