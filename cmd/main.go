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
	"github.com/rs/cors"

	createBookingHandler "github.com/m04kA/travel-backoffice/internal/api/handlers/create_booking"
	createPaymentHandler "github.com/m04kA/travel-backoffice/internal/api/handlers/create_payment"
	deleteBatchHandler "github.com/m04kA/travel-backoffice/internal/api/handlers/delete_batch"
	deleteBookingHandler "github.com/m04kA/travel-backoffice/internal/api/handlers/delete_booking"
	deletePaymentHandler "github.com/m04kA/travel-backoffice/internal/api/handlers/delete_payment"
	downloadTemplateHandler "github.com/m04kA/travel-backoffice/internal/api/handlers/download_template"
	exportBookingsHandler "github.com/m04kA/travel-backoffice/internal/api/handlers/export_bookings"
	getBookingHandler "github.com/m04kA/travel-backoffice/internal/api/handlers/get_booking"
	getBookingStatsHandler "github.com/m04kA/travel-backoffice/internal/api/handlers/get_booking_stats"
	getPaymentReportsHandler "github.com/m04kA/travel-backoffice/internal/api/handlers/get_payment_reports"
	importBookingsHandler "github.com/m04kA/travel-backoffice/internal/api/handlers/import_bookings"
	listBatchesHandler "github.com/m04kA/travel-backoffice/internal/api/handlers/list_batches"
	listBookingsHandler "github.com/m04kA/travel-backoffice/internal/api/handlers/list_bookings"
	listPaymentsHandler "github.com/m04kA/travel-backoffice/internal/api/handlers/list_payments"
	reconcileBookingHandler "github.com/m04kA/travel-backoffice/internal/api/handlers/reconcile_booking"
	sendPaymentEmailHandler "github.com/m04kA/travel-backoffice/internal/api/handlers/send_payment_email"
	updateBookingHandler "github.com/m04kA/travel-backoffice/internal/api/handlers/update_booking"
	updatePaymentHandler "github.com/m04kA/travel-backoffice/internal/api/handlers/update_payment"
	"github.com/m04kA/travel-backoffice/internal/api/handlers"
	"github.com/m04kA/travel-backoffice/internal/api/middleware"
	"github.com/m04kA/travel-backoffice/internal/config"
	batchRepo "github.com/m04kA/travel-backoffice/internal/infra/storage/batch"
	bookingRepo "github.com/m04kA/travel-backoffice/internal/infra/storage/booking"
	paymentRepo "github.com/m04kA/travel-backoffice/internal/infra/storage/payment"
	"github.com/m04kA/travel-backoffice/internal/integrations/mailer"
	batchesService "github.com/m04kA/travel-backoffice/internal/service/batches"
	bookingsService "github.com/m04kA/travel-backoffice/internal/service/bookings"
	paymentsService "github.com/m04kA/travel-backoffice/internal/service/payments"
	createPaymentUC "github.com/m04kA/travel-backoffice/internal/usecase/create_payment"
	deleteBatchUC "github.com/m04kA/travel-backoffice/internal/usecase/delete_batch"
	deletePaymentUC "github.com/m04kA/travel-backoffice/internal/usecase/delete_payment"
	importBookingsUC "github.com/m04kA/travel-backoffice/internal/usecase/import_bookings"
	updatePaymentUC "github.com/m04kA/travel-backoffice/internal/usecase/update_payment"
	"github.com/m04kA/travel-backoffice/pkg/dbmetrics"
	"github.com/m04kA/travel-backoffice/pkg/logger"
	"github.com/m04kA/travel-backoffice/pkg/metrics"
	"github.com/m04kA/travel-backoffice/pkg/txmanager"
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

	log.Info("Starting travel-backoffice...")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
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

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Обёртка над БД: замер запросов и статистика пула (без метрик - только обёртка)
	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}

	// Репозитории и менеджер транзакций
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	paymentRepository := paymentRepo.NewRepository(wrappedDB)
	batchRepository := batchRepo.NewRepository(wrappedDB)
	txMgr := txmanager.New(wrappedDB)

	// Почта
	mailClient := mailer.NewClient(mailer.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
		FromName: cfg.SMTP.FromName,
	}, log)
	if cfg.SMTP.Host == "" {
		log.Warn("SMTP is not configured, payment confirmation emails are disabled")
	}

	// Сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, batchRepository, paymentRepository, txMgr, log)
	paymentSvc := paymentsService.NewService(bookingRepository, paymentRepository, mailClient, metricsCollector, log)
	batchSvc := batchesService.NewService(batchRepository, log)

	// Use cases
	attempts := cfg.Import.PaymentRetryCount
	createPaymentUseCase := createPaymentUC.NewUseCase(bookingRepository, paymentRepository, txMgr, metricsCollector, attempts, log)
	updatePaymentUseCase := updatePaymentUC.NewUseCase(bookingRepository, paymentRepository, txMgr, metricsCollector, attempts, log)
	deletePaymentUseCase := deletePaymentUC.NewUseCase(bookingRepository, paymentRepository, txMgr, metricsCollector, attempts, log)
	importBookingsUseCase := importBookingsUC.NewUseCase(bookingRepository, paymentRepository, batchRepository, txMgr, metricsCollector, log)
	deleteBatchUseCase := deleteBatchUC.NewUseCase(batchRepository, bookingRepository, paymentRepository, txMgr, log)

	// Handlers
	createBooking := createBookingHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	updateBooking := updateBookingHandler.NewHandler(bookingSvc, log)
	deleteBooking := deleteBookingHandler.NewHandler(bookingSvc, log)
	getBookingStats := getBookingStatsHandler.NewHandler(bookingSvc, log)
	exportBookings := exportBookingsHandler.NewHandler(bookingSvc, log)
	downloadTemplate := downloadTemplateHandler.NewHandler(bookingSvc, log)
	reconcileBooking := reconcileBookingHandler.NewHandler(bookingSvc, log)
	importBookings := importBookingsHandler.NewHandler(importBookingsUseCase, int64(cfg.Import.MaxFileSizeMB)<<20, log)

	listPayments := listPaymentsHandler.NewHandler(paymentSvc, log)
	createPayment := createPaymentHandler.NewHandler(createPaymentUseCase, log)
	updatePayment := updatePaymentHandler.NewHandler(updatePaymentUseCase, log)
	deletePayment := deletePaymentHandler.NewHandler(deletePaymentUseCase, log)
	sendPaymentEmail := sendPaymentEmailHandler.NewHandler(paymentSvc, log)
	getPaymentReports := getPaymentReportsHandler.NewHandler(paymentSvc, log)

	listBatches := listBatchesHandler.NewHandler(batchSvc, log)
	deleteBatch := deleteBatchHandler.NewHandler(deleteBatchUseCase, log)

	importLimiter := middleware.NewRateLimiter(cfg.Import.RateLimitPerMin, cfg.Import.RateLimitBurst)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	api.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (Authorization: Bearer <jwt>)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.AccessLog(log))
	protected.Use(middleware.Auth([]byte(cfg.Auth.JWTSecret)))

	// --- Бронирования ---
	// Статические пути регистрируются раньше /bookings/{bookingId}
	protected.HandleFunc("/bookings/stats", getBookingStats.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/export", exportBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/template", downloadTemplate.Handle).Methods(http.MethodGet)
	protected.Handle("/bookings/import", importLimiter.Limit(http.HandlerFunc(importBookings.Handle))).Methods(http.MethodPost)

	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", updateBooking.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/bookings/{bookingId}", deleteBooking.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/bookings/{bookingId}/reconcile", reconcileBooking.Handle).Methods(http.MethodGet)

	// --- Платежи ---
	protected.HandleFunc("/bookings/{bookingId}/payments", listPayments.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/payments", createPayment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/payments/reports/summary", getPaymentReports.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/payments/{paymentId}", updatePayment.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/payments/{paymentId}", deletePayment.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/payments/{paymentId}/send-email", sendPaymentEmail.Handle).Methods(http.MethodPost)

	// --- Пакеты импорта ---
	protected.HandleFunc("/import-batches", listBatches.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/import-batches/{batchId}", deleteBatch.Handle).Methods(http.MethodDelete)

	// CORS для админки
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
	}).Handler(r)

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      corsHandler,
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
