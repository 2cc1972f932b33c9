package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SandeDesign/alloon-sub000/internal/config"
	appHTTP "github.com/SandeDesign/alloon-sub000/internal/handler/http"
	"github.com/SandeDesign/alloon-sub000/internal/pkg/cron"
	"github.com/SandeDesign/alloon-sub000/internal/pkg/database"
	"github.com/SandeDesign/alloon-sub000/internal/pkg/events"
	"github.com/SandeDesign/alloon-sub000/internal/pkg/jwt"
	"github.com/SandeDesign/alloon-sub000/internal/pkg/storage"
	"github.com/SandeDesign/alloon-sub000/internal/repository/postgresql"
	payrollService "github.com/SandeDesign/alloon-sub000/internal/service/payroll"
	payslipService "github.com/SandeDesign/alloon-sub000/internal/service/payslip"
	"github.com/go-chi/httplog/v3"
)

func main() {
	if err := run(); err != nil {
		slog.Error("payroll engine stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.SlogLevel(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", cfg.App.Name),
		slog.String("version", cfg.App.Version),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), cfg.Database.MaxConns)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	taxTable, err := payrollService.LoadTaxTable(cfg.Payroll.TaxTableFile)
	if err != nil {
		return fmt.Errorf("load tax table: %w", err)
	}
	slog.Info("tax table loaded", "version", taxTable.Version, "file", cfg.Payroll.TaxTableFile)

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}

	publisher := events.NewNoopPublisher()
	if len(cfg.Kafka.Brokers) > 0 {
		publisher = events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		slog.Info("publishing payroll events to kafka", "brokers", cfg.Kafka.Brokers, "topic", cfg.Kafka.Topic)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			slog.Error("failed to close event publisher", "error", err)
		}
	}()

	transactor := postgresql.NewTransactor(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	payslipRepo := postgresql.NewPayslipRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	companyRepo := postgresql.NewCompanyRepository(db)
	timesheetRepo := postgresql.NewTimesheetRepository(db)
	leaveQuotaRepo := postgresql.NewLeaveQuotaRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	payslipSvc := payslipService.NewPayslipService(
		payslipRepo,
		payrollRepo,
		employeeRepo,
		companyRepo,
		leaveQuotaRepo,
		payslipService.NewPDFRenderer(cfg.Payroll.Currency),
		fileStorage,
		publisher,
		cfg.Payroll.WorkerCount,
	)
	payrollSvc := payrollService.NewPayrollService(
		transactor,
		payrollRepo,
		employeeRepo,
		timesheetRepo,
		payrollService.NewCalculator(payrollService.DefaultRateSchedule(), taxTable),
		payslipSvc,
		publisher,
		payrollService.Options{
			Workers:              cfg.Payroll.WorkerCount,
			AutoGeneratePayslips: cfg.Payroll.AutoPayslips,
		},
	)

	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	payslipHandler := appHTTP.NewPayslipHandler(payslipSvc)

	router := appHTTP.NewRouter(
		logger,
		JWTService,
		cfg.CORS.AllowedOrigins,
		payrollHandler,
		payslipHandler,
	)

	scheduler := cron.NewScheduler()
	cron.NewPayslipJobs(payslipSvc, cfg.Payroll.PayslipRetryInterval).RegisterJobs(scheduler)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
		slog.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	return nil
}
