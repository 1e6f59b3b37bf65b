package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	accountingapp "github.com/erp/backoffice/internal/application/accounting"
	auditapp "github.com/erp/backoffice/internal/application/audit"
	branchapp "github.com/erp/backoffice/internal/application/branch"
	"github.com/erp/backoffice/internal/application/document"
	financeapp "github.com/erp/backoffice/internal/application/finance"
	inventoryapp "github.com/erp/backoffice/internal/application/inventory"
	payrollapp "github.com/erp/backoffice/internal/application/payroll"
	reportapp "github.com/erp/backoffice/internal/application/report"
	"github.com/erp/backoffice/internal/application/uow"
	"github.com/erp/backoffice/internal/domain/payroll"
	"github.com/erp/backoffice/internal/infrastructure/auth"
	"github.com/erp/backoffice/internal/infrastructure/cache"
	"github.com/erp/backoffice/internal/infrastructure/config"
	"github.com/erp/backoffice/internal/infrastructure/event"
	"github.com/erp/backoffice/internal/infrastructure/logger"
	"github.com/erp/backoffice/internal/infrastructure/pdf"
	"github.com/erp/backoffice/internal/infrastructure/persistence"
	"github.com/erp/backoffice/internal/infrastructure/storage"
	"github.com/erp/backoffice/internal/infrastructure/telemetry"
	"github.com/erp/backoffice/internal/interfaces/http/handler"
	"github.com/erp/backoffice/internal/interfaces/http/middleware"
	"github.com/erp/backoffice/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	_ "github.com/erp/backoffice/docs"
)

//go:generate swag init -v3.1 -g cmd/server/main.go -o docs -d ../../

//	@title			Back Office API
//	@version		1.0
//	@description	Ledger, payables and receivables, payroll with advance deductions, and inventory for multi-branch shops.

//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	ctx := context.Background()
	serviceName := cfg.Telemetry.ServiceName
	if serviceName == "" {
		serviceName = cfg.App.Name
	}

	// Telemetry
	tp, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       serviceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}

	mp, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled && cfg.Telemetry.MetricsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ExportInterval:    cfg.Telemetry.MetricsInterval,
		ServiceName:       serviceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}

	lp, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.Enabled && cfg.Telemetry.LogsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       serviceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize logger provider", zap.Error(err))
	}
	if lp.IsEnabled() {
		log = lp.Bridge(log, logger.ParseLevel(cfg.Telemetry.LogsLevel))
	}

	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:           cfg.Telemetry.ProfilingEnabled,
		ServerAddress:     cfg.Telemetry.ProfilingServer,
		ApplicationName:   serviceName,
		BasicAuthUser:     cfg.Telemetry.ProfilingUser,
		BasicAuthPassword: cfg.Telemetry.ProfilingPassword,
	}, log)
	if err != nil {
		log.Warn("Failed to start profiler", zap.Error(err))
	}
	if profiler != nil && profiler.IsEnabled() && tp.IsEnabled() {
		tp.EnableSpanProfiles()
	}

	log.Info("Starting back office",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.Bool("tracing", tp.IsEnabled()),
	)

	// Database
	db, err := persistence.NewDatabase(ctx, &cfg.Database, persistence.Options{
		Logger:        log,
		LogLevel:      cfg.Log.Level,
		SlowThreshold: cfg.Telemetry.DBSlowQueryThresh,
		LogFullSQL:    cfg.Telemetry.DBLogFullSQL,
		Tracing: telemetry.DBTracingConfig{
			Enabled:         cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
			LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
			SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
			DBName:          cfg.Database.DBName,
		},
	})
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	log.Info("Database connected successfully")

	repos := persistence.NewRepositories(db.DB)
	unitOfWork := persistence.NewGormUnitOfWork(db.DB, cfg.Database.LockTimeout)

	// Events: every committed change lands in the audit log
	bus := event.NewInMemoryEventBus(log)
	bus.Subscribe(auditapp.NewAuditHandler(repos.AuditLogs(), log))

	ledgerMetrics, err := telemetry.NewLedgerMetrics(mp.Meter("backoffice/ledger"))
	if err != nil {
		log.Fatal("Failed to register ledger metrics", zap.Error(err))
	}

	policy, err := payroll.NewDeductionPolicy(cfg.Payroll.DeductionPolicy)
	if err != nil {
		log.Fatal("Invalid payroll deduction policy", zap.Error(err))
	}

	rt := uow.Runtime{
		UoW:       unitOfWork,
		Repos:     repos,
		Publisher: bus,
		Metrics:   ledgerMetrics,
		Logger:    log,
	}

	// Application services
	transactionService := accountingapp.NewTransactionService(rt)
	branchService := branchapp.NewBranchService(rt)
	contactService := financeapp.NewContactService(rt)
	payableService := financeapp.NewPayableService(rt)
	receivableService := financeapp.NewReceivableService(rt)
	itemService := inventoryapp.NewItemService(rt)
	employeeService := payrollapp.NewEmployeeService(rt)
	advanceService := payrollapp.NewAdvanceService(rt)
	bonusService := payrollapp.NewBonusService(rt)
	payrollService := payrollapp.NewPayrollService(rt, policy)
	auditService := auditapp.NewAuditLogService(repos.AuditLogs())
	exportService := reportapp.NewExportService(repos)

	// Payslip documents
	var objects document.ObjectStorage
	if cfg.Storage.Enabled {
		s3Storage, err := storage.NewS3ObjectStorage(ctx, &cfg.Storage, storage.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		if err := s3Storage.EnsureBucket(ctx); err != nil {
			log.Fatal("Failed to prepare storage bucket", zap.Error(err))
		}
		objects = s3Storage
	} else {
		log.Info("Object storage disabled, payslips are kept in memory")
		objects = storage.NewMemoryObjectStorage("http://localhost:" + cfg.App.Port + "/documents")
	}

	renderer := pdf.NewChromedpRenderer(pdf.Config{
		RemoteURL: cfg.PDF.RemoteURL,
		NoSandbox: cfg.PDF.NoSandbox,
		Timeout:   cfg.PDF.Timeout,
		Logger:    log,
	})
	payslipTemplate, err := document.NewPayslipTemplate(document.NewFormatter(language.English))
	if err != nil {
		log.Fatal("Failed to parse payslip template", zap.Error(err))
	}
	payslipService := document.NewPayslipService(repos, renderer, objects, payslipTemplate,
		document.WithLinkExpiry(cfg.Storage.PresignExpiration),
		document.WithLogger(log),
	)

	// HTTP
	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	var idempotency *middleware.IdempotencyConfig
	var idempotencyStore cache.IdempotencyStore
	if cfg.Idempotency.Enabled {
		idempotencyStore = cache.NewIdempotencyStore(ctx, cfg.Redis, log)
		idempotency = &middleware.IdempotencyConfig{
			Store:   idempotencyStore,
			TTL:     cfg.Idempotency.TTL,
			LockTTL: cfg.Idempotency.LockTTL,
		}
	}

	engine := router.New(router.Config{
		Logger:           log,
		Verifier:         auth.NewJWTService(cfg.JWT),
		ServiceName:      serviceName,
		TrustedProxies:   cfg.HTTP.TrustedProxies,
		CORSOrigins:      cfg.HTTP.CORSAllowOrigins,
		MaxBodySize:      cfg.HTTP.MaxBodySize,
		Idempotency:      idempotency,
		TracingEnabled:   tp.IsEnabled(),
		Meter:            mp.Meter("backoffice/http"),
		ProfilingEnabled: profiler != nil && profiler.IsEnabled(),
		SwaggerEnabled:   cfg.Swagger.Enabled,
	}, router.Handlers{
		System:       handler.NewSystemHandler(cfg.App.Name, version, db),
		Branches:     handler.NewBranchHandler(branchService),
		Contacts:     handler.NewContactHandler(contactService),
		Transactions: handler.NewTransactionHandler(transactionService),
		Payables:     handler.NewPayableHandler(payableService),
		Receivables:  handler.NewReceivableHandler(receivableService),
		Employees:    handler.NewEmployeeHandler(employeeService, advanceService),
		Payroll:      handler.NewPayrollHandler(payrollService, payslipService),
		Bonuses:      handler.NewBonusHandler(bonusService),
		Inventory:    handler.NewInventoryHandler(itemService),
		Audit:        handler.NewAuditHandler(auditService),
		Reports:      handler.NewReportHandler(exportService),
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	if idempotencyStore != nil {
		if err := idempotencyStore.Close(); err != nil {
			log.Warn("Error closing idempotency store", zap.Error(err))
		}
	}
	if err := renderer.Close(); err != nil {
		log.Warn("Error closing PDF renderer", zap.Error(err))
	}
	if err := db.Close(); err != nil {
		log.Error("Error closing database", zap.Error(err))
	}
	if profiler != nil {
		if err := profiler.Stop(); err != nil {
			log.Warn("Error stopping profiler", zap.Error(err))
		}
	}
	for name, shutdown := range map[string]func(context.Context) error{
		"logs":    lp.Shutdown,
		"metrics": mp.Shutdown,
		"traces":  tp.Shutdown,
	} {
		if err := shutdown(shutdownCtx); err != nil {
			log.Warn("Error shutting down telemetry", zap.String("signal", name), zap.Error(err))
		}
	}

	log.Info("Server exited gracefully")
}
