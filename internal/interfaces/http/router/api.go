package router

import (
	"github.com/erp/backoffice/internal/infrastructure/logger"
	"github.com/erp/backoffice/internal/interfaces/http/handler"
	"github.com/erp/backoffice/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// Handlers are the HTTP handlers mounted under /api/v1
type Handlers struct {
	System       *handler.SystemHandler
	Branches     *handler.BranchHandler
	Contacts     *handler.ContactHandler
	Transactions *handler.TransactionHandler
	Payables     *handler.PayableHandler
	Receivables  *handler.ReceivableHandler
	Employees    *handler.EmployeeHandler
	Payroll      *handler.PayrollHandler
	Bonuses      *handler.BonusHandler
	Inventory    *handler.InventoryHandler
	Audit        *handler.AuditHandler
	Reports      *handler.ReportHandler
}

// Config carries what the middleware chain needs
type Config struct {
	Logger         *zap.Logger
	Verifier       middleware.TokenVerifier
	ServiceName    string
	TrustedProxies []string
	CORSOrigins    []string
	MaxBodySize    int64

	// Idempotency is nil when replay protection is disabled
	Idempotency *middleware.IdempotencyConfig

	TracingEnabled   bool
	Meter            metric.Meter
	ProfilingEnabled bool
	SwaggerEnabled   bool
}

// New builds the engine: global middleware, /health, the optional swagger
// UI, and every resource under the authenticated /api/v1 group.
func New(cfg Config, h Handlers) *gin.Engine {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	engine := gin.New()
	if len(cfg.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Tracing(cfg.ServiceName, cfg.TracingEnabled))
	engine.Use(middleware.SpanErrorMarker())
	engine.Use(middleware.HTTPMetrics(cfg.Meter))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORS(middleware.DefaultCORSConfig(cfg.CORSOrigins)))
	if cfg.MaxBodySize > 0 {
		engine.Use(middleware.BodyLimit(cfg.MaxBodySize))
	}

	if h.System != nil {
		engine.GET("/health", h.System.Health)
	}
	if cfg.SwaggerEnabled {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	r := NewRouter(engine, WithAPIVersion("v1"))
	r.Use(
		middleware.Auth(middleware.DefaultAuthConfig(cfg.Verifier, log)),
		middleware.TracingAttributeInjector(),
		middleware.Profiling(cfg.ProfilingEnabled),
	)
	if cfg.Idempotency != nil {
		r.Use(middleware.Idempotency(*cfg.Idempotency))
	}
	r.Register(Routes(h)...)
	r.Setup()

	return engine
}

// Routes returns the resource groups of the API. Handlers left nil are not
// mounted.
func Routes(h Handlers) []RouteRegistrar {
	var groups []RouteRegistrar

	if h.Branches != nil {
		groups = append(groups, NewDomainGroup("branches", "/branches").
			POST("", h.Branches.Create).
			GET("", h.Branches.List).
			POST("/:id/disable", h.Branches.Disable))
	}

	if h.Contacts != nil {
		groups = append(groups, NewDomainGroup("contacts", "/contacts").
			POST("", h.Contacts.Create).
			GET("", h.Contacts.List).
			GET("/:id", h.Contacts.Get))
	}

	if h.Transactions != nil {
		groups = append(groups, NewDomainGroup("transactions", "/transactions").
			POST("", h.Transactions.Create).
			GET("", h.Transactions.List).
			GET("/summary", h.Transactions.Summary).
			GET("/:id", h.Transactions.Get).
			DELETE("/:id", h.Transactions.Delete))
	}

	if h.Payables != nil {
		groups = append(groups, NewDomainGroup("payables", "/payables").
			POST("", h.Payables.Create).
			GET("", h.Payables.List).
			GET("/:id", h.Payables.Get).
			DELETE("/:id", h.Payables.Delete).
			POST("/:id/pay", h.Payables.Pay))
	}

	if h.Receivables != nil {
		groups = append(groups, NewDomainGroup("receivables", "/receivables").
			POST("", h.Receivables.Create).
			GET("", h.Receivables.List).
			GET("/:id", h.Receivables.Get).
			DELETE("/:id", h.Receivables.Delete).
			POST("/:id/collect", h.Receivables.Collect))
	}

	if h.Employees != nil {
		employees := NewDomainGroup("employees", "/employees").
			POST("", h.Employees.Create).
			GET("", h.Employees.List).
			GET("/:id", h.Employees.Get).
			PUT("/:id/salary", h.Employees.UpdateSalary).
			POST("/:id/resign", h.Employees.Resign).
			POST("/:id/advances", h.Employees.CreateAdvance).
			GET("/:id/advances", h.Employees.ListEmployeeAdvances)
		employees.Group("advances", "/advances").
			GET("", h.Employees.ListAdvances).
			POST("/deduct", h.Employees.DeductAdvance).
			GET("/:id", h.Employees.GetAdvance).
			POST("/:id/cancel", h.Employees.CancelAdvance)
		groups = append(groups, employees)
	}

	if h.Payroll != nil || h.Bonuses != nil {
		payroll := NewDomainGroup("payroll", "/payroll")
		if h.Payroll != nil {
			payroll.
				POST("/pay-salary", h.Payroll.PaySalary).
				POST("/preview", h.Payroll.Preview).
				GET("/salary-payments", h.Payroll.ListSalaryPayments).
				GET("/salary-payments/:id", h.Payroll.GetSalaryPayment).
				DELETE("/salary-payments/:id", h.Payroll.DeleteSalaryPayment).
				POST("/salary-payments/:id/payslip", h.Payroll.GeneratePayslip)
		}
		if h.Bonuses != nil {
			payroll.
				POST("/bonuses", h.Bonuses.Grant).
				GET("/bonuses", h.Bonuses.List).
				DELETE("/bonuses/:id", h.Bonuses.Delete)
		}
		groups = append(groups, payroll)
	}

	if h.Inventory != nil {
		groups = append(groups, NewDomainGroup("inventory", "/inventory/items").
			POST("", h.Inventory.CreateItem).
			GET("", h.Inventory.ListItems).
			GET("/:id", h.Inventory.GetItem).
			POST("/:id/sub-units", h.Inventory.AddSubUnit).
			DELETE("/:id/sub-units/:name", h.Inventory.RemoveSubUnit).
			POST("/:id/adjust", h.Inventory.AdjustStock))
	}

	if h.Audit != nil {
		groups = append(groups, NewDomainGroup("audit", "/audit-logs").
			GET("", h.Audit.List))
	}

	if h.Reports != nil {
		groups = append(groups, NewDomainGroup("reports", "/reports").
			GET("/payables.xlsx", h.Reports.ExportPayables).
			GET("/receivables.xlsx", h.Reports.ExportReceivables).
			GET("/salary-payments.xlsx", h.Reports.ExportSalaryPayments))
	}

	return groups
}
