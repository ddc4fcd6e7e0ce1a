package app

import (
	"database/sql"
	"os"
	"strconv"
	"time"

	"resto-ops/internal/activitylog"
	"resto-ops/internal/advisor"
	"resto-ops/internal/auth"
	"resto-ops/internal/catalog"
	"resto-ops/internal/compliance"
	"resto-ops/internal/employee"
	"resto-ops/internal/messaging/kafka"
	"resto-ops/internal/metrics"
	"resto-ops/internal/middleware"
	"resto-ops/internal/shared/counter"
	"resto-ops/internal/task"
	"resto-ops/internal/vacation"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	logger *zap.Logger,
) error {
	m := metrics.New(prometheus.DefaultRegisterer)

	router.Use(middleware.RequestID())
	router.Use(m.GinMiddleware())
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// --- Repositories ---
	activitylogRepo := activitylog.NewRepository(gormDB)
	authRepo := auth.NewRepository(gormDB)
	catalogRepo := catalog.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	taskRepo := task.NewRepository(gormDB)
	vacationRepo := vacation.NewRepository(gormDB)

	// --- Services ---
	activitylogService := activitylog.NewService(activitylogRepo, logger)
	authService := auth.NewService(authRepo, logger)
	catalogService := catalog.NewService(catalogRepo, rdb, activitylogService,
		[]catalog.DependentKey{compliance.DashboardKey}, logger)
	employeeService := employee.NewService(
		db,
		employeeRepo,
		counterRepo,
		outboxRepo,
		rdb,
		activitylogService,
		catalogService,
		m,
		logger,
	)
	complianceService := compliance.NewService(employeeRepo, catalogService, rdb, m, logger)
	taskService := task.NewService(taskRepo, employeeRepo, activitylogService, logger)
	vacationService := vacation.NewService(vacationRepo, activitylogService, logger)

	advisorClient := advisor.NewHTTPClient(
		os.Getenv("ADVISOR_ENDPOINT"),
		os.Getenv("ADVISOR_API_KEY"),
		advisorTimeout(),
		logger,
	)
	advisorService := advisor.NewService(advisorClient, employeeRepo, taskRepo, vacationService, m, logger)

	// --- Handlers ---
	activitylogHandler := activitylog.NewHandler(activitylogService, logger)
	advisorHandler := advisor.NewHandler(advisorService, logger)
	authHandler := auth.NewHandler(authService, logger)
	catalogHandler := catalog.NewHandler(catalogService, logger)
	complianceHandler := compliance.NewHandler(complianceService, logger)
	employeeHandler := employee.NewHandler(employeeService, logger)
	taskHandler := task.NewHandler(taskService, logger)
	vacationHandler := vacation.NewHandler(vacationService, logger)

	// --- Routes ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		activitylog.RegisterRoutes(api, activitylogHandler, logger)
		advisor.RegisterRoutes(api, advisorHandler, logger)
		catalog.RegisterRoutes(api, catalogHandler, logger)
		compliance.RegisterRoutes(api, complianceHandler, logger)
		employee.RegisterRoutes(api, employeeHandler, logger)
		task.RegisterRoutes(api, taskHandler, logger)
		vacation.RegisterRoutes(api, vacationHandler, logger)
	}

	return nil
}

func advisorTimeout() time.Duration {
	if raw := os.Getenv("ADVISOR_TIMEOUT_SECONDS"); raw != "" {
		if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return 30 * time.Second
}
