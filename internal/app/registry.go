package app

import (
	"database/sql"
	"path/filepath"

	"go-academy/internal/attendance"
	"go-academy/internal/class"
	"go-academy/internal/messaging/kafka"
	"go-academy/internal/rbac"
	"go-academy/internal/rbac/infra"
	"go-academy/internal/salarycalc"
	"go-academy/internal/salarymetrics"
	"go-academy/internal/salarypolicy"
	"go-academy/internal/shared/counter"
	"go-academy/internal/staff"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	logger := zap.L()

	// --- Repositories ---
	rbacRepo := rbac.NewRepository(gormDB)
	staffRepo := staff.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	classRepo := class.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)
	policyRepo := salarypolicy.NewRepository(gormDB)
	metricsRepo := salarymetrics.NewRepository(gormDB)
	calcRepo := salarycalc.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(filepath.Join("internal", "rbac", "infra", "model.conf"))
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer)

	// --- Services ---
	staffService := staff.NewServiceWithOutbox(db, staffRepo, counterRepo, outboxRepo, rdb)
	classService := class.NewService(classRepo)
	attendanceService := attendance.NewService(db, attendanceRepo)
	policyService := salarypolicy.NewService(db, policyRepo)
	metricsService := salarymetrics.NewService(metricsRepo)
	engine := salarycalc.NewEngine(
		salarycalc.ProgressiveTaxCalculator2024{},
		salarycalc.FlatInsuranceCalculator2024{},
	)
	calcService := salarycalc.NewService(db, calcRepo, policyService, metricsService, outboxRepo, engine)

	// --- Handlers ---
	rbacHandler := rbac.NewHandler(rbacService, rbacRepo)
	staffHandler := staff.NewHandler(staffService)
	classHandler := class.NewHandler(classService)
	attendanceHandler := attendance.NewHandler(attendanceService)
	policyHandler := salarypolicy.NewHandler(policyService)
	calcHandler := salarycalc.NewHandlerWithRedis(calcService, rdb)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		staff.RegisterRoutes(api, staffHandler, rbacService, logger)
		class.RegisterRoutes(api, classHandler, rbacService, logger)
		attendance.RegisterRoutes(api, attendanceHandler, rbacService)
		salarypolicy.RegisterRoutes(api, policyHandler, rbacService)
		salarycalc.RegisterRoutes(api, calcHandler, rbacService, rdb)
	}

	rbac.RegisterRoutes(router, rbacHandler, rbacService)

	return nil
}
