package app

import (
	"database/sql"

	"go-leave/internal/department"
	"go-leave/internal/employee"
	"go-leave/internal/holiday"
	"go-leave/internal/leave"
	"go-leave/internal/messaging/kafka"
	"go-leave/internal/middleware"
	"go-leave/internal/notification"
	"go-leave/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	departmentRepo := department.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	balanceRepo := employee.NewBalanceRepository(db)
	holidayRepo := holiday.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB, db)
	notificationRepo := notification.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	rbacService, err := rbac.NewService()
	if err != nil {
		return err
	}

	// --- Services ---
	directory := employee.NewDirectory(employeeRepo, departmentRepo)
	holidayService := holiday.NewService(holidayRepo, rdb)
	leaveService := leave.NewService(db, leaveRepo, directory, holidayService, balanceRepo, outboxRepo)
	notificationService := notification.NewService(notificationRepo)

	// --- Handlers ---
	holidayHandler := holiday.NewHandler(holidayService)
	leaveHandler := leave.NewHandler(leaveService)
	notificationHandler := notification.NewHandler(notificationService)

	// --- Routes Registration ---
	router.Use(middleware.RequestID())
	router.Use(middleware.RateLimitByIP(20, 40))

	api := router.Group("/api/v1")
	{
		holiday.RegisterRoutes(api, holidayHandler, rbacService)
		leave.RegisterRoutes(api, leaveHandler, rbacService, rdb)
		notification.RegisterRoutes(api, notificationHandler, rbacService)
	}

	return nil
}
