package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rmehra/billmitra-backend/config"
	"github.com/rmehra/billmitra-backend/internal/app/controller"
	"github.com/rmehra/billmitra-backend/internal/app/repository"
	"github.com/rmehra/billmitra-backend/internal/app/service"
	"github.com/rmehra/billmitra-backend/internal/db"
	"github.com/rmehra/billmitra-backend/internal/kvstore"
	"github.com/rmehra/billmitra-backend/internal/router"
	"github.com/rmehra/billmitra-backend/internal/scheduler"
	"github.com/rmehra/billmitra-backend/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting BILLMITRA Backend Server", map[string]interface{}{
		"environment":  cfg.Server.Environment,
		"port":         cfg.Server.Port,
		"log_level":    logLevel,
		"store_driver": cfg.Store.Driver,
	})

	// Initialize database (sales records, and the kv table on the postgres driver)
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Select the key-value store driver
	var store kvstore.Store
	switch cfg.Store.Driver {
	case "redis":
		store, err = kvstore.NewRedisStore(&cfg.Redis)
		if err != nil {
			logger.Fatal("Failed to initialize Redis store", err)
		}
	case "memory":
		logger.Warn("Using in-memory store, data will not survive a restart", nil)
		store = kvstore.NewMemoryStore()
	default:
		store = kvstore.NewGormStore(db.GetDB())
	}

	ctx := context.Background()

	// Initialize repositories
	profileRepo := repository.NewProfileRepository(store)
	menuRepo := repository.NewMenuRepository(store)
	salesRepo := repository.NewSalesRepository(db.GetDB())

	// Initialize services
	profileService := service.NewProfileService(ctx, profileRepo)
	menuService := service.NewMenuService(ctx, menuRepo)
	salesService := service.NewSalesService(salesRepo)
	billService := service.NewBillService(profileService.Get(ctx), salesService)
	renderService := service.NewRenderService()

	// Initialize controllers
	billController := controller.NewBillController(billService, renderService)
	menuController := controller.NewMenuController(menuService)
	profileController := controller.NewProfileController(profileService, billService)
	salesController := controller.NewSalesController(salesService)

	// Setup router
	r := router.NewRouter(
		billController,
		menuController,
		profileController,
		salesController,
		cfg,
	)
	engine := r.Setup()

	// Start the menu backup scheduler
	if cfg.Backup.Enabled {
		backupScheduler := scheduler.NewBackupScheduler(menuService, &cfg.Backup)
		if err := backupScheduler.Start(); err != nil {
			logger.Fatal("Failed to start backup scheduler", err)
		}
		defer backupScheduler.Stop()
	}

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
