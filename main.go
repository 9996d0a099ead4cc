package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KenseiEmam/infinity-maintenance-backend/config"
	"github.com/KenseiEmam/infinity-maintenance-backend/migration"
	"github.com/KenseiEmam/infinity-maintenance-backend/routes"
	"github.com/KenseiEmam/infinity-maintenance-backend/services"
	"github.com/KenseiEmam/infinity-maintenance-backend/workers"
	"github.com/gofiber/fiber/v2"
)

func main() {
	config.LoadConfig()
	logger := config.NewLogger()

	db, err := config.ConnectDB()
	if err != nil {
		logger.WithError(err).Fatal("failed to connect to database")
	}

	if err := migration.Migrate(db); err != nil {
		logger.WithError(err).Fatal("failed to auto migrate")
	}

	uploader, err := services.NewS3Storage()
	if err != nil {
		logger.WithError(err).Fatal("failed to configure object storage")
	}

	app := fiber.New()
	config.SetupCORS(app)

	routes.SetupUserRoutes(app, db)
	routes.SetupCustomerRoutes(app, db)
	routes.SetupMachineRoutes(app, db)
	routes.SetupModelRoutes(app, db)
	routes.SetupManufacturerRoutes(app, db)
	routes.SetupCallRoutes(app, db)
	routes.SetupJobSheetRoutes(app, db)
	routes.SetupScheduledVisitRoutes(app, db)
	routes.SetupUploadRoutes(app, db, uploader)
	routes.SetupEmailRoutes(app, db)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if config.OutboxEnabled {
		dispatcher := workers.NewDispatcher(db, logger, services.NewSMTPDialer(),
			time.Duration(config.OutboxIntervalSeconds)*time.Second)
		go dispatcher.Run(ctx)
	}

	expiry := workers.NewPlanExpiryRunner(db, logger,
		time.Duration(config.PlanExpiryIntervalSeconds)*time.Second)
	go expiry.Run(ctx)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		logger.Info("shutting down")
		cancel()
		if err := app.Shutdown(); err != nil {
			logger.WithError(err).Error("server shutdown failed")
		}
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}()

	logger.WithField("port", config.APP_PORT).Info("server listening")
	if err := app.Listen(":" + config.APP_PORT); err != nil {
		logger.WithError(err).Fatal("server stopped")
	}
}
