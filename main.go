package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"parttrack/config"
	"parttrack/controllers"
	"parttrack/controllers/idgen"
	"parttrack/database"
	"parttrack/logger"
	"parttrack/migration"
	"parttrack/notify"
	"parttrack/repositories"
	"parttrack/routes"
	"parttrack/services"
	"parttrack/wms/master/category"

	"github.com/gofiber/fiber/v2"
)

func main() {
	cfg := config.LoadConfig()

	log, err := logger.New(cfg.AppEnv)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if err := idgen.Init(cfg.SnowflakeNode); err != nil {
		log.Fatal("snowflake init failed", "node", cfg.SnowflakeNode, "error", err)
	}

	db, err := database.Open(cfg.Database, database.LogLevel(cfg))
	if err != nil {
		log.Fatal("failed to connect to database", "driver", cfg.Database.Driver, "error", err)
	}
	if err := migration.Migrate(db); err != nil {
		log.Fatal("failed to auto migrate", "error", err)
	}
	if err := category.SeedCategories(db); err != nil {
		log.Fatal("failed to seed categories", "error", err)
	}

	if cfg.JWTSecret == "" {
		if cfg.IsProduction() {
			log.Error("JWT_SECRET is empty in production, every API request will be refused")
		} else {
			log.Warn("JWT_SECRET is empty, API requests run as an anonymous admin")
		}
	}

	notifier := notify.New(cfg.Mail)
	if !cfg.Mail.Enabled() {
		log.Warn("SMTP not configured, over-shipment mails are disabled")
	}

	svc := services.New(services.Deps{
		Store:    repositories.NewStore(db, cfg.TxMaxAttempts, log),
		Log:      log,
		Notifier: notifier,
	})

	app := fiber.New(fiber.Config{
		AppName:      "parttrack",
		BodyLimit:    20 * 1024 * 1024,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		ErrorHandler: controllers.RespondError,
	})
	routes.Setup(app, cfg, db, svc, log)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Info("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Error("shutdown failed", "error", err)
		}
	}()

	log.Info("server starting", "port", cfg.AppPort, "env", cfg.AppEnv, "routes", cfg.MainRoutes)
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		log.Fatal("server stopped", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}
