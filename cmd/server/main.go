package main

import (
	"os"
	"os/signal"
	"syscall"

	"dispensary-loyalty/internal/adapters/http/middleware"
	"dispensary-loyalty/internal/adapters/http/routes"
	"dispensary-loyalty/internal/adapters/persistence/models"
	"dispensary-loyalty/internal/config"
	"dispensary-loyalty/internal/core/services"
	"dispensary-loyalty/internal/pkg/i18n"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	_ "dispensary-loyalty/docs" // Swagger docs
)

// @title Dispensary Loyalty API
// @version 1.0
// @description Points, rewards and referrals for dispensary patients.

// @contact.name API Support
// @contact.email support@example.com

// @host localhost:3000
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log, err := config.NewLogger(cfg)
	if err != nil {
		panic("failed to build logger: " + err.Error())
	}
	defer log.Sync() //nolint:errcheck

	if !cfg.DotEnvLoaded {
		log.Warn(".env file not found, using environment variables")
	}
	log.Info("configuration loaded", zap.String("mode", cfg.AppMode))

	db, err := config.ConnectDatabase(cfg, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer config.CloseDatabase(db) //nolint:errcheck

	if err := models.AutoMigrate(db); err != nil {
		log.Fatal("failed to auto migrate", zap.Error(err))
	}
	log.Info("database migration completed")

	if cfg.IsDev() {
		if err := config.NewSeeder(db, log).Run(); err != nil {
			log.Warn("failed to seed demo data", zap.Error(err))
		}
	}

	catalog, err := i18n.Load(cfg.Locale)
	if err != nil {
		log.Fatal("failed to load message catalog", zap.String("locale", cfg.Locale), zap.Error(err))
	}

	notifier := services.NewLineNotificationService(cfg.Notify.LineToken, catalog, log.Named("notify"))
	if !notifier.IsEnabled() {
		log.Warn("LINE_NOTIFY_TOKEN not set, notifications are logged only")
	}
	sms := services.NewTwilioSmsGateway(cfg.SMS.AccountSID, cfg.SMS.AuthToken, cfg.SMS.FromNumber, log.Named("sms"))

	app := fiber.New(fiber.Config{
		AppName:      "Dispensary Loyalty API v1.0",
		ErrorHandler: middleware.NewErrorHandler(log.Named("http")),
	})

	middleware.Setup(app, cfg)

	routes.Setup(app, db, cfg, log, routes.Collaborators{
		Notifier: notifier,
		Sms:      sms,
		Catalog:  catalog,
		Clock:    services.SystemClock{},
	})

	go gracefulShutdown(app, log)

	log.Info("server starting", zap.String("port", cfg.Port), zap.String("mode", cfg.AppMode))
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App, log *zap.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	if err := app.Shutdown(); err != nil {
		log.Error("error during shutdown", zap.Error(err))
	}
	log.Info("server stopped gracefully")
}
