package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/session"
	"gorm.io/gorm"

	"cdx-web-scan/internal/api/handlers"
	"cdx-web-scan/internal/api/routes"
	"cdx-web-scan/internal/middleware"
	"cdx-web-scan/internal/utils"
	"cdx-web-scan/pkg/batch"
	"cdx-web-scan/pkg/intake"
	"cdx-web-scan/pkg/scan"
)

// Batches are dropped after the same idle window as the session cookie.
const sessionExpiry = 24 * time.Hour

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	logFile := utils.GetConfigDefault("CDX_WEB_SCAN_LOG_FILE", "./logs/app.log")
	if err := os.MkdirAll(filepath.Dir(logFile), os.ModePerm); err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		logFile,
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "UTC",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        20,
		Expiration: 1 * time.Second,
	}))

	sessionStore := session.New(session.Config{
		Expiration:     sessionExpiry,
		CookieHTTPOnly: true,
	})

	// Repository
	scanRepository := scan.NewScanRepository(db)
	intakeRepository := intake.NewIntakeRepository(db)

	// Service
	batchStore := batch.NewStore()
	scanService := scan.NewScanService(scanRepository, batchStore)
	intakeService := intake.NewIntakeService(
		intakeRepository,
		scanRepository,
		batchStore,
		utils.GetConfig("INTAKE_API_URL"),
		utils.GetConfig("INTAKE_API_TOKEN"),
	)

	// Drop batches whose session cookie has long expired.
	go func() {
		for range time.Tick(time.Hour) {
			if pruned := batchStore.PruneIdle(sessionExpiry); pruned > 0 {
				log.Infof("pruned %d idle session batches", pruned)
			}
		}
	}()

	// Handler
	scanHandler := handlers.NewScanHandler(scanService, validator)
	batchHandler := handlers.NewBatchHandler(batchStore, intakeService)
	logHandler := handlers.NewLogHandler()

	// routes
	routesConfig := routes.Config{
		App:          app,
		ScanHandler:  scanHandler,
		BatchHandler: batchHandler,
		LogHandler:   logHandler,
		Middleware:   middlewares,
		SessionStore: sessionStore,
	}
	routesConfig.Setup()
	return app, nil
}
