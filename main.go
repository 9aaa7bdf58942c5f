package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"skincache/internal/clients"
	"skincache/internal/config"
	"skincache/internal/dispatch"
	"skincache/internal/handlers"
	"skincache/internal/mailer"
	"skincache/internal/models"
	"skincache/internal/repositories"
	"skincache/internal/services"
	"skincache/pkg/events"
	"skincache/pkg/logging"
)

func main() {
	cfg := config.Load()

	if err := logging.Init(cfg.LogLevel, cfg.LogPath); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logging.Logger.Sync() //nolint:errcheck

	// --- Local record store (users, reviews) ---
	localDB, err := gorm.Open(sqlite.Open(cfg.LocalDBPath), &gorm.Config{TranslateError: true})
	if err != nil {
		logging.Sugar.Fatalw("failed to open local database", "path", cfg.LocalDBPath, "error", err)
	}
	if err := localDB.AutoMigrate(&models.User{}, &models.Review{}); err != nil {
		logging.Sugar.Fatalw("failed to migrate local database", "error", err)
	}

	// --- Durable streak store ---
	trackerDB := localDB
	if cfg.TrackerDSN != "" {
		trackerDB, err = gorm.Open(postgres.Open(cfg.TrackerDSN), &gorm.Config{TranslateError: true})
		if err != nil {
			logging.Sugar.Fatalw("failed to open tracker database", "error", err)
		}
	} else {
		logging.Sugar.Warnw("no tracker DSN configured, streaks stored in the local database")
	}
	if err := trackerDB.AutoMigrate(&models.Tracker{}); err != nil {
		logging.Sugar.Fatalw("failed to migrate tracker database", "error", err)
	}

	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(localDB)
	reviewRepo := repositories.NewGORMReviewRepository(localDB)
	trackerRepo := repositories.NewGORMTrackerRepository(trackerDB)

	// --- External clients ---
	sheets := clients.NewSheetsClient()
	vision := clients.NewVisionClient(cfg.VisionAPIURL, cfg.VisionAPIKey, cfg.VisionAPISecret)
	air := clients.NewAirQualityClient(cfg.WeatherAPIURL, cfg.WeatherAPIKey)
	genai := clients.NewGenAIClient(cfg.GenAIURL, cfg.GenAIKey)
	mail := mailer.New(cfg)

	// --- Optional event mirror ---
	var publisher *events.Publisher
	if cfg.AMQPURL != "" {
		publisher, err = events.NewPublisher(events.Config{URL: cfg.AMQPURL})
		if err != nil {
			logging.Sugar.Warnw("event broker unavailable, continuing without it", "error", err)
			publisher = nil
		} else {
			defer publisher.Close()
		}
	}

	// --- Side-effect dispatcher ---
	dispatcher := dispatch.New(cfg.QueueSize, cfg.Workers)
	dispatcher.Start()

	// --- Services ---
	waitlistService := services.NewWaitlistService(userRepo, sheets, cfg.SheetWaitlistURL, mail, dispatcher, publisher)
	reviewService := services.NewReviewService(reviewRepo, sheets, cfg.SheetReviewsURL, dispatcher, publisher)
	streakService := services.NewStreakService(trackerRepo, nil)
	analysisService := services.NewAnalysisService(vision, air)
	ingredientService := services.NewIngredientService(genai)
	restoreService := services.NewRestoreService(reviewRepo, sheets, cfg.SheetReviewsURL)

	// --- Startup restore (best-effort) ---
	restoreCtx, cancelRestore := context.WithTimeout(context.Background(), 30*time.Second)
	if restored, err := restoreService.Run(restoreCtx); err != nil {
		logging.Sugar.Warnw("review restore failed, continuing", "error", err)
	} else if restored > 0 {
		logging.Sugar.Infow("restored reviews from backup", "count", restored)
	}
	cancelRestore()

	// --- Handlers ---
	waitlistHandler := handlers.NewWaitlistHandler(waitlistService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	challengeHandler := handlers.NewChallengeHandler(streakService)
	analysisHandler := handlers.NewAnalysisHandler(analysisService, ingredientService)

	// --- Fiber app ---
	app := fiber.New(fiber.Config{BodyLimit: 16 * 1024 * 1024})
	app.Use(logger.New())
	app.Use(cors.New())

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "SkinCache is live"})
	})

	waitlistHandler.RegisterRoutes(app)
	reviewHandler.RegisterRoutes(app)
	challengeHandler.RegisterRoutes(app)
	analysisHandler.RegisterRoutes(app)

	// --- Start HTTP server ---
	logging.Sugar.Infow("starting server", "port", cfg.AppPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			logging.Sugar.Fatalw("server failed to start", "error", err)
		}
	}()

	<-quit
	logging.Sugar.Infow("shutting down server")

	if err := app.Shutdown(); err != nil {
		logging.Sugar.Errorw("error during shutdown", "error", err)
	}

	// Let queued side effects finish before the process exits.
	dispatcher.Stop()

	logging.Sugar.Infow("server stopped")
}
