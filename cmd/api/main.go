package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/pflag"

	"alfredoptarigan/karmamatch/internal/config"
	"alfredoptarigan/karmamatch/internal/handlers"
	"alfredoptarigan/karmamatch/internal/logger"
	"alfredoptarigan/karmamatch/internal/repositories"
	"alfredoptarigan/karmamatch/internal/services"
)

func main() {
	envFile := pflag.String("env-file", ".env", "path to the env file to load")
	port := pflag.String("port", "", "port to listen on (overrides PORT)")
	pflag.Parse()

	cfg := config.Load(*envFile)
	if *port != "" {
		cfg.Server.Port = *port
	}

	logger.Init(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	logger.Info().Str("env", cfg.Server.Env).Msg("✅ Config loaded successfully")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := config.InitDatabase(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("❌ Failed to initialize database")
	}

	resumeRepo := repositories.NewResumeRepository(db)
	appRepo := repositories.NewApplicationRepository(db)
	logger.Info().Msg("✅ Repositories initialized successfully")

	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		logger.Fatal().Err(err).Msg("❌ Failed to create upload directory")
	}
	parser := services.NewDocumentParserService()

	geminiService, err := services.NewGeminiService(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.EmbedModel)
	if err != nil {
		logger.Fatal().Err(err).Msg("❌ Failed to initialize Gemini AI")
	}
	logger.Info().Str("model", cfg.Gemini.Model).Msg("✅ Gemini AI initialized successfully")

	flowService := services.NewFlowService(geminiService, cfg.Flow.Timeout)

	var (
		index  services.ResumeIndex
		worker services.Worker
		queue  services.IndexQueue
	)
	if cfg.Qdrant.Enabled() {
		index, err = services.NewQdrantService(cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.Collection)
		if err != nil {
			logger.Fatal().Err(err).Msg("❌ Failed to initialize Qdrant")
		}
		if err := index.InitCollection(ctx); err != nil {
			logger.Fatal().Err(err).Msg("❌ Failed to initialize Qdrant collection")
		}
		logger.Info().Msg("✅ Qdrant initialized successfully")

		indexer := services.NewIndexerService(resumeRepo, geminiService, index)
		worker = services.NewWorker(resumeRepo, indexer, cfg.Worker.Concurrency, cfg.Worker.PollInterval)
		worker.Start(ctx)
		queue = worker
	} else {
		logger.Warn().Msg("⚠️ QDRANT_URL not set, resume search disabled")
	}

	var embedder services.Embedder
	if index != nil {
		embedder = geminiService
	}
	library := services.NewLibraryService(resumeRepo, storageService, parser, embedder, index, queue)

	flowHandler := handlers.NewFlowHandler(flowService, cfg.Storage.MaxFileSize)
	resumeHandler := handlers.NewResumeHandler(library)
	applicationHandler := handlers.NewApplicationHandler(appRepo)
	dashboardHandler := handlers.NewDashboardHandler(resumeRepo, appRepo)
	logger.Info().Msg("✅ Handlers initialized")

	app := fiber.New(fiber.Config{
		AppName:      "KarmaMatch API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.Flow.Timeout + 10*time.Second,
		// base64 inflates the 5 MB document by a third
		BodyLimit:    int(cfg.Storage.MaxFileSize)*2 + 1024*1024,
		ErrorHandler: customErrorHandler,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	api := app.Group("/api/v1")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":       "healthy",
			"time":         time.Now(),
			"resumeSearch": index != nil,
		})
	})

	handlers.RegisterRoutes(api, flowHandler, resumeHandler, applicationHandler, dashboardHandler)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message":   "KarmaMatch API",
			"version":   "1.0.0",
			"endpoints": handlers.Endpoints(),
		})
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		logger.Info().Msg("🛑 Shutting down server...")
		if worker != nil {
			worker.Stop()
		}
		cancel()
		if err := app.Shutdown(); err != nil {
			logger.Error().Err(err).Msg("❌ Server forced to shutdown")
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	logger.Info().Str("addr", addr).Msg("🚀 Server starting")

	if err := app.Listen(addr); err != nil {
		logger.Fatal().Err(err).Msg("❌ Failed to start server")
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
