package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"alfredoptarigan/karmamatch/internal/config"
	"alfredoptarigan/karmamatch/internal/logger"
	"alfredoptarigan/karmamatch/internal/repositories"
	"alfredoptarigan/karmamatch/internal/services"
)

func main() {
	envFile := pflag.String("env-file", ".env", "path to the env file to load")
	pflag.Parse()

	cfg := config.Load(*envFile)
	logger.Init(logger.Config{Level: cfg.Log.Level, Format: "pretty"})

	logger.Info().Msg("🚀 Starting resume reindex...")

	if !cfg.Qdrant.Enabled() {
		logger.Fatal().Msg("❌ QDRANT_URL is not set, nothing to index into")
	}

	ctx := context.Background()

	db, err := config.InitDatabase(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("❌ Failed to initialize database")
	}
	resumeRepo := repositories.NewResumeRepository(db)

	geminiService, err := services.NewGeminiService(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.EmbedModel)
	if err != nil {
		logger.Fatal().Err(err).Msg("❌ Failed to initialize Gemini")
	}

	index, err := services.NewQdrantService(cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.Collection)
	if err != nil {
		logger.Fatal().Err(err).Msg("❌ Failed to initialize Qdrant")
	}
	if err := index.InitCollection(ctx); err != nil {
		logger.Fatal().Err(err).Msg("❌ Failed to initialize collection")
	}

	requeued, err := resumeRepo.RequeueAll()
	if err != nil {
		logger.Fatal().Err(err).Msg("❌ Failed to requeue resumes")
	}
	logger.Info().Int64("count", requeued).Msg("📋 Resumes queued for reindexing")

	indexer := services.NewIndexerService(resumeRepo, geminiService, index)

	resumes, err := resumeRepo.List()
	if err != nil {
		logger.Fatal().Err(err).Msg("❌ Failed to list resumes")
	}

	successCount := 0
	failCount := 0

	for _, resume := range resumes {
		if err := indexer.IndexResume(ctx, resume.ID); err != nil {
			logger.Error().Err(err).Str("file", resume.FileName).Msg("❌ Failed to index resume")
			failCount++
			continue
		}
		successCount++
	}

	fmt.Println("\n" + strings.Repeat("=", 60))
	fmt.Println("📊 Reindex Summary:")
	fmt.Printf("   ✅ Successful: %d resumes\n", successCount)
	fmt.Printf("   ❌ Failed: %d resumes\n", failCount)
	fmt.Println(strings.Repeat("=", 60))

	if failCount > 0 {
		fmt.Println("⚠️  Some resumes failed to index. Please check the logs above.")
		os.Exit(1)
	}
}
