package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"

	"zpdraft-backend/config"
	"zpdraft-backend/handlers"
	"zpdraft-backend/llm"
	"zpdraft-backend/middleware"
	"zpdraft-backend/pkg/logger"
	"zpdraft-backend/repository"
	"zpdraft-backend/service"
	"zpdraft-backend/storage"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file from project root (relative to cmd/server/)
	// Try current directory first, then project root
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../../.env"); err != nil {
			log.Printf("Warning: No .env file found, using environment variables")
		}
	}

	cfg := config.Load()

	logger.Init(&logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	// The database is optional: without DATABASE_URL the server runs the
	// drafting pipeline statelessly and skips the archive routes.
	var db *pgxpool.Pool
	if cfg.DatabaseURL != "" {
		pool, err := initPostgres(cfg.DatabaseURL)
		if err != nil {
			slog.Error("failed to initialize Postgres", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		db = pool
	} else {
		slog.Info("DATABASE_URL not set, draft archive disabled")
	}

	generator, err := initGenerator(cfg)
	if err != nil {
		slog.Error("failed to initialize generation backend", "error", err)
		os.Exit(1)
	}

	serviceOpts := []service.DraftServiceOption{
		service.WithGenerator(generator),
		service.WithConfig(cfg),
	}

	var draftRepo *repository.DraftRepository
	if db != nil {
		draftRepo = repository.NewDraftRepository(db)
		serviceOpts = append(serviceOpts, service.WithDraftRepository(draftRepo))
	}

	draftService := service.NewDraftService(serviceOpts...)
	draftHandler := handlers.NewDraftHandler(draftService, draftRepo, cfg)

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.Recovery())

	// Unmatched verbs on known paths answer 405, not 404.
	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{
			"error": "Method not allowed",
		})
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	// Legacy endpoint: GET probes, POST generates {title, content}.
	r.GET("/api/generate", draftHandler.Probe)
	r.POST("/api/generate", draftHandler.Generate)

	api := r.Group("/api")
	{
		api.GET("/drafts/generate", draftHandler.Probe)
		api.POST("/drafts/generate", draftHandler.GenerateDraft)

		if db != nil {
			api.GET("/drafts", draftHandler.ListDrafts)
			api.GET("/drafts/:id", draftHandler.GetDraft)
			api.DELETE("/drafts/:id", draftHandler.DeleteDraft)

			docStorage, err := storage.NewFromEnv()
			if err != nil {
				slog.Error("failed to initialize storage", "error", err)
				os.Exit(1)
			}
			documentRepo := repository.NewDocumentRepository(db)
			documentHandler := handlers.NewDocumentHandler(documentRepo, docStorage)

			api.POST("/documents/upload", documentHandler.UploadDocument)
			api.GET("/documents", documentHandler.ListDocuments)
			api.GET("/documents/:id", documentHandler.GetDocument)
			api.DELETE("/documents/:id", documentHandler.DeleteDocument)
		}
	}

	slog.Info("server starting", "port", cfg.Port, "provider", cfg.Provider, "model", cfg.Model())
	if err := r.Run(":" + cfg.Port); err != nil {
		slog.Error("failed to start server", "error", err)
		os.Exit(1)
	}
}

func initPostgres(connString string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(context.Background(), connString)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(context.Background()); err != nil {
		return nil, err
	}

	slog.Info("Postgres connection established")
	return pool, nil
}

// initGenerator picks the backend from configuration. A missing Gemini key is
// not fatal here: the handler reports it per request so probes still work.
func initGenerator(cfg *config.Config) (llm.Generator, error) {
	opts := llm.Options{
		Model:           cfg.Model(),
		Temperature:     cfg.Temperature,
		TopP:            cfg.TopP,
		MaxOutputTokens: cfg.MaxOutputTokens,
	}

	switch cfg.Provider {
	case config.ProviderOllama:
		return llm.NewOllamaGenerator(cfg.OllamaHost, opts)
	default:
		if cfg.GeminiAPIKey == "" {
			slog.Warn("GEMINI_API_KEY not set, generation requests will be rejected")
			return nil, nil
		}
		return llm.NewGeminiGenerator(context.Background(), cfg.GeminiAPIKey, opts)
	}
}
