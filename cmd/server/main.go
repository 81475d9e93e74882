package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SAP-F-2025/flashcard-quiz-service/internal/config"
	"github.com/SAP-F-2025/flashcard-quiz-service/internal/handlers"
	"github.com/SAP-F-2025/flashcard-quiz-service/internal/repositories/postgres"
	"github.com/SAP-F-2025/flashcard-quiz-service/internal/services"
	"github.com/SAP-F-2025/flashcard-quiz-service/internal/utils"
	"github.com/SAP-F-2025/flashcard-quiz-service/internal/validator"
	"github.com/SAP-F-2025/flashcard-quiz-service/pkg"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		utils.NewDefaultLogger().Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	logger := utils.NewLogger(cfg.Environment)
	slogger := logger.Slog()

	if err := run(cfg, logger); err != nil {
		slogger.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger utils.Logger) error {
	slogger := logger.Slog()

	// Postgres
	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	// Session store
	store, closeStore, err := pkg.NewCacheService(cfg, slogger)
	if err != nil {
		return err
	}
	defer closeStore()

	// Events
	publisher, err := cfg.Events.CreateEventPublisher(slogger)
	if err != nil {
		return err
	}
	defer publisher.Close()

	kinds, err := config.LoadKindTable(cfg.KindTablePath)
	if err != nil {
		return err
	}

	serviceManager := services.NewServiceManager(services.ServiceManagerConfig{
		Notes:      postgres.NewNotePostgreSQL(db),
		Reviews:    postgres.NewReviewPostgreSQL(db),
		Store:      store,
		Publisher:  publisher,
		Kinds:      kinds,
		Validator:  validator.New(),
		Logger:     slogger,
		SessionTTL: cfg.SessionTTL,
		Debug:      !cfg.IsProduction(),
	})

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), utils.ContextLogger(logger), utils.LoggerMiddleware(logger))
	handlers.NewHandlerManager(serviceManager, logger).SetupRoutes(router)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server listening", "port", cfg.Port, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
