package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"go.uber.org/zap"

	"github.com/retailops/korona-export/internal/config"
	"github.com/retailops/korona-export/internal/export"
	httpserver "github.com/retailops/korona-export/internal/interfaces/http"
	wschannel "github.com/retailops/korona-export/internal/interfaces/websocket"
	"github.com/retailops/korona-export/internal/korona"
	"github.com/retailops/korona-export/internal/pipeline"
	"github.com/retailops/korona-export/internal/pricing"
	"github.com/retailops/korona-export/internal/repository"
	"github.com/retailops/korona-export/pkg/database"
	"github.com/retailops/korona-export/pkg/utils"
)

func main() {
	// Load configuration
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting KORONA receipt export service",
		zap.Int("port", cfg.Server.Port))

	// Initialize price cache database
	if dir := filepath.Dir(cfg.Database.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			logger.Fatal("Failed to create data directory", zap.Error(err))
		}
	}
	db, err := database.New(database.Config{
		Path:            cfg.Database.Path,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	priceCache := repository.NewPriceCacheRepository(db.DB, logger)
	if err := priceCache.Init(); err != nil {
		logger.Fatal("Failed to initialize price cache", zap.Error(err))
	}

	// Initialize KORONA API client
	koronaClient := korona.NewClient(korona.Config{
		BaseURL:   cfg.Korona.BaseURL,
		AccountID: cfg.Korona.AccountID,
		Username:  cfg.Korona.Username,
		Password:  cfg.Korona.Password,
		Timeout:   cfg.Korona.APITimeout,
	}, logger)

	// Assemble the export pipeline
	resolver := pricing.NewResolver(priceCache, koronaClient, logger)
	projector := export.NewProjector(resolver, logger)
	driver := pipeline.NewDriver(koronaClient, projector, cfg.Export.MaxPages, logger)
	service := pipeline.NewService(driver, export.NewCSVWriter(), logger)

	// Initialize the WebSocket request channel and HTTP server
	wsHandler := wschannel.NewHandler(service, logger)
	server := httpserver.NewServer(httpserver.ServerConfig{
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		StaticDir:    cfg.Server.StaticDir,
	}, wsHandler, logger)

	// Shut down on SIGINT/SIGTERM
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	}()

	if err := server.Start(ctx); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}
