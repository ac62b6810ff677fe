package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/kobayashi-mfg/kintone-printer/internal/config"
	"github.com/kobayashi-mfg/kintone-printer/internal/container"
	httpserver "github.com/kobayashi-mfg/kintone-printer/internal/interfaces/http"
	"github.com/kobayashi-mfg/kintone-printer/pkg/utils"
)

func main() {
	configPath := os.Getenv("KPRINT_CONFIG")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	// Load configuration
	cfg, err := config.Load(configPath)
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

	logger.Info("Starting kintone printer",
		zap.String("version", "1.0.0"),
		zap.Int("port", cfg.Server.Port),
		zap.Int64("app_id", cfg.Kintone.AppID))

	ctr, err := container.New(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to create container", zap.Error(err))
	}
	if err := ctr.Start(); err != nil {
		logger.Fatal("Failed to start container", zap.Error(err))
	}
	defer ctr.Close()

	services := ctr.Services()
	server := httpserver.NewServer(httpserver.ServerConfig{
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}, httpserver.Services{
		Records: services.Records,
		Invoice: services.Invoice,
		Report:  services.Report,
		History: services.History,
	}, container.NewLoggerAdapter(logger))

	// Wait for interrupt signal to gracefully shutdown the server
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Start(ctx); err != nil {
		logger.Error("Server exited with error", zap.Error(err))
		return
	}

	logger.Info("Server exited successfully")
}
