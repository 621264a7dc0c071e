// main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hotel-booking/cmd"
	"hotel-booking/internal/data/repository"
	"hotel-booking/internal/wire"
	"hotel-booking/pkg/database"
	"hotel-booking/pkg/jwt"
	"hotel-booking/pkg/metrics"
	"hotel-booking/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("hotel-booking: %v", err)
	}
}

func run() error {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		return err
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using zap production logger.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to database
	db, err := database.InitDB(ctx, config.Database)
	if err != nil {
		logger.Error("Failed to connect to database", zap.Error(err))
		return err
	}
	defer db.Close()

	if err := database.Migrate(ctx, db, logger); err != nil {
		logger.Error("Failed to migrate database", zap.Error(err))
		return err
	}

	logger.Info("Database connected successfully")

	// Initialize all repositories
	txManager := database.NewTxManager(db, config.Database.TxMaxRetries, logger)
	repos := repository.NewRepository(db, txManager, logger)

	// Wire all dependencies
	tokens := jwt.New(config.JWT.Secret, time.Duration(config.JWT.ExpiryHours)*time.Hour)
	app := wire.Wiring(repos, config, tokens, metrics.InitRegistry(), logger)

	// Start server
	if err := cmd.APIServer(ctx, app.Router, app.Limiter, config.App.Port, config.App.ShutdownTimeout, logger); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
		return err
	}

	logger.Info("Server stopped")
	return nil
}
