package main

import (
	"context"
	"flag"
	"log"
	"time"

	"yamdb-api/cmd"
	"yamdb-api/internal/data/repository"
	"yamdb-api/internal/seed"
	"yamdb-api/internal/wire"
	"yamdb-api/pkg/database"
	"yamdb-api/pkg/mailer"
	"yamdb-api/pkg/token"
	"yamdb-api/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	seedDir := flag.String("seed", "", "load fixture CSVs from this directory before serving")
	flag.Parse()

	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	if *seedDir != "" {
		loader := seed.NewLoader(repos, logger)
		if err := loader.RunAll(context.Background(), *seedDir); err != nil {
			logger.Fatal("Failed to seed database", zap.Error(err))
		}
		logger.Info("Database seeded", zap.String("dir", *seedDir))
	}

	tokens, err := token.NewManager(config.JWT.Secret, time.Duration(config.JWT.ExpiryHours)*time.Hour)
	if err != nil {
		logger.Fatal("Failed to init token manager", zap.Error(err))
	}

	mail := mailer.NewSMTPMailer(config.Email, config.Code.ExpiryHours, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, tokens, mail, config, logger)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
