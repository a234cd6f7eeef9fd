package main

import (
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"threatguard/internal/config"
	"threatguard/internal/crypto"
	"threatguard/internal/notifier"
	"threatguard/internal/repository"
	"threatguard/internal/server"
	"threatguard/internal/service"
	"threatguard/internal/threat"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err) // Should not happen in development
	}
	defer func() {
		_ = logger.Sync() // Flushes buffer, if any
	}()

	// Optional .env for local development; real deployments set the
	// environment directly.
	if err := godotenv.Load(); err != nil {
		logger.Debug("No .env file loaded", zap.Error(err))
	}

	cfgPath := "configs/config.yml"
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	// The pattern registry is built exactly once. A pattern that fails to
	// compile is a configuration error and the process refuses to start.
	registry, err := threat.NewDefault()
	if err != nil {
		logger.Fatal("Failed to build threat pattern registry", zap.Error(err))
	}
	analyzer := threat.NewAnalyzer(registry)

	db, err := repository.NewPostgresDB(cfg.Database.URL, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	repository.MigrateDB(db, logger)

	keyManager, err := crypto.NewKeyManager()
	if err != nil {
		logger.Fatal("Failed to initialize KeyManager", zap.Error(err))
	}

	tg, err := notifier.NewTelegram(cfg, logger)
	if err != nil {
		logger.Warn("Failed to initialize Telegram notifier, continuing without it", zap.Error(err))
		tg = nil
	}
	var alertNotifier service.AlertNotifier
	if tg != nil {
		alertNotifier = tg
	}

	srv := server.NewServer(db, cfg, logger, analyzer, keyManager, alertNotifier)
	srv.Run(cfg.Server.Port)
}
