package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"recipe-catalog/cmd/config"
	migration "recipe-catalog/cmd/database/migrate"
	"recipe-catalog/internal/utils"
	"recipe-catalog/pkg/logger"
	"syscall"
	"time"

	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", utils.DefaultConfigPath, "path to the YAML config file")
	migrate := flag.Bool("migrate", true, "run database migrations on start")
	flag.Parse()

	cfg, err := utils.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.InitLogger(logger.LogConfig{
		Level:       cfg.LogLevel,
		Environment: cfg.AppEnv,
		ServiceName: "recipe-catalog",
	}); err != nil {
		panic(err)
	}
	defer logger.Sync()
	log := logger.GetLogger()

	db, err := config.ConnectDB(cfg)
	if err != nil {
		log.Fatal("failed to connect database", zap.Error(err))
	}
	if *migrate {
		if err := migration.Migrate(db); err != nil {
			log.Fatal("failed to migrate database", zap.Error(err))
		}
		log.Info("database migration complete")
	}

	app, accessLog, err := config.NewApp(db, cfg)
	if err != nil {
		log.Fatal("failed to build app", zap.Error(err))
	}
	defer accessLog.Close()

	go func() {
		if err := app.Listen(":" + cfg.AppPort); err != nil {
			log.Error("server stopped", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Info("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		log.Error("shutdown failed", zap.Error(err))
	}
}
