package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/YugandharPise/SME-HR/internal/app"
	"github.com/YugandharPise/SME-HR/internal/bootstrap"
	"github.com/YugandharPise/SME-HR/internal/config"
	"github.com/YugandharPise/SME-HR/internal/shared/apperror"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		panic(err)
	}

	logger, err := bootstrap.NewLogger(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	apperror.Init()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.RunConsumer(ctx, cfg, logger); err != nil {
		logger.Fatal("run consumer failed", zap.Error(err))
	}
}
