package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/madhelp/internal/buildinfo"
	"github.com/dmitrijs2005/madhelp/internal/client/cli"
	"github.com/dmitrijs2005/madhelp/internal/client/config"
	"github.com/dmitrijs2005/madhelp/internal/logging"
	"github.com/dmitrijs2005/madhelp/internal/telemetry"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	logger := logging.New(os.Stderr, cfg.LogLevel)

	shutdown := telemetry.Setup(ctx, "madhelp-cli", cfg.OTLPEndpoint, logger)
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(sctx); err != nil {
			logger.Warn(sctx, "telemetry shutdown", "error", err)
		}
	}()

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "startup failed", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	app.Run(ctx)

}
