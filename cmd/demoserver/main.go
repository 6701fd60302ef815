package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/zscgrhg/httpkit/config"
	"github.com/zscgrhg/httpkit/demoserver"
	"github.com/zscgrhg/httpkit/logging"
)

func main() {
	configPath := flag.String("config", "httpkit.ini", "path to the ini config file")
	logLevel := flag.String("log-level", "info", "log level")
	flag.Parse()

	logging.Init(*logLevel, nil)
	logger := logging.For("main")

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	server := demoserver.New(cfg)

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Start()
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			logger.Fatal().Err(err).Msg("server failed")
		}
	case sig := <-sigChan:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.Error().Err(err).Msg("shutdown failed")
		}
	}
}
