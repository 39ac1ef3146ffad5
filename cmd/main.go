// Package main provides the API to manage point balances and their history.
package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/nicebyy/point-ledger/cmd/httpserver"
	"github.com/nicebyy/point-ledger/internal/middleware"
	"github.com/nicebyy/point-ledger/pkg/configpkg"
)

func main() {
	config, err := configpkg.Load("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := middleware.CreateLogger(config)

	server := httpserver.New(logger, config)

	httpServer := &http.Server{
		Addr:    config.ServerAddress,
		Handler: server,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info().Msg("POINT LEDGER SERVER HAS STARTED")

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("cannot start server")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("cannot shut down server")
	}

	if err := server.Close(); err != nil {
		logger.Error().Err(err).Msg("cannot close event publisher")
	}

	logger.Info().Msg("POINT LEDGER SERVER HAS STOPPED")
}
