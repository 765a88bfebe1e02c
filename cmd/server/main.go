package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"auth-service/internal/app"
	"auth-service/internal/config"
	"auth-service/internal/logx"
	"auth-service/internal/server"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		boot := logx.New("", "server")
		boot.Fatal().Err(err).Msg("config")
	}
	log := logx.New(cfg.Env, "server")

	state, err := app.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init")
	}
	defer state.Close()

	srv := server.New(cfg.HTTPAddr, state.Service, log)

	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("serve")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down HTTP server...")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
	log.Info().Msg("HTTP server stopped")
}
