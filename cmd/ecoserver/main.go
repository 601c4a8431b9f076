package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"eco-actions/internal/config"
	apihttp "eco-actions/internal/http"
	"eco-actions/internal/repository"
	"eco-actions/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadServer()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}

	store := repository.NewFileStore(cfg.DataDir)

	router := apihttp.NewRouter(apihttp.RouterConfig{
		Actions: apihttp.NewActionHandler(service.NewActionService(store)),
		Users:   apihttp.NewUserHandler(service.NewUserService(store)),
	})

	srv := &http.Server{Addr: cfg.ListenAddr, Handler: router}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown")
		}
	}()

	log.Info().Str("addr", cfg.ListenAddr).Str("data_dir", cfg.DataDir).Msg("api service started")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
	log.Info().Msg("shutdown complete")
}
