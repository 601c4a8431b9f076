package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"eco-actions/internal/bot"
	"eco-actions/internal/client"
	"eco-actions/internal/config"
	"eco-actions/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadBot()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}

	api := client.New(cfg.APIBaseURL, cfg.CacheTTL)
	sessions := bot.NewSessionStore()

	telegramBot, err := bot.New(cfg.TelegramToken, api, sessions)
	if err != nil {
		log.Fatal().Err(err).Msg("bot")
	}

	scheduler := service.NewScheduler(time.Local)
	if _, err := scheduler.ScheduleInterval(time.Minute, func() {
		if removed := sessions.PurgeIdle(cfg.SessionTTL); removed > 0 {
			log.Info().Int("sessions", removed).Msg("purged idle sessions")
		}
	}); err != nil {
		log.Fatal().Err(err).Msg("schedule session sweep")
	}
	scheduler.Start()
	defer scheduler.Stop()

	log.Info().Str("api", cfg.APIBaseURL).Msg("eco actions bot started")
	if err := telegramBot.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("bot stopped with error")
	}
	log.Info().Msg("shutdown complete")
}
