package main

import (
	"context"
	"os"
	"time"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"pickline/config"
	"pickline/internal/database"
	"pickline/internal/notify"
	"pickline/internal/odds"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	setupLogger(cfg.LogLevel)

	if cfg.TelegramBotToken == "" || cfg.TelegramChatID == 0 {
		log.Fatal().Msg("TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID must be set")
	}

	db, err := database.New(database.ConnectionParams{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		DBName:   cfg.DBName,
		SSLMode:  cfg.DBSSLMode,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.RequestTimeout)*time.Second)
	defer cancel()

	picks, err := db.GetPicks(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load picks")
	}

	thresholds := odds.Thresholds{
		Badge:    cfg.BadgeEdgeThreshold,
		Headline: cfg.HeadlineEdgeThreshold,
		Min:      cfg.MinEdgeFloor,
	}
	bets := odds.HeadlineBets(picks, thresholds)

	broadcaster, err := notify.New(cfg.TelegramBotToken, cfg.TelegramChatID)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize Telegram bot")
	}

	sent, err := broadcaster.BroadcastHeadline(bets)
	if err != nil {
		log.Fatal().Err(err).Msg("Broadcast failed")
	}
	log.Info().Int("bets", sent).Msg("Broadcast finished")
}

func setupLogger(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(lvl)
}
