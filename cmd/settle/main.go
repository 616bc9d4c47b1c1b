package main

import (
	"context"
	"flag"
	"os"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"pickline/config"
	"pickline/internal/cache"
	"pickline/internal/database"
	"pickline/internal/odds"
	"pickline/internal/outcome"
	"pickline/internal/stats"
)

func main() {
	pickID := flag.String("pick", "", "pick id to settle")
	home := flag.Int("home", -1, "final home score")
	away := flag.Int("away", -1, "final away score")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	setupLogger(cfg.LogLevel)

	if *pickID == "" || *home < 0 || *away < 0 {
		log.Fatal().Msg("usage: settle -pick <id> -home <score> -away <score>")
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

	settled := false
	for i := range picks {
		if picks[i].ID != *pickID {
			continue
		}
		outcome.Settle(&picks[i], *home, *away)
		odds.ComputeEdges(&picks[i])
		if err := db.UpdateResults(ctx, &picks[i]); err != nil {
			log.Fatal().Err(err).Msg("Failed to update pick")
		}
		log.Info().
			Str("pick", picks[i].ID).
			Str("matchup", picks[i].MatchupKey()).
			Str("result", string(picks[i].Result)).
			Str("ats", string(picks[i].ATSResult)).
			Str("ou", string(picks[i].OUResult)).
			Msg("Pick settled")
		settled = true
		break
	}
	if !settled {
		log.Fatal().Str("pick", *pickID).Msg("Pick not found")
	}

	refreshSnapshots(ctx, cfg, db)
}

// refreshSnapshots re-aggregates the full pick collection and caches the
// all-time and per-week roll-ups.
func refreshSnapshots(ctx context.Context, cfg *config.Config, db *database.DB) {
	picks, err := db.GetPicks(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Skipping snapshot refresh")
		return
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer rdb.Close()

	writer := cache.NewStatsWriter(rdb)
	agg := stats.Aggregator{BetSize: cfg.BetSize, Vig: cfg.VigMultiplier}

	if err := writer.WriteSnapshot(ctx, "all", agg.Aggregate(picks)); err != nil {
		log.Warn().Err(err).Msg("Failed to cache all-time stats")
	}
	for week, s := range agg.WeeklyBreakdown(picks) {
		if err := writer.WriteSnapshot(ctx, cache.WeekScope(week), s); err != nil {
			log.Warn().Err(err).Int("week", week).Msg("Failed to cache weekly stats")
		}
	}
	for team, s := range agg.TeamBreakdown(picks) {
		if err := writer.WriteSnapshot(ctx, cache.TeamScope(team), s); err != nil {
			log.Warn().Err(err).Str("team", team).Msg("Failed to cache team stats")
		}
	}
}

func setupLogger(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(lvl)
}
