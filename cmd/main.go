package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"pickline/config"
	"pickline/internal/agent"
	"pickline/internal/database"
	"pickline/internal/pipeline"
	"pickline/internal/season"
)

func main() {
	week := flag.Int("week", 0, "week override (1-18), 0 = detect from text")
	file := flag.String("file", "", "read agent text from a file instead of the agent API")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	setupLogger(cfg.LogLevel)

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

	text, err := loadAgentText(ctx, cfg, *file, *week)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to obtain agent text")
	}

	schedule := season.Default(cfg.SeasonYear)
	processor := pipeline.New(db, schedule)

	summary, err := processor.ProcessText(ctx, text, *week)
	if err != nil {
		if errors.Is(err, pipeline.ErrNoPredictions) {
			log.Error().Msg("Agent text contained no recognizable predictions")
			os.Exit(1)
		}
		log.Fatal().Err(err).Msg("Ingest failed")
	}

	log.Info().
		Int("saved", summary.Saved).
		Int("duplicates", summary.Duplicates).
		Int("errors", len(summary.Errors)).
		Msg("Ingest finished")
	for _, e := range summary.Errors {
		log.Warn().Msg(e)
	}
}

// loadAgentText reads the blob from a file when -file is given, otherwise
// from the agent API.
func loadAgentText(ctx context.Context, cfg *config.Config, file string, week int) (string, error) {
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", file, err)
		}
		return string(data), nil
	}

	if cfg.AgentBaseURL == "" {
		return "", fmt.Errorf("AGENT_BASE_URL not set and no -file given")
	}

	client := agent.NewClient(agent.ClientOptions{
		BaseURL: cfg.AgentBaseURL,
		APIKey:  cfg.AgentAPIKey,
		Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
	})
	return client.FetchPredictions(ctx, week)
}

func setupLogger(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(lvl)
}
