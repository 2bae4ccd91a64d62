package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/natib-dev/tripwise/internal/assistant"
	"github.com/natib-dev/tripwise/internal/classifier"
	"github.com/natib-dev/tripwise/internal/config"
	"github.com/natib-dev/tripwise/internal/extractor"
	"github.com/natib-dev/tripwise/internal/prompts"
	"github.com/natib-dev/tripwise/internal/services"
	"github.com/natib-dev/tripwise/internal/session"
)

var cfg *config.Config

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	rootCmd := &cobra.Command{
		Use:   "tripwise",
		Short: "Tripwise — conversational travel planning assistant",
		Long:  "Tripwise classifies travel queries, extracts trip entities across turns, and answers with Claude plus live geo/weather/lodging data, falling back to rule-based guidance offline.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			return nil
		},
	}

	rootCmd.AddCommand(
		serveCmd(),
		chatCmd(),
		askCmd(),
		mcpCmd(),
	)

	rootCmd.SetContext(ctx)

	err := rootCmd.Execute()
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if cfg != nil && cfg.Logging.Level == "debug" {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg != nil && cfg.Logging.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func newStore(logger *slog.Logger) (session.Store, error) {
	if cfg.Session.Backend == "redis" {
		client := redis.NewClient(&redis.Options{
			Addr: cfg.Session.RedisAddr,
			DB:   cfg.Session.RedisDB,
		})
		ttl := time.Duration(cfg.Session.TTLHours) * time.Hour
		logger.Info("using redis session store", "addr", cfg.Session.RedisAddr)
		return session.NewRedisStore(client, ttl), nil
	}
	return session.NewMemoryStore(), nil
}

// newAssistant wires the full turn pipeline from config.
func newAssistant(logger *slog.Logger) (*assistant.Assistant, session.Store, error) {
	store, err := newStore(logger)
	if err != nil {
		return nil, nil, fmt.Errorf("creating session store: %w", err)
	}

	var llm assistant.LLM
	if cfg.Claude.APIKey != "" {
		llm = assistant.NewClaudeLLM(cfg.Claude.APIKey, cfg.Claude.Model, logger)
	} else {
		logger.Warn("ANTHROPIC_API_KEY not set; answers come from rule-based responders only")
	}

	a, err := assistant.New(assistant.Deps{
		Classifier: classifier.NewClassifier(logger),
		Extractor:  extractor.NewExtractor(logger),
		Engine:     prompts.NewEngine(logger),
		LLM:        llm,
		Geocoder:   services.NewGeocoder(cfg.Services.GeocodeBaseURL, logger),
		Weather:    services.NewWeatherService(cfg.Services.WeatherBaseURL, logger),
		Country:    services.NewCountryService(cfg.Services.CountryBaseURL, logger),
		Places:     services.NewPlacesService(cfg.Services.OverpassURLs, logger),
		Visa:       services.NewVisaService(logger),
		Store:      store,
		Logger:     logger,
	})
	if err != nil {
		_ = store.Close()
		return nil, nil, err
	}
	return a, store, nil
}
