package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/QTest-hq/qtest-studio/internal/api"
	"github.com/QTest-hq/qtest-studio/internal/config"
	"github.com/QTest-hq/qtest-studio/internal/db"
	"github.com/QTest-hq/qtest-studio/internal/logging"
	qnats "github.com/QTest-hq/qtest-studio/internal/nats"
	"github.com/QTest-hq/qtest-studio/internal/notify"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logging.Setup(logging.Options{
		Level:   cfg.LogLevel,
		File:    cfg.LogFile,
		Console: !cfg.IsProduction(),
	})

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	opts := []api.Option{}
	notifiers := notify.Multi{notify.NewLogNotifier()}

	if cfg.DatabaseURL != "" {
		database, err := db.New(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer database.Close()

		if err := database.Migrate(ctx); err != nil {
			log.Fatal().Err(err).Msg("failed to migrate database")
		}

		opts = append(opts,
			api.WithStore(db.NewStore(database)),
			api.WithHealthCheck("database", database.HealthCheck),
		)
	}

	if cfg.NATSURL != "" {
		client, err := qnats.NewClient(cfg.NATSURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to NATS")
		}
		defer client.Close()

		if err := client.SetupStreams(ctx); err != nil {
			log.Fatal().Err(err).Msg("failed to set up NATS streams")
		}

		notifiers = append(notifiers, notify.NewNATSNotifier(client))
		opts = append(opts, api.WithHealthCheck("nats", func(context.Context) error {
			return client.HealthCheck()
		}))
	}

	opts = append(opts, api.WithNotifier(notifiers))

	srv, err := api.NewServer(cfg, opts...)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create server")
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      srv.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	done := make(chan bool)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Info().Msg("server is shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(ctx); err != nil {
			log.Fatal().Err(err).Msg("could not gracefully shutdown the server")
		}
		close(done)
	}()

	log.Info().Int("port", cfg.Port).Str("project_root", cfg.ProjectRoot).Msg("starting API server")
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("could not listen on port")
	}

	<-done
	log.Info().Msg("server stopped")
}
