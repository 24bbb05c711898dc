package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/jusunglee/signage-go/api/handlers"
	"github.com/jusunglee/signage-go/internal/config"
	"github.com/jusunglee/signage-go/internal/logging"
	"github.com/jusunglee/signage-go/internal/metrics"
	"github.com/jusunglee/signage-go/internal/publisher"
	"github.com/jusunglee/signage-go/pkg/signage"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "signage-server",
		Usage: "Serves the departure board of the station signage",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "listen",
				Usage: "listen target for the web server (overrides LISTEN_ADDR)",
			},
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "environment file to load instead of .env",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Send()
	}
}

func run(c *cli.Context) error {
	cfg, err := config.Load(c.String("env-file"))
	if err != nil {
		return err
	}
	logging.Setup(cfg.LogFormat, cfg.Debug)

	listen := cfg.ListenAddr
	if c.IsSet("listen") {
		listen = c.String("listen")
	}

	clientConfig := signage.Config{
		Source:        cfg.TimetableSource,
		Files:         cfg.Files,
		StopsFile:     cfg.StopsFile,
		DisplayCount:  cfg.DisplayCount,
		ClockInterval: cfg.ClockInterval,
		FetchTimeout:  cfg.FetchTimeout,
		TripIdentity:  cfg.TripIdentity,
		Location:      cfg.Location,
	}

	var collector *metrics.Collector
	if cfg.MetricsEnabled {
		collector = metrics.NewCollector(cfg.ClockInterval)
		clientConfig.Metrics = collector
	}

	if cfg.NATSEnabled() {
		var pm publisher.PublisherMetrics
		if collector != nil {
			pm = collector
		}
		pub, err := publisher.NewNATSPublisher(cfg.NATSURL, cfg.NATSSubject, pm)
		if err != nil {
			return err
		}
		defer pub.Close()
		clientConfig.Publisher = pub
		log.Info().Str("url", cfg.NATSURL).Str("subject", cfg.NATSSubject).Msg("Publishing boards to NATS")
	}

	client, err := signage.NewLocal(clientConfig)
	if err != nil {
		return err
	}
	defer client.Close()

	// Create HTTP server
	r := mux.NewRouter()
	h := handlers.NewHandler(client)
	h.RegisterRoutes(r)
	if collector != nil {
		r.Handle("/metrics", collector.Handler()).Methods("GET")
	}

	// Add middleware
	r.Use(loggingMiddleware)
	r.Use(corsMiddleware)

	srv := &http.Server{
		Addr:         listen,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	go func() {
		log.Info().
			Str("listen", listen).
			Str("source", cfg.TimetableSource).
			Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return err
	}

	log.Info().Msg("Server stopped")
	return nil
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Debug().
			Str("method", r.Method).
			Str("uri", r.RequestURI).
			Dur("duration", time.Since(start)).
			Msg("Request")
	})
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
