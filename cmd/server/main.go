/*
main.go - Server entry point

PURPOSE:
  Starts the HTTP server: parses flags, opens the SQLite store, wires
  the handlers and router, and shuts down gracefully on SIGINT/SIGTERM.

USAGE:
  go run ./cmd/server -port 8080 -db timeclock.db

FLAGS:
  -port   Listen port (default 8080)
  -db     SQLite database path (default timeclock.db)
  -debug  Verbose logging
*/
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/warp/timeclock/api"
	"github.com/warp/timeclock/store/sqlite"
)

func main() {
	port := flag.String("port", "8080", "listen port")
	dbPath := flag.String("db", "timeclock.db", "SQLite database path")
	debug := flag.Bool("debug", false, "verbose logging")
	flag.Parse()

	level := zerolog.InfoLevel
	if *debug {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()

	store, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatal().Err(err).Str("db", *dbPath).Msg("failed to open store")
	}
	defer store.Close()
	log.Info().Str("db", *dbPath).Msg("store ready")

	handler := api.NewHandler(store, log)
	srv := &http.Server{
		Addr:         ":" + *port,
		Handler:      api.NewRouter(handler),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-done
	log.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}
