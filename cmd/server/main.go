package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gnemet/SlideSift/internal/api"
	"github.com/gnemet/SlideSift/internal/config"
	"github.com/gnemet/SlideSift/internal/observer"
	"github.com/spf13/pflag"
)

func main() {
	flags := pflag.NewFlagSet("slidesift-server", pflag.ExitOnError)
	flags.String("config", "", "path to a config file (default ./config.yaml)")
	flags.String("log-level", "info", "log level: debug, info, warn, error")
	flags.Parse(os.Args[1:])

	cfg, err := config.LoadConfig(flags)
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	log := cfg.Log.NewLogger(os.Stdout)
	slog.SetDefault(log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The observer is optional; the API reports it as idle when absent.
	var watcher api.Watcher
	observerDone := make(chan struct{})
	if cfg.Watch.Enabled {
		obs := observer.NewObserver(cfg, log)
		watcher = obs
		go func() {
			defer close(observerDone)
			if err := obs.Start(ctx); err != nil {
				log.Error("observer stopped", "error", err)
			}
		}()
	} else {
		close(observerDone)
	}

	srv, err := api.NewServer(cfg, log, watcher)
	if err != nil {
		log.Error("initializing server", "error", err)
		os.Exit(1)
	}

	httpServer := &http.Server{
		Addr:         cfg.Application.Addr(),
		Handler:      srv,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		cancel()
		<-observerDone

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("starting SlideSift", "addr", httpServer.Addr, "version", cfg.Application.Version, "watch", cfg.Watch.Enabled)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
