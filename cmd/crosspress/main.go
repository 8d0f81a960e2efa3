// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package main is the entry point for the CrossPress rendering core.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"crosspress/internal/cache"
	"crosspress/internal/compose"
	"crosspress/internal/config"
	"crosspress/internal/database"
	"crosspress/internal/handlers"
	"crosspress/internal/router"
	"crosspress/internal/snapshot"
	"crosspress/internal/store"
)

func main() {
	// Structured logger — outputs JSON in production, text in development.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Valkey (optional — previews go uncached without it).
	// invalidator stays a nil interface when no cache is configured so the
	// builder falls back to its no-op.
	var previews *cache.PreviewCache
	var invalidator snapshot.PreviewInvalidator
	if cfg.ValkeyHost != "" {
		valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
		if err != nil {
			slog.Error("failed to connect to valkey", "error", err)
			os.Exit(1)
		}
		defer valkeyClient.Close()
		previews = cache.NewPreviewCache(valkeyClient, cache.DefaultPreviewTTL)
		invalidator = previews
	} else {
		slog.Warn("valkey not configured — preview caching disabled")
	}

	// Initialize data stores.
	publicationStore := store.NewPublicationStore(db)
	postStore := store.NewPostStore(db)
	channelStore := store.NewChannelStore(db)
	variationStore := store.NewVariationStore(db)
	templateStore := store.NewTemplateStore(db)

	// Initialize the rendering pipeline: template resolution, block
	// composition, and the posting snapshot builder.
	resolver := compose.NewResolver(templateStore, variationStore)
	compositor := compose.NewCompositor()
	builder := snapshot.NewBuilder(publicationStore, postStore, channelStore, resolver, compositor, invalidator)

	// Create the handler group with its dependencies.
	api := handlers.NewAPI(publicationStore, postStore, channelStore, variationStore, templateStore, resolver, compositor, builder, previews)

	// Set up the Chi router with all middleware and routes.
	r := router.New(api)

	// Create the HTTP server with sensible timeouts. WriteTimeout covers
	// snapshot rebuilds that recompose every post of a publication.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
