// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// rendering core's JSON API.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"crosspress/internal/handlers"
	"crosspress/internal/middleware"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(api *handlers.API) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	// Health check.
	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		// Publications
		r.Route("/publications", func(r chi.Router) {
			r.Get("/", api.PublicationList)
			r.Post("/", api.PublicationCreate)
			r.Get("/{id}", api.PublicationGet)
			r.Put("/{id}", api.PublicationUpdate)
			r.Delete("/{id}", api.PublicationDelete)
			r.Post("/{id}/status", api.PublicationStatus)
			r.Put("/{id}/media", api.PublicationMediaReplace)
			r.Patch("/{id}/media/{mediaID}", api.PublicationMediaSpoiler)
			r.Post("/{id}/snapshots", api.SnapshotsBuild)
			r.Delete("/{id}/snapshots", api.SnapshotsClear)
		})

		// Posts (per-channel projections)
		r.Route("/posts", func(r chi.Router) {
			r.Post("/", api.PostCreate)
			r.Get("/{id}", api.PostGet)
			r.Delete("/{id}", api.PostDelete)
			r.Put("/{id}/overrides", api.PostUpdateOverrides)
			r.Post("/{id}/preview", api.PostPreview)
			r.Post("/{id}/resolve-template", api.PostResolveTemplate)
		})

		// Channels and their template variations
		r.Route("/channels", func(r chi.Router) {
			r.Get("/", api.ChannelList)
			r.Post("/", api.ChannelCreate)
			r.Get("/{id}", api.ChannelGet)
			r.Delete("/{id}", api.ChannelDelete)
			r.Get("/{id}/variations", api.ChannelVariations)
			r.Post("/{id}/variations", api.VariationCreate)
		})
		r.Route("/variations", func(r chi.Router) {
			r.Put("/{id}/overrides", api.VariationUpdateOverrides)
			r.Post("/{id}/default", api.VariationSetDefault)
			r.Delete("/{id}", api.VariationDelete)
		})

		// Project templates
		r.Route("/templates", func(r chi.Router) {
			r.Get("/", api.TemplateList)
			r.Post("/", api.TemplateCreate)
			r.Get("/{id}", api.TemplateGet)
			r.Put("/{id}", api.TemplateUpdate)
			r.Delete("/{id}", api.TemplateDelete)
			r.Post("/{id}/default", api.TemplateSetDefault)
		})

		// Validation and rich-text import
		r.Post("/validate", api.Validate)
		r.Post("/richtext/markdown", api.RichTextImport)
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
