// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the JSON API handlers for the rendering core.
// Handlers are grouped by concern (publications, posts, channels,
// templates, validation) and receive their dependencies through the API
// struct.
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"crosspress/internal/cache"
	"crosspress/internal/compose"
	"crosspress/internal/snapshot"
	"crosspress/internal/store"
)

// API holds the handler dependencies for all routes.
type API struct {
	publications *store.PublicationStore
	posts        *store.PostStore
	channels     *store.ChannelStore
	variations   *store.VariationStore
	templates    *store.TemplateStore

	resolver   *compose.Resolver
	compositor *compose.Compositor
	builder    *snapshot.Builder

	// previews may be nil when Valkey is not configured — preview
	// requests then recompose every time.
	previews *cache.PreviewCache
}

// NewAPI creates the handler group with its dependencies.
func NewAPI(
	publications *store.PublicationStore,
	posts *store.PostStore,
	channels *store.ChannelStore,
	variations *store.VariationStore,
	templates *store.TemplateStore,
	resolver *compose.Resolver,
	compositor *compose.Compositor,
	builder *snapshot.Builder,
	previews *cache.PreviewCache,
) *API {
	return &API{
		publications: publications,
		posts:        posts,
		channels:     channels,
		variations:   variations,
		templates:    templates,
		resolver:     resolver,
		compositor:   compositor,
		builder:      builder,
		previews:     previews,
	}
}

// respondJSON writes v as a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// errorResponse is the uniform error payload.
type errorResponse struct {
	Error string `json:"error"`
}

// respondError writes a JSON error with the given status code.
func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, errorResponse{Error: msg})
}

// decodeJSON reads the request body into dst, rejecting unknown fields.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

// urlID parses the named chi URL parameter as a UUID.
func urlID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s: %w", name, err)
	}
	return id, nil
}

// parseUUID parses a UUID from a request body field.
func parseUUID(s, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s: %w", name, err)
	}
	return id, nil
}
