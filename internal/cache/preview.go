// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// preview.go provides a Valkey-backed cache of composed post previews.
// Preview requests re-run template resolution and block composition;
// caching the result keeps repeated editor polls cheap. Entries are
// dropped whenever a snapshot rebuild or clear touches the post.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// previewKeyPrefix is the Valkey key prefix for cached previews.
	previewKeyPrefix = "preview:"

	// DefaultPreviewTTL is how long a composed preview stays cached.
	DefaultPreviewTTL = 5 * time.Minute
)

// PreviewCache manages composed-preview caching in Valkey.
type PreviewCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPreviewCache creates a new preview cache backed by the given Valkey client.
func NewPreviewCache(client *redis.Client, ttl time.Duration) *PreviewCache {
	if ttl == 0 {
		ttl = DefaultPreviewTTL
	}
	return &PreviewCache{client: client, ttl: ttl}
}

// Get retrieves a cached preview for a post, decoded into dst.
// Returns false on miss or decode failure.
func (pc *PreviewCache) Get(ctx context.Context, postID uuid.UUID, dst any) bool {
	val, err := pc.client.Get(ctx, previewKeyPrefix+postID.String()).Bytes()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		slog.Warn("preview cache get error", "post_id", postID, "error", err)
		return false
	}
	if err := json.Unmarshal(val, dst); err != nil {
		slog.Warn("preview cache decode error", "post_id", postID, "error", err)
		return false
	}
	slog.Debug("preview cache hit", "post_id", postID)
	return true
}

// Set stores a composed preview for a post with the configured TTL.
func (pc *PreviewCache) Set(ctx context.Context, postID uuid.UUID, preview any) {
	val, err := json.Marshal(preview)
	if err != nil {
		slog.Warn("preview cache encode error", "post_id", postID, "error", err)
		return
	}
	if err := pc.client.Set(ctx, previewKeyPrefix+postID.String(), val, pc.ttl).Err(); err != nil {
		slog.Warn("preview cache set error", "post_id", postID, "error", err)
	}
}

// Invalidate removes a post's cached preview. Called by the snapshot
// builder after every rebuild or clear.
func (pc *PreviewCache) Invalidate(ctx context.Context, postID uuid.UUID) {
	if err := pc.client.Del(ctx, previewKeyPrefix+postID.String()).Err(); err != nil {
		slog.Warn("preview cache invalidate error", "post_id", postID, "error", err)
	}
	slog.Debug("preview cache invalidated", "post_id", postID)
}
