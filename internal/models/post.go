// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Post is the per-channel projection of a publication: one row per
// (publication, channel) pair, carrying optional channel-specific
// overrides and the frozen posting snapshot.
type Post struct {
	ID            uuid.UUID `json:"id"`
	PublicationID uuid.UUID `json:"publication_id"`
	ChannelID     uuid.UUID `json:"channel_id"`

	// Per-channel overrides. Nil means "use the publication's value".
	Content         *string    `json:"content,omitempty"`
	Tags            []string   `json:"tags,omitempty"`
	Language        *string    `json:"language,omitempty"`
	AuthorSignature *string    `json:"author_signature,omitempty"`
	TemplateID      *uuid.UUID `json:"template_id,omitempty"`

	Snapshot          *PostingSnapshot `json:"posting_snapshot,omitempty"`
	SnapshotCreatedAt *time.Time       `json:"posting_snapshot_created_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CurrentSnapshotVersion is stamped onto every newly built snapshot so the
// delivery service can detect renderings produced by an older pipeline.
const CurrentSnapshotVersion = 2

// PostingSnapshot is an immutable, point-in-time rendering of a post's
// body and media. It is replaced wholesale on rebuild, never patched, and
// the delivery service consumes it verbatim without re-rendering.
type PostingSnapshot struct {
	Version   int               `json:"version"`
	Body      string            `json:"body"`
	Media     []MediaDescriptor `json:"media"`
	CreatedAt time.Time         `json:"created_at"`
}

// MediaDescriptor is the frozen form of one attached media item inside a
// posting snapshot.
type MediaDescriptor struct {
	MediaID     uuid.UUID         `json:"media_id"`
	Type        MediaType         `json:"type"`
	StorageType string            `json:"storage_type"`
	StoragePath string            `json:"storage_path"`
	Order       int               `json:"order"`
	HasSpoiler  bool              `json:"has_spoiler"`
	Meta        map[string]string `json:"meta,omitempty"`
}
