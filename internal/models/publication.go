// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// PublicationStatus represents the publishing lifecycle state of a publication.
type PublicationStatus string

const (
	PublicationStatusDraft      PublicationStatus = "draft"
	PublicationStatusReady      PublicationStatus = "ready"
	PublicationStatusScheduled  PublicationStatus = "scheduled"
	PublicationStatusProcessing PublicationStatus = "processing"
	PublicationStatusPublished  PublicationStatus = "published"
	PublicationStatusPartial    PublicationStatus = "partial"
	PublicationStatusFailed     PublicationStatus = "failed"
	PublicationStatusExpired    PublicationStatus = "expired"
)

// PostType categorizes publications by the kind of post they produce
// on the target platforms.
type PostType string

const (
	PostTypePost    PostType = "post"
	PostTypeStory   PostType = "story"
	PostTypeArticle PostType = "article"
)

// Publication is the canonical content item of a project. Its body is
// stored as Markdown; per-channel Posts carry optional overrides and the
// frozen rendering that actually gets delivered.
type Publication struct {
	ID            uuid.UUID         `json:"id"`
	ProjectID     uuid.UUID         `json:"project_id"`
	Title         string            `json:"title"`
	Description   *string           `json:"description,omitempty"`
	Body          string            `json:"body"`
	Tags          []string          `json:"tags"`
	AuthorComment *string           `json:"author_comment,omitempty"`
	Note          *string           `json:"note,omitempty"`
	PostType      PostType          `json:"post_type"`
	Language      string            `json:"language"`
	Status        PublicationStatus `json:"status"`
	// Desynced is set when draft content is edited after delivery: the
	// already-sent snapshot no longer matches what the user sees.
	Desynced    bool               `json:"desynced"`
	Media       []PublicationMedia `json:"media"`
	ScheduledAt *time.Time         `json:"scheduled_at,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// SnapshotsApply reports whether the publication is in a state where
// content mutations must synchronously rebuild posting snapshots.
func (p *Publication) SnapshotsApply() bool {
	return p.Status == PublicationStatusReady || p.Status == PublicationStatusScheduled
}

// Delivered reports whether the publication's snapshots have already been
// handed to the delivery service. Mutations in this state flag the
// publication as desynced instead of rebuilding.
func (p *Publication) Delivered() bool {
	switch p.Status {
	case PublicationStatusPublished, PublicationStatusPartial, PublicationStatusFailed:
		return true
	}
	return false
}

// MediaType classifies an attached media file.
type MediaType string

const (
	MediaTypePhoto     MediaType = "photo"
	MediaTypeVideo     MediaType = "video"
	MediaTypeAudio     MediaType = "audio"
	MediaTypeDocument  MediaType = "document"
	MediaTypeAnimation MediaType = "animation"
)

// PublicationMedia links one media file to a publication at a position in
// the attachment order. Type, storage location, and meta come from the
// external file-storage service's metadata lookup.
type PublicationMedia struct {
	MediaID     uuid.UUID         `json:"media_id"`
	Type        MediaType         `json:"type"`
	StorageType string            `json:"storage_type"`
	StoragePath string            `json:"storage_path"`
	Position    int               `json:"position"`
	HasSpoiler  bool              `json:"has_spoiler"`
	Meta        map[string]string `json:"meta,omitempty"`
}
