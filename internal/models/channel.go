// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Platform identifies the target network a channel publishes to.
type Platform string

const (
	PlatformTelegram Platform = "telegram"
	PlatformVK       Platform = "vk"
	PlatformSite     Platform = "site"
)

// Channel is a destination a project publishes posts to: one Telegram
// channel, one VK group, or the project's own site.
type Channel struct {
	ID        uuid.UUID `json:"id"`
	ProjectID uuid.UUID `json:"project_id"`
	Platform  Platform  `json:"platform"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TemplateVariation attaches a project template to a channel, optionally
// marking it as the channel's default for its (language, post type) group
// and overriding individual blocks without touching the template itself.
//
// At most one variation per (channel, language, post type) group may be
// the default at any time; SetDefault in the channel store unsets the
// prior one in the same transaction.
type TemplateVariation struct {
	ID         uuid.UUID `json:"id"`
	ChannelID  uuid.UUID `json:"channel_id"`
	TemplateID uuid.UUID `json:"template_id"`
	// Language and PostType are copied from the template when the
	// variation is attached; they scope the default flag to its group.
	Language  string   `json:"language"`
	PostType  PostType `json:"post_type"`
	IsDefault bool     `json:"is_default"`
	// Overrides is keyed by block kind. A nil field leaves the template's
	// value in effect.
	Overrides map[BlockKind]BlockOverride `json:"overrides,omitempty"`
	CreatedAt time.Time                   `json:"created_at"`
}

// BlockOverride adjusts one template block for a single channel.
type BlockOverride struct {
	Enabled *bool   `json:"enabled,omitempty"`
	Content *string `json:"content,omitempty"`
}
