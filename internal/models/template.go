// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// BlockKind names the data field a template block renders, or marks it as
// a literal block (footer, custom).
type BlockKind string

const (
	BlockTitle           BlockKind = "title"
	BlockContent         BlockKind = "content"
	BlockDescription     BlockKind = "description"
	BlockTags            BlockKind = "tags"
	BlockAuthorComment   BlockKind = "authorComment"
	BlockAuthorSignature BlockKind = "authorSignature"
	BlockFooter          BlockKind = "footer"
	BlockCustom          BlockKind = "custom"
)

// TemplateBlock is one orderable unit of template output. Data-bound
// kinds (title, content, tags, ...) substitute publication or post
// values; footer and custom emit Content verbatim, with no token
// interpolation.
type TemplateBlock struct {
	Insert  BlockKind `json:"insert"`
	Enabled bool      `json:"enabled"`
	Before  string    `json:"before"`
	After   string    `json:"after"`
	Content string    `json:"content,omitempty"`
}

// ProjectTemplate is an ordered block list scoped to a (language, post
// type) group within a project. Version is an optimistic-lock counter:
// updates must present the version they read or they are rejected.
type ProjectTemplate struct {
	ID        uuid.UUID       `json:"id"`
	ProjectID uuid.UUID       `json:"project_id"`
	Name      string          `json:"name"`
	Language  string          `json:"language"`
	PostType  PostType        `json:"post_type"`
	IsDefault bool            `json:"is_default"`
	Blocks    []TemplateBlock `json:"blocks"`
	Version   int             `json:"version"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
