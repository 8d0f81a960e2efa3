// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package compose turns one canonical publication into platform-correct
// post bodies: the resolver selects the ordered block list for a channel,
// the compositor renders publication and post data through it.
package compose

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"crosspress/internal/models"
)

// TemplateSource provides project template lookups for the resolver.
type TemplateSource interface {
	FindByID(id uuid.UUID) (*models.ProjectTemplate, error)
	FindDefault(projectID uuid.UUID, language string, postType models.PostType) (*models.ProjectTemplate, error)
}

// VariationSource provides a channel's template variations.
type VariationSource interface {
	ListByChannel(channelID uuid.UUID) ([]models.TemplateVariation, error)
}

// ResolvedBlock is one enabled block after template resolution and
// channel-level overrides. Disabled blocks are filtered out here, so the
// compositor never sees them.
type ResolvedBlock struct {
	Insert  models.BlockKind `json:"insert"`
	Before  string           `json:"before"`
	After   string           `json:"after"`
	Content string           `json:"content,omitempty"`
}

// Resolver selects the block list used to render a post on a channel.
type Resolver struct {
	templates  TemplateSource
	variations VariationSource
}

// NewResolver creates a resolver over the given template and variation
// sources.
func NewResolver(templates TemplateSource, variations VariationSource) *Resolver {
	return &Resolver{templates: templates, variations: variations}
}

// Resolve picks the ordered block list for rendering a post, in priority
// order: the explicit template override, the channel's default variation
// for the (language, post type) group, the project's default template,
// then a hard-coded fallback. A missing or inaccessible explicit override
// falls through to the next tier instead of failing the composition.
//
// Overrides from a channel variation matching the chosen template are
// applied regardless of which tier selected it: a block may be disabled
// or its literal content replaced without touching the template.
func (r *Resolver) Resolve(channel *models.Channel, postType models.PostType, language string, overrideID *uuid.UUID) ([]ResolvedBlock, error) {
	variations, err := r.variations.ListByChannel(channel.ID)
	if err != nil {
		return nil, fmt.Errorf("list channel variations: %w", err)
	}

	var chosen *models.ProjectTemplate

	// Tier 1: explicit override, if it exists and belongs to the project.
	if overrideID != nil {
		tpl, err := r.templates.FindByID(*overrideID)
		if err != nil {
			return nil, fmt.Errorf("find override template: %w", err)
		}
		if tpl == nil || tpl.ProjectID != channel.ProjectID {
			slog.Warn("explicit template override not resolvable, falling back",
				"template_id", overrideID, "channel_id", channel.ID)
		} else {
			chosen = tpl
		}
	}

	// Tier 2: the channel's default variation for this group.
	if chosen == nil {
		for _, v := range variations {
			if v.IsDefault && v.Language == language && v.PostType == postType {
				tpl, err := r.templates.FindByID(v.TemplateID)
				if err != nil {
					return nil, fmt.Errorf("find variation template: %w", err)
				}
				if tpl == nil {
					slog.Warn("default variation points at missing template, falling back",
						"variation_id", v.ID, "template_id", v.TemplateID)
					break
				}
				chosen = tpl
				break
			}
		}
	}

	// Tier 3: the project's own default template for this group.
	if chosen == nil {
		tpl, err := r.templates.FindDefault(channel.ProjectID, language, postType)
		if err != nil {
			return nil, fmt.Errorf("find default template: %w", err)
		}
		chosen = tpl
	}

	// Tier 4: hard-coded fallback block list.
	if chosen == nil {
		return fallbackBlocks(), nil
	}

	var overrides map[models.BlockKind]models.BlockOverride
	for _, v := range variations {
		if v.TemplateID == chosen.ID {
			overrides = v.Overrides
			break
		}
	}

	return applyOverrides(chosen.Blocks, overrides), nil
}

// applyOverrides merges channel-level block overrides into the template's
// block list and drops disabled blocks.
func applyOverrides(blocks []models.TemplateBlock, overrides map[models.BlockKind]models.BlockOverride) []ResolvedBlock {
	resolved := make([]ResolvedBlock, 0, len(blocks))
	for _, b := range blocks {
		enabled := b.Enabled
		content := b.Content
		if o, ok := overrides[b.Insert]; ok {
			if o.Enabled != nil {
				enabled = *o.Enabled
			}
			if o.Content != nil {
				content = *o.Content
			}
		}
		if !enabled {
			continue
		}
		resolved = append(resolved, ResolvedBlock{
			Insert:  b.Insert,
			Before:  b.Before,
			After:   b.After,
			Content: content,
		})
	}
	return resolved
}

// fallbackBlocks is the last-resort block list used when neither the
// channel nor the project defines a template.
func fallbackBlocks() []ResolvedBlock {
	return []ResolvedBlock{
		{Insert: models.BlockContent},
		{Insert: models.BlockAuthorComment},
		{Insert: models.BlockAuthorSignature},
		{Insert: models.BlockTags},
		{Insert: models.BlockFooter, Content: ""},
	}
}
