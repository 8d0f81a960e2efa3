// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package compose

import (
	"fmt"
	"strings"

	"crosspress/internal/models"
	"crosspress/internal/platform"
	"crosspress/internal/richtext"
	"crosspress/internal/tags"
)

// Input carries everything the compositor needs for one render: the
// publication, the post whose overrides apply (nil for a bare preview),
// the target platform/post type, and the resolved block list.
type Input struct {
	Publication *models.Publication
	Post        *models.Post
	Platform    models.Platform
	PostType    models.PostType
	Blocks      []ResolvedBlock
}

// Composed is the rendered result. Fields the platform delivers
// out-of-band (title, description, tags on structured-field platforms)
// are returned separately and omitted from Body.
type Composed struct {
	Body        string              `json:"body"`
	BodyFormat  platform.BodyFormat `json:"body_format"`
	Title       string              `json:"title,omitempty"`
	Description string              `json:"description,omitempty"`
	Tags        []string            `json:"tags,omitempty"`
}

// Compositor renders a publication and its per-post overrides through a
// resolved block list into a platform-appropriate body.
type Compositor struct{}

// NewCompositor creates a compositor.
func NewCompositor() *Compositor {
	return &Compositor{}
}

// Compose renders the blocks in order, joins the non-empty segments, and
// transcodes the result into the platform's body format. Footer and
// custom blocks are emitted verbatim: a literal "{{authorSignature}}"
// inside one stays literal text. That is the contract, not an oversight.
func (c *Compositor) Compose(in Input) (Composed, error) {
	cfg, ok := platform.Lookup(in.Platform, in.PostType)
	if !ok {
		return Composed{}, fmt.Errorf("no platform config for %s/%s", in.Platform, in.PostType)
	}

	pub := in.Publication
	out := Composed{BodyFormat: cfg.BodyFormat}

	content := pub.Body
	tagList := pub.Tags
	signature := ""
	if in.Post != nil {
		if in.Post.Content != nil {
			content = *in.Post.Content
		}
		if len(in.Post.Tags) > 0 {
			tagList = in.Post.Tags
		}
		if in.Post.AuthorSignature != nil {
			signature = *in.Post.AuthorSignature
		}
	}

	var segments []string
	for _, block := range in.Blocks {
		var segment string
		switch block.Insert {
		case models.BlockTitle:
			if cfg.TitleOutOfBand {
				out.Title = pub.Title
				continue
			}
			segment = pub.Title
		case models.BlockContent:
			segment = content
		case models.BlockDescription:
			if cfg.DescriptionOutOfBand {
				if pub.Description != nil {
					out.Description = *pub.Description
				}
				continue
			}
			if pub.Description != nil {
				segment = *pub.Description
			}
		case models.BlockTags:
			if cfg.TagsOutOfBand {
				out.Tags = tagList
				continue
			}
			segment = tags.FormatAll(tagList)
		case models.BlockAuthorComment:
			if pub.AuthorComment != nil {
				segment = *pub.AuthorComment
			}
		case models.BlockAuthorSignature:
			segment = signature
		case models.BlockFooter, models.BlockCustom:
			// Verbatim literal content, no token substitution.
			segment = block.Content
		default:
			continue
		}

		if strings.TrimSpace(segment) == "" {
			continue
		}
		segments = append(segments, block.Before+segment+block.After)
	}

	body := strings.TrimSpace(strings.Join(segments, "\n\n"))
	if cfg.BodyFormat == platform.BodyFormatHTML {
		body = richtext.ToTelegramHTML(body)
	}
	out.Body = body
	return out, nil
}
