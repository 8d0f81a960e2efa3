// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package platform holds the static per-(platform, post type) delivery
// constraints: length limits, media rules, and body format. The registry
// is read-only process-wide state and safe for concurrent reads.
package platform

import "crosspress/internal/models"

// BodyFormat is the representation a platform expects in the post body.
type BodyFormat string

const (
	BodyFormatHTML     BodyFormat = "html"
	BodyFormatMarkdown BodyFormat = "markdown"
	BodyFormatPlain    BodyFormat = "plain"
)

// Config describes the delivery constraints for one (platform, post type)
// pair.
type Config struct {
	// MaxTextLength applies when the post carries no media;
	// MaxCaptionLength applies when it does. CaptionLengthByMediaType
	// optionally specializes the caption limit by the dominant (first)
	// media type.
	MaxTextLength            int
	MaxCaptionLength         int
	CaptionLengthByMediaType map[models.MediaType]int

	// Media rules. AllowedTypes governs a single attachment,
	// AllowedGalleryTypes governs attachments when two or more are present.
	AllowedTypes        []models.MediaType
	AllowedGalleryTypes []models.MediaType
	MaxGalleryCount     int
	MinMediaCount       int
	MaxMediaCount       int

	BodyFormat BodyFormat

	// Feature flags. Out-of-band fields are delivered as structured
	// request fields and therefore skipped during body composition.
	SupportsTitle             bool
	SupportsCaptionAboveMedia bool
	TitleOutOfBand            bool
	DescriptionOutOfBand      bool
	TagsOutOfBand             bool
}

// CaptionLimit returns the caption length limit for the given dominant
// media type, falling back to the flat caption limit.
func (c Config) CaptionLimit(dominant models.MediaType) int {
	if limit, ok := c.CaptionLengthByMediaType[dominant]; ok {
		return limit
	}
	return c.MaxCaptionLength
}

// AllowsType reports whether a single attachment of the given type is
// accepted.
func (c Config) AllowsType(t models.MediaType) bool {
	return containsType(c.AllowedTypes, t)
}

// AllowsGalleryType reports whether the given type may appear in a
// gallery (two or more attachments).
func (c Config) AllowsGalleryType(t models.MediaType) bool {
	return containsType(c.AllowedGalleryTypes, t)
}

func containsType(types []models.MediaType, t models.MediaType) bool {
	for _, a := range types {
		if a == t {
			return true
		}
	}
	return false
}

type configKey struct {
	platform models.Platform
	postType models.PostType
}

// registry is the closed table of platform constraints. Entries missing a
// post type fall back to the platform's PostTypePost entry in Lookup.
var registry = map[configKey]Config{
	{models.PlatformTelegram, models.PostTypePost}: {
		MaxTextLength:    4096,
		MaxCaptionLength: 1024,
		AllowedTypes: []models.MediaType{
			models.MediaTypePhoto, models.MediaTypeVideo, models.MediaTypeAnimation,
			models.MediaTypeAudio, models.MediaTypeDocument,
		},
		AllowedGalleryTypes: []models.MediaType{
			models.MediaTypePhoto, models.MediaTypeVideo,
			models.MediaTypeAudio, models.MediaTypeDocument,
		},
		MaxGalleryCount:           10,
		MinMediaCount:             0,
		MaxMediaCount:             10,
		BodyFormat:                BodyFormatHTML,
		SupportsCaptionAboveMedia: true,
	},
	{models.PlatformTelegram, models.PostTypeStory}: {
		MaxTextLength:    2048,
		MaxCaptionLength: 2048,
		AllowedTypes: []models.MediaType{
			models.MediaTypePhoto, models.MediaTypeVideo,
		},
		MinMediaCount: 1,
		MaxMediaCount: 1,
		BodyFormat:    BodyFormatHTML,
	},
	{models.PlatformVK, models.PostTypePost}: {
		MaxTextLength:    16384,
		MaxCaptionLength: 16384,
		AllowedTypes: []models.MediaType{
			models.MediaTypePhoto, models.MediaTypeVideo,
			models.MediaTypeAudio, models.MediaTypeDocument,
		},
		AllowedGalleryTypes: []models.MediaType{
			models.MediaTypePhoto, models.MediaTypeVideo,
		},
		MaxGalleryCount: 10,
		MinMediaCount:   0,
		MaxMediaCount:   10,
		BodyFormat:      BodyFormatPlain,
	},
	{models.PlatformSite, models.PostTypePost}: {
		MaxTextLength:    65536,
		MaxCaptionLength: 65536,
		AllowedTypes: []models.MediaType{
			models.MediaTypePhoto, models.MediaTypeVideo,
			models.MediaTypeAudio, models.MediaTypeDocument,
		},
		AllowedGalleryTypes: []models.MediaType{
			models.MediaTypePhoto, models.MediaTypeVideo,
			models.MediaTypeAudio, models.MediaTypeDocument,
		},
		MaxGalleryCount:      20,
		MinMediaCount:        0,
		MaxMediaCount:        20,
		BodyFormat:           BodyFormatMarkdown,
		SupportsTitle:        true,
		TitleOutOfBand:       true,
		DescriptionOutOfBand: true,
		TagsOutOfBand:        true,
	},
	{models.PlatformSite, models.PostTypeArticle}: {
		MaxTextLength:    262144,
		MaxCaptionLength: 262144,
		AllowedTypes: []models.MediaType{
			models.MediaTypePhoto, models.MediaTypeVideo,
			models.MediaTypeAudio, models.MediaTypeDocument,
		},
		AllowedGalleryTypes: []models.MediaType{
			models.MediaTypePhoto, models.MediaTypeVideo,
			models.MediaTypeAudio, models.MediaTypeDocument,
		},
		MaxGalleryCount:      50,
		MinMediaCount:        0,
		MaxMediaCount:        50,
		BodyFormat:           BodyFormatMarkdown,
		SupportsTitle:        true,
		TitleOutOfBand:       true,
		DescriptionOutOfBand: true,
		TagsOutOfBand:        true,
	},
}

// Lookup returns the constraints for the given platform and post type.
// Post types without a dedicated entry resolve to the platform's "post"
// entry, so every platform only has to define the pairs that differ.
// The boolean is false when the platform has no entry at all.
func Lookup(p models.Platform, pt models.PostType) (Config, bool) {
	if cfg, ok := registry[configKey{p, pt}]; ok {
		return cfg, true
	}
	cfg, ok := registry[configKey{p, models.PostTypePost}]
	return cfg, ok
}
