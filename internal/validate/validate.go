// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package validate checks candidate post content and media against the
// static per-platform limits. All violations are collected and returned
// together so the caller can surface every problem at once.
package validate

import (
	"fmt"

	"crosspress/internal/models"
	"crosspress/internal/platform"
	"crosspress/internal/richtext"
)

// Input is one validation request. Content is the candidate body in its
// authoring representation (Markdown); Media lists the attachment types
// in order.
type Input struct {
	Content  string             `json:"content"`
	Media    []models.MediaType `json:"media"`
	Platform models.Platform    `json:"platform"`
	PostType models.PostType    `json:"post_type"`
}

// Result reports whether the content is deliverable and every limit it
// violates.
type Result struct {
	IsValid bool     `json:"is_valid"`
	Errors  []string `json:"errors"`
}

// Check validates content and media against the platform's limits.
// Length is measured on visible plain text — markup tokens never count
// toward the limit. Violations do not short-circuit.
func Check(in Input) Result {
	cfg, ok := platform.Lookup(in.Platform, in.PostType)
	if !ok {
		return Result{Errors: []string{fmt.Sprintf("Unknown platform %q", in.Platform)}}
	}

	var errs []string
	mediaCount := len(in.Media)
	length := richtext.Length(in.Content)

	if mediaCount > 0 {
		limit := cfg.CaptionLimit(in.Media[0])
		if length > limit {
			errs = append(errs, fmt.Sprintf("Caption length %d exceeds the maximum of %d", length, limit))
		}
	} else if length > cfg.MaxTextLength {
		errs = append(errs, fmt.Sprintf("Text length %d exceeds the maximum of %d", length, cfg.MaxTextLength))
	}

	if mediaCount > 1 {
		if cfg.MaxGalleryCount > 0 && mediaCount > cfg.MaxGalleryCount {
			errs = append(errs, fmt.Sprintf("Gallery of %d items exceeds the maximum of %d", mediaCount, cfg.MaxGalleryCount))
		}
		for i, t := range in.Media {
			if !cfg.AllowsGalleryType(t) {
				errs = append(errs, fmt.Sprintf("Media type %q at position %d is not allowed in a gallery", t, i))
			}
		}
	} else if mediaCount == 1 {
		if !cfg.AllowsType(in.Media[0]) {
			errs = append(errs, fmt.Sprintf("Media type %q is not allowed", in.Media[0]))
		}
	}

	if mediaCount < cfg.MinMediaCount {
		errs = append(errs, fmt.Sprintf("At least %d media item(s) required, got %d", cfg.MinMediaCount, mediaCount))
	}
	if cfg.MaxMediaCount > 0 && mediaCount > cfg.MaxMediaCount {
		errs = append(errs, fmt.Sprintf("At most %d media item(s) allowed, got %d", cfg.MaxMediaCount, mediaCount))
	}

	return Result{IsValid: len(errs) == 0, Errors: errs}
}
