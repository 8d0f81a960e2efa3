// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package platform

import (
	"testing"

	"crosspress/internal/models"
)

// TestLookup verifies registry resolution and the post-type fallback.
func TestLookup(t *testing.T) {
	tests := []struct {
		name     string
		platform models.Platform
		postType models.PostType
		wantOK   bool
		wantText int
	}{
		{
			name:     "telegram post",
			platform: models.PlatformTelegram,
			postType: models.PostTypePost,
			wantOK:   true,
			wantText: 4096,
		},
		{
			name:     "telegram story",
			platform: models.PlatformTelegram,
			postType: models.PostTypeStory,
			wantOK:   true,
			wantText: 2048,
		},
		{
			name:     "vk post",
			platform: models.PlatformVK,
			postType: models.PostTypePost,
			wantOK:   true,
			wantText: 16384,
		},
		{
			name:     "unknown post type falls back to post",
			platform: models.PlatformVK,
			postType: models.PostTypeStory,
			wantOK:   true,
			wantText: 16384,
		},
		{
			name:     "unknown platform",
			platform: models.Platform("myspace"),
			postType: models.PostTypePost,
			wantOK:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, ok := Lookup(tt.platform, tt.postType)
			if ok != tt.wantOK {
				t.Fatalf("Lookup(%q, %q) ok = %v, want %v", tt.platform, tt.postType, ok, tt.wantOK)
			}
			if ok && cfg.MaxTextLength != tt.wantText {
				t.Errorf("MaxTextLength = %d, want %d", cfg.MaxTextLength, tt.wantText)
			}
		})
	}
}

// TestConfigMediaRules covers the per-config media predicates.
func TestConfigMediaRules(t *testing.T) {
	tg, ok := Lookup(models.PlatformTelegram, models.PostTypePost)
	if !ok {
		t.Fatal("telegram post config missing")
	}

	if !tg.AllowsType(models.MediaTypePhoto) {
		t.Error("telegram post should allow a single photo")
	}
	if !tg.AllowsType(models.MediaTypeAnimation) {
		t.Error("telegram post should allow a single animation")
	}
	if tg.AllowsGalleryType(models.MediaTypeAnimation) {
		t.Error("telegram galleries should not allow animations")
	}
	if !tg.AllowsGalleryType(models.MediaTypeVideo) {
		t.Error("telegram galleries should allow videos")
	}

	story, ok := Lookup(models.PlatformTelegram, models.PostTypeStory)
	if !ok {
		t.Fatal("telegram story config missing")
	}
	if story.MinMediaCount != 1 || story.MaxMediaCount != 1 {
		t.Errorf("story media bounds = [%d, %d], want [1, 1]", story.MinMediaCount, story.MaxMediaCount)
	}
	if story.AllowsType(models.MediaTypeDocument) {
		t.Error("stories should not allow documents")
	}
}

// TestCaptionLimit verifies the per-media-type caption specialization
// and its flat fallback.
func TestCaptionLimit(t *testing.T) {
	cfg := Config{
		MaxCaptionLength: 1024,
		CaptionLengthByMediaType: map[models.MediaType]int{
			models.MediaTypeVideo: 2048,
		},
	}

	if got := cfg.CaptionLimit(models.MediaTypeVideo); got != 2048 {
		t.Errorf("CaptionLimit(video) = %d, want 2048", got)
	}
	if got := cfg.CaptionLimit(models.MediaTypePhoto); got != 1024 {
		t.Errorf("CaptionLimit(photo) = %d, want 1024", got)
	}
}
