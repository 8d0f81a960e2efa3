// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package validate

import (
	"strings"
	"testing"

	"crosspress/internal/models"
)

// TestCheckLengthLimits verifies that the caption limit applies only when
// media is attached and that markup never counts toward the limit.
func TestCheckLengthLimits(t *testing.T) {
	long := strings.Repeat("a", 1025)

	t.Run("caption over limit with media fails", func(t *testing.T) {
		res := Check(Input{
			Content:  long,
			Media:    []models.MediaType{models.MediaTypePhoto},
			Platform: models.PlatformTelegram,
			PostType: models.PostTypePost,
		})
		if res.IsValid {
			t.Fatal("expected invalid result")
		}
		found := false
		for _, e := range res.Errors {
			if strings.Contains(e, "Caption length") {
				found = true
			}
		}
		if !found {
			t.Errorf("expected a caption length error, got %v", res.Errors)
		}
	})

	t.Run("same text without media passes", func(t *testing.T) {
		res := Check(Input{
			Content:  long,
			Platform: models.PlatformTelegram,
			PostType: models.PostTypePost,
		})
		if !res.IsValid {
			t.Errorf("expected valid result, got errors %v", res.Errors)
		}
	})

	t.Run("text over limit without media fails", func(t *testing.T) {
		res := Check(Input{
			Content:  strings.Repeat("a", 4097),
			Platform: models.PlatformTelegram,
			PostType: models.PostTypePost,
		})
		if res.IsValid {
			t.Fatal("expected invalid result")
		}
		found := false
		for _, e := range res.Errors {
			if strings.Contains(e, "Text length") {
				found = true
			}
		}
		if !found {
			t.Errorf("expected a text length error, got %v", res.Errors)
		}
	})

	t.Run("markup does not count toward the limit", func(t *testing.T) {
		// 1024 visible characters wrapped in bold markers: the source is
		// longer than the caption limit but the visible text is not.
		res := Check(Input{
			Content:  "**" + strings.Repeat("a", 1024) + "**",
			Media:    []models.MediaType{models.MediaTypePhoto},
			Platform: models.PlatformTelegram,
			PostType: models.PostTypePost,
		})
		if !res.IsValid {
			t.Errorf("expected valid result, got errors %v", res.Errors)
		}
	})
}

// TestCheckMediaRules covers gallery limits, type rules, and count bounds.
func TestCheckMediaRules(t *testing.T) {
	photo := models.MediaTypePhoto

	t.Run("gallery over the item cap fails", func(t *testing.T) {
		media := make([]models.MediaType, 11)
		for i := range media {
			media[i] = photo
		}
		res := Check(Input{
			Media:    media,
			Platform: models.PlatformTelegram,
			PostType: models.PostTypePost,
		})
		if res.IsValid {
			t.Fatal("expected invalid result")
		}
	})

	t.Run("animation in a gallery fails", func(t *testing.T) {
		res := Check(Input{
			Media:    []models.MediaType{photo, models.MediaTypeAnimation},
			Platform: models.PlatformTelegram,
			PostType: models.PostTypePost,
		})
		if res.IsValid {
			t.Fatal("expected invalid result")
		}
	})

	t.Run("single animation passes", func(t *testing.T) {
		res := Check(Input{
			Media:    []models.MediaType{models.MediaTypeAnimation},
			Platform: models.PlatformTelegram,
			PostType: models.PostTypePost,
		})
		if !res.IsValid {
			t.Errorf("expected valid result, got errors %v", res.Errors)
		}
	})

	t.Run("story requires media", func(t *testing.T) {
		res := Check(Input{
			Platform: models.PlatformTelegram,
			PostType: models.PostTypeStory,
		})
		if res.IsValid {
			t.Fatal("expected invalid result")
		}
	})

	t.Run("violations accumulate instead of short circuiting", func(t *testing.T) {
		media := make([]models.MediaType, 11)
		for i := range media {
			media[i] = models.MediaTypeAnimation
		}
		res := Check(Input{
			Content:  strings.Repeat("a", 2000),
			Media:    media,
			Platform: models.PlatformTelegram,
			PostType: models.PostTypePost,
		})
		if res.IsValid {
			t.Fatal("expected invalid result")
		}
		if len(res.Errors) < 3 {
			t.Errorf("expected several collected errors, got %v", res.Errors)
		}
	})

	t.Run("unknown platform reported", func(t *testing.T) {
		res := Check(Input{
			Platform: models.Platform("myspace"),
			PostType: models.PostTypePost,
		})
		if res.IsValid {
			t.Fatal("expected invalid result")
		}
	})
}
