// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package compose

import (
	"strings"
	"testing"

	"crosspress/internal/models"
	"crosspress/internal/platform"
)

func testPublication() *models.Publication {
	return &models.Publication{
		Title:    "A Title",
		Body:     "The body text.",
		Tags:     []string{"Slice of Life", "news"},
		PostType: models.PostTypePost,
		Language: "en",
	}
}

func TestComposeFooterStaysVerbatim(t *testing.T) {
	c := NewCompositor()
	out, err := c.Compose(Input{
		Publication: testPublication(),
		Platform:    models.PlatformVK,
		PostType:    models.PostTypePost,
		Blocks: []ResolvedBlock{
			{Insert: models.BlockContent},
			{Insert: models.BlockFooter, Content: "Written by {{authorSignature}}"},
		},
	})
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if !strings.Contains(out.Body, "Written by {{authorSignature}}") {
		t.Errorf("footer token was substituted, body = %q", out.Body)
	}
}

func TestComposeContentOnly(t *testing.T) {
	c := NewCompositor()
	out, err := c.Compose(Input{
		Publication: testPublication(),
		Platform:    models.PlatformVK,
		PostType:    models.PostTypePost,
		Blocks: []ResolvedBlock{
			{Insert: models.BlockContent},
		},
	})
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if out.Body != "The body text." {
		t.Errorf("Body = %q, want the bare content block", out.Body)
	}
}

func TestComposeSegmentJoining(t *testing.T) {
	pub := testPublication()
	comment := "A comment."
	pub.AuthorComment = &comment

	c := NewCompositor()
	out, err := c.Compose(Input{
		Publication: pub,
		Platform:    models.PlatformVK,
		PostType:    models.PostTypePost,
		Blocks: []ResolvedBlock{
			{Insert: models.BlockContent},
			{Insert: models.BlockAuthorComment},
			{Insert: models.BlockTags},
		},
	})
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	want := "The body text.\n\nA comment.\n\n#slice_of_life #news"
	if out.Body != want {
		t.Errorf("Body = %q, want %q", out.Body, want)
	}
}

func TestComposeEmptySegmentsDropped(t *testing.T) {
	pub := testPublication()
	pub.AuthorComment = nil

	c := NewCompositor()
	out, err := c.Compose(Input{
		Publication: pub,
		Platform:    models.PlatformVK,
		PostType:    models.PostTypePost,
		Blocks: []ResolvedBlock{
			{Insert: models.BlockContent},
			// Wrappers around an empty value must vanish with it.
			{Insert: models.BlockAuthorComment, Before: "---\n", After: "\n---"},
			{Insert: models.BlockFooter, Content: "   "},
		},
	})
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if out.Body != "The body text." {
		t.Errorf("Body = %q, want empty segments dropped", out.Body)
	}
}

func TestComposeWrappers(t *testing.T) {
	c := NewCompositor()
	out, err := c.Compose(Input{
		Publication: testPublication(),
		Platform:    models.PlatformVK,
		PostType:    models.PostTypePost,
		Blocks: []ResolvedBlock{
			{Insert: models.BlockTitle, After: "\n===="},
			{Insert: models.BlockContent},
		},
	})
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	want := "A Title\n====\n\nThe body text."
	if out.Body != want {
		t.Errorf("Body = %q, want %q", out.Body, want)
	}
}

func TestComposePostOverridesWin(t *testing.T) {
	override := "Channel-specific body."
	signature := "anna"
	post := &models.Post{
		Content:         &override,
		Tags:            []string{"override_tag"},
		AuthorSignature: &signature,
	}

	c := NewCompositor()
	out, err := c.Compose(Input{
		Publication: testPublication(),
		Post:        post,
		Platform:    models.PlatformVK,
		PostType:    models.PostTypePost,
		Blocks: []ResolvedBlock{
			{Insert: models.BlockContent},
			{Insert: models.BlockAuthorSignature},
			{Insert: models.BlockTags},
		},
	})
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	want := "Channel-specific body.\n\nanna\n\n#override_tag"
	if out.Body != want {
		t.Errorf("Body = %q, want %q", out.Body, want)
	}
}

func TestComposeTelegramBodyIsHTML(t *testing.T) {
	pub := testPublication()
	pub.Body = "**bold** text"

	c := NewCompositor()
	out, err := c.Compose(Input{
		Publication: pub,
		Platform:    models.PlatformTelegram,
		PostType:    models.PostTypePost,
		Blocks: []ResolvedBlock{
			{Insert: models.BlockContent},
		},
	})
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if out.BodyFormat != platform.BodyFormatHTML {
		t.Errorf("BodyFormat = %s, want html", out.BodyFormat)
	}
	if out.Body != "<b>bold</b> text" {
		t.Errorf("Body = %q, want transcoded HTML", out.Body)
	}
}

func TestComposeSiteFieldsOutOfBand(t *testing.T) {
	pub := testPublication()
	desc := "A short description."
	pub.Description = &desc

	c := NewCompositor()
	out, err := c.Compose(Input{
		Publication: pub,
		Platform:    models.PlatformSite,
		PostType:    models.PostTypeArticle,
		Blocks: []ResolvedBlock{
			{Insert: models.BlockTitle},
			{Insert: models.BlockDescription},
			{Insert: models.BlockContent},
			{Insert: models.BlockTags},
		},
	})
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if out.Title != "A Title" {
		t.Errorf("Title = %q, want out-of-band title", out.Title)
	}
	if out.Description != "A short description." {
		t.Errorf("Description = %q, want out-of-band description", out.Description)
	}
	if len(out.Tags) != 2 {
		t.Errorf("Tags = %v, want out-of-band tag list", out.Tags)
	}
	if out.Body != "The body text." {
		t.Errorf("Body = %q, want only the content block in the body", out.Body)
	}
	if out.BodyFormat != platform.BodyFormatMarkdown {
		t.Errorf("BodyFormat = %s, want markdown", out.BodyFormat)
	}
}

func TestComposeUnknownPlatformFails(t *testing.T) {
	c := NewCompositor()
	_, err := c.Compose(Input{
		Publication: testPublication(),
		Platform:    models.Platform("myspace"),
		PostType:    models.PostTypePost,
	})
	if err == nil {
		t.Fatal("expected an error for an unknown platform")
	}
}
