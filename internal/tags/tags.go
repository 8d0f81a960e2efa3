// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package tags normalizes publication tags into platform hashtags.
package tags

import (
	"regexp"
	"strings"
)

var (
	// nonTagChar matches anything that isn't a letter, digit, underscore,
	// space, or hyphen. Unicode letters are kept — Cyrillic hashtags are
	// common on Telegram and VK.
	nonTagChar = regexp.MustCompile(`[^\p{L}\p{N}_\s-]`)
	// separators collapses runs of spaces and hyphens into one underscore.
	separators = regexp.MustCompile(`[\s-]+`)
	// multipleUnderscores collapses consecutive underscores into one.
	multipleUnderscores = regexp.MustCompile(`_{2,}`)
)

// Hashtag normalizes a raw tag into a snake_case hashtag.
// Example: "Slice of Life" → "#slice_of_life". Returns "" when nothing
// usable remains.
func Hashtag(s string) string {
	result := strings.ToLower(strings.TrimSpace(s))
	result = strings.TrimPrefix(result, "#")
	result = nonTagChar.ReplaceAllString(result, "")
	result = separators.ReplaceAllString(result, "_")
	result = multipleUnderscores.ReplaceAllString(result, "_")
	result = strings.Trim(result, "_")
	if result == "" {
		return ""
	}
	return "#" + result
}

// FormatAll normalizes a tag list into a single space-separated hashtag
// line for body embedding. Empty results are dropped; duplicates after
// normalization are kept once.
func FormatAll(raw []string) string {
	seen := make(map[string]bool, len(raw))
	var parts []string
	for _, t := range raw {
		h := Hashtag(t)
		if h == "" || seen[h] {
			continue
		}
		seen[h] = true
		parts = append(parts, h)
	}
	return strings.Join(parts, " ")
}
