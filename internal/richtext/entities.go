// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package richtext converts between the three body representations the
// publisher deals in: Telegram's offset/entity annotation model, Markdown
// (the canonical storage format), and the restricted HTML dialect
// Telegram accepts on send. It also reduces Markdown to visible plain
// text for length accounting.
package richtext

import (
	"log/slog"
	"sort"
	"strings"
	"unicode/utf16"
)

// EntityType identifies one Telegram formatting annotation.
type EntityType string

const (
	EntityBold                 EntityType = "bold"
	EntityItalic               EntityType = "italic"
	EntityUnderline            EntityType = "underline"
	EntityStrikethrough        EntityType = "strikethrough"
	EntityCode                 EntityType = "code"
	EntityPre                  EntityType = "pre"
	EntitySpoiler              EntityType = "spoiler"
	EntityTextLink             EntityType = "text_link"
	EntityTextMention          EntityType = "text_mention"
	EntityBlockquote           EntityType = "blockquote"
	EntityExpandableBlockquote EntityType = "expandable_blockquote"
)

// Entity is one formatting annotation over a text range. Offset and
// Length are expressed in UTF-16 code units, exactly as Telegram sends
// them; Go strings are UTF-8, so ToMarkdown re-encodes before slicing.
type Entity struct {
	Type     EntityType `json:"type"`
	Offset   int        `json:"offset"`
	Length   int        `json:"length"`
	URL      string     `json:"url,omitempty"`
	Language string     `json:"language,omitempty"`
}

// tagEvent is one tag insertion point produced from an entity boundary.
// Priority is the owning entity's length; the sort below uses it to keep
// outer tags opening before inner ones and inner tags closing first, so
// nested entities never produce interleaved markup.
type tagEvent struct {
	pos      int
	closing  bool
	priority int
	tag      string
}

// ToMarkdown renders entity-annotated text as Markdown. Entities whose
// range falls outside the text are skipped with a warning: a dropped
// decoration is preferable to corrupting every offset after it.
func ToMarkdown(text string, entities []Entity) string {
	if len(entities) == 0 {
		return text
	}

	// Work in UTF-16 code units so entity offsets index directly.
	units := utf16.Encode([]rune(text))

	events := make([]tagEvent, 0, len(entities)*2)
	for _, e := range entities {
		if e.Offset < 0 || e.Length <= 0 || e.Offset+e.Length > len(units) {
			slog.Warn("rich text entity out of bounds, skipped",
				"type", e.Type, "offset", e.Offset, "length", e.Length, "text_units", len(units))
			continue
		}

		openTag, closeTag, ok := entityTags(e)
		if !ok {
			// Unstyled entity kinds (mention, hashtag, url, ...) carry no
			// markup; the text itself already says everything.
			continue
		}

		if (e.Type == EntityBlockquote || e.Type == EntityExpandableBlockquote) &&
			strings.ContainsRune(string(utf16.Decode(units[e.Offset:e.Offset+e.Length])), '\n') {
			// Known gap: only the first line gets the "> " prefix.
			slog.Warn("multi-line blockquote entity, interior lines not re-wrapped",
				"offset", e.Offset, "length", e.Length)
		}

		events = append(events, tagEvent{pos: e.Offset, priority: e.Length, tag: openTag})
		if closeTag != "" {
			events = append(events, tagEvent{pos: e.Offset + e.Length, closing: true, priority: e.Length, tag: closeTag})
		}
	}

	// Ordering contract: position ascending; at equal position closing
	// tags precede opening ones; openers with larger priority (outer)
	// come first; closers with larger priority (outer) come last.
	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i], events[j]
		if a.pos != b.pos {
			return a.pos < b.pos
		}
		if a.closing != b.closing {
			return a.closing
		}
		if a.closing {
			return a.priority < b.priority
		}
		return a.priority > b.priority
	})

	var b strings.Builder
	last := 0
	for _, ev := range events {
		b.WriteString(string(utf16.Decode(units[last:ev.pos])))
		last = ev.pos
		b.WriteString(ev.tag)
	}
	b.WriteString(string(utf16.Decode(units[last:])))
	return b.String()
}

// entityTags maps an entity to its opening and closing Markdown tags.
// A false third return means the entity kind carries no markup.
func entityTags(e Entity) (openTag, closeTag string, ok bool) {
	switch e.Type {
	case EntityBold:
		return "**", "**", true
	case EntityItalic:
		return "_", "_", true
	case EntityUnderline:
		return "<u>", "</u>", true
	case EntityStrikethrough:
		return "~~", "~~", true
	case EntityCode:
		return "`", "`", true
	case EntityPre:
		return "```" + e.Language + "\n", "\n```", true
	case EntitySpoiler:
		return "||", "||", true
	case EntityTextLink, EntityTextMention:
		return "[", "](" + e.URL + ")", true
	case EntityBlockquote, EntityExpandableBlockquote:
		// Prefix at the start boundary only; no closing tag.
		return "> ", "", true
	}
	return "", "", false
}
