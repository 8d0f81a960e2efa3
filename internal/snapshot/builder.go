// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package snapshot freezes rendered post bodies. A posting snapshot is
// built on every mutation that can change output while the publication is
// ready or scheduled, and the delivery service consumes only the frozen
// result — never a live re-render.
package snapshot

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"crosspress/internal/compose"
	"crosspress/internal/models"
)

// PublicationSource loads publications (with ordered media) and flips
// their desynced flag.
type PublicationSource interface {
	FindByID(id uuid.UUID) (*models.Publication, error)
	SetDesynced(id uuid.UUID, desynced bool) error
}

// PostSource loads a publication's posts and persists their snapshots.
type PostSource interface {
	ListByPublication(publicationID uuid.UUID) ([]models.Post, error)
	SetSnapshot(postID uuid.UUID, snap *models.PostingSnapshot) error
	ClearSnapshots(publicationID uuid.UUID) error
}

// ChannelSource loads the channel a post targets.
type ChannelSource interface {
	FindByID(id uuid.UUID) (*models.Channel, error)
}

// PreviewInvalidator drops cached preview renders for a post. Nil-safe
// via the noopInvalidator fallback in NewBuilder.
type PreviewInvalidator interface {
	Invalidate(ctx context.Context, postID uuid.UUID)
}

// Builder computes and persists posting snapshots.
//
// The rebuild path is deliberately last-writer-wins: two concurrent edits
// to the same publication race at the storage layer and the later
// snapshot sticks. Unlike template updates there is no version check —
// a lost rebuild is reproduced by the next mutation, a lost edit is not.
type Builder struct {
	publications PublicationSource
	posts        PostSource
	channels     ChannelSource
	resolver     *compose.Resolver
	compositor   *compose.Compositor
	previews     PreviewInvalidator
}

// NewBuilder wires a snapshot builder. previews may be nil when no cache
// is configured.
func NewBuilder(publications PublicationSource, posts PostSource, channels ChannelSource, resolver *compose.Resolver, compositor *compose.Compositor, previews PreviewInvalidator) *Builder {
	if previews == nil {
		previews = noopInvalidator{}
	}
	return &Builder{
		publications: publications,
		posts:        posts,
		channels:     channels,
		resolver:     resolver,
		compositor:   compositor,
		previews:     previews,
	}
}

// BuildForPublication recomputes and persists the posting snapshot of
// every post of the publication, replacing prior snapshots wholesale.
// A missing publication or one with zero posts is a logged no-op.
//
// All bodies are composed before anything is written: a transcoding or
// composition failure aborts the whole build and leaves every prior
// snapshot untouched.
func (b *Builder) BuildForPublication(ctx context.Context, publicationID uuid.UUID) error {
	pub, err := b.publications.FindByID(publicationID)
	if err != nil {
		return fmt.Errorf("load publication: %w", err)
	}
	if pub == nil {
		slog.Info("snapshot build skipped: publication not found", "publication_id", publicationID)
		return nil
	}

	posts, err := b.posts.ListByPublication(publicationID)
	if err != nil {
		return fmt.Errorf("load posts: %w", err)
	}
	if len(posts) == 0 {
		slog.Info("snapshot build skipped: publication has no posts", "publication_id", publicationID)
		return nil
	}

	descriptors := mediaDescriptors(pub.Media)
	now := time.Now()

	// Phase 1: compose every body. Nothing is persisted until all posts
	// rendered successfully.
	built := make([]*models.PostingSnapshot, len(posts))
	for i, post := range posts {
		channel, err := b.channels.FindByID(post.ChannelID)
		if err != nil {
			return fmt.Errorf("load channel: %w", err)
		}
		if channel == nil {
			slog.Warn("post references missing channel, snapshot skipped",
				"post_id", post.ID, "channel_id", post.ChannelID)
			continue
		}

		language := pub.Language
		if post.Language != nil {
			language = *post.Language
		}

		blocks, err := b.resolver.Resolve(channel, pub.PostType, language, post.TemplateID)
		if err != nil {
			return fmt.Errorf("resolve template for post %s: %w", post.ID, err)
		}

		composed, err := b.compositor.Compose(compose.Input{
			Publication: pub,
			Post:        &posts[i],
			Platform:    channel.Platform,
			PostType:    pub.PostType,
			Blocks:      blocks,
		})
		if err != nil {
			return fmt.Errorf("compose post %s: %w", post.ID, err)
		}

		built[i] = &models.PostingSnapshot{
			Version:   models.CurrentSnapshotVersion,
			Body:      composed.Body,
			Media:     descriptors,
			CreatedAt: now,
		}
	}

	// Phase 2: persist.
	for i, post := range posts {
		if built[i] == nil {
			continue
		}
		if err := b.posts.SetSnapshot(post.ID, built[i]); err != nil {
			return fmt.Errorf("persist snapshot for post %s: %w", post.ID, err)
		}
		b.previews.Invalidate(ctx, post.ID)
	}

	slog.Info("posting snapshots rebuilt", "publication_id", publicationID, "posts", len(posts))
	return nil
}

// ClearForPublication nulls out the posting snapshot on every post of the
// publication. Called when a publication regresses to draft or is
// deleted, so stale snapshots are never delivered.
func (b *Builder) ClearForPublication(ctx context.Context, publicationID uuid.UUID) error {
	posts, err := b.posts.ListByPublication(publicationID)
	if err != nil {
		return fmt.Errorf("load posts: %w", err)
	}
	if err := b.posts.ClearSnapshots(publicationID); err != nil {
		return fmt.Errorf("clear snapshots: %w", err)
	}
	for _, post := range posts {
		b.previews.Invalidate(ctx, post.ID)
	}
	slog.Info("posting snapshots cleared", "publication_id", publicationID, "posts", len(posts))
	return nil
}

// OnPublicationMutated applies the trigger rules after a mutation that
// can change rendered output. Ready and scheduled publications rebuild
// synchronously, so the caller observes up-to-date snapshots; already
// delivered ones are flagged desynced instead — the sent snapshot stays
// the source of truth until the user explicitly regenerates.
func (b *Builder) OnPublicationMutated(ctx context.Context, pub *models.Publication) error {
	switch {
	case pub.SnapshotsApply():
		return b.BuildForPublication(ctx, pub.ID)
	case pub.Delivered():
		if pub.Desynced {
			return nil
		}
		if err := b.publications.SetDesynced(pub.ID, true); err != nil {
			return fmt.Errorf("set desynced: %w", err)
		}
	}
	return nil
}

// mediaDescriptors maps publication media to frozen descriptors in
// attachment order.
func mediaDescriptors(media []models.PublicationMedia) []models.MediaDescriptor {
	sorted := make([]models.PublicationMedia, len(media))
	copy(sorted, media)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Position < sorted[j].Position })

	descriptors := make([]models.MediaDescriptor, len(sorted))
	for i, m := range sorted {
		descriptors[i] = models.MediaDescriptor{
			MediaID:     m.MediaID,
			Type:        m.Type,
			StorageType: m.StorageType,
			StoragePath: m.StoragePath,
			Order:       i,
			HasSpoiler:  m.HasSpoiler,
			Meta:        m.Meta,
		}
	}
	return descriptors
}

type noopInvalidator struct{}

func (noopInvalidator) Invalidate(context.Context, uuid.UUID) {}
