// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"crosspress/internal/models"
)

func TestPostCreateAndSnapshotLifecycle(t *testing.T) {
	db := testDB(t)
	store := NewPostStore(db)

	pub := testPublication(t, db)
	channel := testChannel(t, db, pub.ProjectID)

	post, err := store.Create(&models.Post{
		PublicationID: pub.ID,
		ChannelID:     channel.ID,
	})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	t.Cleanup(func() { store.Delete(post.ID) })

	if post.Snapshot != nil {
		t.Error("new post must not carry a snapshot")
	}

	snap := &models.PostingSnapshot{
		Version:   models.CurrentSnapshotVersion,
		Body:      "frozen body",
		Media:     []models.MediaDescriptor{{MediaID: uuid.New(), Type: models.MediaTypePhoto, Order: 0}},
		CreatedAt: time.Now(),
	}
	if err := store.SetSnapshot(post.ID, snap); err != nil {
		t.Fatalf("SetSnapshot: %v", err)
	}

	found, err := store.FindByID(post.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found.Snapshot == nil {
		t.Fatal("snapshot missing after SetSnapshot")
	}
	if found.Snapshot.Body != "frozen body" || found.Snapshot.Version != models.CurrentSnapshotVersion {
		t.Errorf("snapshot did not round-trip: %+v", found.Snapshot)
	}
	if len(found.Snapshot.Media) != 1 {
		t.Errorf("snapshot media count = %d, want 1", len(found.Snapshot.Media))
	}
	if found.SnapshotCreatedAt == nil {
		t.Error("snapshot timestamp column not set")
	}

	if err := store.ClearSnapshots(pub.ID); err != nil {
		t.Fatalf("ClearSnapshots: %v", err)
	}
	cleared, err := store.FindByID(post.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if cleared.Snapshot != nil || cleared.SnapshotCreatedAt != nil {
		t.Error("snapshot remains after ClearSnapshots")
	}
}

func TestPostUpdateOverrides(t *testing.T) {
	db := testDB(t)
	store := NewPostStore(db)

	pub := testPublication(t, db)
	channel := testChannel(t, db, pub.ProjectID)
	tpl := testTemplate(t, db, pub.ProjectID)

	post, err := store.Create(&models.Post{PublicationID: pub.ID, ChannelID: channel.ID})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	t.Cleanup(func() { store.Delete(post.ID) })

	content := "channel body"
	language := "ru"
	signature := "anna"
	post.Content = &content
	post.Tags = []string{"override"}
	post.Language = &language
	post.AuthorSignature = &signature
	post.TemplateID = &tpl.ID

	if err := store.UpdateOverrides(post); err != nil {
		t.Fatalf("UpdateOverrides: %v", err)
	}

	found, err := store.FindByID(post.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found.Content == nil || *found.Content != "channel body" {
		t.Error("content override did not round-trip")
	}
	if len(found.Tags) != 1 || found.Tags[0] != "override" {
		t.Error("tags override did not round-trip")
	}
	if found.Language == nil || *found.Language != "ru" {
		t.Error("language override did not round-trip")
	}
	if found.TemplateID == nil || *found.TemplateID != tpl.ID {
		t.Error("template override did not round-trip")
	}

	// Clearing overrides back to nil restores the publication's values.
	post.Content = nil
	post.Tags = nil
	post.Language = nil
	post.AuthorSignature = nil
	post.TemplateID = nil
	if err := store.UpdateOverrides(post); err != nil {
		t.Fatalf("clear overrides: %v", err)
	}
	cleared, err := store.FindByID(post.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if cleared.Content != nil || cleared.Language != nil || cleared.TemplateID != nil {
		t.Errorf("overrides not cleared: %+v", cleared)
	}
}

func TestPostListByPublication(t *testing.T) {
	db := testDB(t)
	store := NewPostStore(db)

	pub := testPublication(t, db)
	chA := testChannel(t, db, pub.ProjectID)
	chB := testChannel(t, db, pub.ProjectID)

	for _, ch := range []*models.Channel{chA, chB} {
		post, err := store.Create(&models.Post{PublicationID: pub.ID, ChannelID: ch.ID})
		if err != nil {
			t.Fatalf("create post: %v", err)
		}
		t.Cleanup(func() { store.Delete(post.ID) })
	}

	posts, err := store.ListByPublication(pub.ID)
	if err != nil {
		t.Fatalf("ListByPublication: %v", err)
	}
	if len(posts) != 2 {
		t.Errorf("post count = %d, want 2", len(posts))
	}
}

func TestPostUniquePerChannel(t *testing.T) {
	db := testDB(t)
	store := NewPostStore(db)

	pub := testPublication(t, db)
	channel := testChannel(t, db, pub.ProjectID)

	post, err := store.Create(&models.Post{PublicationID: pub.ID, ChannelID: channel.ID})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	t.Cleanup(func() { store.Delete(post.ID) })

	if _, err := store.Create(&models.Post{PublicationID: pub.ID, ChannelID: channel.ID}); err == nil {
		t.Error("expected a uniqueness violation for a second post on the same channel")
	}
}
