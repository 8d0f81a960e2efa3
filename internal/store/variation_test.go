// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"testing"

	"github.com/google/uuid"

	"crosspress/internal/models"
)

// createVariation attaches a fresh template to a channel.
func createVariation(t *testing.T, db *sql.DB, channel *models.Channel, tpl *models.ProjectTemplate) *models.TemplateVariation {
	t.Helper()

	store := NewVariationStore(db)
	v, err := store.Create(&models.TemplateVariation{
		ChannelID:  channel.ID,
		TemplateID: tpl.ID,
		Language:   tpl.Language,
		PostType:   tpl.PostType,
	})
	if err != nil {
		t.Fatalf("create variation: %v", err)
	}
	t.Cleanup(func() { store.Delete(v.ID) })
	return v
}

func TestVariationCreateAndList(t *testing.T) {
	db := testDB(t)
	store := NewVariationStore(db)
	projectID := uuid.New()

	channel := testChannel(t, db, projectID)
	tpl := testTemplate(t, db, projectID)
	v := createVariation(t, db, channel, tpl)

	if v.IsDefault {
		t.Error("new variation must not start as default")
	}
	if v.Language != "en" || v.PostType != models.PostTypePost {
		t.Errorf("variation group = (%s, %s), want the template's group", v.Language, v.PostType)
	}

	list, err := store.ListByChannel(channel.ID)
	if err != nil {
		t.Fatalf("ListByChannel: %v", err)
	}
	if len(list) != 1 || list[0].ID != v.ID {
		t.Errorf("list = %v, want the created variation", list)
	}
}

func TestVariationSetDefaultIsExclusive(t *testing.T) {
	db := testDB(t)
	store := NewVariationStore(db)
	projectID := uuid.New()

	channel := testChannel(t, db, projectID)
	first := createVariation(t, db, channel, testTemplate(t, db, projectID))
	second := createVariation(t, db, channel, testTemplate(t, db, projectID))

	if err := store.SetDefault(first.ID); err != nil {
		t.Fatalf("set first default: %v", err)
	}
	if err := store.SetDefault(second.ID); err != nil {
		t.Fatalf("set second default: %v", err)
	}

	list, err := store.ListByChannel(channel.ID)
	if err != nil {
		t.Fatalf("ListByChannel: %v", err)
	}
	defaults := 0
	for _, v := range list {
		if v.IsDefault {
			defaults++
			if v.ID != second.ID {
				t.Errorf("default is %s, want the second variation", v.ID)
			}
		}
	}
	if defaults != 1 {
		t.Errorf("group has %d defaults, want exactly 1", defaults)
	}
}

func TestVariationUpdateOverrides(t *testing.T) {
	db := testDB(t)
	store := NewVariationStore(db)
	projectID := uuid.New()

	channel := testChannel(t, db, projectID)
	v := createVariation(t, db, channel, testTemplate(t, db, projectID))

	disabled := false
	content := "channel footer"
	err := store.UpdateOverrides(v.ID, map[models.BlockKind]models.BlockOverride{
		models.BlockFooter: {Enabled: &disabled, Content: &content},
	})
	if err != nil {
		t.Fatalf("UpdateOverrides: %v", err)
	}

	found, err := store.FindByID(v.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	o, ok := found.Overrides[models.BlockFooter]
	if !ok {
		t.Fatal("footer override missing after update")
	}
	if o.Enabled == nil || *o.Enabled {
		t.Error("enabled override did not round-trip")
	}
	if o.Content == nil || *o.Content != "channel footer" {
		t.Error("content override did not round-trip")
	}
}

func TestVariationCascadesWithChannel(t *testing.T) {
	db := testDB(t)
	store := NewVariationStore(db)
	channels := NewChannelStore(db)
	projectID := uuid.New()

	channel := testChannel(t, db, projectID)
	v := createVariation(t, db, channel, testTemplate(t, db, projectID))

	if err := channels.Delete(channel.ID); err != nil {
		t.Fatalf("delete channel: %v", err)
	}

	found, err := store.FindByID(v.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found != nil {
		t.Error("variation should cascade away with its channel")
	}
}
