// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// posts_test.go exercises the post endpoints against a real database
// with the full store/compose/snapshot wiring. Tests are skipped if
// PostgreSQL is not available.
package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"crosspress/internal/compose"
	"crosspress/internal/database"
	"crosspress/internal/models"
	"crosspress/internal/snapshot"
	"crosspress/internal/store"
)

func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "crosspress")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "crosspress")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("pgx", testDSN())
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testAPI wires a full API against the test database, without a preview
// cache.
func testAPI(t *testing.T) (*API, *sql.DB) {
	t.Helper()

	db := testDB(t)
	publications := store.NewPublicationStore(db)
	posts := store.NewPostStore(db)
	channels := store.NewChannelStore(db)
	variations := store.NewVariationStore(db)
	templates := store.NewTemplateStore(db)

	resolver := compose.NewResolver(templates, variations)
	compositor := compose.NewCompositor()
	builder := snapshot.NewBuilder(publications, posts, channels, resolver, compositor, nil)

	return NewAPI(publications, posts, channels, variations, templates, resolver, compositor, builder, nil), db
}

func TestPostUpdateOverridesReturnsFreshSnapshot(t *testing.T) {
	api, db := testAPI(t)

	pubStore := store.NewPublicationStore(db)
	pub, err := pubStore.Create(&models.Publication{
		ProjectID: uuid.New(),
		Title:     "Override test",
		Body:      "Body text.",
		Tags:      []string{"test"},
		PostType:  models.PostTypePost,
		Language:  "en",
		Status:    models.PublicationStatusDraft,
	})
	if err != nil {
		t.Fatalf("create publication: %v", err)
	}
	t.Cleanup(func() { pubStore.Delete(pub.ID) })

	chStore := store.NewChannelStore(db)
	ch, err := chStore.Create(&models.Channel{
		ProjectID: pub.ProjectID,
		Platform:  models.PlatformTelegram,
		Name:      "Override channel",
	})
	if err != nil {
		t.Fatalf("create channel: %v", err)
	}
	t.Cleanup(func() { chStore.Delete(ch.ID) })

	postStore := store.NewPostStore(db)
	post, err := postStore.Create(&models.Post{PublicationID: pub.ID, ChannelID: ch.ID})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}

	// A ready publication rebuilds snapshots synchronously on mutation.
	if err := pubStore.UpdateStatus(pub.ID, models.PublicationStatusReady); err != nil {
		t.Fatalf("set status ready: %v", err)
	}

	r := chi.NewRouter()
	r.Put("/api/posts/{id}/overrides", api.PostUpdateOverrides)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/api/posts/"+post.ID.String()+"/overrides",
		strings.NewReader(`{"content":"Channel-specific body."}`))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200 (body: %s)", w.Code, w.Body.String())
	}

	var got models.Post
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if got.Snapshot == nil {
		t.Fatal("response has no posting snapshot after rebuild")
	}
	if got.Snapshot.Version != models.CurrentSnapshotVersion {
		t.Errorf("snapshot version: got %d, want %d", got.Snapshot.Version, models.CurrentSnapshotVersion)
	}
	if !strings.Contains(got.Snapshot.Body, "Channel-specific body.") {
		t.Errorf("snapshot body %q does not reflect the override", got.Snapshot.Body)
	}
	if got.Content == nil || *got.Content != "Channel-specific body." {
		t.Errorf("content override not persisted in response")
	}
}
