// store_test.go provides a shared test database helper for all store
// integration tests. Tests are skipped if PostgreSQL is not available.
package store

import (
	"database/sql"
	"os"
	"testing"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"crosspress/internal/database"
	"crosspress/internal/models"
)

// testDSN returns the PostgreSQL connection string for testing.
// Uses environment variables with defaults matching docker-compose.yml.
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

// testDB opens a connection to the test database and runs migrations.
// If the database is unavailable, the test is skipped. A cleanup
// function is registered to close the connection when the test finishes.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := testDSN()
	db, err := sql.Open("pgx", dsn)
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

// testPublication creates a draft publication under a fresh project and
// registers its removal.
func testPublication(t *testing.T, db *sql.DB) *models.Publication {
	t.Helper()

	store := NewPublicationStore(db)
	pub, err := store.Create(&models.Publication{
		ProjectID: uuid.New(),
		Title:     "Test publication",
		Body:      "Body.",
		Tags:      []string{"test"},
		PostType:  models.PostTypePost,
		Language:  "en",
		Status:    models.PublicationStatusDraft,
	})
	if err != nil {
		t.Fatalf("create publication: %v", err)
	}
	t.Cleanup(func() { store.Delete(pub.ID) })
	return pub
}

// testChannel creates a telegram channel and registers its removal.
func testChannel(t *testing.T, db *sql.DB, projectID uuid.UUID) *models.Channel {
	t.Helper()

	store := NewChannelStore(db)
	ch, err := store.Create(&models.Channel{
		ProjectID: projectID,
		Platform:  models.PlatformTelegram,
		Name:      "Test channel",
	})
	if err != nil {
		t.Fatalf("create channel: %v", err)
	}
	t.Cleanup(func() { store.Delete(ch.ID) })
	return ch
}

// testTemplate creates a template and registers its removal.
func testTemplate(t *testing.T, db *sql.DB, projectID uuid.UUID) *models.ProjectTemplate {
	t.Helper()

	store := NewTemplateStore(db)
	tpl, err := store.Create(&models.ProjectTemplate{
		ProjectID: projectID,
		Name:      "Test template",
		Language:  "en",
		PostType:  models.PostTypePost,
		Blocks: []models.TemplateBlock{
			{Insert: models.BlockContent, Enabled: true},
			{Insert: models.BlockFooter, Enabled: true, Content: "footer"},
		},
	})
	if err != nil {
		t.Fatalf("create template: %v", err)
	}
	t.Cleanup(func() { store.Delete(tpl.ID) })
	return tpl
}
