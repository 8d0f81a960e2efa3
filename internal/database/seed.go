package database

import (
	"database/sql"
	"fmt"
	"log/slog"
)

// Seed populates the database with initial development data: one demo
// channel per platform and a default project template, so a fresh
// checkout can compose and snapshot without any setup. No-op if channels
// already exist.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM channels").Scan(&count); err != nil {
		return fmt.Errorf("seed check channels: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	// A fixed project ID keeps dev seeds reproducible.
	const projectID = "00000000-0000-0000-0000-000000000001"

	for _, ch := range []struct{ platform, name string }{
		{"telegram", "Demo Telegram Channel"},
		{"vk", "Demo VK Group"},
		{"site", "Demo Site"},
	} {
		if _, err := db.Exec(`
			INSERT INTO channels (project_id, platform, name)
			VALUES ($1, $2, $3)
		`, projectID, ch.platform, ch.name); err != nil {
			return fmt.Errorf("seed insert channel: %w", err)
		}
	}

	_, err := db.Exec(`
		INSERT INTO project_templates (project_id, name, language, post_type, is_default, blocks)
		VALUES ($1, 'Default', 'en', 'post', TRUE, $2)
	`, projectID, `[
		{"insert": "content", "enabled": true, "before": "", "after": ""},
		{"insert": "authorComment", "enabled": true, "before": "", "after": ""},
		{"insert": "authorSignature", "enabled": true, "before": "", "after": ""},
		{"insert": "tags", "enabled": true, "before": "", "after": ""}
	]`)
	if err != nil {
		return fmt.Errorf("seed insert template: %w", err)
	}

	slog.Info("database seeded with demo channels and default template", "project_id", projectID)
	return nil
}
