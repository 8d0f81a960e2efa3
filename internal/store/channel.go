// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"crosspress/internal/models"
)

// ChannelStore handles channel database operations.
type ChannelStore struct {
	db *sql.DB
}

// NewChannelStore creates a new ChannelStore with the given database connection.
func NewChannelStore(db *sql.DB) *ChannelStore {
	return &ChannelStore{db: db}
}

// FindByID retrieves a channel by its UUID. Returns nil if not found.
func (s *ChannelStore) FindByID(id uuid.UUID) (*models.Channel, error) {
	c := &models.Channel{}
	err := s.db.QueryRow(`
		SELECT id, project_id, platform, name, created_at, updated_at
		FROM channels WHERE id = $1
	`, id).Scan(&c.ID, &c.ProjectID, &c.Platform, &c.Name, &c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find channel by id: %w", err)
	}
	return c, nil
}

// ListByProject returns all channels of a project ordered by name.
func (s *ChannelStore) ListByProject(projectID uuid.UUID) ([]models.Channel, error) {
	rows, err := s.db.Query(`
		SELECT id, project_id, platform, name, created_at, updated_at
		FROM channels WHERE project_id = $1 ORDER BY name
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("list channels: %w", err)
	}
	defer rows.Close()

	var channels []models.Channel
	for rows.Next() {
		var c models.Channel
		if err := rows.Scan(&c.ID, &c.ProjectID, &c.Platform, &c.Name, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan channel: %w", err)
		}
		channels = append(channels, c)
	}
	return channels, rows.Err()
}

// Create inserts a new channel and returns it with the generated ID.
func (s *ChannelStore) Create(c *models.Channel) (*models.Channel, error) {
	result := &models.Channel{}
	err := s.db.QueryRow(`
		INSERT INTO channels (project_id, platform, name)
		VALUES ($1, $2, $3)
		RETURNING id, project_id, platform, name, created_at, updated_at
	`, c.ProjectID, c.Platform, c.Name).Scan(
		&result.ID, &result.ProjectID, &result.Platform, &result.Name,
		&result.CreatedAt, &result.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create channel: %w", err)
	}
	return result, nil
}

// Delete removes a channel; its posts and variations cascade.
func (s *ChannelStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM channels WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete channel: %w", err)
	}
	return nil
}
