// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"crosspress/internal/models"
)

// VariationStore handles channel template variations. The default flag is
// unique per (channel, language, post type) group, enforced both by
// SetDefault's transaction and by a partial unique index.
type VariationStore struct {
	db *sql.DB
}

// NewVariationStore creates a new VariationStore with the given database connection.
func NewVariationStore(db *sql.DB) *VariationStore {
	return &VariationStore{db: db}
}

const variationColumns = `
	id, channel_id, template_id, language, post_type, is_default, overrides, created_at`

func scanVariation(row interface{ Scan(...any) error }) (*models.TemplateVariation, error) {
	v := &models.TemplateVariation{}
	var overridesJSON []byte
	err := row.Scan(
		&v.ID, &v.ChannelID, &v.TemplateID, &v.Language, &v.PostType,
		&v.IsDefault, &overridesJSON, &v.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(overridesJSON) > 0 {
		if err := json.Unmarshal(overridesJSON, &v.Overrides); err != nil {
			return nil, fmt.Errorf("decode variation overrides: %w", err)
		}
	}
	return v, nil
}

// ListByChannel returns a channel's variations ordered by creation date.
func (s *VariationStore) ListByChannel(channelID uuid.UUID) ([]models.TemplateVariation, error) {
	rows, err := s.db.Query(`SELECT`+variationColumns+` FROM channel_template_variations WHERE channel_id = $1 ORDER BY created_at`, channelID)
	if err != nil {
		return nil, fmt.Errorf("list channel variations: %w", err)
	}
	defer rows.Close()

	var variations []models.TemplateVariation
	for rows.Next() {
		v, err := scanVariation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan variation: %w", err)
		}
		variations = append(variations, *v)
	}
	return variations, rows.Err()
}

// FindByID retrieves a variation by its UUID. Returns nil if not found.
func (s *VariationStore) FindByID(id uuid.UUID) (*models.TemplateVariation, error) {
	row := s.db.QueryRow(`SELECT`+variationColumns+` FROM channel_template_variations WHERE id = $1`, id)
	v, err := scanVariation(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find variation by id: %w", err)
	}
	return v, nil
}

// Create attaches a template to a channel. Language and post type are
// copied from the template by the caller; new variations never start as
// the group default — use SetDefault.
func (s *VariationStore) Create(v *models.TemplateVariation) (*models.TemplateVariation, error) {
	overridesJSON, err := json.Marshal(v.Overrides)
	if err != nil {
		return nil, fmt.Errorf("encode variation overrides: %w", err)
	}

	row := s.db.QueryRow(`
		INSERT INTO channel_template_variations (channel_id, template_id, language, post_type, is_default, overrides)
		VALUES ($1, $2, $3, $4, FALSE, $5)
		RETURNING`+variationColumns,
		v.ChannelID, v.TemplateID, v.Language, v.PostType, overridesJSON,
	)
	result, err := scanVariation(row)
	if err != nil {
		return nil, fmt.Errorf("create variation: %w", err)
	}
	return result, nil
}

// UpdateOverrides replaces a variation's block overrides.
func (s *VariationStore) UpdateOverrides(id uuid.UUID, overrides map[models.BlockKind]models.BlockOverride) error {
	overridesJSON, err := json.Marshal(overrides)
	if err != nil {
		return fmt.Errorf("encode variation overrides: %w", err)
	}
	_, err = s.db.Exec(`UPDATE channel_template_variations SET overrides = $1 WHERE id = $2`, overridesJSON, id)
	if err != nil {
		return fmt.Errorf("update variation overrides: %w", err)
	}
	return nil
}

// SetDefault marks a variation as the default of its (channel, language,
// post type) group, atomically unsetting the prior default in the same
// transaction so the group never has two.
func (s *VariationStore) SetDefault(id uuid.UUID) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin set default variation: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRow(`SELECT`+variationColumns+` FROM channel_template_variations WHERE id = $1`, id)
	v, err := scanVariation(row)
	if err == sql.ErrNoRows {
		return fmt.Errorf("set default variation: %s not found", id)
	}
	if err != nil {
		return fmt.Errorf("set default variation: %w", err)
	}

	_, err = tx.Exec(`
		UPDATE channel_template_variations SET is_default = FALSE
		WHERE channel_id = $1 AND language = $2 AND post_type = $3 AND is_default
	`, v.ChannelID, v.Language, v.PostType)
	if err != nil {
		return fmt.Errorf("unset prior default variation: %w", err)
	}

	if _, err := tx.Exec(`UPDATE channel_template_variations SET is_default = TRUE WHERE id = $1`, id); err != nil {
		return fmt.Errorf("set default variation: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit set default variation: %w", err)
	}
	return nil
}

// Delete removes a variation.
func (s *VariationStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM channel_template_variations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete variation: %w", err)
	}
	return nil
}
