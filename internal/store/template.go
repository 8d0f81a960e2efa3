// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"crosspress/internal/models"
)

// ErrVersionConflict is returned by TemplateStore.Update when the caller's
// version no longer matches the stored row: someone else saved first.
var ErrVersionConflict = errors.New("template was modified by someone else")

// TemplateStore handles project template database operations.
type TemplateStore struct {
	db *sql.DB
}

// NewTemplateStore creates a new TemplateStore with the given database connection.
func NewTemplateStore(db *sql.DB) *TemplateStore {
	return &TemplateStore{db: db}
}

const templateColumns = `
	id, project_id, name, language, post_type, is_default, blocks, version, created_at, updated_at`

func scanTemplate(row interface{ Scan(...any) error }) (*models.ProjectTemplate, error) {
	t := &models.ProjectTemplate{}
	var blocksJSON []byte
	err := row.Scan(
		&t.ID, &t.ProjectID, &t.Name, &t.Language, &t.PostType,
		&t.IsDefault, &blocksJSON, &t.Version, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(blocksJSON) > 0 {
		if err := json.Unmarshal(blocksJSON, &t.Blocks); err != nil {
			return nil, fmt.Errorf("decode template blocks: %w", err)
		}
	}
	return t, nil
}

// FindByID retrieves a template by its UUID. Returns nil if not found.
func (s *TemplateStore) FindByID(id uuid.UUID) (*models.ProjectTemplate, error) {
	row := s.db.QueryRow(`SELECT`+templateColumns+` FROM project_templates WHERE id = $1`, id)
	t, err := scanTemplate(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find template by id: %w", err)
	}
	return t, nil
}

// FindDefault returns the project's default template for the (language,
// post type) group. Returns nil if the project has none.
func (s *TemplateStore) FindDefault(projectID uuid.UUID, language string, postType models.PostType) (*models.ProjectTemplate, error) {
	row := s.db.QueryRow(`
		SELECT`+templateColumns+` FROM project_templates
		WHERE project_id = $1 AND language = $2 AND post_type = $3 AND is_default
		LIMIT 1
	`, projectID, language, postType)
	t, err := scanTemplate(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find default template: %w", err)
	}
	return t, nil
}

// ListByProject returns all templates of a project ordered by name.
func (s *TemplateStore) ListByProject(projectID uuid.UUID) ([]models.ProjectTemplate, error) {
	rows, err := s.db.Query(`SELECT`+templateColumns+` FROM project_templates WHERE project_id = $1 ORDER BY name`, projectID)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()

	var templates []models.ProjectTemplate
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan template: %w", err)
		}
		templates = append(templates, *t)
	}
	return templates, rows.Err()
}

// Create inserts a new template at version 1. New templates never start
// as the group default — use SetDefault.
func (s *TemplateStore) Create(t *models.ProjectTemplate) (*models.ProjectTemplate, error) {
	blocksJSON, err := json.Marshal(t.Blocks)
	if err != nil {
		return nil, fmt.Errorf("encode template blocks: %w", err)
	}

	row := s.db.QueryRow(`
		INSERT INTO project_templates (project_id, name, language, post_type, is_default, blocks, version)
		VALUES ($1, $2, $3, $4, FALSE, $5, 1)
		RETURNING`+templateColumns,
		t.ProjectID, t.Name, t.Language, t.PostType, blocksJSON,
	)
	result, err := scanTemplate(row)
	if err != nil {
		return nil, fmt.Errorf("create template: %w", err)
	}
	return result, nil
}

// Update modifies a template's name and blocks with an optimistic version
// check: the row is only written when t.Version still matches, and the
// version is bumped. Returns ErrVersionConflict on a concurrent edit.
func (s *TemplateStore) Update(t *models.ProjectTemplate) error {
	blocksJSON, err := json.Marshal(t.Blocks)
	if err != nil {
		return fmt.Errorf("encode template blocks: %w", err)
	}

	res, err := s.db.Exec(`
		UPDATE project_templates SET
			name = $1, blocks = $2, version = version + 1, updated_at = NOW()
		WHERE id = $3 AND version = $4
	`, t.Name, blocksJSON, t.ID, t.Version)
	if err != nil {
		return fmt.Errorf("update template: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update template: %w", err)
	}
	if rows == 0 {
		return ErrVersionConflict
	}
	return nil
}

// SetDefault marks a template as its project group's default, atomically
// unsetting the prior one in the same transaction.
func (s *TemplateStore) SetDefault(id uuid.UUID) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin set default template: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRow(`SELECT`+templateColumns+` FROM project_templates WHERE id = $1`, id)
	t, err := scanTemplate(row)
	if err == sql.ErrNoRows {
		return fmt.Errorf("set default template: %s not found", id)
	}
	if err != nil {
		return fmt.Errorf("set default template: %w", err)
	}

	_, err = tx.Exec(`
		UPDATE project_templates SET is_default = FALSE
		WHERE project_id = $1 AND language = $2 AND post_type = $3 AND is_default
	`, t.ProjectID, t.Language, t.PostType)
	if err != nil {
		return fmt.Errorf("unset prior default template: %w", err)
	}

	if _, err := tx.Exec(`UPDATE project_templates SET is_default = TRUE WHERE id = $1`, id); err != nil {
		return fmt.Errorf("set default template: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit set default template: %w", err)
	}
	return nil
}

// Delete removes a template. Variations referencing it cascade.
func (s *TemplateStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM project_templates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	return nil
}
