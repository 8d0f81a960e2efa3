// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store contains the PostgreSQL persistence layer. Stores return
// (nil, nil) for not-found lookups and wrap every driver error with the
// failing operation.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"crosspress/internal/models"
)

// PublicationStore handles all publication-related database operations,
// including the ordered media list.
type PublicationStore struct {
	db *sql.DB
}

// NewPublicationStore creates a new PublicationStore with the given database connection.
func NewPublicationStore(db *sql.DB) *PublicationStore {
	return &PublicationStore{db: db}
}

const publicationColumns = `
	id, project_id, title, description, body, tags, author_comment, note,
	post_type, language, status, desynced, scheduled_at, created_at, updated_at`

func scanPublication(row interface{ Scan(...any) error }) (*models.Publication, error) {
	p := &models.Publication{}
	var tagsJSON []byte
	err := row.Scan(
		&p.ID, &p.ProjectID, &p.Title, &p.Description, &p.Body, &tagsJSON,
		&p.AuthorComment, &p.Note, &p.PostType, &p.Language, &p.Status,
		&p.Desynced, &p.ScheduledAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(tagsJSON) > 0 {
		if err := json.Unmarshal(tagsJSON, &p.Tags); err != nil {
			return nil, fmt.Errorf("decode tags: %w", err)
		}
	}
	return p, nil
}

// FindByID retrieves a publication with its ordered media list.
// Returns nil if not found.
func (s *PublicationStore) FindByID(id uuid.UUID) (*models.Publication, error) {
	row := s.db.QueryRow(`SELECT`+publicationColumns+` FROM publications WHERE id = $1`, id)
	p, err := scanPublication(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find publication by id: %w", err)
	}

	media, err := s.listMedia(id)
	if err != nil {
		return nil, err
	}
	p.Media = media
	return p, nil
}

// ListByProject returns all publications of a project, newest first,
// without their media lists.
func (s *PublicationStore) ListByProject(projectID uuid.UUID) ([]models.Publication, error) {
	rows, err := s.db.Query(`SELECT`+publicationColumns+` FROM publications WHERE project_id = $1 ORDER BY created_at DESC`, projectID)
	if err != nil {
		return nil, fmt.Errorf("list publications: %w", err)
	}
	defer rows.Close()

	var items []models.Publication
	for rows.Next() {
		p, err := scanPublication(rows)
		if err != nil {
			return nil, fmt.Errorf("scan publication: %w", err)
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

// Create inserts a new publication and returns it with the generated ID.
func (s *PublicationStore) Create(p *models.Publication) (*models.Publication, error) {
	tagsJSON, err := json.Marshal(p.Tags)
	if err != nil {
		return nil, fmt.Errorf("encode tags: %w", err)
	}

	row := s.db.QueryRow(`
		INSERT INTO publications (project_id, title, description, body, tags,
		                          author_comment, note, post_type, language, status, scheduled_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING`+publicationColumns,
		p.ProjectID, p.Title, p.Description, p.Body, tagsJSON,
		p.AuthorComment, p.Note, p.PostType, p.Language, p.Status, p.ScheduledAt,
	)
	result, err := scanPublication(row)
	if err != nil {
		return nil, fmt.Errorf("create publication: %w", err)
	}
	return result, nil
}

// Update modifies a publication's content fields. Status transitions go
// through UpdateStatus; the desynced flag through SetDesynced.
func (s *PublicationStore) Update(p *models.Publication) error {
	tagsJSON, err := json.Marshal(p.Tags)
	if err != nil {
		return fmt.Errorf("encode tags: %w", err)
	}

	_, err = s.db.Exec(`
		UPDATE publications SET
			title = $1, description = $2, body = $3, tags = $4,
			author_comment = $5, note = $6, post_type = $7, language = $8,
			scheduled_at = $9, updated_at = NOW()
		WHERE id = $10
	`, p.Title, p.Description, p.Body, tagsJSON,
		p.AuthorComment, p.Note, p.PostType, p.Language, p.ScheduledAt, p.ID)
	if err != nil {
		return fmt.Errorf("update publication: %w", err)
	}
	return nil
}

// UpdateStatus transitions a publication's lifecycle status. Regressing
// to draft clears the desynced flag — the draft becomes canonical again.
func (s *PublicationStore) UpdateStatus(id uuid.UUID, status models.PublicationStatus) error {
	_, err := s.db.Exec(`
		UPDATE publications SET
			status = $1,
			desynced = CASE WHEN $1 = 'draft' THEN FALSE ELSE desynced END,
			updated_at = NOW()
		WHERE id = $2
	`, status, id)
	if err != nil {
		return fmt.Errorf("update publication status: %w", err)
	}
	return nil
}

// SetDesynced flips the desynced flag: draft content has diverged from
// what was actually delivered.
func (s *PublicationStore) SetDesynced(id uuid.UUID, desynced bool) error {
	_, err := s.db.Exec(`UPDATE publications SET desynced = $1, updated_at = NOW() WHERE id = $2`, desynced, id)
	if err != nil {
		return fmt.Errorf("set publication desynced: %w", err)
	}
	return nil
}

// Delete removes a publication; posts and media links cascade.
func (s *PublicationStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM publications WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete publication: %w", err)
	}
	return nil
}

// ReplaceMedia swaps the publication's media list wholesale inside one
// transaction. Add, remove, and reorder all go through here so the
// position sequence stays dense.
func (s *PublicationStore) ReplaceMedia(publicationID uuid.UUID, media []models.PublicationMedia) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin replace media: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM publication_media WHERE publication_id = $1`, publicationID); err != nil {
		return fmt.Errorf("clear publication media: %w", err)
	}

	for i, m := range media {
		metaJSON, err := json.Marshal(m.Meta)
		if err != nil {
			return fmt.Errorf("encode media meta: %w", err)
		}
		_, err = tx.Exec(`
			INSERT INTO publication_media (publication_id, media_id, type, storage_type,
			                               storage_path, position, has_spoiler, meta)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, publicationID, m.MediaID, m.Type, m.StorageType, m.StoragePath, i, m.HasSpoiler, metaJSON)
		if err != nil {
			return fmt.Errorf("insert publication media: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace media: %w", err)
	}
	return nil
}

// UpdateMediaSpoiler toggles the spoiler flag on a single media link.
func (s *PublicationStore) UpdateMediaSpoiler(publicationID, mediaID uuid.UUID, hasSpoiler bool) error {
	_, err := s.db.Exec(`
		UPDATE publication_media SET has_spoiler = $1
		WHERE publication_id = $2 AND media_id = $3
	`, hasSpoiler, publicationID, mediaID)
	if err != nil {
		return fmt.Errorf("update media spoiler: %w", err)
	}
	return nil
}

// listMedia returns the publication's media links in attachment order.
func (s *PublicationStore) listMedia(publicationID uuid.UUID) ([]models.PublicationMedia, error) {
	rows, err := s.db.Query(`
		SELECT media_id, type, storage_type, storage_path, position, has_spoiler, meta
		FROM publication_media
		WHERE publication_id = $1
		ORDER BY position
	`, publicationID)
	if err != nil {
		return nil, fmt.Errorf("list publication media: %w", err)
	}
	defer rows.Close()

	var media []models.PublicationMedia
	for rows.Next() {
		var m models.PublicationMedia
		var metaJSON []byte
		if err := rows.Scan(&m.MediaID, &m.Type, &m.StorageType, &m.StoragePath, &m.Position, &m.HasSpoiler, &metaJSON); err != nil {
			return nil, fmt.Errorf("scan publication media: %w", err)
		}
		if len(metaJSON) > 0 {
			if err := json.Unmarshal(metaJSON, &m.Meta); err != nil {
				return nil, fmt.Errorf("decode media meta: %w", err)
			}
		}
		media = append(media, m)
	}
	return media, rows.Err()
}
