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

// PostStore handles all post-related database operations, including
// posting-snapshot persistence. Snapshots are stored as a single JSONB
// value and replaced wholesale, never patched in place.
type PostStore struct {
	db *sql.DB
}

// NewPostStore creates a new PostStore with the given database connection.
func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db}
}

const postColumns = `
	id, publication_id, channel_id, content, tags, language, author_signature,
	template_id, posting_snapshot, posting_snapshot_created_at, created_at, updated_at`

func scanPost(row interface{ Scan(...any) error }) (*models.Post, error) {
	p := &models.Post{}
	var tagsJSON, snapJSON []byte
	err := row.Scan(
		&p.ID, &p.PublicationID, &p.ChannelID, &p.Content, &tagsJSON,
		&p.Language, &p.AuthorSignature, &p.TemplateID,
		&snapJSON, &p.SnapshotCreatedAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(tagsJSON) > 0 {
		if err := json.Unmarshal(tagsJSON, &p.Tags); err != nil {
			return nil, fmt.Errorf("decode post tags: %w", err)
		}
	}
	if len(snapJSON) > 0 {
		p.Snapshot = &models.PostingSnapshot{}
		if err := json.Unmarshal(snapJSON, p.Snapshot); err != nil {
			return nil, fmt.Errorf("decode posting snapshot: %w", err)
		}
	}
	return p, nil
}

// FindByID retrieves a post by its UUID. Returns nil if not found.
func (s *PostStore) FindByID(id uuid.UUID) (*models.Post, error) {
	row := s.db.QueryRow(`SELECT`+postColumns+` FROM posts WHERE id = $1`, id)
	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post by id: %w", err)
	}
	return p, nil
}

// ListByPublication returns all posts of a publication in creation order.
func (s *PostStore) ListByPublication(publicationID uuid.UUID) ([]models.Post, error) {
	rows, err := s.db.Query(`SELECT`+postColumns+` FROM posts WHERE publication_id = $1 ORDER BY created_at`, publicationID)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, *p)
	}
	return posts, rows.Err()
}

// Create inserts a new post. One post per (publication, channel) pair is
// enforced by a unique constraint.
func (s *PostStore) Create(p *models.Post) (*models.Post, error) {
	tagsJSON, err := json.Marshal(p.Tags)
	if err != nil {
		return nil, fmt.Errorf("encode post tags: %w", err)
	}

	row := s.db.QueryRow(`
		INSERT INTO posts (publication_id, channel_id, content, tags, language,
		                   author_signature, template_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING`+postColumns,
		p.PublicationID, p.ChannelID, p.Content, tagsJSON, p.Language,
		p.AuthorSignature, p.TemplateID,
	)
	result, err := scanPost(row)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return result, nil
}

// UpdateOverrides modifies a post's per-channel overrides. Snapshot
// columns are untouched here.
func (s *PostStore) UpdateOverrides(p *models.Post) error {
	tagsJSON, err := json.Marshal(p.Tags)
	if err != nil {
		return fmt.Errorf("encode post tags: %w", err)
	}

	_, err = s.db.Exec(`
		UPDATE posts SET
			content = $1, tags = $2, language = $3, author_signature = $4,
			template_id = $5, updated_at = NOW()
		WHERE id = $6
	`, p.Content, tagsJSON, p.Language, p.AuthorSignature, p.TemplateID, p.ID)
	if err != nil {
		return fmt.Errorf("update post overrides: %w", err)
	}
	return nil
}

// SetSnapshot replaces the post's posting snapshot wholesale.
func (s *PostStore) SetSnapshot(postID uuid.UUID, snap *models.PostingSnapshot) error {
	snapJSON, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode posting snapshot: %w", err)
	}

	_, err = s.db.Exec(`
		UPDATE posts SET
			posting_snapshot = $1, posting_snapshot_created_at = $2, updated_at = NOW()
		WHERE id = $3
	`, snapJSON, snap.CreatedAt, postID)
	if err != nil {
		return fmt.Errorf("set posting snapshot: %w", err)
	}
	return nil
}

// ClearSnapshots nulls the posting snapshot on every post of the
// publication.
func (s *PostStore) ClearSnapshots(publicationID uuid.UUID) error {
	_, err := s.db.Exec(`
		UPDATE posts SET
			posting_snapshot = NULL, posting_snapshot_created_at = NULL, updated_at = NOW()
		WHERE publication_id = $1
	`, publicationID)
	if err != nil {
		return fmt.Errorf("clear posting snapshots: %w", err)
	}
	return nil
}

// Delete removes a post by ID.
func (s *PostStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}
