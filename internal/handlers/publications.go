// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"crosspress/internal/models"
)

// publicationRequest is the create/update payload for a publication.
type publicationRequest struct {
	ProjectID     *string    `json:"project_id,omitempty"`
	Title         string     `json:"title"`
	Description   *string    `json:"description"`
	Body          string     `json:"body"`
	Tags          []string   `json:"tags"`
	AuthorComment *string    `json:"author_comment"`
	Note          *string    `json:"note"`
	PostType      string     `json:"post_type"`
	Language      string     `json:"language"`
	ScheduledAt   *time.Time `json:"scheduled_at"`
}

// PublicationCreate handles POST /api/publications.
func (a *API) PublicationCreate(w http.ResponseWriter, r *http.Request) {
	var req publicationRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.ProjectID == nil {
		respondError(w, http.StatusBadRequest, "project_id is required")
		return
	}
	projectID, err := parseUUID(*req.ProjectID, "project_id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		respondError(w, http.StatusBadRequest, "title is required")
		return
	}

	pub := &models.Publication{
		ProjectID:     projectID,
		Title:         req.Title,
		Description:   req.Description,
		Body:          req.Body,
		Tags:          req.Tags,
		AuthorComment: req.AuthorComment,
		Note:          req.Note,
		PostType:      postTypeOrDefault(req.PostType),
		Language:      languageOrDefault(req.Language),
		Status:        models.PublicationStatusDraft,
		ScheduledAt:   req.ScheduledAt,
	}

	created, err := a.publications.Create(pub)
	if err != nil {
		slog.Error("create publication failed", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to create publication")
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// PublicationList handles GET /api/publications?project_id=X.
func (a *API) PublicationList(w http.ResponseWriter, r *http.Request) {
	projectID, err := parseUUID(r.URL.Query().Get("project_id"), "project_id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	list, err := a.publications.ListByProject(projectID)
	if err != nil {
		slog.Error("list publications failed", "project_id", projectID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to list publications")
		return
	}
	respondJSON(w, http.StatusOK, list)
}

// PublicationGet handles GET /api/publications/{id}.
func (a *API) PublicationGet(w http.ResponseWriter, r *http.Request) {
	pub, ok := a.loadPublication(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, pub)
}

// PublicationUpdate handles PUT /api/publications/{id}. Content mutations
// on a ready or scheduled publication synchronously rebuild posting
// snapshots before responding; mutations after delivery set the desynced
// flag instead.
func (a *API) PublicationUpdate(w http.ResponseWriter, r *http.Request) {
	pub, ok := a.loadPublication(w, r)
	if !ok {
		return
	}

	var req publicationRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		respondError(w, http.StatusBadRequest, "title is required")
		return
	}

	pub.Title = req.Title
	pub.Description = req.Description
	pub.Body = req.Body
	pub.Tags = req.Tags
	pub.AuthorComment = req.AuthorComment
	pub.Note = req.Note
	pub.PostType = postTypeOrDefault(req.PostType)
	pub.Language = languageOrDefault(req.Language)
	pub.ScheduledAt = req.ScheduledAt

	if err := a.publications.Update(pub); err != nil {
		slog.Error("update publication failed", "publication_id", pub.ID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to update publication")
		return
	}

	if err := a.builder.OnPublicationMutated(r.Context(), pub); err != nil {
		slog.Error("snapshot rebuild after update failed", "publication_id", pub.ID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to rebuild posting snapshots")
		return
	}

	updated, err := a.publications.FindByID(pub.ID)
	if err != nil {
		slog.Error("reload publication failed", "publication_id", pub.ID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load publication")
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// statusRequest is the payload for a lifecycle transition.
type statusRequest struct {
	Status models.PublicationStatus `json:"status"`
}

// PublicationStatus handles POST /api/publications/{id}/status.
// Transitioning into ready or scheduled builds snapshots; regressing to
// draft clears them so stale renderings are never delivered.
func (a *API) PublicationStatus(w http.ResponseWriter, r *http.Request) {
	pub, ok := a.loadPublication(w, r)
	if !ok {
		return
	}

	var req statusRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !validStatus(req.Status) {
		respondError(w, http.StatusBadRequest, "unknown status")
		return
	}

	if err := a.publications.UpdateStatus(pub.ID, req.Status); err != nil {
		slog.Error("update publication status failed", "publication_id", pub.ID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to update status")
		return
	}

	switch req.Status {
	case models.PublicationStatusReady, models.PublicationStatusScheduled:
		if err := a.builder.BuildForPublication(r.Context(), pub.ID); err != nil {
			slog.Error("snapshot build on status change failed", "publication_id", pub.ID, "error", err)
			respondError(w, http.StatusInternalServerError, "failed to build posting snapshots")
			return
		}
	case models.PublicationStatusDraft:
		if err := a.builder.ClearForPublication(r.Context(), pub.ID); err != nil {
			slog.Error("snapshot clear on status change failed", "publication_id", pub.ID, "error", err)
			respondError(w, http.StatusInternalServerError, "failed to clear posting snapshots")
			return
		}
	}

	w.WriteHeader(http.StatusNoContent)
}

// PublicationDelete handles DELETE /api/publications/{id}.
func (a *API) PublicationDelete(w http.ResponseWriter, r *http.Request) {
	pub, ok := a.loadPublication(w, r)
	if !ok {
		return
	}

	// Drop snapshots first so cached previews are invalidated even though
	// the rows themselves cascade away.
	if err := a.builder.ClearForPublication(r.Context(), pub.ID); err != nil {
		slog.Warn("snapshot clear before delete failed", "publication_id", pub.ID, "error", err)
	}

	if err := a.publications.Delete(pub.ID); err != nil {
		slog.Error("delete publication failed", "publication_id", pub.ID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to delete publication")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// mediaItemRequest is one attachment in a media list replacement.
type mediaItemRequest struct {
	MediaID     string            `json:"media_id"`
	Type        models.MediaType  `json:"type"`
	StorageType string            `json:"storage_type"`
	StoragePath string            `json:"storage_path"`
	HasSpoiler  bool              `json:"has_spoiler"`
	Meta        map[string]string `json:"meta"`
}

// PublicationMediaReplace handles PUT /api/publications/{id}/media.
// The attachment list is replaced wholesale in request order, covering
// add, remove, and reorder with one call.
func (a *API) PublicationMediaReplace(w http.ResponseWriter, r *http.Request) {
	pub, ok := a.loadPublication(w, r)
	if !ok {
		return
	}

	var req []mediaItemRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	media := make([]models.PublicationMedia, 0, len(req))
	for i, item := range req {
		mediaID, err := parseUUID(item.MediaID, "media_id")
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		media = append(media, models.PublicationMedia{
			MediaID:     mediaID,
			Type:        item.Type,
			StorageType: item.StorageType,
			StoragePath: item.StoragePath,
			Position:    i,
			HasSpoiler:  item.HasSpoiler,
			Meta:        item.Meta,
		})
	}

	if err := a.publications.ReplaceMedia(pub.ID, media); err != nil {
		slog.Error("replace publication media failed", "publication_id", pub.ID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to replace media")
		return
	}

	if err := a.builder.OnPublicationMutated(r.Context(), pub); err != nil {
		slog.Error("snapshot rebuild after media change failed", "publication_id", pub.ID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to rebuild posting snapshots")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// spoilerRequest toggles the spoiler flag on one media link.
type spoilerRequest struct {
	HasSpoiler bool `json:"has_spoiler"`
}

// PublicationMediaSpoiler handles PATCH /api/publications/{id}/media/{mediaID}.
func (a *API) PublicationMediaSpoiler(w http.ResponseWriter, r *http.Request) {
	pub, ok := a.loadPublication(w, r)
	if !ok {
		return
	}
	mediaID, err := urlID(r, "mediaID")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req spoilerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := a.publications.UpdateMediaSpoiler(pub.ID, mediaID, req.HasSpoiler); err != nil {
		slog.Error("update media spoiler failed", "publication_id", pub.ID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to update media")
		return
	}

	if err := a.builder.OnPublicationMutated(r.Context(), pub); err != nil {
		slog.Error("snapshot rebuild after media change failed", "publication_id", pub.ID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to rebuild posting snapshots")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SnapshotsBuild handles POST /api/publications/{id}/snapshots — the
// explicit regenerate. It also clears the desynced flag: after a manual
// rebuild the snapshots match the draft again.
func (a *API) SnapshotsBuild(w http.ResponseWriter, r *http.Request) {
	pub, ok := a.loadPublication(w, r)
	if !ok {
		return
	}

	if err := a.builder.BuildForPublication(r.Context(), pub.ID); err != nil {
		slog.Error("explicit snapshot build failed", "publication_id", pub.ID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to build posting snapshots")
		return
	}
	if pub.Desynced {
		if err := a.publications.SetDesynced(pub.ID, false); err != nil {
			slog.Error("clear desynced flag failed", "publication_id", pub.ID, "error", err)
			respondError(w, http.StatusInternalServerError, "failed to clear desynced flag")
			return
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

// SnapshotsClear handles DELETE /api/publications/{id}/snapshots.
func (a *API) SnapshotsClear(w http.ResponseWriter, r *http.Request) {
	pub, ok := a.loadPublication(w, r)
	if !ok {
		return
	}

	if err := a.builder.ClearForPublication(r.Context(), pub.ID); err != nil {
		slog.Error("snapshot clear failed", "publication_id", pub.ID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to clear posting snapshots")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// loadPublication resolves the {id} URL parameter to a publication,
// writing the error response on failure.
func (a *API) loadPublication(w http.ResponseWriter, r *http.Request) (*models.Publication, bool) {
	id, err := urlID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	pub, err := a.publications.FindByID(id)
	if err != nil {
		slog.Error("load publication failed", "publication_id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load publication")
		return nil, false
	}
	if pub == nil {
		respondError(w, http.StatusNotFound, "publication not found")
		return nil, false
	}
	return pub, true
}

func validStatus(s models.PublicationStatus) bool {
	switch s {
	case models.PublicationStatusDraft, models.PublicationStatusReady,
		models.PublicationStatusScheduled, models.PublicationStatusProcessing,
		models.PublicationStatusPublished, models.PublicationStatusPartial,
		models.PublicationStatusFailed, models.PublicationStatusExpired:
		return true
	}
	return false
}

func postTypeOrDefault(s string) models.PostType {
	if s == "" {
		return models.PostTypePost
	}
	return models.PostType(s)
}

func languageOrDefault(s string) string {
	if s == "" {
		return "en"
	}
	return s
}
