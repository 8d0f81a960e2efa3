// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"crosspress/internal/models"
	"crosspress/internal/store"
)

// templateCreateRequest is the create payload for a project template.
type templateCreateRequest struct {
	ProjectID string                 `json:"project_id"`
	Name      string                 `json:"name"`
	Language  string                 `json:"language"`
	PostType  models.PostType        `json:"post_type"`
	Blocks    []models.TemplateBlock `json:"blocks"`
}

// TemplateCreate handles POST /api/templates.
func (a *API) TemplateCreate(w http.ResponseWriter, r *http.Request) {
	var req templateCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	projectID, err := parseUUID(req.ProjectID, "project_id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}

	template, err := a.templates.Create(&models.ProjectTemplate{
		ProjectID: projectID,
		Name:      req.Name,
		Language:  languageOrDefault(req.Language),
		PostType:  postTypeOrDefault(string(req.PostType)),
		Blocks:    req.Blocks,
	})
	if err != nil {
		slog.Error("create template failed", "project_id", projectID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to create template")
		return
	}
	respondJSON(w, http.StatusCreated, template)
}

// TemplateList handles GET /api/templates?project_id=X.
func (a *API) TemplateList(w http.ResponseWriter, r *http.Request) {
	projectID, err := parseUUID(r.URL.Query().Get("project_id"), "project_id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	list, err := a.templates.ListByProject(projectID)
	if err != nil {
		slog.Error("list templates failed", "project_id", projectID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to list templates")
		return
	}
	respondJSON(w, http.StatusOK, list)
}

// TemplateGet handles GET /api/templates/{id}.
func (a *API) TemplateGet(w http.ResponseWriter, r *http.Request) {
	template, ok := a.loadTemplate(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, template)
}

// templateUpdateRequest carries a template edit plus the version the
// client read. A stale version is rejected with 409.
type templateUpdateRequest struct {
	Name    string                 `json:"name"`
	Blocks  []models.TemplateBlock `json:"blocks"`
	Version int                    `json:"version"`
}

// TemplateUpdate handles PUT /api/templates/{id}.
func (a *API) TemplateUpdate(w http.ResponseWriter, r *http.Request) {
	template, ok := a.loadTemplate(w, r)
	if !ok {
		return
	}

	var req templateUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}

	template.Name = req.Name
	template.Blocks = req.Blocks
	template.Version = req.Version

	if err := a.templates.Update(template); err != nil {
		if errors.Is(err, store.ErrVersionConflict) {
			respondError(w, http.StatusConflict, err.Error())
			return
		}
		slog.Error("update template failed", "template_id", template.ID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to update template")
		return
	}

	updated, err := a.templates.FindByID(template.ID)
	if err != nil {
		slog.Error("reload template failed", "template_id", template.ID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load template")
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// TemplateSetDefault handles POST /api/templates/{id}/default. Any prior
// default in the same (project, language, post type) group is unset in
// the same transaction.
func (a *API) TemplateSetDefault(w http.ResponseWriter, r *http.Request) {
	template, ok := a.loadTemplate(w, r)
	if !ok {
		return
	}
	if err := a.templates.SetDefault(template.ID); err != nil {
		slog.Error("set default template failed", "template_id", template.ID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to set default template")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// TemplateDelete handles DELETE /api/templates/{id}.
func (a *API) TemplateDelete(w http.ResponseWriter, r *http.Request) {
	template, ok := a.loadTemplate(w, r)
	if !ok {
		return
	}
	if err := a.templates.Delete(template.ID); err != nil {
		slog.Error("delete template failed", "template_id", template.ID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to delete template")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) loadTemplate(w http.ResponseWriter, r *http.Request) (*models.ProjectTemplate, bool) {
	id, err := urlID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	template, err := a.templates.FindByID(id)
	if err != nil {
		slog.Error("load template failed", "template_id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load template")
		return nil, false
	}
	if template == nil {
		respondError(w, http.StatusNotFound, "template not found")
		return nil, false
	}
	return template, true
}
