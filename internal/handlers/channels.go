// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"crosspress/internal/models"
)

// channelRequest is the create payload for a channel.
type channelRequest struct {
	ProjectID string          `json:"project_id"`
	Platform  models.Platform `json:"platform"`
	Name      string          `json:"name"`
}

// ChannelCreate handles POST /api/channels.
func (a *API) ChannelCreate(w http.ResponseWriter, r *http.Request) {
	var req channelRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	projectID, err := parseUUID(req.ProjectID, "project_id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	switch req.Platform {
	case models.PlatformTelegram, models.PlatformVK, models.PlatformSite:
	default:
		respondError(w, http.StatusBadRequest, "unknown platform")
		return
	}

	channel, err := a.channels.Create(&models.Channel{
		ProjectID: projectID,
		Platform:  req.Platform,
		Name:      req.Name,
	})
	if err != nil {
		slog.Error("create channel failed", "project_id", projectID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to create channel")
		return
	}
	respondJSON(w, http.StatusCreated, channel)
}

// ChannelList handles GET /api/channels?project_id=X.
func (a *API) ChannelList(w http.ResponseWriter, r *http.Request) {
	projectID, err := parseUUID(r.URL.Query().Get("project_id"), "project_id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	list, err := a.channels.ListByProject(projectID)
	if err != nil {
		slog.Error("list channels failed", "project_id", projectID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to list channels")
		return
	}
	respondJSON(w, http.StatusOK, list)
}

// ChannelGet handles GET /api/channels/{id}.
func (a *API) ChannelGet(w http.ResponseWriter, r *http.Request) {
	channel, ok := a.loadChannel(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, channel)
}

// ChannelDelete handles DELETE /api/channels/{id}.
func (a *API) ChannelDelete(w http.ResponseWriter, r *http.Request) {
	channel, ok := a.loadChannel(w, r)
	if !ok {
		return
	}
	if err := a.channels.Delete(channel.ID); err != nil {
		slog.Error("delete channel failed", "channel_id", channel.ID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to delete channel")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ChannelVariations handles GET /api/channels/{id}/variations.
func (a *API) ChannelVariations(w http.ResponseWriter, r *http.Request) {
	channel, ok := a.loadChannel(w, r)
	if !ok {
		return
	}
	variations, err := a.variations.ListByChannel(channel.ID)
	if err != nil {
		slog.Error("list variations failed", "channel_id", channel.ID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to list variations")
		return
	}
	respondJSON(w, http.StatusOK, variations)
}

// variationCreateRequest attaches a template to a channel.
type variationCreateRequest struct {
	TemplateID string                                    `json:"template_id"`
	Overrides  map[models.BlockKind]models.BlockOverride `json:"overrides"`
}

// VariationCreate handles POST /api/channels/{id}/variations. The
// variation inherits the template's language and post type, which scope
// its default flag.
func (a *API) VariationCreate(w http.ResponseWriter, r *http.Request) {
	channel, ok := a.loadChannel(w, r)
	if !ok {
		return
	}

	var req variationCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	templateID, err := parseUUID(req.TemplateID, "template_id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	template, err := a.templates.FindByID(templateID)
	if err != nil {
		slog.Error("load template failed", "template_id", templateID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load template")
		return
	}
	if template == nil {
		respondError(w, http.StatusNotFound, "template not found")
		return
	}
	if template.ProjectID != channel.ProjectID {
		respondError(w, http.StatusBadRequest, "template belongs to a different project")
		return
	}

	variation, err := a.variations.Create(&models.TemplateVariation{
		ChannelID:  channel.ID,
		TemplateID: template.ID,
		Language:   template.Language,
		PostType:   template.PostType,
		Overrides:  req.Overrides,
	})
	if err != nil {
		slog.Error("create variation failed", "channel_id", channel.ID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to create variation")
		return
	}
	respondJSON(w, http.StatusCreated, variation)
}

// variationOverridesRequest replaces a variation's block overrides.
type variationOverridesRequest struct {
	Overrides map[models.BlockKind]models.BlockOverride `json:"overrides"`
}

// VariationUpdateOverrides handles PUT /api/variations/{id}/overrides.
func (a *API) VariationUpdateOverrides(w http.ResponseWriter, r *http.Request) {
	variation, ok := a.loadVariation(w, r)
	if !ok {
		return
	}

	var req variationOverridesRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := a.variations.UpdateOverrides(variation.ID, req.Overrides); err != nil {
		slog.Error("update variation overrides failed", "variation_id", variation.ID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to update variation")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// VariationSetDefault handles POST /api/variations/{id}/default. Any
// prior default in the same (channel, language, post type) group is
// unset in the same transaction.
func (a *API) VariationSetDefault(w http.ResponseWriter, r *http.Request) {
	variation, ok := a.loadVariation(w, r)
	if !ok {
		return
	}
	if err := a.variations.SetDefault(variation.ID); err != nil {
		slog.Error("set default variation failed", "variation_id", variation.ID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to set default variation")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// VariationDelete handles DELETE /api/variations/{id}.
func (a *API) VariationDelete(w http.ResponseWriter, r *http.Request) {
	variation, ok := a.loadVariation(w, r)
	if !ok {
		return
	}
	if err := a.variations.Delete(variation.ID); err != nil {
		slog.Error("delete variation failed", "variation_id", variation.ID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to delete variation")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) loadChannel(w http.ResponseWriter, r *http.Request) (*models.Channel, bool) {
	id, err := urlID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	channel, err := a.channels.FindByID(id)
	if err != nil {
		slog.Error("load channel failed", "channel_id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load channel")
		return nil, false
	}
	if channel == nil {
		respondError(w, http.StatusNotFound, "channel not found")
		return nil, false
	}
	return channel, true
}

func (a *API) loadVariation(w http.ResponseWriter, r *http.Request) (*models.TemplateVariation, bool) {
	id, err := urlID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	variation, err := a.variations.FindByID(id)
	if err != nil {
		slog.Error("load variation failed", "variation_id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load variation")
		return nil, false
	}
	if variation == nil {
		respondError(w, http.StatusNotFound, "variation not found")
		return nil, false
	}
	return variation, true
}
