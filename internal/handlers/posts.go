// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"crosspress/internal/compose"
	"crosspress/internal/models"
)

// postCreateRequest links a publication to a channel.
type postCreateRequest struct {
	PublicationID string `json:"publication_id"`
	ChannelID     string `json:"channel_id"`
}

// PostCreate handles POST /api/posts.
func (a *API) PostCreate(w http.ResponseWriter, r *http.Request) {
	var req postCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	publicationID, err := parseUUID(req.PublicationID, "publication_id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	channelID, err := parseUUID(req.ChannelID, "channel_id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	pub, err := a.publications.FindByID(publicationID)
	if err != nil {
		slog.Error("load publication failed", "publication_id", publicationID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load publication")
		return
	}
	if pub == nil {
		respondError(w, http.StatusNotFound, "publication not found")
		return
	}
	channel, err := a.channels.FindByID(channelID)
	if err != nil {
		slog.Error("load channel failed", "channel_id", channelID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load channel")
		return
	}
	if channel == nil {
		respondError(w, http.StatusNotFound, "channel not found")
		return
	}

	post, err := a.posts.Create(&models.Post{
		PublicationID: publicationID,
		ChannelID:     channelID,
	})
	if err != nil {
		slog.Error("create post failed", "publication_id", publicationID, "channel_id", channelID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to create post")
		return
	}

	// A publication already in a snapshot-bearing state gets the new
	// post's snapshot built immediately.
	if err := a.builder.OnPublicationMutated(r.Context(), pub); err != nil {
		slog.Error("snapshot build after post create failed", "publication_id", pub.ID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to build posting snapshots")
		return
	}

	respondJSON(w, http.StatusCreated, post)
}

// PostGet handles GET /api/posts/{id}.
func (a *API) PostGet(w http.ResponseWriter, r *http.Request) {
	post, ok := a.loadPost(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, post)
}

// postOverridesRequest carries the per-channel overrides. Absent fields
// clear the override back to the publication's value.
type postOverridesRequest struct {
	Content         *string    `json:"content"`
	Tags            []string   `json:"tags"`
	Language        *string    `json:"language"`
	AuthorSignature *string    `json:"author_signature"`
	TemplateID      *uuid.UUID `json:"template_id"`
}

// PostUpdateOverrides handles PUT /api/posts/{id}/overrides.
func (a *API) PostUpdateOverrides(w http.ResponseWriter, r *http.Request) {
	post, ok := a.loadPost(w, r)
	if !ok {
		return
	}

	var req postOverridesRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	post.Content = req.Content
	post.Tags = req.Tags
	post.Language = req.Language
	post.AuthorSignature = req.AuthorSignature
	post.TemplateID = req.TemplateID

	if err := a.posts.UpdateOverrides(post); err != nil {
		slog.Error("update post overrides failed", "post_id", post.ID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to update post")
		return
	}

	if a.previews != nil {
		a.previews.Invalidate(r.Context(), post.ID)
	}

	pub, err := a.publications.FindByID(post.PublicationID)
	if err != nil {
		slog.Error("load publication failed", "publication_id", post.PublicationID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load publication")
		return
	}
	if pub != nil {
		if err := a.builder.OnPublicationMutated(r.Context(), pub); err != nil {
			slog.Error("snapshot rebuild after override change failed", "publication_id", pub.ID, "error", err)
			respondError(w, http.StatusInternalServerError, "failed to rebuild posting snapshots")
			return
		}
	}

	// Reload so the response carries the snapshot the rebuild just wrote.
	updated, err := a.posts.FindByID(post.ID)
	if err != nil || updated == nil {
		slog.Error("reload post failed", "post_id", post.ID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load post")
		return
	}

	respondJSON(w, http.StatusOK, updated)
}

// PostDelete handles DELETE /api/posts/{id}.
func (a *API) PostDelete(w http.ResponseWriter, r *http.Request) {
	post, ok := a.loadPost(w, r)
	if !ok {
		return
	}
	if a.previews != nil {
		a.previews.Invalidate(r.Context(), post.ID)
	}
	if err := a.posts.Delete(post.ID); err != nil {
		slog.Error("delete post failed", "post_id", post.ID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to delete post")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PostPreview handles POST /api/posts/{id}/preview. The preview renders
// exactly what a snapshot build would produce for this post right now,
// without persisting anything. Results are cached until the next mutation.
func (a *API) PostPreview(w http.ResponseWriter, r *http.Request) {
	post, ok := a.loadPost(w, r)
	if !ok {
		return
	}

	if a.previews != nil {
		var cached compose.Composed
		if a.previews.Get(r.Context(), post.ID, &cached) {
			respondJSON(w, http.StatusOK, cached)
			return
		}
	}

	composed, ok := a.composePost(w, r, post)
	if !ok {
		return
	}

	if a.previews != nil {
		a.previews.Set(r.Context(), post.ID, composed)
	}
	respondJSON(w, http.StatusOK, composed)
}

// resolvedTemplateResponse reports which blocks the resolver picked for a
// post, for the editor's template inspector.
type resolvedTemplateResponse struct {
	Blocks []compose.ResolvedBlock `json:"blocks"`
}

// PostResolveTemplate handles POST /api/posts/{id}/resolve-template.
func (a *API) PostResolveTemplate(w http.ResponseWriter, r *http.Request) {
	post, ok := a.loadPost(w, r)
	if !ok {
		return
	}
	pub, channel, ok := a.loadPostContext(w, post)
	if !ok {
		return
	}

	blocks, err := a.resolver.Resolve(channel, pub.PostType, effectiveLanguage(pub, post), post.TemplateID)
	if err != nil {
		slog.Error("template resolution failed", "post_id", post.ID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to resolve template")
		return
	}
	respondJSON(w, http.StatusOK, resolvedTemplateResponse{Blocks: blocks})
}

// composePost runs the full resolve-and-compose pipeline for a post,
// writing the error response on failure.
func (a *API) composePost(w http.ResponseWriter, r *http.Request, post *models.Post) (compose.Composed, bool) {
	pub, channel, ok := a.loadPostContext(w, post)
	if !ok {
		return compose.Composed{}, false
	}

	blocks, err := a.resolver.Resolve(channel, pub.PostType, effectiveLanguage(pub, post), post.TemplateID)
	if err != nil {
		slog.Error("template resolution failed", "post_id", post.ID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to resolve template")
		return compose.Composed{}, false
	}

	composed, err := a.compositor.Compose(compose.Input{
		Publication: pub,
		Post:        post,
		Platform:    channel.Platform,
		PostType:    pub.PostType,
		Blocks:      blocks,
	})
	if err != nil {
		slog.Error("composition failed", "post_id", post.ID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to compose post")
		return compose.Composed{}, false
	}
	return composed, true
}

// loadPostContext loads the publication and channel a post belongs to.
func (a *API) loadPostContext(w http.ResponseWriter, post *models.Post) (*models.Publication, *models.Channel, bool) {
	pub, err := a.publications.FindByID(post.PublicationID)
	if err != nil {
		slog.Error("load publication failed", "publication_id", post.PublicationID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load publication")
		return nil, nil, false
	}
	if pub == nil {
		respondError(w, http.StatusNotFound, "publication not found")
		return nil, nil, false
	}
	channel, err := a.channels.FindByID(post.ChannelID)
	if err != nil {
		slog.Error("load channel failed", "channel_id", post.ChannelID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load channel")
		return nil, nil, false
	}
	if channel == nil {
		respondError(w, http.StatusNotFound, "channel not found")
		return nil, nil, false
	}
	return pub, channel, true
}

func (a *API) loadPost(w http.ResponseWriter, r *http.Request) (*models.Post, bool) {
	id, err := urlID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	post, err := a.posts.FindByID(id)
	if err != nil {
		slog.Error("load post failed", "post_id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load post")
		return nil, false
	}
	if post == nil {
		respondError(w, http.StatusNotFound, "post not found")
		return nil, false
	}
	return post, true
}

func effectiveLanguage(pub *models.Publication, post *models.Post) string {
	if post.Language != nil && *post.Language != "" {
		return *post.Language
	}
	return pub.Language
}
