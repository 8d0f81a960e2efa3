// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"crosspress/internal/richtext"
	"crosspress/internal/validate"
)

// Validate handles POST /api/validate. It never fails content with an
// HTTP error status: limit violations come back in the result body.
func (a *API) Validate(w http.ResponseWriter, r *http.Request) {
	var in validate.Input
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, validate.Check(in))
}

// importRequest carries platform rich text: plain text plus the entity
// list with UTF-16 code-unit offsets, as Telegram delivers it.
type importRequest struct {
	Text     string            `json:"text"`
	Entities []richtext.Entity `json:"entities"`
}

// importResponse is the canonical Markdown form of imported rich text.
type importResponse struct {
	Markdown string `json:"markdown"`
}

// RichTextImport handles POST /api/richtext/markdown, converting
// entity-annotated text into the Markdown the editor stores.
func (a *API) RichTextImport(w http.ResponseWriter, r *http.Request) {
	var req importRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, importResponse{
		Markdown: richtext.ToMarkdown(req.Text, req.Entities),
	})
}
