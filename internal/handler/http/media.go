// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-fleed/internal/utils"
	"github.com/go-chi/chi/v5"
)

// uploadMedia stores the raw request body in {folder}. Bodies above the
// configured size get 413.
func (h *Handler) uploadMedia(w http.ResponseWriter, r *http.Request) {
	body := r.Body
	if h.maxUploadSize > 0 {
		body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	}
	defer body.Close()

	result, err := h.services.MediaService.Upload(r.Context(), chi.URLParam(r, "folder"), body)
	if err != nil {
		writeServiceError(w, r, "*Handler.uploadMedia", err)
		return
	}

	utils.WriteJSON(w, result, http.StatusCreated)
}

// serveMedia serves a stored file by its storage path.
func (h *Handler) serveMedia(w http.ResponseWriter, r *http.Request) {
	file, err := h.services.MediaService.Open(r.Context(), chi.URLParam(r, "*"))
	if err != nil {
		writeServiceError(w, r, "*Handler.serveMedia", err)
		return
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		writeServiceError(w, r, "*Handler.serveMedia", err)
		return
	}

	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	http.ServeContent(w, r, info.Name(), info.ModTime(), file)
}
