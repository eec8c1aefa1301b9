// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-fleed/internal/service"
	"github.com/MKhiriev/go-fleed/internal/utils"
	"github.com/MKhiriev/go-fleed/models"
)

// listPosts serves GET /api/posts?limit=&user_id=&video=true, newest first.
func (h *Handler) listPosts(w http.ResponseWriter, r *http.Request) {
	limit, err := intQuery(r, "limit")
	if err != nil {
		writeServiceError(w, r, "*Handler.listPosts", err)
		return
	}
	authorID, err := intQuery(r, "user_id")
	if err != nil {
		writeServiceError(w, r, "*Handler.listPosts", err)
		return
	}

	req := models.FeedRequest{
		Limit:     int(limit),
		UserID:    authorID,
		VideoOnly: r.URL.Query().Get("video") == "true",
	}

	posts, err := h.services.PostService.ListPosts(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, "*Handler.listPosts", err)
		return
	}

	utils.WriteJSON(w, posts, http.StatusOK)
}

func (h *Handler) getPost(w http.ResponseWriter, r *http.Request) {
	postID, err := idParam(r)
	if err != nil {
		writeServiceError(w, r, "*Handler.getPost", err)
		return
	}

	details, err := h.services.PostService.GetPostDetails(r.Context(), postID)
	if err != nil {
		writeServiceError(w, r, "*Handler.getPost", err)
		return
	}

	utils.WriteJSON(w, details, http.StatusOK)
}

// savePost creates the post (201) when the body has no id and updates the
// caller's post (200) otherwise.
func (h *Handler) savePost(w http.ResponseWriter, r *http.Request) {
	var post models.PostUpsert
	if err := json.NewDecoder(r.Body).Decode(&post); err != nil {
		writeServiceError(w, r, "*Handler.savePost", fmt.Errorf("%w: %w", service.ErrInvalidDataProvided, err))
		return
	}
	post.UserID = userID(r)

	saved, created, err := h.services.PostService.SavePost(r.Context(), post)
	if err != nil {
		writeServiceError(w, r, "*Handler.savePost", err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	utils.WriteJSON(w, saved, status)
}

func (h *Handler) deletePost(w http.ResponseWriter, r *http.Request) {
	postID, err := idParam(r)
	if err != nil {
		writeServiceError(w, r, "*Handler.deletePost", err)
		return
	}

	if err = h.services.PostService.DeletePost(r.Context(), userID(r), postID); err != nil {
		writeServiceError(w, r, "*Handler.deletePost", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
