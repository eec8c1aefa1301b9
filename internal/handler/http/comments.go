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

func (h *Handler) createComment(w http.ResponseWriter, r *http.Request) {
	postID, err := idParam(r)
	if err != nil {
		writeServiceError(w, r, "*Handler.createComment", err)
		return
	}

	var comment models.Comment
	if err = json.NewDecoder(r.Body).Decode(&comment); err != nil {
		writeServiceError(w, r, "*Handler.createComment", fmt.Errorf("%w: %w", service.ErrInvalidDataProvided, err))
		return
	}
	comment.PostID = postID
	comment.UserID = userID(r)

	created, err := h.services.CommentService.CreateComment(r.Context(), comment)
	if err != nil {
		writeServiceError(w, r, "*Handler.createComment", err)
		return
	}

	utils.WriteJSON(w, created, http.StatusCreated)
}

// deleteComment lets the comment author or the post owner delete it.
func (h *Handler) deleteComment(w http.ResponseWriter, r *http.Request) {
	commentID, err := idParam(r)
	if err != nil {
		writeServiceError(w, r, "*Handler.deleteComment", err)
		return
	}

	if err = h.services.CommentService.DeleteComment(r.Context(), userID(r), commentID); err != nil {
		writeServiceError(w, r, "*Handler.deleteComment", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
