// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "net/http"

// likePost and unlikePost are idempotent; both answer 204.
func (h *Handler) likePost(w http.ResponseWriter, r *http.Request) {
	postID, err := idParam(r)
	if err != nil {
		writeServiceError(w, r, "*Handler.likePost", err)
		return
	}

	if err = h.services.LikeService.LikePost(r.Context(), postID, userID(r)); err != nil {
		writeServiceError(w, r, "*Handler.likePost", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) unlikePost(w http.ResponseWriter, r *http.Request) {
	postID, err := idParam(r)
	if err != nil {
		writeServiceError(w, r, "*Handler.unlikePost", err)
		return
	}

	if err = h.services.LikeService.UnlikePost(r.Context(), postID, userID(r)); err != nil {
		writeServiceError(w, r, "*Handler.unlikePost", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
