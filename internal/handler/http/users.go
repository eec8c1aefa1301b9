// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-fleed/internal/utils"
)

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeServiceError(w, r, "*Handler.getUser", err)
		return
	}

	user, err := h.services.UserService.GetUser(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, "*Handler.getUser", err)
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

// followStatus reports whether the caller follows {id}.
func (h *Handler) followStatus(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeServiceError(w, r, "*Handler.followStatus", err)
		return
	}

	status, err := h.services.UserService.FollowStatus(r.Context(), userID(r), id)
	if err != nil {
		writeServiceError(w, r, "*Handler.followStatus", err)
		return
	}

	utils.WriteJSON(w, status, http.StatusOK)
}

func (h *Handler) follow(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeServiceError(w, r, "*Handler.follow", err)
		return
	}

	if err = h.services.UserService.Follow(r.Context(), userID(r), id); err != nil {
		writeServiceError(w, r, "*Handler.follow", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) unfollow(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeServiceError(w, r, "*Handler.unfollow", err)
		return
	}

	if err = h.services.UserService.Unfollow(r.Context(), userID(r), id); err != nil {
		writeServiceError(w, r, "*Handler.unfollow", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) followCounts(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeServiceError(w, r, "*Handler.followCounts", err)
		return
	}

	counts, err := h.services.UserService.FollowCounts(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, "*Handler.followCounts", err)
		return
	}

	utils.WriteJSON(w, counts, http.StatusOK)
}
