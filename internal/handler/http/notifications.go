// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-fleed/internal/logger"
	"github.com/MKhiriev/go-fleed/internal/utils"
)

func (h *Handler) listNotifications(w http.ResponseWriter, r *http.Request) {
	limit, err := intQuery(r, "limit")
	if err != nil {
		writeServiceError(w, r, "*Handler.listNotifications", err)
		return
	}

	notifications, err := h.services.NotificationService.ListNotifications(r.Context(), userID(r), int(limit))
	if err != nil {
		writeServiceError(w, r, "*Handler.listNotifications", err)
		return
	}

	utils.WriteJSON(w, notifications, http.StatusOK)
}

func (h *Handler) markNotificationsRead(w http.ResponseWriter, r *http.Request) {
	marked, err := h.services.NotificationService.MarkAllRead(r.Context(), userID(r))
	if err != nil {
		writeServiceError(w, r, "*Handler.markNotificationsRead", err)
		return
	}

	logger.FromRequest(r).Debug().Int64("marked", marked).Msg("notifications marked read")
	w.WriteHeader(http.StatusNoContent)
}
