// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "net/http"

func (h *Handler) serveRealtime(w http.ResponseWriter, r *http.Request) {
	h.realtime.ServeWS(w, r, userID(r))
}
