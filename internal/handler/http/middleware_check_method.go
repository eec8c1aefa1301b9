// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-fleed/internal/app"
	"github.com/MKhiriev/go-fleed/internal/utils"
)

// routeNotFound and methodNotAllowed replace chi's plain-text fallbacks so
// every failed call has a JSON error body.
func routeNotFound(w http.ResponseWriter, _ *http.Request) {
	utils.WriteError(w, app.MsgRouteNotFound, http.StatusNotFound)
}

func methodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	utils.WriteError(w, app.MsgMethodNotAllowed, http.StatusMethodNotAllowed)
}
