// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-fleed/internal/service"
	"github.com/go-chi/chi/v5"
)

// idParam parses the positive {id} URL parameter.
func idParam(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: id %q", service.ErrInvalidDataProvided, raw)
	}
	return id, nil
}

// intQuery parses an optional integer query parameter; absent yields zero.
func intQuery(r *http.Request, name string) (int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}

	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%w: %s %q", service.ErrInvalidDataProvided, name, raw)
	}
	return v, nil
}
