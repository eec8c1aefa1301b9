// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-fleed/internal/utils"
)

const mutationIDHeader = "X-Mutation-ID"

// maxMutationIDLength bounds the client-chosen id copied into push events.
const maxMutationIDLength = 64

// withMutationID copies the X-Mutation-ID header into the request context so
// the events of a write carry it back to the client that made it.
func withMutationID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mutationID := r.Header.Get(mutationIDHeader)
		if mutationID != "" && len(mutationID) <= maxMutationIDLength {
			r = r.WithContext(utils.WithMutationID(r.Context(), mutationID))
		}
		next.ServeHTTP(w, r)
	})
}
