// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package feed

import "errors"

var (
	// ErrFetchFailed wraps any backend error returned by a pagination fetch.
	// The list is left unchanged and returns to Idle.
	ErrFetchFailed = errors.New("feed fetch failed")

	// ErrInvalidPageIncrement is returned by New for a non-positive page
	// increment.
	ErrInvalidPageIncrement = errors.New("page increment must be positive")

	// ErrNoFetcher is returned by New when no fetcher is given.
	ErrNoFetcher = errors.New("no fetcher provided")
)
