// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "context"

// Server defines the lifecycle contract of the transport servers managed by
// this package.
type Server interface {
	// Run serves requests and the background workers until ctx is done or a
	// listener fails, then shuts everything down gracefully. It returns the
	// listener error, if any.
	Run(ctx context.Context) error
}
