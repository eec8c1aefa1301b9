// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package server wires and runs the application's transport servers.
//
// It runs the REST and push channel HTTP server, the gRPC health server and
// the background workers (the realtime hub) under one context, and shuts all
// of them down within the configured shutdown timeout.
package server
