// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http implements the REST transport of the go-fleed server.
//
// It wires routes and middleware with chi: tracing, access logging,
// authentication, request timeouts, mutation ids and response compression
// run before requests are delegated to the service layer. Failed calls answer
// with a JSON [utils.ErrorResponse] whose message is one of the constants in
// package app.
package http
