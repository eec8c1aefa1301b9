// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package feed keeps a local, ordered, deduplicated and paginated projection
// of a remote collection (posts or comments).
//
// A [Synchronizer] is advanced by explicit pagination requests
// ([Synchronizer.RequestMore]) and revised out-of-band by row-level
// [models.MutationEvent] values delivered over the push channel
// ([Synchronizer.ApplyMutation], [Synchronizer.Listen]).
//
// Pagination is "top N": each request asks the backend for the first cursor
// items of the scope, where the cursor grows by a fixed page increment, and
// the result replaces the local list. The end of data is inferred when a
// fetch returns as many items as the list already held.
//
// Each list screen owns exactly one Synchronizer. Nothing is shared between
// screens.
package feed
