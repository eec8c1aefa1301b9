// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package feed

import (
	"context"

	"github.com/MKhiriev/go-fleed/models"
)

// Page increments used by the client screens.
const (
	// PageIncrementFeed is used by the home feed and the profile post list.
	PageIncrementFeed = 10
	// PageIncrementVideo is used by the video feed.
	PageIncrementVideo = 5
	// PageIncrementComments is used by comment lists, whose fetch returns
	// the whole list through the post detail query regardless of limit.
	PageIncrementComments = 1
)

// State is the pagination state of a list.
type State int

const (
	// Idle accepts the next RequestMore.
	Idle State = iota
	// Fetching has one fetch in flight; RequestMore is a no-op.
	Fetching
	// Exhausted saw a fetch return as many items as were held; RequestMore
	// is a no-op until Reset.
	Exhausted
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Fetching:
		return "fetching"
	case Exhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// Keyed is implemented by every item a list can hold. Identity is by key
// only.
type Keyed interface {
	Key() int64
}

// Fetcher returns the top limit items of scope in server order.
type Fetcher[T Keyed] interface {
	Fetch(ctx context.Context, scope models.Scope, limit int) ([]T, error)
}

// FetchFunc adapts a function to [Fetcher].
type FetchFunc[T Keyed] func(ctx context.Context, scope models.Scope, limit int) ([]T, error)

// Fetch implements [Fetcher].
func (f FetchFunc[T]) Fetch(ctx context.Context, scope models.Scope, limit int) ([]T, error) {
	return f(ctx, scope, limit)
}

// Config holds per-list settings.
type Config struct {
	// PageIncrement is added to the cursor by every RequestMore.
	PageIncrement int
}

// Snapshot is a copy of the list state for rendering.
type Snapshot[T Keyed] struct {
	Scope    models.Scope
	Items    []T
	Cursor   int
	State    State
	HasMore  bool
	Fetching bool
}
