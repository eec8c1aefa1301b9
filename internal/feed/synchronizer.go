// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"

	"github.com/MKhiriev/go-fleed/internal/logger"
	"github.com/MKhiriev/go-fleed/models"
)

// Synchronizer is the incremental list synchronizer of one screen.
//
// All methods are safe for concurrent use. The fetch issued by RequestMore is
// the only operation that blocks; it runs without holding the lock, and its
// result is committed only if the list was neither reset nor closed in the
// meantime.
type Synchronizer[T Keyed] struct {
	fetcher   Fetcher[T]
	increment int
	logger    *logger.Logger

	mu         sync.Mutex
	scope      models.Scope
	items      []T
	cursor     int
	state      State
	generation uint64
	closed     bool

	// echoes holds mutation ids of locally applied changes whose push echo
	// must be dropped.
	echoes map[string]struct{}
}

// New creates an Idle list for scope with an empty cursor.
func New[T Keyed](fetcher Fetcher[T], scope models.Scope, cfg Config, log *logger.Logger) (*Synchronizer[T], error) {
	if fetcher == nil {
		return nil, ErrNoFetcher
	}
	if cfg.PageIncrement <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPageIncrement, cfg.PageIncrement)
	}
	if log == nil {
		log = logger.Nop()
	}

	return &Synchronizer[T]{
		fetcher:   fetcher,
		increment: cfg.PageIncrement,
		logger:    log,
		scope:     scope,
		state:     Idle,
		echoes:    make(map[string]struct{}),
	}, nil
}

// RequestMore advances the cursor by one page increment and replaces the list
// with the top cursor items of the scope.
//
// It returns false without fetching when the list is Fetching, Exhausted or
// closed. A failed fetch returns the list to Idle with the cursor rolled back
// and the error wrapped in [ErrFetchFailed]. A fetch that resolves after
// Reset or Close is discarded.
func (s *Synchronizer[T]) RequestMore(ctx context.Context) (bool, error) {
	s.mu.Lock()
	if s.closed || s.state != Idle {
		s.mu.Unlock()
		return false, nil
	}

	s.state = Fetching
	previousCursor := s.cursor
	s.cursor += s.increment
	limit := s.cursor
	scope := s.scope
	generation := s.generation
	s.mu.Unlock()

	items, err := s.fetcher.Fetch(ctx, scope, limit)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || generation != s.generation {
		s.logger.Debug().
			Str("scope", scope.String()).
			Int("limit", limit).
			Msg("discarding fetch result of a reset or closed list")
		return true, nil
	}

	if err != nil {
		s.cursor = previousCursor
		s.state = Idle
		s.logger.Warn().Err(err).
			Str("scope", scope.String()).
			Int("limit", limit).
			Msg("list fetch failed")
		return true, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}

	held := len(s.items)
	s.items = uniqueByKey(items)

	if len(items) == held {
		s.state = Exhausted
	} else {
		s.state = Idle
	}

	s.logger.Debug().
		Str("scope", scope.String()).
		Int("limit", limit).
		Int("held", held).
		Int("fetched", len(items)).
		Str("state", s.state.String()).
		Msg("list fetch committed")

	return true, nil
}

// ApplyMutation applies one push event to the list and reports whether the
// list changed.
//
//   - Insert prepends the decoded row unless its id is already held.
//   - Update merges the carried fields into the held row with that id.
//   - Delete removes the held row with that id.
//
// Events for absent ids (Update, Delete), echoes registered with ExpectEcho,
// and events after Close are no-ops. The pagination state and the cursor are
// never touched.
func (s *Synchronizer[T]) ApplyMutation(event models.MutationEvent) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false
	}

	if event.MutationID != "" {
		if _, ok := s.echoes[event.MutationID]; ok {
			delete(s.echoes, event.MutationID)
			return false
		}
	}

	switch event.Kind {
	case models.EventInsert:
		if s.indexOf(event.ID) >= 0 {
			return false
		}

		var item T
		if err := event.Decode(&item); err != nil {
			s.logger.Warn().Err(err).Str("table", event.Table).Int64("id", event.ID).Msg("skipping undecodable insert")
			return false
		}
		if item.Key() != event.ID {
			s.logger.Warn().Str("table", event.Table).Int64("id", event.ID).Int64("key", item.Key()).Msg("skipping insert with mismatched key")
			return false
		}

		s.items = slices.Insert(s.items, 0, item)
		return true

	case models.EventUpdate:
		idx := s.indexOf(event.ID)
		if idx < 0 {
			return false
		}

		item, err := detach(s.items[idx])
		if err != nil {
			s.logger.Warn().Err(err).Str("table", event.Table).Int64("id", event.ID).Msg("skipping update of unencodable row")
			return false
		}
		if err = event.Decode(&item); err != nil {
			s.logger.Warn().Err(err).Str("table", event.Table).Int64("id", event.ID).Msg("skipping undecodable update")
			return false
		}

		s.items[idx] = item
		return true

	case models.EventDelete:
		idx := s.indexOf(event.ID)
		if idx < 0 {
			return false
		}

		s.items = slices.Delete(s.items, idx, idx+1)
		return true
	}

	return false
}

// Listen applies events in arrival order until ctx is done or events is
// closed. onChange, if set, is called after every event that changed the
// list.
func (s *Synchronizer[T]) Listen(ctx context.Context, events <-chan models.MutationEvent, onChange func(models.MutationEvent)) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			if s.ApplyMutation(event) && onChange != nil {
				onChange(event)
			}
		}
	}
}

// ExpectEcho registers the id of a locally applied mutation. The first push
// event carrying that id is dropped.
func (s *Synchronizer[T]) ExpectEcho(mutationID string) {
	if mutationID == "" {
		return
	}

	s.mu.Lock()
	s.echoes[mutationID] = struct{}{}
	s.mu.Unlock()
}

// ForgetEcho removes a registration made with ExpectEcho, for mutations the
// backend rejected.
func (s *Synchronizer[T]) ForgetEcho(mutationID string) {
	s.mu.Lock()
	delete(s.echoes, mutationID)
	s.mu.Unlock()
}

// ConsumeEcho reports whether mutationID was registered with ExpectEcho and
// removes the registration. It serves events of related tables that do not
// go through ApplyMutation.
func (s *Synchronizer[T]) ConsumeEcho(mutationID string) bool {
	if mutationID == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.echoes[mutationID]; !ok {
		return false
	}
	delete(s.echoes, mutationID)
	return true
}

// Insert prepends item unless its key is already held. It is the local
// counterpart of an Insert event, used when a mutation result is shown before
// its push event arrives.
func (s *Synchronizer[T]) Insert(item T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.indexOf(item.Key()) >= 0 {
		return false
	}

	s.items = slices.Insert(s.items, 0, item)
	return true
}

// Modify replaces the held item with key id by fn(item) and reports whether
// the item was present.
func (s *Synchronizer[T]) Modify(id int64, fn func(T) T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if s.closed || idx < 0 {
		return false
	}

	s.items[idx] = fn(s.items[idx])
	return true
}

// Remove drops the held item with key id and reports whether it was present.
func (s *Synchronizer[T]) Remove(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if s.closed || idx < 0 {
		return false
	}

	s.items = slices.Delete(s.items, idx, idx+1)
	return true
}

// Get returns the held item with key id.
func (s *Synchronizer[T]) Get(id int64) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		var zero T
		return zero, false
	}
	return s.items[idx], true
}

// Reset switches the list to scope and clears items, cursor and the end of
// data mark. A fetch in flight is discarded when it resolves.
func (s *Synchronizer[T]) Reset(scope models.Scope) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.scope = scope
	s.items = nil
	s.cursor = 0
	s.state = Idle
	s.generation++
	clear(s.echoes)
}

// Close tears the list down. Later events and fetch results are ignored.
func (s *Synchronizer[T]) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}

// Snapshot returns a copy of the current list state.
func (s *Synchronizer[T]) Snapshot() Snapshot[T] {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot[T]{
		Scope:    s.scope,
		Items:    slices.Clone(s.items),
		Cursor:   s.cursor,
		State:    s.state,
		HasMore:  s.state != Exhausted,
		Fetching: s.state == Fetching,
	}
}

// Items returns a copy of the held items.
func (s *Synchronizer[T]) Items() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.items)
}

// HasMore reports whether the end of data has not been reached.
func (s *Synchronizer[T]) HasMore() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state != Exhausted
}

// IsFetching reports whether a fetch is in flight.
func (s *Synchronizer[T]) IsFetching() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == Fetching
}

// Scope returns the scope the list currently tracks.
func (s *Synchronizer[T]) Scope() models.Scope {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scope
}

// indexOf must be called with s.mu held.
func (s *Synchronizer[T]) indexOf(id int64) int {
	return slices.IndexFunc(s.items, func(item T) bool { return item.Key() == id })
}

// detach returns a copy of item that shares no slice or map memory with it.
// Decoding into a shallow copy would refill backing arrays already handed
// out by Snapshot and Items.
func detach[T Keyed](item T) (T, error) {
	var out T
	payload, err := json.Marshal(item)
	if err != nil {
		return out, fmt.Errorf("encode held row: %w", err)
	}
	if err = json.Unmarshal(payload, &out); err != nil {
		return out, fmt.Errorf("decode held row: %w", err)
	}
	return out, nil
}

func uniqueByKey[T Keyed](items []T) []T {
	seen := make(map[int64]struct{}, len(items))
	out := make([]T, 0, len(items))
	for _, item := range items {
		if _, dup := seen[item.Key()]; dup {
			continue
		}
		seen[item.Key()] = struct{}{}
		out = append(out, item)
	}
	return out
}
