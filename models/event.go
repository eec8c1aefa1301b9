// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// EventKind is the row-level change carried by a [MutationEvent].
type EventKind string

const (
	EventInsert EventKind = "INSERT"
	EventUpdate EventKind = "UPDATE"
	EventDelete EventKind = "DELETE"
)

// MutationEvent is a single row change delivered over the push channel.
//
// New holds the column values of the row after the change (Insert, Update)
// and only the columns that changed for a partial Update. Old holds the row
// as it was before a Delete, so subscribers filtering on a column can still
// match it.
type MutationEvent struct {
	// Table is the name of the changed table.
	Table string `json:"table"`

	// Kind is the change type.
	Kind EventKind `json:"event_type"`

	// ID is the primary key of the changed row. Tables without a surrogate
	// key (post_likes) use the parent id.
	ID int64 `json:"id"`

	// New carries the changed columns keyed by their JSON name.
	New map[string]json.RawMessage `json:"new,omitempty"`

	// Old carries the deleted row keyed by JSON name.
	Old map[string]json.RawMessage `json:"old,omitempty"`

	// MutationID echoes the X-Mutation-ID header of the request that caused
	// the change, if any. Clients use it to drop echoes of their own
	// mutations.
	MutationID string `json:"mutation_id,omitempty"`
}

// NewMutationEvent builds an event whose New (or Old, for deletes) map is the
// JSON form of row.
func NewMutationEvent(table string, kind EventKind, id int64, row any) (MutationEvent, error) {
	fields, err := toFields(row)
	if err != nil {
		return MutationEvent{}, fmt.Errorf("encode %s event row: %w", table, err)
	}

	event := MutationEvent{Table: table, Kind: kind, ID: id}
	if kind == EventDelete {
		event.Old = fields
	} else {
		event.New = fields
	}

	return event, nil
}

// Decode merges the carried New fields into dst. Fields absent from the event
// keep the value dst already holds, which makes Decode a partial update when
// dst is an existing row.
func (e MutationEvent) Decode(dst any) error {
	if len(e.New) == 0 {
		return nil
	}

	payload, err := json.Marshal(e.New)
	if err != nil {
		return fmt.Errorf("encode event fields: %w", err)
	}
	if err = json.Unmarshal(payload, dst); err != nil {
		return fmt.Errorf("decode event fields: %w", err)
	}

	return nil
}

// Field returns the raw value of column in New, falling back to Old.
func (e MutationEvent) Field(column string) (json.RawMessage, bool) {
	if v, ok := e.New[column]; ok {
		return v, true
	}
	v, ok := e.Old[column]
	return v, ok
}

// Int64Field returns column as an int64, falling back to Old.
func (e MutationEvent) Int64Field(column string) (int64, bool) {
	raw, ok := e.Field(column)
	if !ok {
		return 0, false
	}

	var v int64
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, false
	}
	return v, true
}

func toFields(row any) (map[string]json.RawMessage, error) {
	payload, err := json.Marshal(row)
	if err != nil {
		return nil, err
	}

	fields := make(map[string]json.RawMessage)
	if err = json.Unmarshal(payload, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// Topic names a push subscription: every change on Table, optionally narrowed
// to rows whose Column equals Value. The textual form is
// "table" or "table:column=eq.value".
type Topic struct {
	Table  string `json:"table"`
	Column string `json:"column,omitempty"`
	Value  string `json:"value,omitempty"`
}

// TableTopic subscribes to every change on table.
func TableTopic(table string) Topic {
	return Topic{Table: table}
}

// FilteredTopic subscribes to changes on table where column equals id.
func FilteredTopic(table, column string, id int64) Topic {
	return Topic{Table: table, Column: column, Value: strconv.FormatInt(id, 10)}
}

// String returns the textual form of the topic.
func (t Topic) String() string {
	if t.Column == "" {
		return t.Table
	}
	return t.Table + ":" + t.Column + "=eq." + t.Value
}

// ParseTopic parses the textual form produced by [Topic.String].
func ParseTopic(s string) (Topic, error) {
	table, filter, hasFilter := strings.Cut(strings.TrimSpace(s), ":")
	if table == "" {
		return Topic{}, fmt.Errorf("empty topic table in %q", s)
	}
	if !hasFilter {
		return Topic{Table: table}, nil
	}

	column, value, ok := strings.Cut(filter, "=eq.")
	if !ok || column == "" || value == "" {
		return Topic{}, fmt.Errorf("malformed topic filter in %q", s)
	}

	return Topic{Table: table, Column: column, Value: value}, nil
}

// Matches reports whether event belongs to the topic.
func (t Topic) Matches(event MutationEvent) bool {
	if t.Table != event.Table {
		return false
	}
	if t.Column == "" {
		return true
	}

	raw, ok := event.Field(t.Column)
	if !ok {
		return false
	}
	return strings.Trim(string(raw), `"`) == t.Value
}
