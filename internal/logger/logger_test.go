// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeEntry(t *testing.T, data []byte) map[string]any {
	t.Helper()

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(data), &entry))
	return entry
}

func TestNewLogger_EntryFields(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger("server", &buf)

	l.Info().Int64("post_id", 7).Msg("post created")

	entry := decodeEntry(t, buf.Bytes())
	assert.Equal(t, "server", entry["role"])
	assert.Equal(t, "post created", entry["message"])
	assert.Equal(t, float64(7), entry["post_id"])
	assert.Contains(t, entry, zerolog.TimestampFieldName)
	assert.Contains(t, entry["func"], "TestNewLogger_EntryFields")

	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestNewLogger_Stdout(t *testing.T) {
	require.NotNil(t, NewLogger("server"))
}

func TestNewClientLogger_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.log")
	l := NewClientLogger("client", path)

	l.Info().Str("screen", "home").Msg("opened")

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	entry := decodeEntry(t, data)
	assert.Equal(t, "client", entry["role"])
	assert.Equal(t, "home", entry["screen"])
}

func TestNop_DiscardsOutput(t *testing.T) {
	var buf bytes.Buffer
	l := Nop()
	l.Logger = l.Output(&buf)

	l.Info().Msg("dropped")

	assert.Empty(t, buf.String())
}

func TestGetChildLogger(t *testing.T) {
	var buf bytes.Buffer
	parent := newLogger("server", &buf)

	child := parent.GetChildLogger()
	child.Logger = child.With().Str("trace_id", "t-1").Logger()
	require.NotSame(t, parent, child)

	child.Info().Msg("child")
	entry := decodeEntry(t, buf.Bytes())
	assert.Equal(t, "server", entry["role"])
	assert.Equal(t, "t-1", entry["trace_id"])

	buf.Reset()
	parent.Info().Msg("parent")
	assert.NotContains(t, decodeEntry(t, buf.Bytes()), "trace_id")
}

func TestFromContext(t *testing.T) {
	t.Run("without logger", func(t *testing.T) {
		require.NotNil(t, FromContext(context.Background()))
	})

	t.Run("round trip", func(t *testing.T) {
		var buf bytes.Buffer
		l := &Logger{zerolog.New(&buf).With().Str("trace_id", "abc").Logger()}

		FromContext(l.WithContext(context.Background())).Info().Msg("x")

		assert.Equal(t, "abc", decodeEntry(t, buf.Bytes())["trace_id"])
	})
}

func TestFromRequest(t *testing.T) {
	var buf bytes.Buffer
	l := &Logger{zerolog.New(&buf).With().Str("trace_id", "req-1").Logger()}

	req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
	require.NotNil(t, FromRequest(req))

	req = req.WithContext(l.WithContext(req.Context()))
	FromRequest(req).Info().Msg("handled")

	assert.Equal(t, "req-1", decodeEntry(t, buf.Bytes())["trace_id"])
}
