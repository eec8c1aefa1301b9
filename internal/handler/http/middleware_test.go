// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/go-fleed/internal/logger"
	"github.com/MKhiriev/go-fleed/internal/utils"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithGZip(t *testing.T) {
	tests := []struct {
		name           string
		acceptEncoding string
		contentType    string
		status         int
		wantGzipped    bool
	}{
		{"json for gzip client", "gzip", "application/json", http.StatusOK, true},
		{"text with quality values", "gzip;q=1.0, identity;q=0.5", "text/plain; charset=utf-8", http.StatusOK, true},
		{"client without gzip", "", "application/json", http.StatusOK, false},
		{"media is left alone", "gzip", "image/png", http.StatusOK, false},
		{"no content", "gzip", "application/json", http.StatusNoContent, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := strings.Repeat(`{"id":1}`, 50)
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", tt.contentType)
				w.WriteHeader(tt.status)
				if tt.status != http.StatusNoContent {
					w.Write([]byte(payload))
				}
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.acceptEncoding != "" {
				req.Header.Set("Accept-Encoding", tt.acceptEncoding)
			}
			rr := httptest.NewRecorder()
			withGZip(next).ServeHTTP(rr, req)

			require.Equal(t, tt.status, rr.Code)
			if !tt.wantGzipped {
				assert.Empty(t, rr.Header().Get("Content-Encoding"))
				if tt.status != http.StatusNoContent {
					assert.Equal(t, payload, rr.Body.String())
				}
				return
			}

			assert.Equal(t, "gzip", rr.Header().Get("Content-Encoding"))
			reader, err := gzip.NewReader(rr.Body)
			require.NoError(t, err)
			body, err := io.ReadAll(reader)
			require.NoError(t, err)
			assert.Equal(t, payload, string(body))
		})
	}
}

func TestWithGZip_RequestBody(t *testing.T) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, err := gz.Write([]byte(`{"body":"hello"}`))
	require.NoError(t, err)
	require.NoError(t, gz.Close())

	var got string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		got = string(body)
		assert.Empty(t, r.Header.Get("Content-Encoding"))
	})

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Encoding", "gzip")
	withGZip(next).ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, `{"body":"hello"}`, got)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader("plain"))
	req.Header.Set("Content-Encoding", "gzip")
	rr := httptest.NewRecorder()
	withGZip(next).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestWithTraceID(t *testing.T) {
	h := &Handler{logger: logger.Nop()}

	tests := []struct {
		name     string
		incoming string
		reused   bool
	}{
		{"reuses the incoming id", "trace-abc", true},
		{"generates a uuid", "", false},
		{"replaces an oversized id", strings.Repeat("t", maxTraceIDLength+1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ctxLogger *logger.Logger
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				ctxLogger = logger.FromRequest(r)
				w.WriteHeader(http.StatusTeapot)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.incoming != "" {
				req.Header.Set(traceIDHeader, tt.incoming)
			}
			rr := httptest.NewRecorder()
			h.withTraceID(next).ServeHTTP(rr, req)

			assert.Equal(t, http.StatusTeapot, rr.Code)
			assert.NotNil(t, ctxLogger)

			traceID := rr.Header().Get(traceIDHeader)
			if tt.reused {
				assert.Equal(t, tt.incoming, traceID)
				return
			}
			_, err := uuid.Parse(traceID)
			assert.NoError(t, err)
		})
	}
}

func TestWithLogging(t *testing.T) {
	var buf bytes.Buffer
	base := &logger.Logger{Logger: zerolog.New(&buf)}
	h := &Handler{logger: base}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte("12345"))
	})

	req := httptest.NewRequest(http.MethodPost, "/api/posts", nil)
	req.Header.Set(mutationIDHeader, "m-9")
	req = req.WithContext(base.WithContext(req.Context()))
	h.withLogging(next).ServeHTTP(httptest.NewRecorder(), req)

	line := buf.String()
	assert.Contains(t, line, `"status":201`)
	assert.Contains(t, line, `"size":5`)
	assert.Contains(t, line, `"method":"POST"`)
	assert.Contains(t, line, `"mutation_id":"m-9"`)
}

func TestWithMutationID(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"copied", "m-1", "m-1"},
		{"absent", "", ""},
		{"too long is ignored", strings.Repeat("x", maxMutationIDLength+1), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = utils.GetMutationIDFromContext(r.Context())
			})

			req := httptest.NewRequest(http.MethodPost, "/", nil)
			if tt.header != "" {
				req.Header.Set(mutationIDHeader, tt.header)
			}
			withMutationID(next).ServeHTTP(httptest.NewRecorder(), req)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWithTimeout(t *testing.T) {
	h := &Handler{requestTimeout: 20 * time.Millisecond}

	var deadline bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, deadline = r.Context().Deadline()
		<-r.Context().Done()
	})

	rr := httptest.NewRecorder()
	h.withTimeout(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.True(t, deadline)
	assert.Equal(t, http.StatusGatewayTimeout, rr.Code)

	h.requestTimeout = 0
	h.withTimeout(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, deadline = r.Context().Deadline()
	})).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil).WithContext(context.Background()))
	assert.False(t, deadline)
}

type hijackableRecorder struct {
	*httptest.ResponseRecorder
	hijacked bool
}

func (h *hijackableRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h.hijacked = true
	return nil, nil, nil
}

func TestResponseWriter(t *testing.T) {
	rr := httptest.NewRecorder()
	w := &responseWriter{ResponseWriter: rr}

	w.WriteHeader(http.StatusAccepted)
	w.WriteHeader(http.StatusInternalServerError)
	n, err := w.Write([]byte("abc"))
	require.NoError(t, err)

	assert.Equal(t, 3, n)
	assert.Equal(t, http.StatusAccepted, w.status)
	assert.Equal(t, http.StatusAccepted, rr.Code)
	assert.Equal(t, 3, w.size)
	assert.Same(t, rr, w.Unwrap())

	_, _, err = w.Hijack()
	assert.ErrorIs(t, err, errHijackNotSupported)
}

func TestResponseWriter_Hijack(t *testing.T) {
	inner := &hijackableRecorder{ResponseRecorder: httptest.NewRecorder()}
	w := &responseWriter{ResponseWriter: inner}

	_, _, err := w.Hijack()
	require.NoError(t, err)
	assert.True(t, inner.hijacked)
	assert.Equal(t, http.StatusSwitchingProtocols, w.status)
}
