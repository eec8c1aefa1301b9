// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"
	"testing"

	"github.com/MKhiriev/go-fleed/internal/app"
	"github.com/MKhiriev/go-fleed/models"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestRoutes_Fallbacks(t *testing.T) {
	h, _ := newTestHandler(t, defaultServerConfig())

	rr := serve(t, h, http.MethodGet, "/api/nothing", "", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, app.MsgRouteNotFound, errorMessage(t, rr))

	rr = serve(t, h, http.MethodPatch, "/api/auth/login", "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.Equal(t, app.MsgMethodNotAllowed, errorMessage(t, rr))
}

func TestRoutes_Authorization(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		wantMsg string
	}{
		{"missing header", "", app.MsgEmptyAuthorizationHeader},
		{"malformed header", "Token abc", app.MsgTokenIsExpiredOrInvalid},
		{"rejected token", "Bearer expired", app.MsgTokenIsExpiredOrInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newTestHandler(t, defaultServerConfig())
			m.auth.EXPECT().ParseToken(gomock.Any(), "expired").Return(models.Token{}, errors.New("token is expired")).AnyTimes()

			rr := serve(t, h, http.MethodGet, "/api/posts?limit=10", "", map[string]string{"Authorization": tt.header})
			assert.Equal(t, http.StatusUnauthorized, rr.Code)
			assert.Equal(t, tt.wantMsg, errorMessage(t, rr))
		})
	}
}

func TestRoutes_PublicRoutesSkipAuth(t *testing.T) {
	h, m := newTestHandler(t, defaultServerConfig())
	m.appInfo.EXPECT().GetAppVersion(gomock.Any()).Return("1.0.0")

	rr := serve(t, h, http.MethodGet, "/api/version", "", map[string]string{"Authorization": ""})
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "1.0.0", rr.Body.String())
	assert.Equal(t, "text/plain; charset=utf-8", rr.Header().Get("Content-Type"))
}

func TestRoutes_TraceIDEchoed(t *testing.T) {
	h, m := newTestHandler(t, defaultServerConfig())
	m.appInfo.EXPECT().GetAppVersion(gomock.Any()).Return("1.0.0")

	rr := serve(t, h, http.MethodGet, "/api/version", "", map[string]string{traceIDHeader: "trace-1"})
	assert.Equal(t, "trace-1", rr.Header().Get(traceIDHeader))
}

func TestRoutes_Realtime(t *testing.T) {
	h, m := newTestHandler(t, defaultServerConfig())

	rr := serve(t, h, http.MethodGet, "/realtime/v1/websocket", "", nil)
	assert.Equal(t, http.StatusAccepted, rr.Code)
	assert.Equal(t, testUserID, m.realtime.userID)
}
