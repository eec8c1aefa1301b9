// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/go-fleed/internal/config"
	"github.com/MKhiriev/go-fleed/internal/logger"
	"github.com/MKhiriev/go-fleed/internal/mock"
	"github.com/MKhiriev/go-fleed/internal/service"
	"github.com/MKhiriev/go-fleed/internal/utils"
	"github.com/MKhiriev/go-fleed/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	testToken  = "good-token"
	testUserID = int64(7)
)

type testServices struct {
	auth          *mock.MockAuthService
	posts         *mock.MockPostService
	comments      *mock.MockCommentService
	likes         *mock.MockLikeService
	users         *mock.MockUserService
	notifications *mock.MockNotificationService
	media         *mock.MockMediaService
	appInfo       *mock.MockAppInfoService
	realtime      *fakeRealtime
}

// fakeRealtime records the user of the last push channel request.
type fakeRealtime struct {
	userID int64
}

func (f *fakeRealtime) ServeWS(w http.ResponseWriter, _ *http.Request, userID int64) {
	f.userID = userID
	w.WriteHeader(http.StatusAccepted)
}

func newTestHandler(t *testing.T, cfg config.Server) (*Handler, *testServices) {
	t.Helper()
	ctrl := gomock.NewController(t)

	m := &testServices{
		auth:          mock.NewMockAuthService(ctrl),
		posts:         mock.NewMockPostService(ctrl),
		comments:      mock.NewMockCommentService(ctrl),
		likes:         mock.NewMockLikeService(ctrl),
		users:         mock.NewMockUserService(ctrl),
		notifications: mock.NewMockNotificationService(ctrl),
		media:         mock.NewMockMediaService(ctrl),
		appInfo:       mock.NewMockAppInfoService(ctrl),
		realtime:      &fakeRealtime{},
	}

	services := &service.Services{
		AuthService:         m.auth,
		PostService:         m.posts,
		CommentService:      m.comments,
		LikeService:         m.likes,
		UserService:         m.users,
		NotificationService: m.notifications,
		MediaService:        m.media,
		AppInfoService:      m.appInfo,
	}

	m.auth.EXPECT().ParseToken(gomock.Any(), testToken).Return(models.Token{UserID: testUserID}, nil).AnyTimes()

	return NewHandler(services, m.realtime, cfg, logger.Nop()), m
}

func defaultServerConfig() config.Server {
	return config.Server{RequestTimeout: 5 * time.Second, MaxUploadSize: 1 << 20}
}

// serve runs one request through the full router. Requests are authorized
// with testToken unless an Authorization header is given.
func serve(t *testing.T, h *Handler, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Authorization", "Bearer "+testToken)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rr := httptest.NewRecorder()
	h.Init().ServeHTTP(rr, req)
	return rr
}

func errorMessage(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var body utils.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body), "body: %s", rr.Body.String())
	return body.Error
}

func TestNewHandler(t *testing.T) {
	h, m := newTestHandler(t, config.Server{RequestTimeout: time.Second, MaxUploadSize: 10})

	assert.Equal(t, time.Second, h.requestTimeout)
	assert.Equal(t, int64(10), h.maxUploadSize)
	assert.Same(t, m.realtime, h.realtime.(*fakeRealtime))
}
