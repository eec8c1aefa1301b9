// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/MKhiriev/go-fleed/internal/config"
	"github.com/MKhiriev/go-fleed/internal/logger"
	"github.com/MKhiriev/go-fleed/internal/utils"
	"github.com/MKhiriev/go-fleed/models"
	"github.com/go-resty/resty/v2"
)

// headerMutationID carries the client-chosen id of a write request.
const headerMutationID = "X-Mutation-ID"

type httpServerAdapter struct {
	client  *utils.HTTPClient
	baseURL string

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of [ServerAdapter].
// It normalises and validates the base URL from adapterCfg.HTTPAddress and
// configures the underlying HTTP client with the resolved base URL and request
// timeout.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, logger *logger.Logger) (ServerAdapter, error) {
	return newHTTPServerAdapter(adapterCfg, logger)
}

func newHTTPServerAdapter(adapterCfg config.ClientAdapter, logger *logger.Logger) (*httpServerAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	return &httpServerAdapter{
		client:  utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout),
		baseURL: baseURL,
		logger:  logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [ServerAdapter].
func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token implements [ServerAdapter].
func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Register implements [ServerAdapter]. It POSTs the user to
// POST /api/auth/register. On success the bearer token is extracted from the
// Authorization response header and stored via SetToken.
func (h *httpServerAdapter) Register(ctx context.Context, user models.User) (models.User, error) {
	return h.authenticate(ctx, "/api/auth/register", user)
}

// Login implements [ServerAdapter]. It POSTs the credentials to
// POST /api/auth/login and stores the returned bearer token.
func (h *httpServerAdapter) Login(ctx context.Context, user models.User) (models.User, error) {
	return h.authenticate(ctx, "/api/auth/login", user)
}

func (h *httpServerAdapter) authenticate(ctx context.Context, path string, user models.User) (models.User, error) {
	var account models.User

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(user).
		SetResult(&account).
		Post(path)
	if err != nil {
		return models.User{}, fmt.Errorf("%s request: %w", path, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return models.User{}, fmt.Errorf("%s parse bearer token: %w", path, err)
	}

	h.SetToken(token)
	return account, nil
}

// FetchPosts implements [ServerAdapter] with GET /api/posts.
func (h *httpServerAdapter) FetchPosts(ctx context.Context, scope models.Scope, limit int) ([]models.Post, error) {
	feedReq := models.FeedRequestFor(scope, limit)

	req := h.authedRequest(ctx).SetQueryParam("limit", strconv.Itoa(feedReq.Limit))
	if feedReq.UserID > 0 {
		req.SetQueryParam("user_id", strconv.FormatInt(feedReq.UserID, 10))
	}
	if feedReq.VideoOnly {
		req.SetQueryParam("video", "true")
	}

	var posts []models.Post
	resp, err := req.SetResult(&posts).Get("/api/posts")
	if err != nil {
		return nil, fmt.Errorf("fetch posts request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return posts, nil
}

// FetchPostDetails implements [ServerAdapter] with GET /api/posts/{id}.
func (h *httpServerAdapter) FetchPostDetails(ctx context.Context, postID int64) (models.PostDetails, error) {
	var details models.PostDetails

	resp, err := h.authedRequest(ctx).
		SetPathParam("id", strconv.FormatInt(postID, 10)).
		SetResult(&details).
		Get("/api/posts/{id}")
	if err != nil {
		return models.PostDetails{}, fmt.Errorf("fetch post details request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.PostDetails{}, err
	}

	return details, nil
}

func (h *httpServerAdapter) CreateOrUpdatePost(ctx context.Context, post models.PostUpsert) (models.Post, error) {
	var saved models.Post

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(post).
		SetResult(&saved).
		Post("/api/posts")
	if err != nil {
		return models.Post{}, fmt.Errorf("save post request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Post{}, err
	}

	return saved, nil
}

func (h *httpServerAdapter) DeletePost(ctx context.Context, postID int64) error {
	return h.send(ctx, resty.MethodDelete, "/api/posts/{id}", postID)
}

func (h *httpServerAdapter) CreateComment(ctx context.Context, comment models.Comment) (models.Comment, error) {
	var created models.Comment

	resp, err := h.authedRequest(ctx).
		SetPathParam("id", strconv.FormatInt(comment.PostID, 10)).
		SetHeader("Content-Type", "application/json").
		SetBody(comment).
		SetResult(&created).
		Post("/api/posts/{id}/comments")
	if err != nil {
		return models.Comment{}, fmt.Errorf("create comment request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Comment{}, err
	}

	return created, nil
}

func (h *httpServerAdapter) DeleteComment(ctx context.Context, commentID int64) error {
	return h.send(ctx, resty.MethodDelete, "/api/comments/{id}", commentID)
}

func (h *httpServerAdapter) LikePost(ctx context.Context, postID int64) error {
	return h.send(ctx, resty.MethodPut, "/api/posts/{id}/like", postID)
}

func (h *httpServerAdapter) UnlikePost(ctx context.Context, postID int64) error {
	return h.send(ctx, resty.MethodDelete, "/api/posts/{id}/like", postID)
}

func (h *httpServerAdapter) GetUser(ctx context.Context, userID int64) (models.UserSummary, error) {
	var user models.UserSummary
	if err := h.getJSON(ctx, "/api/users/{id}", userID, &user); err != nil {
		return models.UserSummary{}, err
	}
	return user, nil
}

func (h *httpServerAdapter) Follow(ctx context.Context, userID int64) error {
	return h.send(ctx, resty.MethodPut, "/api/users/{id}/follow", userID)
}

func (h *httpServerAdapter) Unfollow(ctx context.Context, userID int64) error {
	return h.send(ctx, resty.MethodDelete, "/api/users/{id}/follow", userID)
}

func (h *httpServerAdapter) FollowStatus(ctx context.Context, userID int64) (models.FollowStatus, error) {
	var status models.FollowStatus
	if err := h.getJSON(ctx, "/api/users/{id}/follow", userID, &status); err != nil {
		return models.FollowStatus{}, err
	}
	return status, nil
}

func (h *httpServerAdapter) FollowCounts(ctx context.Context, userID int64) (models.FollowCounts, error) {
	var counts models.FollowCounts
	if err := h.getJSON(ctx, "/api/users/{id}/follows", userID, &counts); err != nil {
		return models.FollowCounts{}, err
	}
	return counts, nil
}

func (h *httpServerAdapter) ListNotifications(ctx context.Context, limit int) ([]models.Notification, error) {
	var list []models.Notification

	req := h.authedRequest(ctx).SetResult(&list)
	if limit > 0 {
		req.SetQueryParam("limit", strconv.Itoa(limit))
	}

	resp, err := req.Get("/api/notifications")
	if err != nil {
		return nil, fmt.Errorf("list notifications request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return list, nil
}

func (h *httpServerAdapter) MarkNotificationsRead(ctx context.Context) error {
	resp, err := h.authedRequest(ctx).Post("/api/notifications/read")
	if err != nil {
		return fmt.Errorf("mark notifications read request: %w", err)
	}
	return mapHTTPError(resp)
}

// UploadMedia implements [ServerAdapter] with POST /api/storage/{folder}.
// The request body is the raw file content.
func (h *httpServerAdapter) UploadMedia(ctx context.Context, folder string, r io.Reader) (models.UploadResult, error) {
	var result models.UploadResult

	resp, err := h.authedRequest(ctx).
		SetPathParam("folder", folder).
		SetHeader("Content-Type", "application/octet-stream").
		SetBody(r).
		SetResult(&result).
		Post("/api/storage/{folder}")
	if err != nil {
		return models.UploadResult{}, fmt.Errorf("upload media request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.UploadResult{}, err
	}

	return result, nil
}

func (h *httpServerAdapter) MediaURL(path string) string {
	return utils.PublicMediaURL(h.baseURL, path)
}

func (h *httpServerAdapter) GetServerVersion(ctx context.Context) (string, error) {
	resp, err := h.client.R().SetContext(ctx).Get("/api/version")
	if err != nil {
		return "", fmt.Errorf("server version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return strings.TrimSpace(resp.String()), nil
}

// send issues a body-less request against a path with an {id} parameter.
func (h *httpServerAdapter) send(ctx context.Context, method, path string, id int64) error {
	resp, err := h.authedRequest(ctx).
		SetPathParam("id", strconv.FormatInt(id, 10)).
		Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s request: %w", method, path, err)
	}
	return mapHTTPError(resp)
}

func (h *httpServerAdapter) getJSON(ctx context.Context, path string, id int64, result any) error {
	resp, err := h.authedRequest(ctx).
		SetPathParam("id", strconv.FormatInt(id, 10)).
		SetResult(result).
		Get(path)
	if err != nil {
		return fmt.Errorf("GET %s request: %w", path, err)
	}
	return mapHTTPError(resp)
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetAuthToken(token)
	}
	if mutationID := utils.GetMutationIDFromContext(ctx); mutationID != "" {
		req.SetHeader(headerMutationID, mutationID)
	}
	return req
}
