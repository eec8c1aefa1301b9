// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/MKhiriev/go-fleed/internal/adapter"
	"github.com/MKhiriev/go-fleed/internal/logger"
	"github.com/MKhiriev/go-fleed/internal/utils"
	"github.com/MKhiriev/go-fleed/models"
	"github.com/atotto/clipboard"
)

var videoExtensions = []string{".mp4", ".mov", ".webm", ".mkv", ".avi"}

type clientPostService struct {
	adapter adapter.ServerAdapter
	session *sessionState
	copy    func(text string) error

	logger *logger.Logger
}

func newClientPostService(serverAdapter adapter.ServerAdapter, session *sessionState, logger *logger.Logger) *clientPostService {
	return &clientPostService{
		adapter: serverAdapter,
		session: session,
		copy:    clipboard.WriteAll,
		logger:  logger,
	}
}

func (s *clientPostService) SavePost(ctx context.Context, post models.PostUpsert, localFile string) (models.Post, error) {
	session, ok := s.session.current()
	if !ok {
		return models.Post{}, ErrNotLoggedIn
	}
	post.UserID = session.UserID

	if localFile != "" {
		path, err := s.upload(ctx, localFile)
		if err != nil {
			return models.Post{}, err
		}
		post.File = path
	}

	if strings.TrimSpace(post.Body) == "" && post.File == "" {
		return models.Post{}, ErrEmptyPost
	}

	saved, err := s.adapter.CreateOrUpdatePost(ctx, post)
	if err != nil {
		return models.Post{}, fmt.Errorf("save post: %w", mapAdapterError(err))
	}

	s.logger.Debug().Int64("post_id", saved.ID).Bool("created", post.ID == 0).Msg("post saved")
	return saved, nil
}

func (s *clientPostService) upload(ctx context.Context, localFile string) (string, error) {
	file, err := os.Open(localFile)
	if err != nil {
		return "", fmt.Errorf("open media file: %w", err)
	}
	defer file.Close()

	result, err := s.adapter.UploadMedia(ctx, mediaFolderOf(localFile), file)
	if err != nil {
		return "", fmt.Errorf("upload media: %w", mapAdapterError(err))
	}
	return result.Path, nil
}

func (s *clientPostService) SharePost(post models.Post) (string, error) {
	text := utils.StripHTMLTags(post.Body)
	if post.File != "" {
		text = strings.TrimSpace(text + "\n\n" + s.adapter.MediaURL(post.File))
	}

	if err := s.copy(text); err != nil {
		return "", fmt.Errorf("copy to clipboard: %w", err)
	}
	return text, nil
}

// mediaFolderOf picks the storage folder for a local file by its extension.
func mediaFolderOf(localFile string) string {
	if slices.Contains(videoExtensions, strings.ToLower(filepath.Ext(localFile))) {
		return models.FolderPostVideos
	}
	return models.FolderPostImages
}
