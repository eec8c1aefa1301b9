// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/MKhiriev/go-fleed/internal/logger"
	"github.com/MKhiriev/go-fleed/internal/store"
	"github.com/MKhiriev/go-fleed/internal/utils"
	"github.com/MKhiriev/go-fleed/models"
)

// mediaService names uploaded files and hands them to the media storage.
type mediaService struct {
	storage store.MediaStorage
	now     func() time.Time

	logger *logger.Logger
}

func NewMediaService(storage store.MediaStorage, logger *logger.Logger) MediaService {
	return &mediaService{
		storage: storage,
		now:     time.Now,
		logger:  logger,
	}
}

// Upload stores r under folder as "<folder>/<unix millis>.png" for image
// folders and ".mp4" for the video folder.
func (s *mediaService) Upload(ctx context.Context, folder string, r io.Reader) (models.UploadResult, error) {
	if !utils.IsMediaFolder(folder) {
		return models.UploadResult{}, fmt.Errorf("%w: %q", ErrInvalidMediaFolder, folder)
	}

	path := utils.NewMediaPath(folder, utils.IsImageFolder(folder), s.now())
	if err := s.storage.Save(ctx, path, r); err != nil {
		logger.FromContext(ctx).Err(err).Str("path", path).Msg("error saving media file")
		return models.UploadResult{}, fmt.Errorf("save media: %w", err)
	}

	return models.UploadResult{Path: path}, nil
}

func (s *mediaService) Open(ctx context.Context, path string) (*os.File, error) {
	return s.storage.Open(ctx, path)
}
