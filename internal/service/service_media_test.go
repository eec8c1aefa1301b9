// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/go-fleed/internal/logger"
	"github.com/MKhiriev/go-fleed/internal/mock"
	"github.com/MKhiriev/go-fleed/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestMediaService_Upload(t *testing.T) {
	now := time.UnixMilli(1700000000123)

	tests := []struct {
		folder   string
		wantPath string
	}{
		{folder: models.FolderPostImages, wantPath: "postImages/1700000000123.png"},
		{folder: models.FolderPostVideos, wantPath: "postVideos/1700000000123.mp4"},
		{folder: models.FolderProfiles, wantPath: "profiles/1700000000123.png"},
	}

	for _, tt := range tests {
		t.Run(tt.folder, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			storage := mock.NewMockMediaStorage(ctrl)
			svc := NewMediaService(storage, logger.Nop()).(*mediaService)
			svc.now = func() time.Time { return now }

			body := strings.NewReader("data")
			storage.EXPECT().Save(gomock.Any(), tt.wantPath, body).Return(nil)

			res, err := svc.Upload(context.Background(), tt.folder, body)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPath, res.Path)
		})
	}
}

func TestMediaService_Upload_Errors(t *testing.T) {
	ctrl := gomock.NewController(t)
	storage := mock.NewMockMediaStorage(ctrl)
	svc := NewMediaService(storage, logger.Nop())

	_, err := svc.Upload(context.Background(), "../secrets", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrInvalidMediaFolder)

	storage.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("disk full"))
	_, err = svc.Upload(context.Background(), models.FolderPostImages, strings.NewReader("x"))
	assert.Error(t, err)
}
