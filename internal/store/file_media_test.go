// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/MKhiriev/go-fleed/internal/config"
	"github.com/MKhiriev/go-fleed/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMediaFileStorage_CreatesFolders(t *testing.T) {
	dir := t.TempDir()

	_, err := NewMediaFileStorage(config.Files{MediaDir: dir}, logger.Nop())
	require.NoError(t, err)

	for _, folder := range []string{"postImages", "postVideos", "profiles"} {
		info, err := os.Stat(filepath.Join(dir, folder))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestMediaFileStorage_SaveAndOpen(t *testing.T) {
	storage, err := NewMediaFileStorage(config.Files{MediaDir: t.TempDir()}, logger.Nop())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, storage.Save(ctx, "postImages/100.png", strings.NewReader("png-bytes")))

	f, err := storage.Open(ctx, "postImages/100.png")
	require.NoError(t, err)
	defer f.Close()

	content, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(content))
}

func TestMediaFileStorage_OpenMissing(t *testing.T) {
	storage, err := NewMediaFileStorage(config.Files{MediaDir: t.TempDir()}, logger.Nop())
	require.NoError(t, err)

	_, err = storage.Open(context.Background(), "postVideos/1.mp4")
	assert.ErrorIs(t, err, ErrMediaNotFound)
}

func TestMediaFileStorage_RejectsBadPaths(t *testing.T) {
	storage, err := NewMediaFileStorage(config.Files{MediaDir: t.TempDir()}, logger.Nop())
	require.NoError(t, err)

	for _, p := range []string{"../etc/passwd", "/postImages/1.png", "secrets/1.png", "postImages/../../x"} {
		err = storage.Save(context.Background(), p, strings.NewReader("x"))
		assert.ErrorIs(t, err, ErrInvalidMediaPath, p)

		_, err = storage.Open(context.Background(), p)
		assert.ErrorIs(t, err, ErrInvalidMediaPath, p)
	}
}

func TestMediaFileStorage_SaveCanceled(t *testing.T) {
	dir := t.TempDir()
	storage, err := NewMediaFileStorage(config.Files{MediaDir: dir}, logger.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.Error(t, storage.Save(ctx, "profiles/1.png", strings.NewReader("x")))

	entries, err := os.ReadDir(filepath.Join(dir, "profiles"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}
