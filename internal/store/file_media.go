// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/MKhiriev/go-fleed/internal/config"
	"github.com/MKhiriev/go-fleed/internal/logger"
	"github.com/MKhiriev/go-fleed/internal/utils"
	"github.com/MKhiriev/go-fleed/models"
)

// mediaFileStorage keeps uploaded images and videos on the local filesystem,
// one sub-directory per upload folder.
type mediaFileStorage struct {
	dir    string
	logger *logger.Logger
}

// NewMediaFileStorage creates the media directory and its upload folders if
// they do not exist yet.
func NewMediaFileStorage(cfg config.Files, logger *logger.Logger) (MediaStorage, error) {
	for _, folder := range []string{models.FolderPostImages, models.FolderPostVideos, models.FolderProfiles} {
		if err := os.MkdirAll(filepath.Join(cfg.MediaDir, folder), 0o755); err != nil {
			logger.Err(err).Str("func", "NewMediaFileStorage").Msg("error creating media folder")
			return nil, fmt.Errorf("error creating media folder %s: %w", folder, err)
		}
	}
	logger.Debug().Str("dir", cfg.MediaDir).Msg("created media file storage")

	return &mediaFileStorage{
		dir:    cfg.MediaDir,
		logger: logger,
	}, nil
}

// Save writes r to the storage path p. The file becomes visible only once it
// is completely written.
func (m *mediaFileStorage) Save(ctx context.Context, p string, r io.Reader) error {
	log := logger.FromContext(ctx)

	target, err := m.resolve(p)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), ".upload-*")
	if err != nil {
		log.Err(err).Str("func", "*mediaFileStorage.Save").Msg("error creating temp file")
		return fmt.Errorf("error creating media file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err = io.Copy(tmp, readerWithContext(ctx, r)); err != nil {
		_ = tmp.Close()
		log.Err(err).Str("func", "*mediaFileStorage.Save").Str("path", p).Msg("error writing media file")
		return fmt.Errorf("error writing media file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("error closing media file: %w", err)
	}

	if err = os.Rename(tmp.Name(), target); err != nil {
		log.Err(err).Str("func", "*mediaFileStorage.Save").Str("path", p).Msg("error moving media file")
		return fmt.Errorf("error storing media file: %w", err)
	}

	return nil
}

// Open opens the stored file at p for reading. The caller closes it.
func (m *mediaFileStorage) Open(ctx context.Context, p string) (*os.File, error) {
	target, err := m.resolve(p)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(target)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrMediaNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*mediaFileStorage.Open").Str("path", p).Msg("error opening media file")
		return nil, fmt.Errorf("error opening media file: %w", err)
	}

	return f, nil
}

func (m *mediaFileStorage) resolve(p string) (string, error) {
	cleaned, ok := utils.CleanMediaPath(p)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidMediaPath, p)
	}
	return filepath.Join(m.dir, filepath.FromSlash(cleaned)), nil
}

type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}

// readerWithContext stops reading from r once ctx is done.
func readerWithContext(ctx context.Context, r io.Reader) io.Reader {
	return ctxReader{ctx: ctx, r: r}
}
