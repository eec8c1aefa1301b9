// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-fleed/internal/config"
	"github.com/MKhiriev/go-fleed/internal/logger"
)

// ClientStorages groups the client-side repositories.
type ClientStorages struct {
	// Sessions remembers the logged-in user between runs.
	Sessions SessionRepository

	db *DB
}

// NewClientStorages opens the SQLite file named in cfg.SessionDSN, creating
// it and its tables when missing.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating new client storages...")

	db, err := NewConnectSQLite(ctx, cfg.SessionDSN, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err = db.MigrateClient(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &ClientStorages{
		Sessions: NewSessionRepository(db, logger),
		db:       db,
	}, nil
}

// Close closes the client database.
func (s *ClientStorages) Close() error {
	return s.db.Close()
}
