// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"
)

// validate checks the invariants every merged [StructuredConfig] must hold,
// regardless of which binary uses it.
func (cfg *StructuredConfig) validate() error {
	if cfg.Feed.PageSize <= 0 || cfg.Feed.VideoPageSize <= 0 || cfg.Feed.CommentPageSize <= 0 {
		return fmt.Errorf("%w: page sizes must be positive", ErrInvalidFeedConfigs)
	}

	if cfg.Realtime.SendBuffer <= 0 || cfg.Realtime.PingInterval <= 0 {
		return fmt.Errorf("%w: send buffer and ping interval must be positive", ErrInvalidRealtimeConfigs)
	}

	return nil
}

// validateServer checks the settings the server cannot start without.
func (cfg *StructuredConfig) validateServer() error {
	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: database DSN is required", ErrInvalidStorageConfigs)
	}

	if cfg.Storage.Files.MediaDir == "" {
		return fmt.Errorf("%w: media directory is required", ErrInvalidStorageConfigs)
	}

	if cfg.App.TokenSignKey == "" || cfg.App.TokenDuration <= 0 {
		return fmt.Errorf("%w: token sign key and duration are required", ErrInvalidAppConfigs)
	}

	if cfg.Server.HTTPAddress == "" {
		return fmt.Errorf("%w: http address is required", ErrInvalidServerConfigs)
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.SessionDSN == "" || strings.Contains(cfg.Storage.SessionDSN, "memory") {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout == 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Feed.PageSize <= 0 || cfg.Feed.VideoPageSize <= 0 || cfg.Feed.CommentPageSize <= 0 {
		return ErrInvalidFeedConfigs
	}

	return nil
}
