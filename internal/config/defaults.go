// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"

	"github.com/MKhiriev/go-fleed/internal/feed"
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:   "go-fleed",
			TokenDuration: 24 * time.Hour,
		},
		Storage: Storage{
			DB: DB{
				MaxOpenConns:    20,
				MaxIdleConns:    5,
				ConnMaxLifetime: 30 * time.Minute,
			},
			Files:   Files{MediaDir: "uploads"},
			Session: Session{DSN: "fleed-session.db"},
		},
		Server: Server{
			HTTPAddress:     "localhost:8080",
			GRPCAddress:     "localhost:9090",
			RequestTimeout:  30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			MaxUploadSize:   50 << 20,
		},
		Adapter: Adapter{
			HTTPAddress:    "localhost:8080",
			RequestTimeout: 15 * time.Second,
		},
		Feed: Feed{
			PageSize:        feed.PageIncrementFeed,
			VideoPageSize:   feed.PageIncrementVideo,
			CommentPageSize: feed.PageIncrementComments,
		},
		Realtime: Realtime{
			PingInterval: 30 * time.Second,
			SendBuffer:   64,
		},
	}
}
