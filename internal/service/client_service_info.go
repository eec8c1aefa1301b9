// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-fleed/internal/adapter"
	"github.com/MKhiriev/go-fleed/models"
)

type clientInfoService struct {
	adapter   adapter.ServerAdapter
	buildInfo models.AppBuildInfo
}

func (s *clientInfoService) ServerVersion(ctx context.Context) (string, error) {
	version, err := s.adapter.GetServerVersion(ctx)
	if err != nil {
		return "", fmt.Errorf("get server version: %w", mapAdapterError(err))
	}
	return version, nil
}

func (s *clientInfoService) BuildInfo() models.AppBuildInfo {
	return s.buildInfo
}
