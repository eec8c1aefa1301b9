// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"testing"
	"time"

	"github.com/MKhiriev/go-fleed/models"
	"github.com/stretchr/testify/assert"
)

func TestNewMediaPath(t *testing.T) {
	now := time.UnixMilli(1700000000123)

	assert.Equal(t, "postImages/1700000000123.png", NewMediaPath(models.FolderPostImages, true, now))
	assert.Equal(t, "postVideos/1700000000123.mp4", NewMediaPath(models.FolderPostVideos, false, now))
}

func TestIsImageFolder(t *testing.T) {
	assert.True(t, IsImageFolder(models.FolderPostImages))
	assert.True(t, IsImageFolder(models.FolderProfiles))
	assert.False(t, IsImageFolder(models.FolderPostVideos))
}

func TestCleanMediaPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{in: "postImages/1.png", want: "postImages/1.png", ok: true},
		{in: "postVideos/./2.mp4", want: "postVideos/2.mp4", ok: true},
		{in: "../etc/passwd", ok: false},
		{in: "postImages/../../etc/passwd", ok: false},
		{in: "/postImages/1.png", ok: false},
		{in: "secrets/1.png", ok: false},
		{in: "postImages/", ok: false},
		{in: "postImages/a/b.png", ok: false},
		{in: "postImages/.hidden", ok: false},
		{in: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := CleanMediaPath(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPublicMediaURL(t *testing.T) {
	assert.Equal(t,
		"http://localhost:8080/storage/v1/object/public/uploads/postImages/1.png",
		PublicMediaURL("http://localhost:8080/", "postImages/1.png"))
	assert.Equal(t, "https://cdn/x.png", PublicMediaURL("http://localhost", "https://cdn/x.png"))
	assert.Empty(t, PublicMediaURL("http://localhost", ""))
}
