// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/go-fleed/models"
)

// PublicMediaPrefix is the URL path media files are served under.
const PublicMediaPrefix = "/storage/v1/object/public/uploads/"

// NewMediaPath returns the storage path of a file uploaded at now into
// folder: "<folder>/<unix millis>.png" for images, ".mp4" otherwise.
func NewMediaPath(folder string, isImage bool, now time.Time) string {
	ext := ".mp4"
	if isImage {
		ext = ".png"
	}
	return folder + "/" + strconv.FormatInt(now.UnixMilli(), 10) + ext
}

// IsImageFolder reports whether folder holds images.
func IsImageFolder(folder string) bool {
	return folder == models.FolderPostImages || folder == models.FolderProfiles
}

// IsMediaFolder reports whether folder is one of the upload folders.
func IsMediaFolder(folder string) bool {
	switch folder {
	case models.FolderPostImages, models.FolderPostVideos, models.FolderProfiles:
		return true
	}
	return false
}

// CleanMediaPath validates a storage path taken from a request and returns
// its clean form. It rejects absolute paths, traversal and unknown folders.
func CleanMediaPath(p string) (string, bool) {
	if p == "" || strings.HasPrefix(p, "/") || strings.Contains(p, "\\") {
		return "", false
	}

	cleaned := path.Clean(p)
	folder, name, ok := strings.Cut(cleaned, "/")
	if !ok || !IsMediaFolder(folder) || name == "" || strings.Contains(name, "/") || strings.HasPrefix(name, ".") {
		return "", false
	}
	return cleaned, true
}

// PublicMediaURL returns the absolute URL of a stored file. Values that
// already are URLs are returned as is.
func PublicMediaURL(baseURL, p string) string {
	if p == "" {
		return ""
	}
	if strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://") {
		return p
	}
	return strings.TrimRight(baseURL, "/") + PublicMediaPrefix + strings.TrimLeft(p, "/")
}
