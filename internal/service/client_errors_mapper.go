// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"net/url"
	"strings"

	"github.com/MKhiriev/go-fleed/internal/adapter"
	"github.com/MKhiriev/go-fleed/internal/app"
	"github.com/MKhiriev/go-fleed/internal/store"
)

// mapAdapterError translates the adapter's transport error into a service business error
func mapAdapterError(err error) error {
	if err == nil {
		return nil
	}

	msg := extractBody(err)

	switch {
	case errors.Is(err, adapter.ErrBadRequest):
		switch msg {
		case app.MsgEmptyPost:
			return ErrEmptyPost
		case app.MsgEmptyComment:
			return ErrEmptyComment
		case app.MsgSelfFollow:
			return store.ErrSelfFollow
		case app.MsgInvalidMediaPath:
			return store.ErrInvalidMediaPath
		default:
			return ErrInvalidDataProvided
		}

	case errors.Is(err, adapter.ErrUnauthorized):
		if msg == app.MsgInvalidEmailPassword {
			return ErrWrongPassword
		}
		return ErrTokenIsExpiredOrInvalid

	case errors.Is(err, adapter.ErrForbidden):
		return ErrForbidden

	case errors.Is(err, adapter.ErrNotFound):
		return ErrNotFound

	case errors.Is(err, adapter.ErrConflict):
		if msg == app.MsgEmailAlreadyExists {
			return store.ErrEmailAlreadyExists
		}

	case errors.Is(err, adapter.ErrPayloadTooLarge):
		return ErrMediaTooLarge

	case errors.Is(err, adapter.ErrServiceUnavailable),
		errors.Is(err, adapter.ErrBadGateway),
		errors.Is(err, adapter.ErrNotConnected):
		return ErrServerUnavailable
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return ErrServerUnavailable
	}

	return err
}

// extractBody extracts the body from a message of the form "bad request: <body>"
func extractBody(err error) string {
	msg := err.Error()
	if idx := strings.Index(msg, ": "); idx != -1 {
		return msg[idx+2:]
	}
	return msg
}
