// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-fleed/internal/app"
	"github.com/MKhiriev/go-fleed/internal/logger"
	"github.com/MKhiriev/go-fleed/internal/service"
	"github.com/MKhiriev/go-fleed/internal/store"
	"github.com/MKhiriev/go-fleed/internal/utils"
)

type errorStatus struct {
	target  error
	status  int
	message string
}

// errorStatuses is matched in order: a transient database error is also an
// ErrExecutingQuery and must win over the generic 500.
var errorStatuses = []errorStatus{
	{service.ErrInvalidDataProvided, http.StatusBadRequest, app.MsgInvalidDataProvided},
	{service.ErrEmptyPost, http.StatusBadRequest, app.MsgEmptyPost},
	{service.ErrEmptyComment, http.StatusBadRequest, app.MsgEmptyComment},
	{service.ErrInvalidMediaFolder, http.StatusBadRequest, app.MsgInvalidMediaPath},
	{store.ErrInvalidMediaPath, http.StatusBadRequest, app.MsgInvalidMediaPath},
	{store.ErrSelfFollow, http.StatusBadRequest, app.MsgSelfFollow},

	{service.ErrWrongPassword, http.StatusUnauthorized, app.MsgInvalidEmailPassword},
	{service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized, app.MsgTokenIsExpiredOrInvalid},

	{service.ErrForbidden, http.StatusForbidden, app.MsgForbidden},

	{store.ErrNoUserWasFound, http.StatusNotFound, app.MsgUserNotFound},
	{store.ErrPostNotFound, http.StatusNotFound, app.MsgPostNotFound},
	{store.ErrReferenceNotFound, http.StatusNotFound, app.MsgPostNotFound},
	{store.ErrCommentNotFound, http.StatusNotFound, app.MsgCommentNotFound},
	{store.ErrMediaNotFound, http.StatusNotFound, app.MsgMediaNotFound},

	{store.ErrEmailAlreadyExists, http.StatusConflict, app.MsgEmailAlreadyExists},

	{service.ErrMediaTooLarge, http.StatusRequestEntityTooLarge, app.MsgMediaTooLarge},

	{store.ErrDatabaseUnavailable, http.StatusServiceUnavailable, app.MsgServiceUnavailable},
}

func statusFromError(err error) (int, string) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge, app.MsgMediaTooLarge
	}

	for _, e := range errorStatuses {
		if errors.Is(err, e.target) {
			return e.status, e.message
		}
	}
	return http.StatusInternalServerError, app.MsgInternalServerError
}

// writeServiceError logs err and answers with its mapped status and message.
func writeServiceError(w http.ResponseWriter, r *http.Request, funcName string, err error) {
	status, message := statusFromError(err)

	event := logger.FromRequest(r).Warn()
	if status >= http.StatusInternalServerError {
		event = logger.FromRequest(r).Error()
	}
	event.Err(err).Str("func", funcName).Int("status", status).Msg(message)

	utils.WriteError(w, message, status)
}
