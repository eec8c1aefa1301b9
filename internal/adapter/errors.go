// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import "errors"

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrPayloadTooLarge     = errors.New("payload too large")
	ErrInternalServerError = errors.New("internal server error")
	ErrBadGateway          = errors.New("bad gateway")
	ErrServiceUnavailable  = errors.New("service unavailable")

	// ErrNotConnected is returned by Subscribe before Connect or after the
	// channel dropped.
	ErrNotConnected = errors.New("push channel is not connected")

	// ErrSubscriptionRejected is returned when the server answers a
	// subscribe frame with an error.
	ErrSubscriptionRejected = errors.New("subscription rejected")
)
