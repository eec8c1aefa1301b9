// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package realtime

import "errors"

var (
	// ErrForbiddenTopic is returned for subscriptions to another user's
	// private rows.
	ErrForbiddenTopic = errors.New("subscription to this topic is not allowed")

	// ErrUnknownMessage is returned for frames of an unsupported type.
	ErrUnknownMessage = errors.New("unknown message type")
)
