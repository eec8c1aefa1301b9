// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidUserID  = errors.New("invalid user ID")
	ErrInvalidPostID  = errors.New("invalid post ID")
	ErrEmptyName      = errors.New("name is required")
	ErrInvalidEmail   = errors.New("invalid email")
	ErrEmptyPassword  = errors.New("password is required")
	ErrBodyTooLong    = errors.New("post body is too long")
	ErrTextTooLong    = errors.New("comment text is too long")
	ErrInvalidFile    = errors.New("invalid media file path")
	ErrNameTooLong    = errors.New("name is too long")
	ErrPasswordLength = errors.New("password is too long")
)
