// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/go-fleed/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	FieldUserID   = "user_id"
	FieldName     = "name"
	FieldEmail    = "email"
	FieldPassword = "password"

	// FieldPostID accepts zero, which marks a post that is being created.
	FieldPostID = "post_id"
	FieldBody   = "body"
	FieldFile   = "file"

	// FieldCommentPostID requires an existing post id.
	FieldCommentPostID = "comment_post_id"
	FieldText          = "text"
)

const (
	maxNameLength = 64
	maxBodyLength = 10000
	maxTextLength = 2000

	// bcrypt ignores input past 72 bytes.
	maxPasswordBytes = 72
)

// ContentValidator checks users, posts and comments before they reach
// storage. Values and pointers of each model are accepted.
type ContentValidator struct {
}

func NewContentValidator() Validator {
	return &ContentValidator{}
}

// Validate dispatches on the type of obj. With no fields every field of the
// model is checked.
func (v *ContentValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.User:
		return v.validateUser(value, fields...)
	case *models.User:
		return v.validateUser(*value, fields...)

	case models.PostUpsert:
		return v.validatePost(value, fields...)
	case *models.PostUpsert:
		return v.validatePost(*value, fields...)

	case models.Comment:
		return v.validateComment(value, fields...)
	case *models.Comment:
		return v.validateComment(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *ContentValidator) validateUser(user models.User, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldName, FieldEmail, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldUserID:
			if user.UserID <= 0 {
				return ErrInvalidUserID
			}
		case FieldName:
			name := strings.TrimSpace(user.Name)
			if name == "" {
				return ErrEmptyName
			}
			if utf8.RuneCountInString(name) > maxNameLength {
				return ErrNameTooLong
			}
		case FieldEmail:
			if !validEmail(user.Email) {
				return ErrInvalidEmail
			}
		case FieldPassword:
			if user.Password == "" {
				return ErrEmptyPassword
			}
			if len(user.Password) > maxPasswordBytes {
				return ErrPasswordLength
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *ContentValidator) validatePost(post models.PostUpsert, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUserID, FieldPostID, FieldBody, FieldFile}
	}

	for _, f := range fields {
		switch f {
		case FieldUserID:
			if post.UserID <= 0 {
				return ErrInvalidUserID
			}
		case FieldPostID:
			if post.ID < 0 {
				return ErrInvalidPostID
			}
		case FieldBody:
			if utf8.RuneCountInString(post.Body) > maxBodyLength {
				return ErrBodyTooLong
			}
		case FieldFile:
			if strings.ContainsRune(post.File, 0) {
				return ErrInvalidFile
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *ContentValidator) validateComment(comment models.Comment, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUserID, FieldCommentPostID, FieldText}
	}

	for _, f := range fields {
		switch f {
		case FieldUserID:
			if comment.UserID <= 0 {
				return ErrInvalidUserID
			}
		case FieldCommentPostID:
			if comment.PostID <= 0 {
				return ErrInvalidPostID
			}
		case FieldText:
			if utf8.RuneCountInString(comment.Text) > maxTextLength {
				return ErrTextTooLong
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validEmail accepts a bare address only, without a display name.
func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}
