// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/MKhiriev/go-fleed/internal/logger"
	"github.com/MKhiriev/go-fleed/models"
)

const (
	saveSession = `INSERT INTO session (id, user_id, token, name, email, image, created_at)
    VALUES (1, ?, ?, ?, ?, ?, ?)
    ON CONFLICT (id) DO UPDATE SET
        user_id = excluded.user_id,
        token = excluded.token,
        name = excluded.name,
        email = excluded.email,
        image = excluded.image,
        created_at = excluded.created_at;`

	loadSession = `SELECT user_id, token, name, email, image, created_at
    FROM session
    WHERE id = 1;`

	clearSession = `DELETE FROM session;`
)

// sessionRepository keeps the single remembered login of the client in
// SQLite.
type sessionRepository struct {
	db     *DB
	logger *logger.Logger
}

func NewSessionRepository(db *DB, logger *logger.Logger) SessionRepository {
	return &sessionRepository{
		db:     db,
		logger: logger,
	}
}

// Save replaces the remembered session.
func (r *sessionRepository) Save(ctx context.Context, session models.Session) error {
	_, err := r.db.ExecContext(ctx, saveSession, session.UserID, session.Token, session.Name, session.Email, session.Image, session.CreatedAt)
	if err != nil {
		r.logger.Err(err).Str("func", "*sessionRepository.Save").Msg("error saving session")
		return r.db.queryError(err)
	}
	return nil
}

// Load returns the remembered session or [ErrSessionNotFound].
func (r *sessionRepository) Load(ctx context.Context) (models.Session, error) {
	var s models.Session
	err := r.db.QueryRowContext(ctx, loadSession).Scan(&s.UserID, &s.Token, &s.Name, &s.Email, &s.Image, &s.CreatedAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.Session{}, ErrSessionNotFound
	case err != nil:
		r.logger.Err(err).Str("func", "*sessionRepository.Load").Msg("error loading session")
		return models.Session{}, r.db.queryError(err)
	}
	return s, nil
}

// Clear forgets the remembered session.
func (r *sessionRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, clearSession); err != nil {
		r.logger.Err(err).Str("func", "*sessionRepository.Clear").Msg("error clearing session")
		return r.db.queryError(err)
	}
	return nil
}
