package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/Varshithx/task-manager/internal/models"
)

type sessionServiceImpl struct {
	logger zerolog.Logger
	db     DB
	ttl    time.Duration
}

func NewSessionService(
	logger zerolog.Logger,
	db DB,
	ttl time.Duration,
) SessionService {
	return &sessionServiceImpl{
		logger: logger,
		db:     db,
		ttl:    ttl,
	}
}

func (s *sessionServiceImpl) Create(ctx context.Context, userID string) (*models.Session, error) {
	now := time.Now().UTC()
	session := models.Session{
		UserID:    userID,
		ExpiresAt: now.Add(s.ttl),
		CreatedAt: now,
	}

	sessionUUID, err := uuid.NewV7()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to generate session uuid")
		return nil, err
	}
	session.ID = sessionUUID.String()

	const insertSessionQuery = `
INSERT INTO sessions (id,
                      user_id,
                      expires_at,
                      created_at)
VALUES ($1, $2, $3, $4)
`
	_, err = s.db.Exec(
		ctx,
		insertSessionQuery,
		session.ID,
		session.UserID,
		session.ExpiresAt,
		session.CreatedAt,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to insert session")
		return nil, err
	}

	s.logger.Debug().
		Str("session_id", session.ID).
		Str("user_id", session.UserID).
		Time("expires_at", session.ExpiresAt).
		Msg("created session")
	return &session, nil
}

func (s *sessionServiceImpl) GetByID(ctx context.Context, sessionID string) (*models.Session, error) {
	session := models.Session{
		ID: sessionID,
	}

	const selectSessionByIDQuery = `
SELECT user_id,
       expires_at,
       created_at
FROM sessions
WHERE id = $1
`
	err := s.db.QueryRow(
		ctx,
		selectSessionByIDQuery,
		session.ID,
	).Scan(
		&session.UserID,
		&session.ExpiresAt,
		&session.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Warn().
				Str("session_id", session.ID).
				Msg("session not found")
			return nil, ErrSessionNotFound
		}

		s.logger.Error().
			Err(err).
			Str("session_id", session.ID).
			Msg("failed to select session by id")
		return nil, err
	}

	if session.ExpiresAt.Before(time.Now()) {
		s.logger.Warn().
			Str("session_id", session.ID).
			Time("expires_at", session.ExpiresAt).
			Msg("session expired")
		if err = s.Delete(ctx, session.ID); err != nil {
			s.logger.Error().
				Err(err).
				Str("session_id", session.ID).
				Msg("failed to delete expired session")
		}
		return nil, ErrSessionExpired
	}

	return &session, nil
}

func (s *sessionServiceImpl) Delete(ctx context.Context, sessionID string) error {
	const deleteSessionQuery = `
DELETE FROM sessions
       WHERE id = $1
`
	tag, err := s.db.Exec(
		ctx,
		deleteSessionQuery,
		sessionID,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("session_id", sessionID).
			Msg("failed to delete session")
		return err
	}

	s.logger.Debug().
		Str("session_id", sessionID).
		Int64("affected", tag.RowsAffected()).
		Msg("deleted session")
	return nil
}
