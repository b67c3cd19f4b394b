package services

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/alexedwards/argon2id"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"

	"github.com/Varshithx/task-manager/internal/models"
)

// dummyPasswordHash is compared against when the user does not exist,
// so that login takes roughly the same effort either way.
const dummyPasswordHash = "$argon2id$v=19$m=65536,t=1,p=2$c29tZXNhbHRzb21lc2FsdA$AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"

type accountServiceImpl struct {
	logger zerolog.Logger
	db     DB
}

func NewAccountService(
	logger zerolog.Logger,
	db DB,
) AccountService {
	return &accountServiceImpl{
		logger: logger,
		db:     db,
	}
}

func (s *accountServiceImpl) Register(ctx context.Context, params RegisterParams) (*models.User, error) {
	username := strings.TrimSpace(params.Username)
	email := strings.TrimSpace(params.Email)

	if username == "" || email == "" || params.Password == "" {
		return nil, ErrMissingFields
	}
	// Characters, not bytes: a multibyte password must clear the same
	// bar as an ASCII one.
	if utf8.RuneCountInString(params.Password) < 6 {
		return nil, ErrPasswordTooShort
	}

	user := models.User{
		Username:  username,
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}

	userUUID, err := uuid.NewV7()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to generate user uuid")
		return nil, err
	}
	user.ID = userUUID.String()

	passwordHash, err := argon2id.CreateHash(params.Password, argon2id.DefaultParams)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to hash password")
		return nil, err
	}
	user.PasswordHash = passwordHash

	tx, err := s.db.Begin(ctx)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to begin transaction")
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// The username check runs before the email check so that a request
	// conflicting on both reports the username conflict.
	const selectUsernameExistsQuery = `
SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)
`
	var usernameTaken bool
	err = tx.QueryRow(
		ctx,
		selectUsernameExistsQuery,
		user.Username,
	).Scan(&usernameTaken)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to check username")
		return nil, err
	}
	if usernameTaken {
		s.logger.Warn().
			Str("username", user.Username).
			Msg("username already taken")
		return nil, ErrUsernameTaken
	}

	const selectEmailExistsQuery = `
SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)
`
	var emailTaken bool
	err = tx.QueryRow(
		ctx,
		selectEmailExistsQuery,
		user.Email,
	).Scan(&emailTaken)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to check email")
		return nil, err
	}
	if emailTaken {
		s.logger.Warn().
			Str("email", user.Email).
			Msg("email already registered")
		return nil, ErrEmailTaken
	}

	const insertUserQuery = `
INSERT INTO users (id,
                   username,
                   email,
                   password_hash,
                   created_at)
VALUES ($1, $2, $3, $4, $5)
`
	_, err = tx.Exec(
		ctx,
		insertUserQuery,
		user.ID,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.CreatedAt,
	)
	if err != nil {
		// A registration racing past the checks above still trips the
		// unique constraints.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			if strings.Contains(pgErr.ConstraintName, "email") {
				s.logger.Warn().
					Str("email", user.Email).
					Msg("email already registered")
				return nil, ErrEmailTaken
			}
			s.logger.Warn().
				Str("username", user.Username).
				Msg("username already taken")
			return nil, ErrUsernameTaken
		}

		s.logger.Error().
			Err(err).
			Msg("failed to insert user")
		return nil, err
	}

	err = tx.Commit(ctx)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to commit transaction")
		return nil, err
	}

	s.logger.Info().
		Str("user_id", user.ID).
		Str("username", user.Username).
		Msg("registered user")
	return &user, nil
}

func (s *accountServiceImpl) Login(ctx context.Context, params LoginParams) (*models.User, error) {
	username := strings.TrimSpace(params.Username)

	user := models.User{
		Username: username,
	}

	const selectUserByUsernameQuery = `
SELECT id,
       email,
       password_hash,
       created_at
FROM users
WHERE username = $1
`
	err := s.db.QueryRow(
		ctx,
		selectUserByUsernameQuery,
		user.Username,
	).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			_, _ = argon2id.ComparePasswordAndHash(params.Password, dummyPasswordHash)
			s.logger.Warn().
				Str("username", user.Username).
				Msg("user not found")
			return nil, ErrInvalidCredentials
		}

		s.logger.Error().
			Err(err).
			Str("username", user.Username).
			Msg("failed to select user by username")
		return nil, err
	}

	match, err := argon2id.ComparePasswordAndHash(params.Password, user.PasswordHash)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to compare password")
		return nil, err
	}
	if !match {
		s.logger.Warn().
			Str("user_id", user.ID).
			Msg("password mismatch")
		return nil, ErrInvalidCredentials
	}

	s.logger.Info().
		Str("user_id", user.ID).
		Str("username", user.Username).
		Msg("logged in")
	return &user, nil
}

func (s *accountServiceImpl) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	user := models.User{
		ID: userID,
	}

	const selectUserByIDQuery = `
SELECT username,
       email,
       created_at
FROM users
WHERE id = $1
`
	err := s.db.QueryRow(
		ctx,
		selectUserByIDQuery,
		user.ID,
	).Scan(
		&user.Username,
		&user.Email,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Warn().
				Str("user_id", user.ID).
				Msg("user not found")
			return nil, ErrUserNotFound
		}

		s.logger.Error().
			Err(err).
			Str("user_id", user.ID).
			Msg("failed to select user by id")
		return nil, err
	}

	return &user, nil
}
