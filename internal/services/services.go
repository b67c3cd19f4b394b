package services

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Varshithx/task-manager/internal/models"
)

var (
	ErrMissingFields      = errors.New("all fields are required")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionExpired     = errors.New("session expired")
	ErrTaskNotFound       = errors.New("task not found")
	ErrEmptyTitle         = errors.New("task title cannot be empty")
)

// DB is the subset of pgxpool.Pool the services rely on.
type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type AccountService interface {
	// Register creates a user with the given username, email and password.
	//
	// It trims the username and email, validates that all fields are
	// present and the password is at least 6 characters, and stores a
	// salted one-way hash of the password, never the plaintext.
	//
	// It returns ErrUsernameTaken if the username is already registered,
	// checked before ErrEmailTaken for an already registered email. On
	// any persistence failure nothing is committed.
	Register(ctx context.Context, params RegisterParams) (*models.User, error)

	// Login authenticates the user by exact username match.
	//
	// A missing user and a wrong password both return
	// ErrInvalidCredentials so that account existence never leaks.
	Login(ctx context.Context, params LoginParams) (*models.User, error)

	GetUserByID(ctx context.Context, userID string) (*models.User, error)
}

type SessionService interface {
	Create(ctx context.Context, userID string) (*models.Session, error)

	// GetByID returns ErrSessionNotFound for an unknown session and
	// ErrSessionExpired for one past its expiry. Expired rows are
	// deleted on lookup.
	GetByID(ctx context.Context, sessionID string) (*models.Session, error)

	Delete(ctx context.Context, sessionID string) error
}

// TaskService operations are scoped to the owning user. A task that does
// not exist and a task owned by someone else are both reported as
// ErrTaskNotFound.
type TaskService interface {
	Create(ctx context.Context, ownerID, title, content string) (*models.Task, error)

	// List returns the owner's tasks, newest-created first.
	List(ctx context.Context, ownerID string) ([]*models.Task, error)

	Update(ctx context.Context, ownerID string, taskID int64, title, content string) (*models.Task, error)

	// Toggle flips the completion flag.
	Toggle(ctx context.Context, ownerID string, taskID int64) (*models.Task, error)

	Delete(ctx context.Context, ownerID string, taskID int64) error
}

type RegisterParams struct {
	Username string
	Email    string
	Password string
}

type LoginParams struct {
	Username string
	Password string
}
