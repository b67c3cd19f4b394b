package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/Varshithx/task-manager/internal/models"
)

type taskServiceImpl struct {
	logger zerolog.Logger
	db     DB
}

func NewTaskService(
	logger zerolog.Logger,
	db DB,
) TaskService {
	return &taskServiceImpl{
		logger: logger,
		db:     db,
	}
}

func (s *taskServiceImpl) Create(ctx context.Context, ownerID, title, content string) (*models.Task, error) {
	task := models.Task{
		UserID:    ownerID,
		Title:     strings.TrimSpace(title),
		Content:   strings.TrimSpace(content),
		Done:      false,
		CreatedAt: time.Now().UTC(),
	}

	if task.Title == "" {
		return nil, ErrEmptyTitle
	}

	const insertTaskQuery = `
INSERT INTO tasks (user_id,
                   title,
                   content,
                   done,
                   created_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING id
`
	err := s.db.QueryRow(
		ctx,
		insertTaskQuery,
		task.UserID,
		task.Title,
		task.Content,
		task.Done,
		task.CreatedAt,
	).Scan(&task.ID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to insert task")
		return nil, err
	}

	s.logger.Info().
		Int64("task_id", task.ID).
		Str("user_id", task.UserID).
		Msg("created task")
	return &task, nil
}

func (s *taskServiceImpl) List(ctx context.Context, ownerID string) ([]*models.Task, error) {
	const selectTasksByOwnerQuery = `
SELECT id,
       title,
       content,
       done,
       created_at
FROM tasks
WHERE user_id = $1
ORDER BY created_at DESC, id DESC
`
	rows, err := s.db.Query(
		ctx,
		selectTasksByOwnerQuery,
		ownerID,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to select tasks by owner")
		return nil, err
	}
	defer rows.Close()

	tasks := make([]*models.Task, 0)
	for rows.Next() {
		task := &models.Task{UserID: ownerID}
		err = rows.Scan(
			&task.ID,
			&task.Title,
			&task.Content,
			&task.Done,
			&task.CreatedAt,
		)
		if err != nil {
			s.logger.Error().
				Err(err).
				Msg("failed to scan task")
			return nil, err
		}
		tasks = append(tasks, task)
	}

	err = rows.Err()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to iterate over task rows")
		return nil, err
	}

	s.logger.Debug().
		Str("user_id", ownerID).
		Int("count", len(tasks)).
		Msg("selected tasks")
	return tasks, nil
}

func (s *taskServiceImpl) Update(ctx context.Context, ownerID string, taskID int64, title, content string) (*models.Task, error) {
	task := models.Task{
		ID:      taskID,
		UserID:  ownerID,
		Title:   strings.TrimSpace(title),
		Content: strings.TrimSpace(content),
	}

	// Existence and ownership answer before title validation, so a
	// missing or foreign task id reports not-found even alongside a
	// bad title. A foreign task id behaves exactly like a missing one.
	const selectTaskForUpdateQuery = `
SELECT done, created_at
FROM tasks
WHERE id = $1 AND
      user_id = $2
`
	err := s.db.QueryRow(
		ctx,
		selectTaskForUpdateQuery,
		task.ID,
		task.UserID,
	).Scan(
		&task.Done,
		&task.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Warn().
				Int64("task_id", task.ID).
				Msg("task not found")
			return nil, ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Int64("task_id", task.ID).
			Msg("failed to select task for update")
		return nil, err
	}

	if task.Title == "" {
		return nil, ErrEmptyTitle
	}

	// The mutation is still scoped on user_id, so ownership is
	// re-verified in the statement itself.
	const updateTaskQuery = `
UPDATE tasks
SET title = $1,
    content = $2
WHERE id = $3 AND
      user_id = $4
`
	tag, err := s.db.Exec(
		ctx,
		updateTaskQuery,
		task.Title,
		task.Content,
		task.ID,
		task.UserID,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("task_id", task.ID).
			Msg("failed to update task")
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		// Deleted between the lookup and the update.
		s.logger.Warn().
			Int64("task_id", task.ID).
			Msg("task not found")
		return nil, ErrTaskNotFound
	}

	s.logger.Info().
		Int64("task_id", task.ID).
		Msg("updated task")
	return &task, nil
}

func (s *taskServiceImpl) Toggle(ctx context.Context, ownerID string, taskID int64) (*models.Task, error) {
	task := models.Task{
		ID:     taskID,
		UserID: ownerID,
	}

	const toggleTaskQuery = `
UPDATE tasks
SET done = NOT done
WHERE id = $1 AND
      user_id = $2
RETURNING title, content, done, created_at
`
	err := s.db.QueryRow(
		ctx,
		toggleTaskQuery,
		task.ID,
		task.UserID,
	).Scan(
		&task.Title,
		&task.Content,
		&task.Done,
		&task.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Warn().
				Int64("task_id", task.ID).
				Msg("task not found")
			return nil, ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Int64("task_id", task.ID).
			Msg("failed to toggle task")
		return nil, err
	}

	s.logger.Info().
		Int64("task_id", task.ID).
		Bool("done", task.Done).
		Msg("toggled task")
	return &task, nil
}

func (s *taskServiceImpl) Delete(ctx context.Context, ownerID string, taskID int64) error {
	const deleteTaskQuery = `
DELETE FROM tasks
       WHERE id = $1 AND
             user_id = $2
`
	tag, err := s.db.Exec(
		ctx,
		deleteTaskQuery,
		taskID,
		ownerID,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("task_id", taskID).
			Msg("failed to delete task")
		return err
	}

	if tag.RowsAffected() == 0 {
		s.logger.Warn().
			Int64("task_id", taskID).
			Msg("task not found")
		return ErrTaskNotFound
	}

	s.logger.Info().
		Int64("task_id", taskID).
		Msg("deleted task")
	return nil
}
