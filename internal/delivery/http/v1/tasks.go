package v1

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Varshithx/task-manager/internal/models"
	"github.com/Varshithx/task-manager/internal/services"
)

type taskResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Done      bool      `json:"done"`
	CreatedAt time.Time `json:"created_at"`
	UserID    string    `json:"user_id"`
}

func newTaskResponse(task *models.Task) taskResponse {
	return taskResponse{
		ID:        task.ID,
		Title:     task.Title,
		Content:   task.Content,
		Done:      task.Done,
		CreatedAt: task.CreatedAt,
		UserID:    task.UserID,
	}
}

type singleTaskResponse struct {
	messageResponse
	Task taskResponse `json:"task"`
}

func newSingleTaskResponse(message string, task *models.Task) singleTaskResponse {
	return singleTaskResponse{
		messageResponse: messageResponse{
			Success: true,
			Message: message,
		},
		Task: newTaskResponse(task),
	}
}

type listTasksResponse struct {
	messageResponse
	Tasks []taskResponse `json:"tasks"`
}

func (h *handlerImpl) HandleListTasks(c *gin.Context) {
	userID, exists := getStringFromContext(c, userIDCtxKey)
	if !exists {
		abort(c, http.StatusUnauthorized, errNotLoggedIn.Error())
		return
	}

	tasks, err := h.tasks.List(c, userID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to list tasks")
		abortServerError(c)
		return
	}

	response := listTasksResponse{
		messageResponse: messageResponse{
			Success: true,
			Message: "tasks fetched",
		},
		Tasks: make([]taskResponse, len(tasks)),
	}
	for i, task := range tasks {
		response.Tasks[i] = newTaskResponse(task)
	}

	c.JSON(http.StatusOK, response)
}

type taskRequest struct {
	Title   string `json:"title" binding:"max=200"`
	Content string `json:"content"`
}

func (h *handlerImpl) HandleCreateTask(c *gin.Context) {
	userID, exists := getStringFromContext(c, userIDCtxKey)
	if !exists {
		abort(c, http.StatusUnauthorized, errNotLoggedIn.Error())
		return
	}

	var req taskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, http.StatusBadRequest, errInvalidRequestBody.Error())
		return
	}

	task, err := h.tasks.Create(c, userID, req.Title, req.Content)
	if err != nil {
		if errors.Is(err, services.ErrEmptyTitle) {
			abort(c, http.StatusBadRequest, err.Error())
			return
		}

		h.logger.Error().
			Err(err).
			Msg("failed to create task")
		abortServerError(c)
		return
	}

	c.JSON(http.StatusCreated, newSingleTaskResponse("task created", task))
}

func (h *handlerImpl) HandleUpdateTask(c *gin.Context) {
	userID, exists := getStringFromContext(c, userIDCtxKey)
	if !exists {
		abort(c, http.StatusUnauthorized, errNotLoggedIn.Error())
		return
	}

	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	var req taskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, http.StatusBadRequest, errInvalidRequestBody.Error())
		return
	}

	task, err := h.tasks.Update(c, userID, taskID, req.Title, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyTitle):
			abort(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrTaskNotFound):
			abort(c, http.StatusNotFound, err.Error())
		default:
			h.logger.Error().
				Err(err).
				Msg("failed to update task")
			abortServerError(c)
		}
		return
	}

	c.JSON(http.StatusOK, newSingleTaskResponse("task updated", task))
}

func (h *handlerImpl) HandleToggleTask(c *gin.Context) {
	userID, exists := getStringFromContext(c, userIDCtxKey)
	if !exists {
		abort(c, http.StatusUnauthorized, errNotLoggedIn.Error())
		return
	}

	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	task, err := h.tasks.Toggle(c, userID, taskID)
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			abort(c, http.StatusNotFound, err.Error())
			return
		}

		h.logger.Error().
			Err(err).
			Msg("failed to toggle task")
		abortServerError(c)
		return
	}

	message := "task marked as not done"
	if task.Done {
		message = "task marked as done"
	}
	c.JSON(http.StatusOK, newSingleTaskResponse(message, task))
}

func (h *handlerImpl) HandleDeleteTask(c *gin.Context) {
	userID, exists := getStringFromContext(c, userIDCtxKey)
	if !exists {
		abort(c, http.StatusUnauthorized, errNotLoggedIn.Error())
		return
	}

	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	err := h.tasks.Delete(c, userID, taskID)
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			abort(c, http.StatusNotFound, err.Error())
			return
		}

		h.logger.Error().
			Err(err).
			Msg("failed to delete task")
		abortServerError(c)
		return
	}

	respond(c, http.StatusOK, "task deleted")
}

// taskIDParam parses the :id route parameter. A non-numeric id answers
// exactly like a missing task.
func taskIDParam(c *gin.Context) (int64, bool) {
	taskID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		abort(c, http.StatusNotFound, services.ErrTaskNotFound.Error())
		return 0, false
	}
	return taskID, true
}
