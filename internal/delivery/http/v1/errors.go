package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidRequestBody = errors.New("invalid request body")
	errNotLoggedIn        = errors.New("not logged in")
)

// messageResponse is the bare success/message envelope every
// API response is built on.
type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, messageResponse{
		Success: false,
		Message: message,
	})
}

func abortServerError(c *gin.Context) {
	abort(c, http.StatusInternalServerError, "server error")
}

func respond(c *gin.Context, status int, message string) {
	c.JSON(status, messageResponse{
		Success: true,
		Message: message,
	})
}
