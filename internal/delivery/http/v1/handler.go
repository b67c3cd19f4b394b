package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Varshithx/task-manager/internal/delivery/http/token"
	"github.com/Varshithx/task-manager/internal/services"
)

type Handler interface {
	HandleRegister(c *gin.Context)
	HandleLogin(c *gin.Context)
	HandleLogout(c *gin.Context)
	HandleMe(c *gin.Context)
	HandleAuthMiddleware(c *gin.Context)

	HandleListTasks(c *gin.Context)
	HandleCreateTask(c *gin.Context)
	HandleUpdateTask(c *gin.Context)
	HandleToggleTask(c *gin.Context)
	HandleDeleteTask(c *gin.Context)
}

type handlerImpl struct {
	logger   zerolog.Logger
	accounts services.AccountService
	sessions services.SessionService
	tasks    services.TaskService
	tokens   token.Codec

	// secureCookie marks the session cookie Secure so browsers only
	// send it over TLS. Off for local plain-http development.
	secureCookie bool
}

func New(
	logger zerolog.Logger,
	accountService services.AccountService,
	sessionService services.SessionService,
	taskService services.TaskService,
	tokenCodec token.Codec,
	secureCookie bool,
) Handler {
	return &handlerImpl{
		logger:       logger,
		accounts:     accountService,
		sessions:     sessionService,
		tasks:        taskService,
		tokens:       tokenCodec,
		secureCookie: secureCookie,
	}
}
