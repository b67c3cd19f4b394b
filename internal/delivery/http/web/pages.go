// Package web serves the HTML pages in front of the JSON API.
package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Varshithx/task-manager/internal/delivery/http/token"
	"github.com/Varshithx/task-manager/internal/services"
)

type Handler interface {
	HandleHome(c *gin.Context)
	HandleLoginPage(c *gin.Context)
	HandleRegisterPage(c *gin.Context)
	HandleDashboard(c *gin.Context)
}

type handlerImpl struct {
	logger   zerolog.Logger
	sessions services.SessionService
	tokens   token.Codec
}

func New(
	logger zerolog.Logger,
	sessionService services.SessionService,
	tokenCodec token.Codec,
) Handler {
	return &handlerImpl{
		logger:   logger,
		sessions: sessionService,
		tokens:   tokenCodec,
	}
}

func (h *handlerImpl) HandleHome(c *gin.Context) {
	if h.loggedIn(c) {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}
	c.Redirect(http.StatusFound, "/login")
}

func (h *handlerImpl) HandleLoginPage(c *gin.Context) {
	if h.loggedIn(c) {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}
	c.HTML(http.StatusOK, "login.html", nil)
}

func (h *handlerImpl) HandleRegisterPage(c *gin.Context) {
	if h.loggedIn(c) {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}
	c.HTML(http.StatusOK, "register.html", nil)
}

func (h *handlerImpl) HandleDashboard(c *gin.Context) {
	if !h.loggedIn(c) {
		c.Redirect(http.StatusFound, "/login")
		return
	}
	c.HTML(http.StatusOK, "dashboard.html", nil)
}

func (h *handlerImpl) loggedIn(c *gin.Context) bool {
	cookie, err := c.Cookie(token.Cookie)
	if err != nil {
		return false
	}

	sessionID, err := h.tokens.Parse(cookie)
	if err != nil {
		return false
	}

	_, err = h.sessions.GetByID(c, sessionID)
	return err == nil
}
