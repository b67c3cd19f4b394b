package v1

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Varshithx/task-manager/internal/delivery/http/token"
	"github.com/Varshithx/task-manager/internal/models"
	"github.com/Varshithx/task-manager/internal/services"
)

type userResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func newUserResponse(user *models.User) userResponse {
	return userResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}

type registerRequest struct {
	Username string `json:"username" binding:"max=50"`
	Email    string `json:"email" binding:"max=100"`
	Password string `json:"password" binding:"max=255"`
}

func (h *handlerImpl) HandleRegister(c *gin.Context) {
	var req registerRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, http.StatusBadRequest, errInvalidRequestBody.Error())
		return
	}

	_, err = h.accounts.Register(c, services.RegisterParams{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingFields),
			errors.Is(err, services.ErrPasswordTooShort):
			abort(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrUsernameTaken),
			errors.Is(err, services.ErrEmailTaken):
			abort(c, http.StatusConflict, err.Error())
		default:
			h.logger.Error().
				Err(err).
				Msg("failed to register user")
			abortServerError(c)
		}
		return
	}

	respond(c, http.StatusCreated, "registration successful")
}

type loginRequest struct {
	Username string `json:"username" binding:"max=50"`
	Password string `json:"password" binding:"max=255"`
}

type loginResponse struct {
	messageResponse
	User userResponse `json:"user"`
}

func (h *handlerImpl) HandleLogin(c *gin.Context) {
	var req loginRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, http.StatusBadRequest, errInvalidRequestBody.Error())
		return
	}

	user, err := h.accounts.Login(c, services.LoginParams{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			abort(c, http.StatusUnauthorized, err.Error())
			return
		}

		h.logger.Error().
			Err(err).
			Msg("failed to login")
		abortServerError(c)
		return
	}

	session, err := h.sessions.Create(c, user.ID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to create session")
		abortServerError(c)
		return
	}

	signed, err := h.tokens.Sign(session.ID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to sign session token")
		abortServerError(c)
		return
	}
	h.setSessionCookie(c, signed, h.tokens.TTL())

	c.JSON(http.StatusOK, loginResponse{
		messageResponse: messageResponse{
			Success: true,
			Message: fmt.Sprintf("welcome back, %s", user.Username),
		},
		User: newUserResponse(user),
	})
}

func (h *handlerImpl) HandleLogout(c *gin.Context) {
	sessionID, _ := getStringFromContext(c, sessionIDCtxKey)

	err := h.sessions.Delete(c, sessionID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to delete session")
		abortServerError(c)
		return
	}

	h.clearSessionCookie(c)
	respond(c, http.StatusOK, "logged out")
}

type meResponse struct {
	messageResponse
	User userResponse `json:"user"`
}

func (h *handlerImpl) HandleMe(c *gin.Context) {
	userID, _ := getStringFromContext(c, userIDCtxKey)

	user, err := h.accounts.GetUserByID(c, userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			// The session points at a user that no longer exists.
			h.clearSessionCookie(c)
			abort(c, http.StatusUnauthorized, errNotLoggedIn.Error())
			return
		}

		h.logger.Error().
			Err(err).
			Msg("failed to fetch current user")
		abortServerError(c)
		return
	}

	c.JSON(http.StatusOK, meResponse{
		messageResponse: messageResponse{
			Success: true,
			Message: fmt.Sprintf("logged in as %s", user.Username),
		},
		User: newUserResponse(user),
	})
}

func getStringFromContext(c *gin.Context, key string) (string, bool) {
	value, exists := c.Get(key)
	if !exists {
		return "", false
	}
	str, ok := value.(string)
	return str, ok
}

func (h *handlerImpl) setSessionCookie(c *gin.Context, value string, maxAge time.Duration) {
	const httpOnly = true
	c.SetCookie(token.Cookie, value, int(maxAge.Seconds()),
		"/", "", h.secureCookie, httpOnly)
}

func (h *handlerImpl) clearSessionCookie(c *gin.Context) {
	c.SetCookie(token.Cookie, "", -1,
		"/", "", h.secureCookie, true)
}
