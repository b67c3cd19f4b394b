package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Varshithx/task-manager/internal/delivery/http/token"
	"github.com/Varshithx/task-manager/internal/services"
)

const (
	userIDCtxKey    = "user_id"
	sessionIDCtxKey = "session_id"
)

// HandleAuthMiddleware resolves the session cookie into a user identity.
// The signed token only names a session row; the row itself is looked up
// on every request so that logout and expiry take effect immediately.
func (h *handlerImpl) HandleAuthMiddleware(c *gin.Context) {
	cookie, err := c.Cookie(token.Cookie)
	if err != nil {
		abort(c, http.StatusUnauthorized, errNotLoggedIn.Error())
		return
	}

	sessionID, err := h.tokens.Parse(cookie)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to parse session token")
		h.clearSessionCookie(c)
		abort(c, http.StatusUnauthorized, errNotLoggedIn.Error())
		return
	}

	session, err := h.sessions.GetByID(c, sessionID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSessionNotFound),
			errors.Is(err, services.ErrSessionExpired):
			h.clearSessionCookie(c)
			abort(c, http.StatusUnauthorized, errNotLoggedIn.Error())
		default:
			h.logger.Error().
				Err(err).
				Msg("failed to fetch session")
			abortServerError(c)
		}
		return
	}

	c.Set(userIDCtxKey, session.UserID)
	c.Set(sessionIDCtxKey, session.ID)
	c.Next()
}
