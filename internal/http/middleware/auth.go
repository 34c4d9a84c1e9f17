package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edutax/edutax-backend/internal/http/response"
	"github.com/edutax/edutax-backend/internal/platform/ctxutil"
	"github.com/edutax/edutax-backend/internal/platform/logger"
)

// SessionReader resolves the caller from the request cookies.
type SessionReader interface {
	Identity(r *http.Request) (userID, sessionID string)
}

type AuthMiddleware struct {
	log      *logger.Logger
	sessions SessionReader
}

func NewAuthMiddleware(log *logger.Logger, sessions SessionReader) *AuthMiddleware {
	return &AuthMiddleware{log: log.With("middleware", "AuthMiddleware"), sessions: sessions}
}

// RequireAuth rejects requests without a session. A nil AuthMiddleware, or one
// without a session reader, rejects everything.
func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if am == nil || am.sessions == nil {
			abortUnauthorized(c)
			return
		}
		userID, sessionID := am.sessions.Identity(c.Request)
		if userID == "" {
			am.log.Debug("rejecting anonymous request", "path", c.FullPath())
			abortUnauthorized(c)
			return
		}
		ctx := ctxutil.WithRequestData(c.Request.Context(), &ctxutil.RequestData{
			UserID:    userID,
			SessionID: sessionID,
		})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, response.APIError{
		Message: "Unauthorized",
		Code:    "unauthorized",
	})
}
