package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edutax/edutax-backend/internal/platform/apierr"
	"github.com/edutax/edutax-backend/internal/platform/logger"
)

// APIError is the body of every non-2xx response.
type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, APIError{Message: msg, Code: code})
}

// RespondServiceError renders *apierr.Error values as-is. Anything else is a
// store failure: the cause is logged and the client only sees genericMessage.
func RespondServiceError(c *gin.Context, log *logger.Logger, err error, code, genericMessage string) {
	var ae *apierr.Error
	if errors.As(err, &ae) && ae.Status != 0 {
		if ae.Status >= http.StatusInternalServerError && log != nil {
			log.Warn(genericMessage, "error", err, "path", c.FullPath())
		}
		RespondError(c, ae.Status, ae.Code, ae.Err)
		return
	}
	if log != nil {
		log.Error(genericMessage, "error", err, "path", c.FullPath())
	}
	c.JSON(http.StatusInternalServerError, APIError{Message: genericMessage, Code: code})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
