package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/edutax/edutax-backend/internal/platform/ctxutil"
	"github.com/edutax/edutax-backend/internal/platform/logger"
)

const healthPath = "/healthcheck"

// RequestLogger writes one line per request after the handler chain ran. The
// level follows the status class; health probes are logged at Debug.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	if log == nil {
		return func(c *gin.Context) { c.Next() }
	}
	log = log.With("component", "http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := requestFields(c, status, time.Since(start))
		switch {
		case status >= http.StatusInternalServerError:
			log.Error("HTTP request", fields...)
		case status >= http.StatusBadRequest:
			log.Warn("HTTP request", fields...)
		case c.FullPath() == healthPath:
			log.Debug("HTTP request", fields...)
		default:
			log.Info("HTTP request", fields...)
		}
	}
}

func requestFields(c *gin.Context, status int, elapsed time.Duration) []interface{} {
	route := c.FullPath()
	if route == "" {
		route = "unmatched"
	}
	fields := []interface{}{
		"method", c.Request.Method,
		"route", route,
		"status", status,
		"bytes", c.Writer.Size(),
		"duration_ms", elapsed.Milliseconds(),
	}
	if len(c.Errors) > 0 {
		fields = append(fields, "errors", c.Errors.String())
	}

	ctx := c.Request.Context()
	if td := ctxutil.GetTraceData(ctx); td != nil {
		fields = append(fields, "trace_id", td.TraceID, "request_id", td.RequestID)
	}
	// The auth middleware swaps c.Request, so the caller is visible here.
	if rd := ctxutil.GetRequestData(ctx); rd != nil && rd.UserID != "" {
		fields = append(fields, "user_id", rd.UserID, "session_id", rd.SessionID)
	}
	return fields
}
