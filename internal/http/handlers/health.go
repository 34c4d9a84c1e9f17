package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/edutax/edutax-backend/internal/platform/logger"
)

// Pinger is the database as the health check sees it.
type Pinger interface {
	Ping(ctx context.Context) error
	Driver() string
}

type HealthHandler struct {
	log *logger.Logger
	db  Pinger
}

func NewHealthHandler(log *logger.Logger, db Pinger) *HealthHandler {
	return &HealthHandler{log: log.With("handler", "HealthHandler"), db: db}
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	if h.db == nil {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if err := h.db.Ping(ctx); err != nil {
		h.log.Warn("database ping failed", "error", err, "driver", h.db.Driver())
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "database": h.db.Driver()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "database": h.db.Driver()})
}
