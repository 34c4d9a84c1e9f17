package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/edutax/edutax-backend/internal/http/response"
	"github.com/edutax/edutax-backend/internal/platform/logger"
	"github.com/edutax/edutax-backend/internal/services"
)

type UserHandler struct {
	log         *logger.Logger
	userService services.UserService
}

func NewUserHandler(log *logger.Logger, userService services.UserService) *UserHandler {
	return &UserHandler{
		log:         log.With("handler", "UserHandler"),
		userService: userService,
	}
}

// GET /api/auth/user
func (uh *UserHandler) GetAuthUser(c *gin.Context) {
	me, err := uh.userService.GetMe(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, uh.log, err, "fetch_user_failed", "Failed to fetch user")
		return
	}
	response.RespondOK(c, me)
}
