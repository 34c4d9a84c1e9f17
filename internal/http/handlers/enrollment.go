package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	types "github.com/edutax/edutax-backend/internal/domain"
	"github.com/edutax/edutax-backend/internal/http/response"
	"github.com/edutax/edutax-backend/internal/platform/ctxutil"
	"github.com/edutax/edutax-backend/internal/platform/logger"
	"github.com/edutax/edutax-backend/internal/services"
)

type EnrollmentHandler struct {
	log               *logger.Logger
	enrollmentService services.EnrollmentService
}

func NewEnrollmentHandler(log *logger.Logger, enrollmentService services.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{
		log:               log.With("handler", "EnrollmentHandler"),
		enrollmentService: enrollmentService,
	}
}

// POST /api/enrollments
// body: { "courseId": "..." }
func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	var req struct {
		CourseID string `json:"courseId"`
	}
	// An empty body is treated like a missing courseId.
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", errors.New("Invalid request body"))
		return
	}
	ctx := c.Request.Context()
	enrollment, err := h.enrollmentService.Enroll(ctx, ctxutil.UserID(ctx), req.CourseID)
	if err != nil {
		response.RespondServiceError(c, h.log, err, "enroll_failed", "Failed to enroll in course")
		return
	}
	response.RespondOK(c, enrollment)
}

// GET /api/enrollments
func (h *EnrollmentHandler) ListEnrollments(c *gin.Context) {
	ctx := c.Request.Context()
	enrollments, err := h.enrollmentService.ListEnrollments(ctx, ctxutil.UserID(ctx))
	if err != nil {
		response.RespondServiceError(c, h.log, err, "fetch_enrollments_failed", "Failed to fetch enrollments")
		return
	}
	if enrollments == nil {
		enrollments = []*types.Enrollment{}
	}
	response.RespondOK(c, enrollments)
}

// GET /api/enrollments/check/:courseId
func (h *EnrollmentHandler) CheckEnrollment(c *gin.Context) {
	ctx := c.Request.Context()
	enrolled, err := h.enrollmentService.IsEnrolled(ctx, ctxutil.UserID(ctx), c.Param("courseId"))
	if err != nil {
		response.RespondServiceError(c, h.log, err, "check_enrollment_failed", "Failed to check enrollment")
		return
	}
	response.RespondOK(c, gin.H{"enrolled": enrolled})
}
