package handlers

import (
	"github.com/gin-gonic/gin"

	types "github.com/edutax/edutax-backend/internal/domain"
	"github.com/edutax/edutax-backend/internal/http/response"
	"github.com/edutax/edutax-backend/internal/platform/logger"
	"github.com/edutax/edutax-backend/internal/services"
)

type CourseHandler struct {
	log           *logger.Logger
	courseService services.CourseService
}

func NewCourseHandler(log *logger.Logger, courseService services.CourseService) *CourseHandler {
	return &CourseHandler{
		log:           log.With("handler", "CourseHandler"),
		courseService: courseService,
	}
}

// GET /api/courses
func (h *CourseHandler) ListCourses(c *gin.Context) {
	courses, err := h.courseService.ListCourses(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, h.log, err, "fetch_courses_failed", "Failed to fetch courses")
		return
	}
	if courses == nil {
		courses = []*types.Course{}
	}
	response.RespondOK(c, courses)
}

// GET /api/courses/:slug
func (h *CourseHandler) GetCourseBySlug(c *gin.Context) {
	detail, err := h.courseService.GetCourseDetailBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.RespondServiceError(c, h.log, err, "fetch_course_failed", "Failed to fetch course")
		return
	}
	response.RespondOK(c, detail)
}
