package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/edutax/edutax-backend/internal/domain"
	"github.com/edutax/edutax-backend/internal/http/response"
	"github.com/edutax/edutax-backend/internal/platform/apierr"
	"github.com/edutax/edutax-backend/internal/platform/logger"
	"github.com/edutax/edutax-backend/internal/services"
)

type LessonHandler struct {
	log           *logger.Logger
	courseService services.CourseService
}

func NewLessonHandler(log *logger.Logger, courseService services.CourseService) *LessonHandler {
	return &LessonHandler{
		log:           log.With("handler", "LessonHandler"),
		courseService: courseService,
	}
}

// GET /api/modules/:id/lessons
func (h *LessonHandler) ListModuleLessons(c *gin.Context) {
	moduleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondOK(c, []*types.Lesson{})
		return
	}
	lessons, err := h.courseService.ListLessons(c.Request.Context(), moduleID)
	if err != nil {
		response.RespondServiceError(c, h.log, err, "fetch_lessons_failed", "Failed to fetch lessons")
		return
	}
	if lessons == nil {
		lessons = []*types.Lesson{}
	}
	response.RespondOK(c, lessons)
}

// GET /api/lessons/:id
func (h *LessonHandler) GetLesson(c *gin.Context) {
	lessonID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondServiceError(c, h.log, apierr.ErrLessonNotFound, "", "")
		return
	}
	lesson, err := h.courseService.GetLesson(c.Request.Context(), lessonID)
	if err != nil {
		response.RespondServiceError(c, h.log, err, "fetch_lesson_failed", "Failed to fetch lesson")
		return
	}
	if lesson == nil {
		response.RespondServiceError(c, h.log, apierr.ErrLessonNotFound, "", "")
		return
	}
	response.RespondOK(c, lesson)
}
