package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/edutax/edutax-backend/internal/http/handlers"
	httpMW "github.com/edutax/edutax-backend/internal/http/middleware"
	"github.com/edutax/edutax-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	ServiceName    string
	TracingEnabled bool
	AllowedOrigins []string

	AuthMiddleware *httpMW.AuthMiddleware

	AuthHandler       *httpH.AuthHandler
	UserHandler       *httpH.UserHandler
	CourseHandler     *httpH.CourseHandler
	LessonHandler     *httpH.LessonHandler
	EnrollmentHandler *httpH.EnrollmentHandler

	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.TracingEnabled {
		name := cfg.ServiceName
		if name == "" {
			name = "edutax-api"
		}
		r.Use(otelgin.Middleware(name))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS(cfg.AllowedOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		// Auth (public)
		if cfg.AuthHandler != nil {
			api.GET("/login", cfg.AuthHandler.Login)
			api.GET("/callback", cfg.AuthHandler.Callback)
			api.GET("/logout", cfg.AuthHandler.Logout)
		}

		// Catalog (public)
		if cfg.CourseHandler != nil {
			api.GET("/courses", cfg.CourseHandler.ListCourses)
			api.GET("/courses/:slug", cfg.CourseHandler.GetCourseBySlug)
		}
		if cfg.LessonHandler != nil {
			api.GET("/modules/:id/lessons", cfg.LessonHandler.ListModuleLessons)
		}
	}

	protected := api.Group("/")
	{
		// Middleware. A nil AuthMiddleware denies every request here.
		protected.Use(cfg.AuthMiddleware.RequireAuth())

		// User (Me)
		if cfg.UserHandler != nil {
			protected.GET("/auth/user", cfg.UserHandler.GetAuthUser)
		}

		// Enrollment
		if cfg.EnrollmentHandler != nil {
			protected.POST("/enrollments", cfg.EnrollmentHandler.Enroll)
			protected.GET("/enrollments", cfg.EnrollmentHandler.ListEnrollments)
			protected.GET("/enrollments/check/:courseId", cfg.EnrollmentHandler.CheckEnrollment)
		}

		// Lesson
		if cfg.LessonHandler != nil {
			protected.GET("/lessons/:id", cfg.LessonHandler.GetLesson)
		}
	}

	return r
}
