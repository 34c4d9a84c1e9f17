package app

import (
	"github.com/edutax/edutax-backend/internal/data/db"
	"github.com/edutax/edutax-backend/internal/http"
	httpH "github.com/edutax/edutax-backend/internal/http/handlers"
	httpMW "github.com/edutax/edutax-backend/internal/http/middleware"
	"github.com/edutax/edutax-backend/internal/http/session"
	"github.com/edutax/edutax-backend/internal/platform/logger"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

type Handlers struct {
	Health     *httpH.HealthHandler
	Auth       *httpH.AuthHandler
	User       *httpH.UserHandler
	Course     *httpH.CourseHandler
	Lesson     *httpH.LessonHandler
	Enrollment *httpH.EnrollmentHandler
}

func wireSessions(cfg Config) (*session.Manager, error) {
	return session.NewManager(session.Config{
		Name:   session.DefaultName,
		Secret: []byte(cfg.SessionSecret),
		MaxAge: cfg.SessionTTL,
		Secure: cfg.Environment != "development",
	})
}

func wireHandlers(log *logger.Logger, cfg Config, database *db.Service, services Services, sessions *session.Manager) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:     httpH.NewHealthHandler(log, database),
		Auth:       httpH.NewAuthHandler(log, services.Auth, sessions, cfg.BaseURL),
		User:       httpH.NewUserHandler(log, services.User),
		Course:     httpH.NewCourseHandler(log, services.Course),
		Lesson:     httpH.NewLessonHandler(log, services.Course),
		Enrollment: httpH.NewEnrollmentHandler(log, services.Enrollment),
	}
}

func wireMiddleware(log *logger.Logger, sessions *session.Manager) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, sessions),
	}
}

func wireServer(log *logger.Logger, cfg Config, handlers Handlers, middleware Middleware) *http.Server {
	return http.NewServer(http.RouterConfig{
		Log:            log,
		ServiceName:    "edutax-api",
		TracingEnabled: cfg.OtelEnabled,
		AllowedOrigins: cfg.CORSAllowedOrigins,

		AuthMiddleware: middleware.Auth,

		AuthHandler:       handlers.Auth,
		UserHandler:       handlers.User,
		CourseHandler:     handlers.Course,
		LessonHandler:     handlers.Lesson,
		EnrollmentHandler: handlers.Enrollment,

		HealthHandler: handlers.Health,
	})
}
