package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/edutax/edutax-backend/internal/data/repos"
	types "github.com/edutax/edutax-backend/internal/domain"
	"github.com/edutax/edutax-backend/internal/domain/catalog"
	"github.com/edutax/edutax-backend/internal/platform/apierr"
	"github.com/edutax/edutax-backend/internal/platform/dbctx"
	"github.com/edutax/edutax-backend/internal/platform/logger"
)

// CourseService reads the catalog. Lookups that match nothing return nil with a
// nil error; only the *DetailBySlug variant turns absence into an error.
type CourseService interface {
	ListCourses(ctx context.Context) ([]*types.Course, error)
	GetCourseBySlug(ctx context.Context, slug string) (*types.Course, error)
	GetCourseWithCurriculum(ctx context.Context, courseID uuid.UUID) (*types.CourseDetail, error)
	GetCourseDetailBySlug(ctx context.Context, slug string) (*types.CourseDetail, error)
	ListModules(ctx context.Context, courseID uuid.UUID) ([]*types.Module, error)
	ListLessons(ctx context.Context, moduleID uuid.UUID) ([]*types.Lesson, error)
	GetLesson(ctx context.Context, lessonID uuid.UUID) (*types.Lesson, error)
}

type courseService struct {
	log        *logger.Logger
	courseRepo repos.CourseRepo
	moduleRepo repos.ModuleRepo
	lessonRepo repos.LessonRepo
}

func NewCourseService(
	baseLog *logger.Logger,
	courseRepo repos.CourseRepo,
	moduleRepo repos.ModuleRepo,
	lessonRepo repos.LessonRepo,
) CourseService {
	return &courseService{
		log:        baseLog.With("service", "CourseService"),
		courseRepo: courseRepo,
		moduleRepo: moduleRepo,
		lessonRepo: lessonRepo,
	}
}

func (s *courseService) ListCourses(ctx context.Context) ([]*types.Course, error) {
	courses, err := s.courseRepo.List(dbctx.New(ctx))
	if err != nil {
		s.log.Error("ListCourses failed", "error", err)
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}

func (s *courseService) GetCourseBySlug(ctx context.Context, slug string) (*types.Course, error) {
	course, err := s.courseRepo.GetBySlug(dbctx.New(ctx), slug)
	if err != nil {
		s.log.Error("GetCourseBySlug failed", "error", err, "slug", slug)
		return nil, fmt.Errorf("get course by slug: %w", err)
	}
	return course, nil
}

func (s *courseService) GetCourseWithCurriculum(ctx context.Context, courseID uuid.UUID) (*types.CourseDetail, error) {
	course, err := s.courseRepo.GetByID(dbctx.New(ctx), courseID)
	if err != nil {
		s.log.Error("GetCourseWithCurriculum failed", "error", err, "course_id", courseID)
		return nil, fmt.Errorf("get course: %w", err)
	}
	if course == nil {
		return nil, nil
	}
	return s.curriculum(ctx, course)
}

func (s *courseService) GetCourseDetailBySlug(ctx context.Context, slug string) (*types.CourseDetail, error) {
	course, err := s.GetCourseBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, apierr.ErrCourseNotFound
	}
	detail, err := s.GetCourseWithCurriculum(ctx, course.ID)
	if err != nil {
		return nil, err
	}
	// Deleted between the two reads.
	if detail == nil {
		return nil, apierr.ErrCourseNotFound
	}
	return detail, nil
}

func (s *courseService) curriculum(ctx context.Context, course *types.Course) (*types.CourseDetail, error) {
	modules, err := s.ListModules(ctx, course.ID)
	if err != nil {
		s.log.Error("load modules failed", "error", err, "course_id", course.ID)
		return nil, err
	}
	moduleIDs := make([]uuid.UUID, 0, len(modules))
	moduleRows := make([]types.Module, 0, len(modules))
	for _, m := range modules {
		moduleIDs = append(moduleIDs, m.ID)
		moduleRows = append(moduleRows, *m)
	}

	lessons, err := s.lessonRepo.ListByModuleIDs(dbctx.New(ctx), moduleIDs)
	if err != nil {
		s.log.Error("load lessons failed", "error", err, "course_id", course.ID)
		return nil, fmt.Errorf("load lessons: %w", err)
	}
	lessonRows := make([]types.Lesson, 0, len(lessons))
	for _, l := range lessons {
		lessonRows = append(lessonRows, *l)
	}

	return catalog.AssembleCurriculum(*course, moduleRows, lessonRows), nil
}

func (s *courseService) ListModules(ctx context.Context, courseID uuid.UUID) ([]*types.Module, error) {
	modules, err := s.moduleRepo.ListByCourseIDs(dbctx.New(ctx), []uuid.UUID{courseID})
	if err != nil {
		return nil, fmt.Errorf("list modules: %w", err)
	}
	return modules, nil
}

func (s *courseService) ListLessons(ctx context.Context, moduleID uuid.UUID) ([]*types.Lesson, error) {
	lessons, err := s.lessonRepo.ListByModuleIDs(dbctx.New(ctx), []uuid.UUID{moduleID})
	if err != nil {
		return nil, fmt.Errorf("list lessons: %w", err)
	}
	return lessons, nil
}

func (s *courseService) GetLesson(ctx context.Context, lessonID uuid.UUID) (*types.Lesson, error) {
	lesson, err := s.lessonRepo.GetByID(dbctx.New(ctx), lessonID)
	if err != nil {
		s.log.Error("GetLesson failed", "error", err, "lesson_id", lessonID)
		return nil, fmt.Errorf("get lesson: %w", err)
	}
	return lesson, nil
}
