package repos

import (
	"github.com/edutax/edutax-backend/internal/data/repos/catalog"
	"github.com/edutax/edutax-backend/internal/data/repos/user"
	"github.com/edutax/edutax-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type UserRepo = user.UserRepo

type CourseRepo = catalog.CourseRepo
type ModuleRepo = catalog.ModuleRepo
type LessonRepo = catalog.LessonRepo
type EnrollmentRepo = catalog.EnrollmentRepo

func NewUserRepo(db *gorm.DB, log *logger.Logger) UserRepo {
	return user.NewUserRepo(db, log)
}

func NewCourseRepo(db *gorm.DB, log *logger.Logger) CourseRepo {
	return catalog.NewCourseRepo(db, log)
}

func NewModuleRepo(db *gorm.DB, log *logger.Logger) ModuleRepo {
	return catalog.NewModuleRepo(db, log)
}

func NewLessonRepo(db *gorm.DB, log *logger.Logger) LessonRepo {
	return catalog.NewLessonRepo(db, log)
}

func NewEnrollmentRepo(db *gorm.DB, log *logger.Logger) EnrollmentRepo {
	return catalog.NewEnrollmentRepo(db, log)
}
