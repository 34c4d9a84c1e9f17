package services

import (
	"testing"

	"gorm.io/gorm"

	"github.com/edutax/edutax-backend/internal/data/repos"
	"github.com/edutax/edutax-backend/internal/data/repos/testutil"
	"github.com/edutax/edutax-backend/internal/platform/logger"
)

type testEnv struct {
	db          *gorm.DB
	log         *logger.Logger
	courseRepo  repos.CourseRepo
	moduleRepo  repos.ModuleRepo
	lessonRepo  repos.LessonRepo
	userRepo    repos.UserRepo
	enrollRepo  repos.EnrollmentRepo
	courses     CourseService
	enrollments EnrollmentService
	users       UserService
	seed        SeedService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)

	catalog, err := DefaultSeedCatalog()
	if err != nil {
		t.Fatalf("DefaultSeedCatalog: %v", err)
	}

	env := &testEnv{
		db:         db,
		log:        log,
		courseRepo: repos.NewCourseRepo(db, log),
		moduleRepo: repos.NewModuleRepo(db, log),
		lessonRepo: repos.NewLessonRepo(db, log),
		userRepo:   repos.NewUserRepo(db, log),
		enrollRepo: repos.NewEnrollmentRepo(db, log),
	}
	env.courses = NewCourseService(log, env.courseRepo, env.moduleRepo, env.lessonRepo)
	env.enrollments = NewEnrollmentService(db, log, env.courseRepo, env.enrollRepo)
	env.users = NewUserService(log, env.userRepo)
	env.seed = NewSeedService(db, log, catalog, env.courseRepo, env.moduleRepo, env.lessonRepo)
	return env
}

func countRows(t *testing.T, db *gorm.DB, table string) int64 {
	t.Helper()
	var n int64
	if err := db.Table(table).Count(&n).Error; err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}
