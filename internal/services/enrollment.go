package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/edutax/edutax-backend/internal/data/repos"
	types "github.com/edutax/edutax-backend/internal/domain"
	"github.com/edutax/edutax-backend/internal/platform/apierr"
	"github.com/edutax/edutax-backend/internal/platform/dbctx"
	"github.com/edutax/edutax-backend/internal/platform/logger"
)

type EnrollmentService interface {
	IsEnrolled(ctx context.Context, userID, courseID string) (bool, error)
	Enroll(ctx context.Context, userID, courseID string) (*types.Enrollment, error)
	ListEnrollments(ctx context.Context, userID string) ([]*types.Enrollment, error)
}

type enrollmentService struct {
	tx             dbctx.TxRunner
	log            *logger.Logger
	courseRepo     repos.CourseRepo
	enrollmentRepo repos.EnrollmentRepo
}

func NewEnrollmentService(
	db *gorm.DB,
	baseLog *logger.Logger,
	courseRepo repos.CourseRepo,
	enrollmentRepo repos.EnrollmentRepo,
) EnrollmentService {
	return &enrollmentService{
		tx:             dbctx.NewTxRunner(db),
		log:            baseLog.With("service", "EnrollmentService"),
		courseRepo:     courseRepo,
		enrollmentRepo: enrollmentRepo,
	}
}

// IsEnrolled treats a malformed course id as "not enrolled".
func (s *enrollmentService) IsEnrolled(ctx context.Context, userID, courseID string) (bool, error) {
	cid, err := uuid.Parse(strings.TrimSpace(courseID))
	if err != nil {
		return false, nil
	}
	ok, err := s.enrollmentRepo.Exists(dbctx.New(ctx), userID, cid)
	if err != nil {
		s.log.Error("IsEnrolled failed", "error", err, "user_id", userID, "course_id", cid)
		return false, fmt.Errorf("check enrollment: %w", err)
	}
	return ok, nil
}

// Enroll records the (user, course) pair once. The insert is conditional on the
// unique index, so concurrent calls for the same pair produce one row and one
// success; every other caller gets ErrAlreadyEnrolled.
func (s *enrollmentService) Enroll(ctx context.Context, userID, courseID string) (*types.Enrollment, error) {
	courseID = strings.TrimSpace(courseID)
	if courseID == "" {
		return nil, apierr.ErrCourseIDRequired
	}
	if userID == "" {
		return nil, apierr.Unauthorized()
	}
	cid, err := uuid.Parse(courseID)
	if err != nil {
		return nil, apierr.ErrCourseNotFound
	}

	row := &types.Enrollment{UserID: userID, CourseID: cid}
	err = s.tx.InTx(ctx, func(dbc dbctx.Context) error {
		exists, err := s.courseRepo.Exists(dbc, cid)
		if err != nil {
			return fmt.Errorf("check course: %w", err)
		}
		if !exists {
			return apierr.ErrCourseNotFound
		}
		created, err := s.enrollmentRepo.CreateIfAbsent(dbc, row)
		if err != nil {
			return fmt.Errorf("insert enrollment: %w", err)
		}
		if !created {
			return apierr.ErrAlreadyEnrolled
		}
		return nil
	})
	switch {
	case err == nil:
		s.log.Info("Enrollment created", "user_id", userID, "course_id", cid, "enrollment_id", row.ID)
		return row, nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return nil, apierr.ErrAlreadyEnrolled
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return nil, apierr.ErrUserNotFound
	case apierr.Status(err) < 500:
		return nil, err
	default:
		s.log.Error("Enroll failed", "error", err, "user_id", userID, "course_id", cid)
		return nil, fmt.Errorf("enroll: %w", err)
	}
}

func (s *enrollmentService) ListEnrollments(ctx context.Context, userID string) ([]*types.Enrollment, error) {
	rows, err := s.enrollmentRepo.ListByUserID(dbctx.New(ctx), userID)
	if err != nil {
		s.log.Error("ListEnrollments failed", "error", err, "user_id", userID)
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	return rows, nil
}
