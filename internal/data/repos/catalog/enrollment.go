package catalog

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/edutax/edutax-backend/internal/domain"
	"github.com/edutax/edutax-backend/internal/platform/dbctx"
	"github.com/edutax/edutax-backend/internal/platform/logger"
)

type EnrollmentRepo interface {
	// CreateIfAbsent inserts row unless (user_id, course_id) already exists and
	// reports whether a row was written.
	CreateIfAbsent(dbc dbctx.Context, row *types.Enrollment) (bool, error)
	Exists(dbc dbctx.Context, userID string, courseID uuid.UUID) (bool, error)
	ListByUserID(dbc dbctx.Context, userID string) ([]*types.Enrollment, error)
	CountByUserAndCourse(dbc dbctx.Context, userID string, courseID uuid.UUID) (int64, error)
}

type enrollmentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEnrollmentRepo(db *gorm.DB, baseLog *logger.Logger) EnrollmentRepo {
	return &enrollmentRepo{db: db, log: baseLog.With("repo", "EnrollmentRepo")}
}

func (r *enrollmentRepo) CreateIfAbsent(dbc dbctx.Context, row *types.Enrollment) (bool, error) {
	if row == nil || row.UserID == "" || row.CourseID == uuid.Nil {
		return false, nil
	}
	res := dbc.DB(r.db).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
			DoNothing: true,
		}).
		Create(row)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *enrollmentRepo) Exists(dbc dbctx.Context, userID string, courseID uuid.UUID) (bool, error) {
	n, err := r.CountByUserAndCourse(dbc, userID, courseID)
	return n > 0, err
}

func (r *enrollmentRepo) CountByUserAndCourse(dbc dbctx.Context, userID string, courseID uuid.UUID) (int64, error) {
	if userID == "" || courseID == uuid.Nil {
		return 0, nil
	}
	var n int64
	err := dbc.DB(r.db).
		Model(&types.Enrollment{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&n).Error
	return n, err
}

func (r *enrollmentRepo) ListByUserID(dbc dbctx.Context, userID string) ([]*types.Enrollment, error) {
	results := []*types.Enrollment{}
	if userID == "" {
		return results, nil
	}
	if err := dbc.DB(r.db).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
